package blockchain

import (
	"crypto/sha256"
	"encoding/hex"
)

// DigestSize is the length of a hex encoded digest.
const DigestSize = sha256.Size * 2

// Digest returns the lowercase hex sha256 of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
