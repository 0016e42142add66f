package autograph

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

const publicKeyCacheSize = 1024

// parsed public keys by their hex encoding, every chain scan verifies the same senders again
var publicKeyCache *lru.Cache

func init() {
	var err error
	publicKeyCache, err = lru.New(publicKeyCacheSize)
	if err != nil {
		panic(err)
	}
}

// Verify verifies the DER signature of digest against the hex encoded public key.
// Errors when the key or the signature can not be decoded, returns false when they decode but do not match.
func Verify(publicKeyHex string, digest, signature []byte) (bool, error) {
	publicKey, err := PublicKeyFromHex(publicKeyHex)
	if err != nil {
		return false, err
	}

	parsedSignature, err := btcec.ParseDERSignature(signature, btcec.S256())
	if err != nil {
		return false, errors.Wrap(err, "could not parse DER signature")
	}

	return parsedSignature.Verify(digest, publicKey), nil
}

// PublicKeyFromHex parses a compressed or uncompressed secp256k1 public key from hex.
func PublicKeyFromHex(publicKeyHex string) (*btcec.PublicKey, error) {
	if cached, ok := publicKeyCache.Get(publicKeyHex); ok {
		return cached.(*btcec.PublicKey), nil
	}

	publicKeyBytes, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return nil, errors.Wrap(err, "public key is not hexadecimal")
	}

	publicKey, err := btcec.ParsePubKey(publicKeyBytes, btcec.S256())
	if err != nil {
		return nil, errors.Wrap(err, "could not parse public key")
	}

	publicKeyCache.Add(publicKeyHex, publicKey)
	return publicKey, nil
}
