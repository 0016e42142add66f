package autograph

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec"
	"github.com/pkg/errors"
)

// KeyPair is a secp256k1 private key together with its public key.
// The hex encoded uncompressed public key doubles as the wallet address.
type KeyPair struct {
	privateKey *btcec.PrivateKey
	publicKey  *btcec.PublicKey
}

// NewKeyPair creates a new secp256k1 private and public key
func NewKeyPair() (*KeyPair, error) {
	privateKey, err := btcec.NewPrivateKey(btcec.S256())
	if err != nil {
		return nil, errors.Wrap(err, "could not generate private key")
	}
	return &KeyPair{
		privateKey: privateKey,
		publicKey:  privateKey.PubKey(),
	}, nil
}

// KeyPairFromPrivateKeyHex restores the key pair of a hex encoded 32 byte private key.
func KeyPairFromPrivateKeyHex(privateKeyHex string) (*KeyPair, error) {
	privateKeyBytes, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return nil, errors.Wrap(err, "private key is not hexadecimal")
	}
	if len(privateKeyBytes) != btcec.PrivKeyBytesLen {
		return nil, errors.Errorf("private key must be %d bytes, got %d", btcec.PrivKeyBytesLen, len(privateKeyBytes))
	}

	privateKey, publicKey := btcec.PrivKeyFromBytes(btcec.S256(), privateKeyBytes)
	return &KeyPair{
		privateKey: privateKey,
		publicKey:  publicKey,
	}, nil
}

// PublicKeyHex returns the uncompressed public key as lowercase hex.
func (k *KeyPair) PublicKeyHex() string {
	return hex.EncodeToString(k.publicKey.SerializeUncompressed())
}

// PrivateKeyHex returns the private key scalar as lowercase hex.
func (k *KeyPair) PrivateKeyHex() string {
	return hex.EncodeToString(k.privateKey.Serialize())
}

// Sign signs the digest with deterministic ECDSA and returns the DER encoding of the signature
func (k *KeyPair) Sign(digest []byte) ([]byte, error) {
	signature, err := k.privateKey.Sign(digest)
	if err != nil {
		return nil, errors.Wrap(err, "could not sign digest")
	}
	return signature.Serialize(), nil
}
