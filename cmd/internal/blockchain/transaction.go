package blockchain

import (
	"encoding/hex"
	"math"
	"strconv"

	"github.com/joncherry/signed-ledger/cmd/internal/autograph"
	"github.com/pkg/errors"
)

// RewardSenderAddress is the sender of mining reward transactions. No key owns it.
const RewardSenderAddress = ""

// Transaction moves Amount coin from FromAddress to ToAddress.
// Addresses are hex encoded public keys, Signature is the hex DER signature of ComputeDigest().
type Transaction struct {
	FromAddress string  `json:"fromAddress"`
	ToAddress   string  `json:"toAddress"`
	Amount      float64 `json:"amount"`
	Signature   string  `json:"signature,omitempty"`
}

// NewRewardTransaction returns the unsigned transaction crediting a miner.
func NewRewardTransaction(toAddress string, amount float64) Transaction {
	return Transaction{
		FromAddress: RewardSenderAddress,
		ToAddress:   toAddress,
		Amount:      amount,
	}
}

// IsReward reports whether tx was synthesized by the ledger for a miner.
func (tx *Transaction) IsReward() bool {
	return tx.FromAddress == RewardSenderAddress
}

// ComputeDigest hashes the sender, recipient and amount concatenated without separators.
func (tx *Transaction) ComputeDigest() string {
	return Digest([]byte(tx.FromAddress + tx.ToAddress + formatAmount(tx.Amount)))
}

// Sign stores the signature of the transaction digest made with keyPair.
// keyPair must be the sender's, and a transaction is signed only once.
func (tx *Transaction) Sign(keyPair *autograph.KeyPair) error {
	if keyPair == nil {
		return errors.Wrap(ErrUnauthorizedSigner, "no signing key")
	}
	if keyPair.PublicKeyHex() != tx.FromAddress {
		return errors.Wrapf(ErrUnauthorizedSigner, "signing key %s", ShortAddress(keyPair.PublicKeyHex()))
	}
	if tx.Signature != "" {
		return ErrAlreadySigned
	}

	digest, err := hex.DecodeString(tx.ComputeDigest())
	if err != nil {
		return errors.WithStack(err)
	}

	signature, err := keyPair.Sign(digest)
	if err != nil {
		return err
	}
	tx.Signature = hex.EncodeToString(signature)
	return nil
}

// IsValid reports whether the signature verifies against the sender's public key.
// Reward transactions are always valid. An unsigned transaction fails with ErrMissingSignature,
// an undecodable signature or sender with ErrInvalidSignature.
func (tx *Transaction) IsValid() (bool, error) {
	if tx.IsReward() {
		return true, nil
	}
	if tx.Signature == "" {
		return false, ErrMissingSignature
	}

	signature, err := hex.DecodeString(tx.Signature)
	if err != nil {
		return false, errors.Wrapf(ErrInvalidSignature, "signature is not hexadecimal: %s", err)
	}
	digest, err := hex.DecodeString(tx.ComputeDigest())
	if err != nil {
		return false, errors.WithStack(err)
	}

	verified, err := autograph.Verify(tx.FromAddress, digest, signature)
	if err != nil {
		return false, errors.Wrapf(ErrInvalidSignature, "%s", err)
	}
	return verified, nil
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// HasFiniteAmount reports whether Amount can be serialized into a block.
func (tx *Transaction) HasFiniteAmount() bool {
	return !math.IsNaN(tx.Amount) && !math.IsInf(tx.Amount, 0)
}

// ShortAddress keeps log lines readable, public keys are 130 hex characters.
func ShortAddress(address string) string {
	if len(address) <= 16 {
		return address
	}
	return address[:16] + "..."
}
