package blockchain

import "github.com/pkg/errors"

// These errors identify why a transaction, a block or the chain was rejected.
// Callers wrap them with context and check them with errors.Is.
var (
	// ErrUnauthorizedSigner indicates an attempt to sign a transaction with a
	// key that does not belong to its sender.
	ErrUnauthorizedSigner = errors.New("you cannot sign transactions for other wallets")

	// ErrAlreadySigned indicates an attempt to sign a transaction twice.
	ErrAlreadySigned = errors.New("transaction is already signed")

	// ErrMissingSignature indicates a non reward transaction without a signature.
	ErrMissingSignature = errors.New("no signature in this transaction")

	// ErrMalformedTransaction indicates a transaction without a sender or a
	// recipient, or with an amount that is not a finite number.
	ErrMalformedTransaction = errors.New("transaction is malformed")

	// ErrInvalidSignature indicates a signature that can not be decoded or does
	// not verify against the sender's public key.
	ErrInvalidSignature = errors.New("transaction signature is invalid")

	// ErrNegativeAmount indicates a transfer of a negative amount.
	ErrNegativeAmount = errors.New("transaction amount is negative")

	// ErrInsufficientBalance indicates a transfer of more than the sender owns.
	ErrInsufficientBalance = errors.New("not enough coin in sender balance")

	// ErrDuplicateTransaction indicates a signed transfer submitted again while it is
	// already queued or mined.
	ErrDuplicateTransaction = errors.New("transaction was already submitted")

	// ErrDifficultyOutOfRange indicates a difficulty no sha256 hex digest can satisfy.
	ErrDifficultyOutOfRange = errors.New("difficulty out of range")

	// ErrInvalidChain indicates a block that breaks the hash chain.
	ErrInvalidChain = errors.New("chain is invalid")
)
