package blockchain

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// MaxDifficulty is the number of hex characters of a digest.
const MaxDifficulty = DigestSize

// how many nonces are tried between two looks at the context
const cancellationCheckInterval = 1 << 12

// BlockTemplate holds a block's content while its nonce is searched.
// The nonce and candidate hash never leave the template, Mine hands out a sealed Block.
type BlockTemplate struct {
	timestamp    int64
	previousHash string
	transactions []Transaction
	nonce        uint64
	hash         string
}

// NewBlockTemplate copies transactions into a template on top of previousHash.
func NewBlockTemplate(timestamp int64, previousHash string, transactions []Transaction) *BlockTemplate {
	copied := make([]Transaction, len(transactions))
	copy(copied, transactions)
	return &BlockTemplate{
		timestamp:    timestamp,
		previousHash: previousHash,
		transactions: copied,
	}
}

// Mine increments the nonce from 0 until the block hash starts with difficulty '0' hex characters.
// There is no nonce ceiling, cancel ctx to give up. The returned Block shares nothing with the template.
func (t *BlockTemplate) Mine(ctx context.Context, difficulty int) (*Block, error) {
	if err := CheckDifficulty(difficulty); err != nil {
		return nil, err
	}

	prefix, err := hashPrefix(t.timestamp, t.previousHash, t.transactions)
	if err != nil {
		return nil, err
	}

	target := strings.Repeat("0", difficulty)
	t.nonce = 0
	t.hash = hashWithNonce(prefix, t.nonce)
	for !strings.HasPrefix(t.hash, target) {
		t.nonce++
		if t.nonce%cancellationCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, errors.Wrapf(err, "mining stopped at nonce %d", t.nonce)
			}
		}
		t.hash = hashWithNonce(prefix, t.nonce)
	}

	log.Infof("Block mined: %s (nonce %d)", t.hash, t.nonce)

	transactions := make([]Transaction, len(t.transactions))
	copy(transactions, t.transactions)
	return &Block{
		Timestamp:    t.timestamp,
		Transactions: transactions,
		PreviousHash: t.previousHash,
		Hash:         t.hash,
		Nonce:        t.nonce,
	}, nil
}

// HashMeetsDifficulty reports whether hash starts with difficulty '0' hex characters.
func HashMeetsDifficulty(hash string, difficulty int) bool {
	if difficulty < 0 || difficulty > len(hash) {
		return false
	}
	return strings.HasPrefix(hash, strings.Repeat("0", difficulty))
}

// CheckDifficulty returns ErrDifficultyOutOfRange when no digest can meet difficulty.
func CheckDifficulty(difficulty int) error {
	if difficulty < 0 || difficulty > MaxDifficulty {
		return errors.Wrapf(ErrDifficultyOutOfRange, "difficulty %d is not within [0, %d]", difficulty, MaxDifficulty)
	}
	return nil
}
