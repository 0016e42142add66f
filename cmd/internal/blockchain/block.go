package blockchain

import (
	"strconv"

	json "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// Block is a sealed batch of transactions.
// Hash is the digest of the other fields and only BlockTemplate.Mine and NewGenesisBlock produce blocks,
// so a Block is never observed with a stale Hash unless someone edits its fields afterwards.
type Block struct {
	Timestamp    int64         `json:"timestamp"`
	Transactions []Transaction `json:"transactions"`
	PreviousHash string        `json:"previousHash"`
	Hash         string        `json:"hash"`
	Nonce        uint64        `json:"nonce"`
}

// ComputeHash recomputes the digest of the block's timestamp, previous hash, transactions and nonce.
func (b *Block) ComputeHash() (string, error) {
	prefix, err := hashPrefix(b.Timestamp, b.PreviousHash, b.Transactions)
	if err != nil {
		return "", err
	}
	return hashWithNonce(prefix, b.Nonce), nil
}

// HasValidTransactions reports whether every transaction in the block is valid.
func (b *Block) HasValidTransactions() bool {
	return b.ValidateTransactions() == nil
}

// ValidateTransactions returns an error describing the first invalid transaction of the block.
func (b *Block) ValidateTransactions() error {
	for i := range b.Transactions {
		valid, err := b.Transactions[i].IsValid()
		if err != nil {
			return errors.Wrapf(err, "transaction %d", i)
		}
		if !valid {
			return errors.Wrapf(ErrInvalidSignature, "transaction %d", i)
		}
	}
	return nil
}

// Clone returns a deep copy of the block.
func (b *Block) Clone() Block {
	clone := *b
	clone.Transactions = make([]Transaction, len(b.Transactions))
	copy(clone.Transactions, b.Transactions)
	return clone
}

// hashPrefix is everything hashed before the nonce, mining reuses it for every nonce it tries.
func hashPrefix(timestamp int64, previousHash string, transactions []Transaction) ([]byte, error) {
	transactionsJSON := []byte("[]")
	if len(transactions) > 0 {
		var err error
		transactionsJSON, err = json.Marshal(transactions)
		if err != nil {
			return nil, errors.Wrap(err, "could not serialize the block transactions")
		}
	}

	prefix := strconv.AppendInt(nil, timestamp, 10)
	prefix = append(prefix, previousHash...)
	prefix = append(prefix, transactionsJSON...)
	return prefix, nil
}

func hashWithNonce(prefix []byte, nonce uint64) string {
	data := make([]byte, len(prefix), len(prefix)+20)
	copy(data, prefix)
	return Digest(strconv.AppendUint(data, nonce, 10))
}
