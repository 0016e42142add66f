package searchindexing

import (
	"sync"

	"github.com/joncherry/signed-ledger/cmd/internal/blockchain"
	"github.com/pkg/errors"
)

// ErrNotIndexed is returned for a digest or address no mined transaction carries.
var ErrNotIndexed = errors.New("not found in the transaction index")

// TransactionPath locates a transaction inside the chain.
type TransactionPath struct {
	Height int `json:"height"`
	Index  int `json:"index"`
}

// SearchIndexer is the struct that keeps track of where mined transactions sit in the chain with a mutex lock.
// It is fed by the ledger as a ledger.BlockListener.
type SearchIndexer struct {
	mx             *sync.Mutex
	transactionIDs map[string][]TransactionPath
	users          map[string][]TransactionPath
	indexedHeight  int
}

// NewSearchIndexer returns a new empty instance of the SearchIndexer struct.
func NewSearchIndexer() *SearchIndexer {
	return &SearchIndexer{
		mx:             &sync.Mutex{},
		transactionIDs: make(map[string][]TransactionPath),
		users:          make(map[string][]TransactionPath),
		indexedHeight:  -1,
	}
}

// BlockAppended indexes every transaction of block by its digest, its sender and its recipient.
// Blocks at or below an already indexed height are ignored.
func (s *SearchIndexer) BlockAppended(height int, block blockchain.Block) {
	s.mx.Lock()
	defer s.mx.Unlock()

	if height <= s.indexedHeight {
		return
	}

	for transactionIndex := range block.Transactions {
		transaction := &block.Transactions[transactionIndex]
		path := TransactionPath{Height: height, Index: transactionIndex}

		digest := transaction.ComputeDigest()
		s.transactionIDs[digest] = append(s.transactionIDs[digest], path)

		// users giving coin, reward transactions have no sender
		if !transaction.IsReward() {
			s.users[transaction.FromAddress] = append(s.users[transaction.FromAddress], path)
		}

		// users receiving coin, a transfer to oneself is indexed once
		if transaction.ToAddress != transaction.FromAddress {
			s.users[transaction.ToAddress] = append(s.users[transaction.ToAddress], path)
		}
	}
	s.indexedHeight = height

	log.Debugf("indexed %d transactions of block %d", len(block.Transactions), height)
}

// Getters

// GetTransactionPathsByID returns where the transactions with the given digest were mined.
// Identical transfers share a digest, so there can be more than one.
func (s *SearchIndexer) GetTransactionPathsByID(transactionID string) ([]TransactionPath, error) {
	s.mx.Lock()
	defer s.mx.Unlock()

	paths, pathExists := s.transactionIDs[transactionID]
	if !pathExists {
		return nil, errors.Wrapf(ErrNotIndexed, "transaction %s", transactionID)
	}

	return copyPaths(paths), nil
}

// GetTransactionPathsByUserID returns where the transactions sent or received by the address were mined, in chain order.
func (s *SearchIndexer) GetTransactionPathsByUserID(userID string) ([]TransactionPath, error) {
	s.mx.Lock()
	defer s.mx.Unlock()

	paths, pathExists := s.users[userID]
	if !pathExists {
		return nil, errors.Wrapf(ErrNotIndexed, "user %s", blockchain.ShortAddress(userID))
	}

	return copyPaths(paths), nil
}

// IndexedHeight returns the height of the last indexed block, -1 before any.
func (s *SearchIndexer) IndexedHeight() int {
	s.mx.Lock()
	defer s.mx.Unlock()

	return s.indexedHeight
}

func copyPaths(paths []TransactionPath) []TransactionPath {
	copied := make([]TransactionPath, len(paths))
	copy(copied, paths)
	return copied
}
