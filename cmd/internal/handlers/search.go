package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joncherry/signed-ledger/cmd/internal/blockchain"
	"github.com/joncherry/signed-ledger/cmd/internal/dto"
	"github.com/joncherry/signed-ledger/cmd/internal/searchindexing"
	"github.com/pkg/errors"
)

type searcher struct {
	ledger      Ledger
	searchIndex *searchindexing.SearchIndexer
}

// NewSearcher returns a searcher struct for the search endpoints.
func NewSearcher(ledger Ledger, searchIndex *searchindexing.SearchIndexer) *searcher {
	return &searcher{
		ledger:      ledger,
		searchIndex: searchIndex,
	}
}

// Transaction responds with the mined transactions having the digest in the url.
func (s *searcher) Transaction(resp http.ResponseWriter, req *http.Request) {
	transactionID := mux.Vars(req)["transaction_id"]
	if len(transactionID) == 0 {
		writeError(resp, http.StatusBadRequest, "transaction ID is empty", nil)
		return
	}

	if len(transactionID) != blockchain.DigestSize {
		writeError(resp, http.StatusBadRequest, "transaction ID is not 64 characters", nil)
		return
	}

	paths, err := s.searchIndex.GetTransactionPathsByID(transactionID)
	if err != nil {
		s.writeSearchError(resp, err)
		return
	}

	s.writeTransactions(resp, paths)
}

// User responds with the mined transactions sent or received by the address in the url.
func (s *searcher) User(resp http.ResponseWriter, req *http.Request) {
	userID := mux.Vars(req)["address"]
	if len(userID) == 0 {
		writeError(resp, http.StatusBadRequest, "address is empty", nil)
		return
	}

	paths, err := s.searchIndex.GetTransactionPathsByUserID(userID)
	if err != nil {
		s.writeSearchError(resp, err)
		return
	}

	s.writeTransactions(resp, paths)
}

func (s *searcher) writeSearchError(resp http.ResponseWriter, err error) {
	if errors.Is(err, searchindexing.ErrNotIndexed) {
		writeError(resp, http.StatusNotFound, "error finding transactions", err)
		return
	}
	writeError(resp, http.StatusInternalServerError, "error finding transactions", err)
}

func (s *searcher) writeTransactions(resp http.ResponseWriter, paths []searchindexing.TransactionPath) {
	result := make([]dto.IndexedTransaction, 0, len(paths))
	for _, path := range paths {
		block, err := s.ledger.Block(path.Height)
		if err != nil {
			writeError(resp, http.StatusInternalServerError, "error finding transactions", err)
			return
		}
		if path.Index >= len(block.Transactions) {
			writeError(resp, http.StatusInternalServerError, "search index is out of date with the chain", nil)
			return
		}

		result = append(result, dto.IndexedTransaction{
			Height:      path.Height,
			Index:       path.Index,
			BlockHash:   block.Hash,
			Transaction: block.Transactions[path.Index],
		})
	}

	writeJSON(resp, http.StatusOK, result)
}
