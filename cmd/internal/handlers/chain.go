package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joncherry/signed-ledger/cmd/internal/dto"
)

type chainReader struct {
	ledger Ledger
}

// NewChainReader returns a chainReader struct for the read only chain endpoints.
func NewChainReader(ledger Ledger) *chainReader {
	return &chainReader{
		ledger: ledger,
	}
}

// Chain responds with every block, genesis first.
func (c *chainReader) Chain(resp http.ResponseWriter, req *http.Request) {
	writeJSON(resp, http.StatusOK, c.ledger.Blocks())
}

// Valid responds with the result of validating the whole chain.
func (c *chainReader) Valid(resp http.ResponseWriter, req *http.Request) {
	validity := dto.ChainValidity{
		Valid:  true,
		Height: c.ledger.Height(),
	}
	if err := c.ledger.ValidateChain(); err != nil {
		validity.Valid = false
		validity.Reason = err.Error()
	}
	writeJSON(resp, http.StatusOK, validity)
}

// Pending responds with the transactions waiting for the next block.
func (c *chainReader) Pending(resp http.ResponseWriter, req *http.Request) {
	writeJSON(resp, http.StatusOK, c.ledger.PendingTransactions())
}

// Balance responds with the balance of the address in the url.
func (c *chainReader) Balance(resp http.ResponseWriter, req *http.Request) {
	address := mux.Vars(req)["address"]
	if len(address) == 0 {
		writeError(resp, http.StatusBadRequest, "address is empty", nil)
		return
	}

	writeJSON(resp, http.StatusOK, dto.Balance{
		Address: address,
		Balance: c.ledger.GetBalanceOfAddress(address),
	})
}
