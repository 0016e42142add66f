package handlers

import (
	"context"
	"net/http"

	"github.com/joncherry/signed-ledger/cmd/internal/blockchain"
	"github.com/joncherry/signed-ledger/cmd/internal/dto"
	json "github.com/json-iterator/go"
)

// Ledger is what the handlers need from the ledger.
type Ledger interface {
	AddTransaction(tx blockchain.Transaction) error
	MinePendingTransactions(ctx context.Context, rewardAddress string) (*blockchain.Block, error)
	Blocks() []blockchain.Block
	Block(height int) (blockchain.Block, error)
	Height() int
	PendingTransactions() []blockchain.Transaction
	GetBalanceOfAddress(address string) float64
	ValidateChain() error
}

func writeJSON(resp http.ResponseWriter, status int, body interface{}) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		log.Errorf("could not marshal response body: %s", err)
		resp.WriteHeader(http.StatusInternalServerError)
		resp.Write([]byte(`{"message":"could not marshal response body"}`))
		return
	}

	resp.Header().Set("Content-Type", "application/json")
	resp.WriteHeader(status)
	resp.Write(bodyBytes)
}

func writeError(resp http.ResponseWriter, status int, message string, err error) {
	errorResponse := dto.ErrorResponse{Message: message}
	if err != nil {
		errorResponse.Error = err.Error()
	}
	writeJSON(resp, status, errorResponse)
}
