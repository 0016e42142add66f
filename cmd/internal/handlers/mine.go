package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/joncherry/signed-ledger/cmd/internal/blockchain"
	"github.com/joncherry/signed-ledger/cmd/internal/dto"
	json "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

type miner struct {
	ledger Ledger
}

// NewMiner returns a miner struct for handling the mine endpoint.
func NewMiner(ledger Ledger) *miner {
	return &miner{
		ledger: ledger,
	}
}

// Mine handles the mine endpoint. It mines the queued transactions into a block, rewarding the given address,
// and responds with the block. A client going away abandons the mining.
func (m *miner) Mine(resp http.ResponseWriter, req *http.Request) {
	reqBodyBytes, err := io.ReadAll(req.Body)
	if err != nil {
		writeError(resp, http.StatusBadRequest, "could not read request body", err)
		return
	}

	mineRequest := &dto.MineRequest{}
	err = json.Unmarshal(reqBodyBytes, mineRequest)
	if err != nil {
		writeError(resp, http.StatusBadRequest, "could not unmarshal json of request body", err)
		return
	}

	block, err := m.ledger.MinePendingTransactions(req.Context(), mineRequest.RewardAddress)
	if err != nil {
		switch {
		case errors.Is(err, blockchain.ErrMalformedTransaction):
			writeError(resp, http.StatusBadRequest, "rewardAddress is required", err)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			writeError(resp, http.StatusServiceUnavailable, "mining abandoned", err)
		default:
			writeError(resp, http.StatusInternalServerError, "mining failed", err)
		}
		return
	}

	writeJSON(resp, http.StatusOK, block)
}
