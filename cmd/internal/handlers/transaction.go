package handlers

import (
	"io"
	"net/http"

	"github.com/joncherry/signed-ledger/cmd/internal/blockchain"
	"github.com/joncherry/signed-ledger/cmd/internal/dto"
	json "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

type transactionRunner struct {
	ledger Ledger
}

// NewTransactionRunner initiates transactionRunner with the ledger that queues the transactions
func NewTransactionRunner(ledger Ledger) *transactionRunner {
	return &transactionRunner{
		ledger: ledger,
	}
}

/*
example request:

curl --request POST \
  --url http://127.0.0.1:8080/transaction \
  --header 'content-type: application/json' \
  --data '{
	"fromAddress": "04a1b2...",
	"toAddress": "04c3d4...",
	"amount": 50,
	"signature": "3045022100..."
}'

response:

{
  "submission": "success",
  "transactionDigest": "9f86d0..."
}
*/

// Transaction handles the transaction endpoint. The transaction must already be signed by its sender.
func (r *transactionRunner) Transaction(resp http.ResponseWriter, req *http.Request) {
	reqBodyBytes, err := io.ReadAll(req.Body)
	if err != nil {
		writeError(resp, http.StatusBadRequest, "could not read request body", err)
		return
	}

	transactionSub := &dto.TransactionSubmission{}
	err = json.Unmarshal(reqBodyBytes, transactionSub)
	if err != nil {
		writeError(resp, http.StatusBadRequest, "could not unmarshal json of request body", err)
		return
	}

	transaction := transactionSub.ToTransaction()
	err = r.ledger.AddTransaction(transaction)
	if err != nil {
		writeError(resp, statusOfRejection(err), "transaction rejected", err)
		return
	}

	writeJSON(resp, http.StatusOK, dto.SubmissionResponse{
		Submission:        dto.StatusSuccess,
		TransactionDigest: transaction.ComputeDigest(),
	})
}

func statusOfRejection(err error) int {
	switch {
	case errors.Is(err, blockchain.ErrMissingSignature),
		errors.Is(err, blockchain.ErrInvalidSignature):
		return http.StatusUnauthorized
	case errors.Is(err, blockchain.ErrMalformedTransaction),
		errors.Is(err, blockchain.ErrNegativeAmount),
		errors.Is(err, blockchain.ErrInsufficientBalance):
		return http.StatusBadRequest
	case errors.Is(err, blockchain.ErrDuplicateTransaction):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
