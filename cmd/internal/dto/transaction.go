package dto

import "github.com/joncherry/signed-ledger/cmd/internal/blockchain"

// TransactionSubmission is the body of a transaction request, signed beforehand by the sender.
type TransactionSubmission struct {
	FromAddress string  `json:"fromAddress"`
	ToAddress   string  `json:"toAddress"`
	Amount      float64 `json:"amount"`
	Signature   string  `json:"signature"`
}

// ToTransaction returns the ledger transaction of the submission.
func (s *TransactionSubmission) ToTransaction() blockchain.Transaction {
	return blockchain.Transaction{
		FromAddress: s.FromAddress,
		ToAddress:   s.ToAddress,
		Amount:      s.Amount,
		Signature:   s.Signature,
	}
}

// SubmissionResponse acknowledges a queued transaction.
type SubmissionResponse struct {
	Submission        string `json:"submission"`
	TransactionDigest string `json:"transactionDigest"`
}

// IndexedTransaction is a mined transaction together with where it sits in the chain.
type IndexedTransaction struct {
	Height      int                    `json:"height"`
	Index       int                    `json:"index"`
	BlockHash   string                 `json:"blockHash"`
	Transaction blockchain.Transaction `json:"transaction"`
}

const (
	// StatusSuccess indicates a transaction has been queued for the next block
	StatusSuccess = "success"
)

/*
example request body
{
	"fromAddress": "04a1b2...",
	"toAddress": "04c3d4...",
	"amount": 50,
	"signature": "3045022100..."
}
*/
