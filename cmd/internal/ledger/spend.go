package ledger

import (
	"github.com/joncherry/signed-ledger/cmd/internal/blockchain"
	"github.com/pkg/errors"
)

// verifySpendIsAllowed applies the optional spend rules to tx. Must be called with l.mx held.
func (l *Ledger) verifySpendIsAllowed(tx *blockchain.Transaction) error {
	if l.config.RejectNegativeAmounts && tx.Amount < 0 {
		return errors.Wrapf(blockchain.ErrNegativeAmount, "amount %v", tx.Amount)
	}
	if !l.config.RejectOverdraft {
		return nil
	}

	if l.isKnownTransfer(tx) {
		return errors.Wrapf(blockchain.ErrDuplicateTransaction, "transaction %s", tx.ComputeDigest())
	}

	// the sender might already be spending or receiving in the queue
	senderBalance := l.balanceOfAddress(tx.FromAddress) + l.pendingNetOfAddress(tx.FromAddress)
	if senderBalance-tx.Amount < 0 {
		return errors.Wrapf(blockchain.ErrInsufficientBalance, "balance %v, spending %v", senderBalance, tx.Amount)
	}
	return nil
}

func (l *Ledger) pendingNetOfAddress(address string) float64 {
	net := 0.0
	for _, transaction := range l.pending {
		if transaction.FromAddress == address {
			net -= transaction.Amount
		}
		if transaction.ToAddress == address {
			net += transaction.Amount
		}
	}
	return net
}

// isKnownTransfer reports whether the same signed transfer is already queued or mined.
func (l *Ledger) isKnownTransfer(tx *blockchain.Transaction) bool {
	digest := tx.ComputeDigest()
	sameTransfer := func(transaction *blockchain.Transaction) bool {
		return !transaction.IsReward() && transaction.ComputeDigest() == digest
	}

	for i := range l.pending {
		if sameTransfer(&l.pending[i]) {
			return true
		}
	}
	for _, block := range l.chain {
		for i := range block.Transactions {
			if sameTransfer(&block.Transactions[i]) {
				return true
			}
		}
	}
	return false
}
