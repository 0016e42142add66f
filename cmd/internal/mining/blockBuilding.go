package mining

import (
	"context"
	"time"

	"github.com/joncherry/signed-ledger/cmd/internal/blockchain"
	"github.com/pkg/errors"
)

const defaultCheckInterval = time.Second

// PendingMiner is the part of the ledger the block builder drives.
type PendingMiner interface {
	PendingCount() int
	MinePendingTransactions(ctx context.Context, rewardAddress string) (*blockchain.Block, error)
}

// BlockBuilder packages the ledger's queue into blocks on a schedule.
type BlockBuilder struct {
	ledger          PendingMiner
	rewardAddress   string
	maxTransactions int
	timeLimit       time.Duration
	checkInterval   time.Duration
}

// NewBlockBuilder returns a new instance of the BlockBuilder struct with the given arguments.
func NewBlockBuilder(ledger PendingMiner, rewardAddress string, maxTransactions int, timeLimit time.Duration) *BlockBuilder {
	return &BlockBuilder{
		ledger:          ledger,
		rewardAddress:   rewardAddress,
		maxTransactions: maxTransactions,
		timeLimit:       timeLimit,
		checkInterval:   defaultCheckInterval,
	}
}

// Run mines a block whenever the time limit elapses with a non empty queue, and as soon as the queue
// holds max transactions, when max transactions is positive. The time limit restarts after every mined block. Run returns when ctx is done,
// abandoning a block being mined.
func (b *BlockBuilder) Run(ctx context.Context) {
	checkTicker := time.NewTicker(b.checkInterval)
	defer checkTicker.Stop()

	deadline := time.Now().Add(b.timeLimit)
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-checkTicker.C:
			pendingCount := b.ledger.PendingCount()
			switch {
			case b.maxTransactions > 0 && pendingCount >= b.maxTransactions:
				log.Infof("queue reached %d transactions, mining", pendingCount)
			case !now.Before(deadline) && pendingCount > 0:
				log.Infof("time limit of %s elapsed, mining", b.timeLimit)
			case !now.Before(deadline):
				deadline = now.Add(b.timeLimit)
				continue
			default:
				continue
			}

			b.mineBlock(ctx)
			deadline = time.Now().Add(b.timeLimit)
		}
	}
}

func (b *BlockBuilder) mineBlock(ctx context.Context) {
	block, err := b.ledger.MinePendingTransactions(ctx, b.rewardAddress)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.Infof("mining abandoned: %s", err)
			return
		}
		log.Errorf("mining failed: %+v", err)
		return
	}
	log.Infof("mined block %s with %d transactions", block.Hash, len(block.Transactions))
}
