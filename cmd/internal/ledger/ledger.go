package ledger

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/joncherry/signed-ledger/cmd/internal/blockchain"
	"github.com/pkg/errors"
)

// Config holds the rules a Ledger is constructed with.
type Config struct {
	// Difficulty is the count of leading '0' hex characters a mined block hash needs.
	Difficulty int
	// MiningReward is credited to the miner of every block.
	MiningReward float64
	// RejectNegativeAmounts refuses transactions moving a negative amount.
	RejectNegativeAmounts bool
	// RejectOverdraft refuses transactions spending more than the sender's balance
	// including the transactions already waiting to be mined. It also refuses a signed
	// transfer identical to one already queued or mined, since the digest carries no nonce
	// and a replayed transfer would otherwise drain the sender.
	RejectOverdraft bool
}

// ErrInvalidMiningReward indicates a mining reward that can not be serialized into a block.
var ErrInvalidMiningReward = errors.New("mining reward must be a finite number")

// DefaultConfig returns difficulty 4 and a mining reward of 100, without spend checks.
func DefaultConfig() Config {
	return Config{
		Difficulty:   4,
		MiningReward: 100,
	}
}

// BlockListener is told about every block of the chain, in chain order.
type BlockListener interface {
	BlockAppended(height int, block blockchain.Block)
}

// Ledger owns the chain of mined blocks and the queue of transactions waiting for the next block.
// It is safe for concurrent use. Miners are serialized and search for a nonce without holding the
// state lock, so transactions keep being accepted while a block is mined.
type Ledger struct {
	mx        sync.RWMutex
	miningMx  sync.Mutex
	config    Config
	chain     []blockchain.Block
	pending   []blockchain.Transaction
	listeners []BlockListener
	now       func() time.Time
}

// New returns a ledger holding only the genesis block.
func New(config Config) (*Ledger, error) {
	if err := blockchain.CheckDifficulty(config.Difficulty); err != nil {
		return nil, err
	}
	if math.IsNaN(config.MiningReward) || math.IsInf(config.MiningReward, 0) {
		return nil, errors.Wrapf(ErrInvalidMiningReward, "mining reward %v", config.MiningReward)
	}

	return &Ledger{
		config:  config,
		chain:   []blockchain.Block{createGenesisBlock()},
		pending: make([]blockchain.Transaction, 0),
		now:     time.Now,
	}, nil
}

func createGenesisBlock() blockchain.Block {
	return blockchain.NewGenesisBlock()
}

// AddTransaction validates tx and queues it for the next mined block.
// Nothing is queued when an error is returned.
func (l *Ledger) AddTransaction(tx blockchain.Transaction) error {
	if tx.FromAddress == "" || tx.ToAddress == "" {
		return errors.WithStack(blockchain.ErrMalformedTransaction)
	}
	if !tx.HasFiniteAmount() {
		return errors.Wrapf(blockchain.ErrMalformedTransaction, "amount %v is not a finite number", tx.Amount)
	}

	valid, err := tx.IsValid()
	if err != nil {
		return errors.Wrap(err, "cannot add transaction to the chain")
	}
	if !valid {
		return errors.Wrap(blockchain.ErrInvalidSignature, "cannot add transaction to the chain")
	}

	l.mx.Lock()
	defer l.mx.Unlock()

	if err := l.verifySpendIsAllowed(&tx); err != nil {
		return err
	}

	l.pending = append(l.pending, tx)
	log.Debugf("queued transaction %s of %v from %s to %s",
		tx.ComputeDigest(), tx.Amount, blockchain.ShortAddress(tx.FromAddress), blockchain.ShortAddress(tx.ToAddress))
	return nil
}

// MinePendingTransactions mines the queued transactions into a block on top of the chain tip,
// appends it, and queues the reward for rewardAddress. When mining fails or ctx is cancelled
// the chain and the queue are left as they were.
func (l *Ledger) MinePendingTransactions(ctx context.Context, rewardAddress string) (*blockchain.Block, error) {
	if rewardAddress == "" {
		return nil, errors.Wrap(blockchain.ErrMalformedTransaction, "reward address is empty")
	}

	l.miningMx.Lock()
	defer l.miningMx.Unlock()

	l.mx.RLock()
	tipHash := l.chain[len(l.chain)-1].Hash
	packaged := make([]blockchain.Transaction, len(l.pending))
	copy(packaged, l.pending)
	l.mx.RUnlock()

	log.Infof("Mining %d pending transactions on top of %s", len(packaged), tipHash)
	template := blockchain.NewBlockTemplate(l.now().UnixMilli(), tipHash, packaged)
	block, err := template.Mine(ctx, l.config.Difficulty)
	if err != nil {
		return nil, err
	}

	// only miners touch the chain and only miners remove from the queue, so both are as we left them
	// apart from transactions appended to the queue in the meantime
	l.mx.Lock()
	l.chain = append(l.chain, *block)
	height := len(l.chain) - 1
	arrivedWhileMining := l.pending[len(packaged):]
	pending := make([]blockchain.Transaction, 0, len(arrivedWhileMining)+1)
	pending = append(pending, blockchain.NewRewardTransaction(rewardAddress, l.config.MiningReward))
	l.pending = append(pending, arrivedWhileMining...)
	listeners := make([]BlockListener, len(l.listeners))
	copy(listeners, l.listeners)
	l.mx.Unlock()

	log.Infof("Block successfully mined at height %d", height)
	for _, listener := range listeners {
		listener.BlockAppended(height, block.Clone())
	}

	mined := block.Clone()
	return &mined, nil
}

// GetBalanceOfAddress sums what address received minus what it sent over the whole chain.
// Queued transactions are not counted.
func (l *Ledger) GetBalanceOfAddress(address string) float64 {
	l.mx.RLock()
	defer l.mx.RUnlock()

	return l.balanceOfAddress(address)
}

func (l *Ledger) balanceOfAddress(address string) float64 {
	balance := 0.0
	for i := range l.chain {
		for _, transaction := range l.chain[i].Transactions {
			if transaction.FromAddress == address {
				balance -= transaction.Amount
			}
			if transaction.ToAddress == address {
				balance += transaction.Amount
			}
		}
	}
	return balance
}

// IsChainValid reports whether every block after genesis has valid transactions,
// an up to date hash and links to the hash of the block before it.
func (l *Ledger) IsChainValid() bool {
	return l.ValidateChain() == nil
}

// ValidateChain returns why the chain is invalid, or nil. The genesis block is not checked.
func (l *Ledger) ValidateChain() error {
	l.mx.RLock()
	defer l.mx.RUnlock()

	for i := 1; i < len(l.chain); i++ {
		currentBlock := &l.chain[i]
		previousBlock := &l.chain[i-1]

		if err := currentBlock.ValidateTransactions(); err != nil {
			return errors.Wrapf(blockchain.ErrInvalidChain, "block %d: %s", i, err)
		}

		hash, err := currentBlock.ComputeHash()
		if err != nil {
			return errors.Wrapf(blockchain.ErrInvalidChain, "block %d: %s", i, err)
		}
		if currentBlock.Hash != hash {
			return errors.Wrapf(blockchain.ErrInvalidChain, "block %d: hash %s does not match its content %s", i, currentBlock.Hash, hash)
		}

		if currentBlock.PreviousHash != previousBlock.Hash {
			return errors.Wrapf(blockchain.ErrInvalidChain, "block %d: previous hash %s does not match block %d hash %s",
				i, currentBlock.PreviousHash, i-1, previousBlock.Hash)
		}
	}
	return nil
}

// AddBlockListener replays the current chain to listener and then tells it about every appended block.
func (l *Ledger) AddBlockListener(listener BlockListener) {
	l.mx.Lock()
	defer l.mx.Unlock()

	for height := range l.chain {
		listener.BlockAppended(height, l.chain[height].Clone())
	}
	l.listeners = append(l.listeners, listener)
}

// Blocks returns a copy of the chain, genesis first.
func (l *Ledger) Blocks() []blockchain.Block {
	l.mx.RLock()
	defer l.mx.RUnlock()

	blocks := make([]blockchain.Block, len(l.chain))
	for i := range l.chain {
		blocks[i] = l.chain[i].Clone()
	}
	return blocks
}

// Block returns a copy of the block at height.
func (l *Ledger) Block(height int) (blockchain.Block, error) {
	l.mx.RLock()
	defer l.mx.RUnlock()

	if height < 0 || height >= len(l.chain) {
		return blockchain.Block{}, errors.Errorf("no block at height %d, chain height is %d", height, len(l.chain)-1)
	}
	return l.chain[height].Clone(), nil
}

// LatestBlock returns a copy of the chain tip.
func (l *Ledger) LatestBlock() blockchain.Block {
	l.mx.RLock()
	defer l.mx.RUnlock()

	return l.chain[len(l.chain)-1].Clone()
}

// Height returns the height of the chain tip, genesis is height 0.
func (l *Ledger) Height() int {
	l.mx.RLock()
	defer l.mx.RUnlock()

	return len(l.chain) - 1
}

// PendingTransactions returns a copy of the queue.
func (l *Ledger) PendingTransactions() []blockchain.Transaction {
	l.mx.RLock()
	defer l.mx.RUnlock()

	pending := make([]blockchain.Transaction, len(l.pending))
	copy(pending, l.pending)
	return pending
}

// PendingCount returns the length of the queue.
func (l *Ledger) PendingCount() int {
	l.mx.RLock()
	defer l.mx.RUnlock()

	return len(l.pending)
}

// Difficulty returns the leading zero count required of mined blocks.
func (l *Ledger) Difficulty() int {
	return l.config.Difficulty
}

// MiningReward returns the amount credited per mined block.
func (l *Ledger) MiningReward() float64 {
	return l.config.MiningReward
}
