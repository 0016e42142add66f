package blockchain

import "time"

// genesisTimestamp is 01/11/2020 in unix milliseconds.
var genesisTimestamp = time.Date(2020, time.November, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

// GenesisPreviousHash is the previous hash of the first block.
const GenesisPreviousHash = "0"

// NewGenesisBlock returns the fixed first block. It carries no transactions and is not mined.
func NewGenesisBlock() Block {
	genesis := Block{
		Timestamp:    genesisTimestamp,
		Transactions: []Transaction{},
		PreviousHash: GenesisPreviousHash,
	}

	hash, err := genesis.ComputeHash()
	if err != nil {
		// an empty transaction list always serializes
		panic(err)
	}
	genesis.Hash = hash
	return genesis
}
