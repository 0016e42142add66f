package report

import (
	"strconv"
	"time"

	"github.com/joncherry/signed-ledger/cmd/internal/blockchain"
	"github.com/pterm/pterm"
)

// AddressBalance is one row of a balance table.
type AddressBalance struct {
	Name    string
	Address string
	Balance float64
}

// ChainTable renders one row per block, genesis first.
func ChainTable(blocks []blockchain.Block) (string, error) {
	data := pterm.TableData{
		{"Height", "Time", "Transactions", "Nonce", "Hash", "Previous Hash"},
	}
	for height, block := range blocks {
		data = append(data, []string{
			strconv.Itoa(height),
			time.UnixMilli(block.Timestamp).UTC().Format(time.RFC3339),
			strconv.Itoa(len(block.Transactions)),
			strconv.FormatUint(block.Nonce, 10),
			block.Hash,
			blockchain.ShortAddress(block.PreviousHash),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// BalanceTable renders the balance of every address.
func BalanceTable(balances []AddressBalance) (string, error) {
	data := pterm.TableData{
		{"Wallet", "Address", "Balance"},
	}
	for _, balance := range balances {
		data = append(data, []string{
			balance.Name,
			blockchain.ShortAddress(balance.Address),
			strconv.FormatFloat(balance.Balance, 'f', -1, 64),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// KeyPairBox renders a freshly generated key pair. The private key is printed as is, keep the output safe.
func KeyPairBox(publicKeyHex, privateKeyHex string) string {
	return pterm.DefaultBox.WithTitle(pterm.LightYellow("|KEY PAIR|")).WithTitleTopCenter().Sprintf(
		"public key (address):\n%s\n\nprivate key:\n%s", publicKeyHex, privateKeyHex)
}
