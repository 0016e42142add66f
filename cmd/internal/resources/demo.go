package resources

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joncherry/signed-ledger/cmd/internal/autograph"
	"github.com/joncherry/signed-ledger/cmd/internal/blockchain"
	"github.com/joncherry/signed-ledger/cmd/internal/ledger"
	"github.com/joncherry/signed-ledger/cmd/internal/logger"
	"github.com/joncherry/signed-ledger/cmd/internal/report"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

// Demo signs a transfer from a wallet, mines it rewarding the same wallet and prints the resulting chain.
func Demo(ctx *cli.Context) error {
	closeLogs, err := logger.Init(ctx.String("log-file"), ctx.String("log-level"))
	if err != nil {
		return err
	}
	defer closeLogs()

	var keyPair *autograph.KeyPair
	privateKeyHex := ctx.String("private-key")
	if privateKeyHex == "" {
		keyPair, err = autograph.NewKeyPair()
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, report.KeyPairBox(keyPair.PublicKeyHex(), keyPair.PrivateKeyHex()))
	} else {
		keyPair, err = autograph.KeyPairFromPrivateKeyHex(privateKeyHex)
		if err != nil {
			return err
		}
	}

	return runDemo(ctx.Context, os.Stdout, LedgerConfig(ctx), keyPair, ctx.String("to-address"), ctx.Float64("amount"))
}

func runDemo(ctx context.Context, out io.Writer, config ledger.Config, keyPair *autograph.KeyPair, toAddress string, amount float64) error {
	chain, err := ledger.New(config)
	if err != nil {
		return errors.Wrap(err, "could not create the ledger")
	}

	walletAddress := keyPair.PublicKeyHex()
	transaction := blockchain.Transaction{
		FromAddress: walletAddress,
		ToAddress:   toAddress,
		Amount:      amount,
	}
	if err := transaction.Sign(keyPair); err != nil {
		return err
	}
	if err := chain.AddTransaction(transaction); err != nil {
		return err
	}

	fmt.Fprintln(out, pterm.Info.Sprint("Starting the miner..."))
	if _, err := chain.MinePendingTransactions(ctx, walletAddress); err != nil {
		return err
	}

	chainTable, err := report.ChainTable(chain.Blocks())
	if err != nil {
		return err
	}
	fmt.Fprintln(out, chainTable)

	balanceTable, err := report.BalanceTable([]report.AddressBalance{
		{Name: "wallet", Address: walletAddress, Balance: chain.GetBalanceOfAddress(walletAddress)},
		{Name: "recipient", Address: toAddress, Balance: chain.GetBalanceOfAddress(toAddress)},
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, balanceTable)

	if err := chain.ValidateChain(); err != nil {
		fmt.Fprintln(out, pterm.Error.Sprint("Chain is invalid: ", err))
		return err
	}
	fmt.Fprintln(out, pterm.Success.Sprint("Chain is valid"))

	return nil
}
