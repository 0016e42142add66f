package resources

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joncherry/signed-ledger/cmd/internal/ledger"
	"github.com/joncherry/signed-ledger/cmd/internal/logger"
	"github.com/joncherry/signed-ledger/cmd/internal/mining"
	"github.com/joncherry/signed-ledger/cmd/internal/searchindexing"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 5 * time.Second

// LedgerConfig reads the ledger rules from the command line flags.
func LedgerConfig(ctx *cli.Context) ledger.Config {
	return ledger.Config{
		Difficulty:            ctx.Int("difficulty"),
		MiningReward:          ctx.Float64("mining-reward"),
		RejectNegativeAmounts: ctx.Bool("reject-negative-amounts"),
		RejectOverdraft:       ctx.Bool("reject-overdraft"),
	}
}

// Serve listens for requests and uses the appropriate handler functions until interrupted
func Serve(ctx *cli.Context) error {
	closeLogs, err := logger.Init(ctx.String("log-file"), ctx.String("log-level"))
	if err != nil {
		return err
	}
	defer closeLogs()

	chain, err := ledger.New(LedgerConfig(ctx))
	if err != nil {
		return errors.Wrap(err, "could not create the ledger")
	}

	searchIndex := searchindexing.NewSearchIndexer()
	chain.AddBlockListener(searchIndex)

	runCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rewardAddress := ctx.String("reward-address")
	if rewardAddress != "" {
		blockBuilder := mining.NewBlockBuilder(
			chain,
			rewardAddress,
			ctx.Int("max-transactions"),
			ctx.Duration("time-limit"),
		)
		go blockBuilder.Run(runCtx)
	} else {
		log.Info("no reward address given, blocks are only mined through /mine")
	}

	server := &http.Server{
		Addr:    ctx.String("host"),
		Handler: NewRouter(chain, searchIndex),
		BaseContext: func(_ net.Listener) context.Context {
			return runCtx
		},
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", server.Addr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return errors.Wrap(err, "server stopped")
	case <-runCtx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "could not shut down the server")
	}

	return nil
}
