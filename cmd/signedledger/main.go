package main

import (
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/joncherry/signed-ledger/cmd/internal/resources"
)

func main() {
	app := &cli.App{
		Name:  "signed ledger",
		Usage: "Accept signed transactions and mine them into a proof of work chain",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "host",
				Usage:   "The host endpoint of the node (please include the port)",
				Value:   ":8080",
				EnvVars: []string{"HOST"},
			},
			&cli.IntFlag{
				Name:    "difficulty",
				Usage:   "The number of leading zeros a block hash needs, from 0 to 64",
				Value:   4,
				EnvVars: []string{"DIFFICULTY"},
			},
			&cli.Float64Flag{
				Name:    "mining-reward",
				Usage:   "The amount credited to the miner of each block",
				Value:   100,
				EnvVars: []string{"MINING_REWARD"},
			},
			&cli.StringFlag{
				Name:    "reward-address",
				Usage:   "The address rewarded for blocks mined on a schedule. Scheduled mining is off when empty",
				EnvVars: []string{"REWARD_ADDRESS"},
			},
			&cli.IntFlag{
				Name:    "max-transactions",
				Usage:   "The number of queued transactions that triggers scheduled mining",
				Value:   500,
				EnvVars: []string{"MAX_TRANSACTIONS"},
			},
			&cli.DurationFlag{
				Name:    "time-limit",
				Usage:   "The time limit for adding transactions to each scheduled block",
				Value:   10 * time.Minute,
				EnvVars: []string{"TIME_LIMIT"},
			},
			&cli.BoolFlag{
				Name:    "reject-overdraft",
				Usage:   "Refuse transactions spending more than the sender's balance, and identical transfers already queued or mined",
				EnvVars: []string{"REJECT_OVERDRAFT"},
			},
			&cli.BoolFlag{
				Name:    "reject-negative-amounts",
				Usage:   "Refuse transactions with a negative amount",
				EnvVars: []string{"REJECT_NEGATIVE_AMOUNTS"},
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "The file logs are also written to, rotated at 100 MB",
				EnvVars: []string{"LOG_FILE"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "One of CRITICAL, ERROR, WARNING, NOTICE, INFO, DEBUG",
				Value:   "INFO",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Action: resources.Serve,
		Commands: []*cli.Command{
			{
				Name:  "demo",
				Usage: "Sign a transfer, mine it and print the chain without starting the server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "private-key",
						Usage: "The hex private key of the sending wallet. A new key is generated when empty",
					},
					&cli.StringFlag{
						Name:  "to-address",
						Usage: "The recipient of the transfer",
						Value: "0x23496y4643",
					},
					&cli.Float64Flag{
						Name:  "amount",
						Usage: "The amount transferred",
						Value: 100,
					},
				},
				Action: resources.Demo,
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
