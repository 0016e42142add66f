package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joncherry/signed-ledger/cmd/internal/autograph"
	"github.com/joncherry/signed-ledger/cmd/internal/blockchain"
	"github.com/joncherry/signed-ledger/cmd/internal/dto"
	"github.com/joncherry/signed-ledger/cmd/internal/report"
	json "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// transfer is the part of a transaction the sender chooses. The sender is the signing key.
type transfer struct {
	ToAddress string  `json:"toAddress"`
	Amount    float64 `json:"amount"`
}

func main() {
	app := &cli.App{
		Name:  "testsignature",
		Usage: "Sign a transfer with a secp256k1 key and print the body for POST /transaction",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "body",
				Usage:    `The transfer to sign, for example {"toAddress":"04c3d4...","amount":50}`,
				Required: true,
			},
			&cli.StringFlag{
				Name:    "private-key",
				Usage:   "The hex private key to sign with. A new key pair is generated when empty",
				EnvVars: []string{"PRIVATE_KEY"},
			},
		},
		Action: run,
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func run(ctx *cli.Context) error {
	keyPair, err := loadOrGenerateKeyPair(ctx.String("private-key"))
	if err != nil {
		return err
	}

	submission, err := signBody(ctx.String("body"), keyPair)
	if err != nil {
		return err
	}

	submissionBytes, err := json.MarshalIndent(submission, "", "  ")
	if err != nil {
		return errors.Wrap(err, "error json marshalling the signed transaction")
	}

	fmt.Println("verified with public key")
	fmt.Println(string(submissionBytes))
	return nil
}

func loadOrGenerateKeyPair(privateKeyHex string) (*autograph.KeyPair, error) {
	if privateKeyHex != "" {
		return autograph.KeyPairFromPrivateKeyHex(privateKeyHex)
	}

	keyPair, err := autograph.NewKeyPair()
	if err != nil {
		return nil, err
	}
	fmt.Println("generating new keys")
	fmt.Println(report.KeyPairBox(keyPair.PublicKeyHex(), keyPair.PrivateKeyHex()))
	return keyPair, nil
}

// signBody signs the transfer in body from the public key of keyPair and checks the signature verifies.
func signBody(body string, keyPair *autograph.KeyPair) (*dto.TransactionSubmission, error) {
	unmarshalBody := &transfer{}
	err := json.Unmarshal([]byte(body), unmarshalBody)
	if err != nil {
		return nil, errors.Wrap(err, "error json unmarshalling the body")
	}
	if unmarshalBody.ToAddress == "" {
		return nil, errors.Wrap(blockchain.ErrMalformedTransaction, "toAddress is empty")
	}

	transaction := blockchain.Transaction{
		FromAddress: keyPair.PublicKeyHex(),
		ToAddress:   unmarshalBody.ToAddress,
		Amount:      unmarshalBody.Amount,
	}
	if err := transaction.Sign(keyPair); err != nil {
		return nil, err
	}

	valid, err := transaction.IsValid()
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, errors.Wrap(blockchain.ErrInvalidSignature, "signature does not verify with the public key")
	}

	return &dto.TransactionSubmission{
		FromAddress: transaction.FromAddress,
		ToAddress:   transaction.ToAddress,
		Amount:      transaction.Amount,
		Signature:   transaction.Signature,
	}, nil
}
