package main

import (
	"testing"

	"github.com/joncherry/signed-ledger/cmd/internal/autograph"
	"github.com/joncherry/signed-ledger/cmd/internal/blockchain"
	"github.com/pkg/errors"
)

func TestSignBody(t *testing.T) {
	keyPair, err := autograph.NewKeyPair()
	if err != nil {
		t.Fatalf("NewKeyPair: %s", err)
	}

	submission, err := signBody(`{"toAddress":"recipient","amount":12.5}`, keyPair)
	if err != nil {
		t.Fatalf("signBody: %s", err)
	}
	if submission.FromAddress != keyPair.PublicKeyHex() || submission.ToAddress != "recipient" || submission.Amount != 12.5 {
		t.Fatalf("unexpected submission %+v", submission)
	}

	transaction := submission.ToTransaction()
	valid, err := transaction.IsValid()
	if err != nil || !valid {
		t.Errorf("expected a valid signature, got %v, %v", valid, err)
	}
}

func TestSignBodyErrors(t *testing.T) {
	keyPair, err := autograph.NewKeyPair()
	if err != nil {
		t.Fatalf("NewKeyPair: %s", err)
	}

	if _, err := signBody(`{"toAddress":`, keyPair); err == nil {
		t.Error("expected an error for a truncated body")
	}
	if _, err := signBody(`{"amount":1}`, keyPair); !errors.Is(err, blockchain.ErrMalformedTransaction) {
		t.Errorf("expected ErrMalformedTransaction, got %v", err)
	}
}

func TestLoadKeyPair(t *testing.T) {
	keyPair, err := autograph.NewKeyPair()
	if err != nil {
		t.Fatalf("NewKeyPair: %s", err)
	}

	loaded, err := loadOrGenerateKeyPair(keyPair.PrivateKeyHex())
	if err != nil {
		t.Fatalf("loadOrGenerateKeyPair: %s", err)
	}
	if loaded.PublicKeyHex() != keyPair.PublicKeyHex() {
		t.Errorf("expected public key %s, got %s", keyPair.PublicKeyHex(), loaded.PublicKeyHex())
	}
}
