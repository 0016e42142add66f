package autograph

import (
	"crypto/sha256"
	"strings"
	"testing"
)

func TestSignAndVerify(t *testing.T) {
	keyPair, err := NewKeyPair()
	if err != nil {
		t.Fatalf("NewKeyPair: %s", err)
	}
	otherKeyPair, err := NewKeyPair()
	if err != nil {
		t.Fatalf("NewKeyPair: %s", err)
	}

	digest := sha256.Sum256([]byte("alice pays bob"))
	signature, err := keyPair.Sign(digest[:])
	if err != nil {
		t.Fatalf("Sign: %s", err)
	}

	tests := []struct {
		name         string
		publicKeyHex string
		digest       []byte
		want         bool
	}{
		{
			name:         "matching key",
			publicKeyHex: keyPair.PublicKeyHex(),
			digest:       digest[:],
			want:         true,
		},
		{
			name:         "other key",
			publicKeyHex: otherKeyPair.PublicKeyHex(),
			digest:       digest[:],
			want:         false,
		},
		{
			name:         "other digest",
			publicKeyHex: keyPair.PublicKeyHex(),
			digest:       make([]byte, sha256.Size),
			want:         false,
		},
	}

	for _, test := range tests {
		got, err := Verify(test.publicKeyHex, test.digest, signature)
		if err != nil {
			t.Fatalf("%s: Verify: %s", test.name, err)
		}
		if got != test.want {
			t.Errorf("%s: expected %t, got %t", test.name, test.want, got)
		}
	}
}

func TestSignIsDeterministic(t *testing.T) {
	keyPair, err := NewKeyPair()
	if err != nil {
		t.Fatalf("NewKeyPair: %s", err)
	}
	digest := sha256.Sum256([]byte("same body"))

	first, err := keyPair.Sign(digest[:])
	if err != nil {
		t.Fatalf("Sign: %s", err)
	}
	second, err := keyPair.Sign(digest[:])
	if err != nil {
		t.Fatalf("Sign: %s", err)
	}
	if string(first) != string(second) {
		t.Errorf("expected deterministic signatures, got %x and %x", first, second)
	}
}

func TestKeyPairFromPrivateKeyHex(t *testing.T) {
	keyPair, err := NewKeyPair()
	if err != nil {
		t.Fatalf("NewKeyPair: %s", err)
	}

	restored, err := KeyPairFromPrivateKeyHex(keyPair.PrivateKeyHex())
	if err != nil {
		t.Fatalf("KeyPairFromPrivateKeyHex: %s", err)
	}
	if restored.PublicKeyHex() != keyPair.PublicKeyHex() {
		t.Errorf("restored public key %s differs from %s", restored.PublicKeyHex(), keyPair.PublicKeyHex())
	}

	// uncompressed SEC1 encoding: 0x04 || X || Y
	if len(keyPair.PublicKeyHex()) != 130 || !strings.HasPrefix(keyPair.PublicKeyHex(), "04") {
		t.Errorf("unexpected public key encoding %s", keyPair.PublicKeyHex())
	}

	for _, bad := range []string{"", "zz", "abcd"} {
		if _, err := KeyPairFromPrivateKeyHex(bad); err == nil {
			t.Errorf("expected an error for private key %q", bad)
		}
	}
}

func TestVerifyMalformedInput(t *testing.T) {
	keyPair, err := NewKeyPair()
	if err != nil {
		t.Fatalf("NewKeyPair: %s", err)
	}
	digest := sha256.Sum256([]byte("body"))
	signature, err := keyPair.Sign(digest[:])
	if err != nil {
		t.Fatalf("Sign: %s", err)
	}

	if _, err := Verify("not hex", digest[:], signature); err == nil {
		t.Errorf("expected an error for a non hex public key")
	}
	if _, err := Verify("0400", digest[:], signature); err == nil {
		t.Errorf("expected an error for a truncated public key")
	}
	if _, err := Verify(keyPair.PublicKeyHex(), digest[:], []byte{0x30, 0x01}); err == nil {
		t.Errorf("expected an error for a malformed signature")
	}
}
