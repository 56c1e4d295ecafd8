package e2e

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/smallyu/pubcrypt/internal/ciphertext"
	"github.com/smallyu/pubcrypt/internal/crypto/ecb"
	"github.com/smallyu/pubcrypt/internal/crypto/elgamal"
	"github.com/smallyu/pubcrypt/internal/crypto/modarith"
	"github.com/smallyu/pubcrypt/pkg/pubcrypt"
)

func TestCryptoIntegration(t *testing.T) {
	// Simulate 3 recipients
	nParties := 3
	keys := make([]*elgamal.KeyPair, nParties)

	// 1. Key Generation Phase
	for i := 0; i < nParties; i++ {
		kp, err := elgamal.GenerateKey(rand.Reader)
		if err != nil {
			t.Fatalf("Party %d failed to generate key: %v", i, err)
		}
		keys[i] = kp
	}

	// 2. Communication Phase (Simulated)
	// A sender encrypts the same message to every recipient
	msg := []byte("meet at the usual place")
	for i, kp := range keys {
		for _, f := range []ciphertext.Format{ciphertext.FormatBinary, ciphertext.FormatText} {
			var wire bytes.Buffer
			w, err := ciphertext.NewWriter(&wire, f)
			if err != nil {
				t.Fatal(err)
			}
			if err := ecb.Encrypt(rand.Reader, bytes.NewReader(msg), w, kp.Public); err != nil {
				t.Fatalf("Encryption to party %d failed: %v", i, err)
			}

			r, err := ciphertext.NewReader(bytes.NewReader(wire.Bytes()), f)
			if err != nil {
				t.Fatal(err)
			}
			var got bytes.Buffer
			if err := ecb.Decrypt(r, &got, kp.Private); err != nil {
				t.Fatalf("Party %d failed to decrypt (%s): %v", i, f, err)
			}
			if !bytes.Equal(got.Bytes(), msg) {
				t.Errorf("Party %d got %q, want %q", i, got.Bytes(), msg)
			}

			// Nobody else can read it
			other := keys[(i+1)%nParties]
			r, _ = ciphertext.NewReader(bytes.NewReader(wire.Bytes()), f)
			got.Reset()
			if err := ecb.Decrypt(r, &got, other.Private); err == nil && bytes.Equal(got.Bytes(), msg) {
				t.Errorf("Party %d decrypted a message for party %d", (i+1)%nParties, i)
			}
		}
	}

	// 3. Homomorphic Operation Phase
	// Enc(a) * Enc(b) = Enc(a*b) while a*b stays below the prime
	pub, priv := keys[1].Public, keys[1].Private
	a, b := pubcrypt.Block(1234), pubcrypt.Block(5678)

	ca, err := pub.Encrypt(rand.Reader, a)
	if err != nil {
		t.Fatalf("Encryption failed: %v", err)
	}
	cb, err := pub.Encrypt(rand.Reader, b)
	if err != nil {
		t.Fatalf("Encryption failed: %v", err)
	}

	cProd := pubcrypt.Pair{
		C1: modarith.MulMod(ca.C1, cb.C1, pub.Prime),
		C2: modarith.MulMod(ca.C2, cb.C2, pub.Prime),
	}

	decryptedProd, err := priv.Decrypt(cProd)
	if err != nil {
		t.Fatalf("Decryption of product failed: %v", err)
	}

	if expected := a * b; decryptedProd != expected {
		t.Errorf("Homomorphic multiplication failed. Got %d, want %d", decryptedProd, expected)
	}
}
