package elgamal

import (
	"fmt"
	"io"
	"math"

	"github.com/apex/log"

	"github.com/smallyu/pubcrypt/internal/crypto/modarith"
	"github.com/smallyu/pubcrypt/internal/crypto/primes"
	"github.com/smallyu/pubcrypt/internal/crypto/sample"
	"github.com/smallyu/pubcrypt/pkg/pubcrypt"
)

const (
	// PrimeMin is the smallest modulus able to represent every Block.
	PrimeMin = uint64(math.MaxUint32) + 1
	// PrimeMax is the largest modulus representable as a Num.
	PrimeMax = uint64(math.MaxUint64)
)

// Key is the scalar triple shared by public and private keys.
type Key struct {
	Prime uint64 // Modulus p
	Root  uint64 // Primitive root g of Z_p*
	Value uint64 // Private exponent x, or public value g^x mod p
}

// PublicKey holds y = g^x mod p.
type PublicKey struct {
	Key
}

// PrivateKey holds the exponent x.
type PrivateKey struct {
	Key
}

// KeyPair is a public and private key sharing the same prime and root.
type KeyPair struct {
	Public  *PublicKey
	Private *PrivateKey
}

// GenerateKey generates a key pair whose prime lies in [PrimeMin, PrimeMax].
func GenerateKey(random io.Reader) (*KeyPair, error) {
	return GenerateKeyInRange(random, PrimeMin, PrimeMax)
}

// GenerateKeyInRange generates a key pair whose prime lies in [min, max].
// min is raised to PrimeMin so every block value is a residue of the prime.
func GenerateKeyInRange(random io.Reader, min, max uint64) (*KeyPair, error) {
	if min < PrimeMin {
		min = PrimeMin
	}
	if min > max {
		return nil, pubcrypt.NewRangeError(min, max, pubcrypt.ErrInvalidRange)
	}

	// 1. Choose a prime p and a generator g of Z_p*
	p, g, err := primes.PickRandomWithRoot(random, min, max)
	if err != nil {
		return nil, err
	}

	// 2. Choose the private exponent x in [1, p-2]
	x, err := sample.Uint64InRange(random, 1, p-2)
	if err != nil {
		return nil, err
	}

	// 3. y = g^x mod p
	y := modarith.Exp(g, x, p)

	log.WithFields(log.Fields{
		"prime": p,
		"root":  g,
	}).Debug("generated key pair")

	return &KeyPair{
		Public: &PublicKey{
			Key: Key{Prime: p, Root: g, Value: y},
		},
		Private: &PrivateKey{
			Key: Key{Prime: p, Root: g, Value: x},
		},
	}, nil
}

// validate checks the parts of a key shared by both halves. Primality of
// the modulus is not re-checked; keys are trusted once loaded.
func (k *Key) validate() error {
	if k.Prime < PrimeMin {
		return fmt.Errorf("elgamal: prime %d does not exceed the block range: %w", k.Prime, pubcrypt.ErrInvalidKey)
	}
	if k.Root < 2 || k.Root >= k.Prime {
		return fmt.Errorf("elgamal: root %d out of range: %w", k.Root, pubcrypt.ErrInvalidKey)
	}
	return nil
}

// Validate checks that the public value lies in [1, p-1].
func (pk *PublicKey) Validate() error {
	if err := pk.validate(); err != nil {
		return err
	}
	if pk.Value == 0 || pk.Value >= pk.Prime {
		return fmt.Errorf("elgamal: public value out of range: %w", pubcrypt.ErrInvalidKey)
	}
	return nil
}

// Validate checks that the private exponent lies in [1, p-2].
func (priv *PrivateKey) Validate() error {
	if err := priv.validate(); err != nil {
		return err
	}
	if priv.Value == 0 || priv.Value > priv.Prime-2 {
		return fmt.Errorf("elgamal: private exponent out of range: %w", pubcrypt.ErrInvalidKey)
	}
	return nil
}

// Encrypt encrypts block with an ephemeral exponent drawn from random.
func (pk *PublicKey) Encrypt(random io.Reader, block pubcrypt.Block) (pubcrypt.Pair, error) {
	if err := pk.Validate(); err != nil {
		return pubcrypt.Pair{}, err
	}

	// r in [1, p-1)
	r, err := sample.Uint64InRange(random, 1, pk.Prime-2)
	if err != nil {
		return pubcrypt.Pair{}, err
	}
	return pk.encrypt(block, r), nil
}

// EncryptWithNonce encrypts block using the ephemeral exponent r.
// r must lie in [1, p-1). Reusing r across blocks reveals plaintext ratios.
func (pk *PublicKey) EncryptWithNonce(block pubcrypt.Block, r uint64) (pubcrypt.Pair, error) {
	if err := pk.Validate(); err != nil {
		return pubcrypt.Pair{}, err
	}
	if r == 0 || r >= pk.Prime-1 {
		return pubcrypt.Pair{}, fmt.Errorf("elgamal: r = %d: %w", r, pubcrypt.ErrInvalidNonce)
	}
	return pk.encrypt(block, r), nil
}

func (pk *PublicKey) encrypt(block pubcrypt.Block, r uint64) pubcrypt.Pair {
	// c1 = g^r mod p
	c1 := modarith.Exp(pk.Root, r, pk.Prime)

	// c2 = m * y^r mod p
	yr := modarith.Exp(pk.Value, r, pk.Prime)
	c2 := modarith.MulMod(uint64(block), yr, pk.Prime)

	return pubcrypt.Pair{C1: c1, C2: c2}
}

// Decrypt recovers the block encrypted as ct.
//
// The shared secret c1^x is inverted with Fermat's little theorem:
// c1^-x == c1^(p-1-x) (mod p). A result that does not fit in a Block means
// the ciphertext is malformed or was made for another key.
func (priv *PrivateKey) Decrypt(ct pubcrypt.Pair) (pubcrypt.Block, error) {
	if err := priv.Validate(); err != nil {
		return 0, err
	}

	// s^-1 = c1^(p-1-x) mod p
	sInv := modarith.Exp(ct.C1, priv.Prime-priv.Value-1, priv.Prime)

	// m = c2 * s^-1 mod p
	m := modarith.MulMod(ct.C2%priv.Prime, sInv, priv.Prime)
	if m > math.MaxUint32 {
		return 0, fmt.Errorf("elgamal: decrypted value %d: %w", m, pubcrypt.ErrDecode)
	}
	return pubcrypt.Block(m), nil
}

// Public returns the public half matching priv.
func (priv *PrivateKey) Public() *PublicKey {
	return &PublicKey{
		Key: Key{
			Prime: priv.Prime,
			Root:  priv.Root,
			Value: modarith.Exp(priv.Root, priv.Value, priv.Prime),
		},
	}
}
