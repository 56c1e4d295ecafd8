// Package primes implements Miller-Rabin primality testing, random prime
// search over a closed range, and primitive-root discovery for 64-bit primes.
package primes

import (
	"crypto/rand"
	"fmt"
	"io"
	mrand "math/rand/v2"

	"github.com/smallyu/pubcrypt/internal/crypto/modarith"
	"github.com/smallyu/pubcrypt/internal/crypto/sample"
	"github.com/smallyu/pubcrypt/pkg/pubcrypt"
)

// WitnessCount is the number of random Miller-Rabin rounds used by IsPrime.
// A composite survives all of them with probability at most 4^-25.
const WitnessCount = 25

// deterministicBases make Miller-Rabin exact for every n < 3.3 * 10^24.
var deterministicBases = []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

// IsWitness reports whether val proves the compositeness of n.
// n must be odd and at least 3, and val must not be a multiple of n.
func IsWitness(n, val uint64) (bool, error) {
	if n < 3 || n%2 == 0 {
		return false, fmt.Errorf("primes: n = %d: %w", n, pubcrypt.ErrInvalidWitnessInput)
	}
	if val%n == 0 {
		return false, fmt.Errorf("primes: witness %d is a multiple of %d: %w", val, n, pubcrypt.ErrInvalidWitnessInput)
	}
	return isWitness(n, val), nil
}

func isWitness(n, val uint64) bool {
	// n-1 = 2^k * q with q odd
	q := n - 1
	k := 0
	for q%2 == 0 {
		q >>= 1
		k++
	}

	// Fermat check: val^q == 1 means val is not a witness
	x := modarith.Exp(val, q, n)
	if x == 1 {
		return false
	}

	// val^(2^i * q) for i in [0, k)
	for i := 0; i < k; i++ {
		if x == n-1 {
			return false
		}
		x = modarith.MulMod(x, x, n)
	}
	return true
}

// CheckRandomWitnesses draws witnessCount uniform values in [2, n-2] from rng
// and reports whether any of them is a witness, i.e. whether n is composite.
func CheckRandomWitnesses(rng io.Reader, n uint64, witnessCount int) (bool, error) {
	if n < 3 || n%2 == 0 {
		return false, fmt.Errorf("primes: n = %d: %w", n, pubcrypt.ErrInvalidWitnessInput)
	}
	// [2, n-2] is empty for n = 3, which has no witnesses at all
	if n == 3 {
		return false, nil
	}

	for i := 0; i < witnessCount; i++ {
		val, err := sample.Uint64InRange(rng, 2, n-2)
		if err != nil {
			return false, err
		}
		if isWitness(n, val) {
			return true, nil
		}
	}
	return false, nil
}

// IsPrime reports whether n is prime using WitnessCount random Miller-Rabin
// rounds. A prime is never reported composite.
func IsPrime(n uint64) bool {
	switch {
	case n < 2:
		return false
	case n < 4:
		return true
	case n%2 == 0:
		return false
	}

	composite, err := CheckRandomWitnesses(witnessSource(), n, WitnessCount)
	if err != nil {
		// only reachable if the per-call source could not be seeded
		return IsPrimeDeterministic(n)
	}
	return !composite
}

// witnessSource returns a fresh generator for one primality decision.
func witnessSource() io.Reader {
	var seed [32]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return rand.Reader
	}
	return mrand.NewChaCha8(seed)
}

// IsPrimeDeterministic is an exact primality test for every 64-bit n.
func IsPrimeDeterministic(n uint64) bool {
	if n < 2 {
		return false
	}
	for _, p := range deterministicBases {
		if n%p == 0 {
			return n == p
		}
	}
	for _, a := range deterministicBases {
		if isWitness(n, a) {
			return false
		}
	}
	return true
}
