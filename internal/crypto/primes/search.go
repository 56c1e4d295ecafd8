package primes

import (
	"fmt"
	"io"
	"math"
	"math/bits"

	"github.com/apex/log"

	"github.com/smallyu/pubcrypt/internal/crypto/sample"
	"github.com/smallyu/pubcrypt/pkg/pubcrypt"
)

// attemptsPerValue caps probabilistic search when no theorem guarantees a
// prime: at most attemptsPerValue * (max - min + 1) candidates are drawn.
const attemptsPerValue = 10

// PickRandomPrime returns a uniformly drawn prime in [min, max] using rng.
//
// It fails with ErrInvalidRange if min > max or max < 3, and with
// ErrPrimeNotFound if the range has no density guarantee and the capped
// number of attempts is exhausted. Both are wrapped in a *pubcrypt.RangeError.
func PickRandomPrime(rng io.Reader, min, max uint64) (uint64, error) {
	if min > max || max < 3 {
		return 0, pubcrypt.NewRangeError(min, max, pubcrypt.ErrInvalidRange)
	}

	lo := min
	if lo < 3 {
		// primes below 3 are never produced
		lo = 3
	}

	if lo == max {
		if IsPrime(lo) {
			return lo, nil
		}
		return 0, pubcrypt.NewRangeError(min, max, pubcrypt.ErrPrimeNotFound)
	}

	guaranteed := RangeContainsKnownPrime(lo, max)
	limit := attemptLimit(lo, max)
	logger := log.WithFields(log.Fields{
		"min":        lo,
		"max":        max,
		"guaranteed": guaranteed,
	})

	for attempts := uint64(1); guaranteed || attempts <= limit; attempts++ {
		candidate, err := sample.Uint64InRange(rng, lo, max)
		if err != nil {
			return 0, fmt.Errorf("primes: draw candidate: %w", err)
		}
		if IsPrime(candidate) {
			logger.WithField("attempts", attempts).Debug("found prime")
			return candidate, nil
		}
	}

	logger.WithField("attempts", limit).Debug("prime search exhausted")
	return 0, pubcrypt.NewRangeError(min, max, pubcrypt.ErrPrimeNotFound)
}

// attemptLimit returns attemptsPerValue * (max - min + 1), saturating.
func attemptLimit(min, max uint64) uint64 {
	width := max - min
	if width == math.MaxUint64 {
		return math.MaxUint64
	}
	hi, lo := bits.Mul64(width+1, attemptsPerValue)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}

// PickRandomWithRoot returns a prime in [min, max] together with the smallest
// primitive root of its multiplicative group.
func PickRandomWithRoot(rng io.Reader, min, max uint64) (prime, root uint64, err error) {
	prime, err = PickRandomPrime(rng, min, max)
	if err != nil {
		return 0, 0, err
	}

	root, err = PrimitiveRoot(prime)
	if err != nil {
		return 0, 0, err
	}
	return prime, root, nil
}
