package primes

import (
	"fmt"
	"slices"

	"github.com/smallyu/pubcrypt/internal/crypto/modarith"
	"github.com/smallyu/pubcrypt/pkg/pubcrypt"
)

// trialDivisionLimit bounds the small factors removed before Pollard's rho.
const trialDivisionLimit = 1 << 10

// PrimitiveRoot returns the smallest generator of the multiplicative group
// modulo the prime p.
//
// g generates Z_p* iff g^((p-1)/q) != 1 (mod p) for every prime q dividing
// p-1, so the order of g is exactly p-1.
func PrimitiveRoot(p uint64) (uint64, error) {
	if !IsPrimeDeterministic(p) {
		return 0, fmt.Errorf("primes: %d: %w", p, pubcrypt.ErrNotPrime)
	}
	if p == 2 {
		return 1, nil
	}

	order := p - 1
	factors := slices.Compact(Factorize(order))

	for g := uint64(2); g < p; g++ {
		if isGenerator(g, p, order, factors) {
			return g, nil
		}
	}
	// every prime has a primitive root
	return 0, fmt.Errorf("primes: no primitive root for %d", p)
}

func isGenerator(g, p, order uint64, factors []uint64) bool {
	for _, q := range factors {
		if modarith.Exp(g, order/q, p) == 1 {
			return false
		}
	}
	return true
}

// Factorize returns the prime factors of n in ascending order, repeated
// according to multiplicity. It returns nil for n < 2.
func Factorize(n uint64) []uint64 {
	if n < 2 {
		return nil
	}

	var factors []uint64
	for d := uint64(2); d < trialDivisionLimit && d*d <= n; d++ {
		for n%d == 0 {
			factors = append(factors, d)
			n /= d
		}
	}
	if n > 1 {
		factors = splitLarge(n, factors)
	}

	slices.Sort(factors)
	return factors
}

// splitLarge appends the prime factors of n, which has no factor below
// trialDivisionLimit.
func splitLarge(n uint64, factors []uint64) []uint64 {
	if n == 1 {
		return factors
	}
	if IsPrimeDeterministic(n) {
		return append(factors, n)
	}

	for c := uint64(1); ; c++ {
		d := pollardBrent(n, c)
		if d != n {
			factors = splitLarge(d, factors)
			return splitLarge(n/d, factors)
		}
	}
}

// pollardBrent looks for a non-trivial factor of the odd composite n using
// Brent's cycle detection on x -> x^2 + c (mod n). It returns n on failure,
// in which case the caller retries with another c.
func pollardBrent(n, c uint64) uint64 {
	const batch = 128

	f := func(x uint64) uint64 {
		return addMod(modarith.MulMod(x, x, n), c%n, n)
	}

	y, r, q, g := uint64(2), uint64(1), uint64(1), uint64(1)
	var x, ys uint64

	for g == 1 {
		x = y
		for i := uint64(0); i < r; i++ {
			y = f(y)
		}
		for k := uint64(0); k < r && g == 1; k += batch {
			ys = y
			for i := uint64(0); i < batch && i < r-k; i++ {
				y = f(y)
				q = modarith.MulMod(q, absDiff(x, y), n)
			}
			g = gcd(q, n)
		}
		r <<= 1
	}

	if g == n {
		// the batched product hit zero; replay one step at a time
		for {
			ys = f(ys)
			g = gcd(absDiff(x, ys), n)
			if g > 1 {
				break
			}
		}
	}
	return g
}

func addMod(a, b, m uint64) uint64 {
	if a >= m-b {
		return a - (m - b)
	}
	return a + b
}

func absDiff(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
