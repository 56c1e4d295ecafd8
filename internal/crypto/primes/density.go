package primes

import (
	"math"
	"math/big"
)

// Thresholds at which a tighter prime-gap theorem takes over.
const (
	naguraMin     = 25    // Nagura (1952): a prime in [n, 1.2n] for n >= 25
	dusart1998Min = 3275  // Dusart (1998): a prime in [n, n(1 + 1/(2 ln^2 n))]
	dusart2016Min = 89693 // Dusart (2016): a prime in [n, n(1 + 1/ln^3 n)]
)

// RangeContainsKnownPrime reports whether a theorem guarantees a prime in
// [min, max]. It never returns true for a range without a prime; it may
// return false for ranges that do contain one.
func RangeContainsKnownPrime(min, max uint64) bool {
	if min > max || max < 2 {
		return false
	}
	if min <= 2 {
		return true
	}

	bound, ok := densityBound(min)
	return ok && max >= bound
}

// densityBound returns the smallest b such that [min, b] provably contains a
// prime. ok is false if b does not fit in 64 bits. min must be at least 3.
func densityBound(min uint64) (bound uint64, ok bool) {
	switch {
	case min < naguraMin:
		// Bertrand's postulate: a prime p with n < p < 2n for n >= 2
		return 2 * min, true
	case min < dusart1998Min:
		// ceil(6n/5), exact in integers
		return (6*min + 4) / 5, true
	case min < dusart2016Min:
		ln := lnLower(min)
		return widen(min, 2*ln*ln)
	default:
		ln := lnLower(min)
		return widen(min, ln*ln*ln)
	}
}

// lnLower returns a value no larger than ln(n).
func lnLower(n uint64) float64 {
	f := float64(n)
	if f > float64(uint64(1)<<63) || uint64(f) > n {
		// conversion rounded up
		f = math.Nextafter(f, 0)
	}
	ln := math.Log(f)
	// math.Log is accurate to within one ulp
	return math.Nextafter(math.Nextafter(ln, 0), 0)
}

// widen returns ceil(n * (1 + 1/denom)), rounding every step away from n so
// floating-point error can only enlarge the bound.
func widen(n uint64, denom float64) (uint64, bool) {
	// the products forming denom may have rounded up
	denom = math.Nextafter(math.Nextafter(denom, 0), 0)
	eps := math.Nextafter(math.Nextafter(1/denom, math.Inf(1)), math.Inf(1))

	// n*(1+eps) = n + n*eps, and ceil(n + x) = n + ceil(x) for integral n
	extra := new(big.Float).SetPrec(128).SetMode(big.ToPositiveInf)
	extra.Mul(new(big.Float).SetUint64(n), big.NewFloat(eps))

	ceil, acc := extra.Int(nil)
	if acc == big.Below {
		ceil.Add(ceil, big.NewInt(1))
	}
	if !ceil.IsUint64() {
		return 0, false
	}

	step := ceil.Uint64()
	if step > math.MaxUint64-n {
		return 0, false
	}
	return n + step, true
}
