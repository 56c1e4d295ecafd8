// Package modarith implements fixed-width modular arithmetic on 64-bit
// unsigned integers. Products are formed in 128 bits before reduction, so no
// intermediate value ever overflows.
package modarith

import (
	"math/bits"

	"github.com/smallyu/pubcrypt/pkg/pubcrypt"
)

const numBits = 64

// MulMod returns a*b mod m using a 128-bit intermediate product.
// m must be non-zero.
func MulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, m)
}

// ModExp computes base^exponent mod modulus.
// It returns ErrZeroModulus if modulus is 0; base and exponent may be any value.
func ModExp(base, exponent, modulus uint64) (uint64, error) {
	if modulus == 0 {
		return 0, pubcrypt.ErrZeroModulus
	}
	return Exp(base, exponent, modulus), nil
}

// Exp is ModExp for callers that already hold a non-zero modulus
// (a key prime, a candidate under test).
func Exp(base, exponent, modulus uint64) uint64 {
	base %= modulus

	if val, ok := shortcut(base, exponent, modulus); ok {
		return val
	}

	// Square-and-multiply over every bit of the exponent, most significant
	// first. The iteration count does not depend on the exponent.
	result := uint64(1)
	mask := uint64(1) << (numBits - 1)
	for i := 0; i < numBits; i++ {
		result = MulMod(result, result, modulus)
		if exponent&mask != 0 {
			result = MulMod(result, base, modulus)
		}
		mask >>= 1
	}

	return result
}

// shortcut answers degenerate inputs without running the main loop.
// base has already been reduced mod modulus.
func shortcut(base, exponent, modulus uint64) (uint64, bool) {
	switch {
	case exponent == 0:
		// x^0 == 1
		return 1 % modulus, true
	case base == 0 || base == modulus || modulus == 1:
		// 0^x == n^x == 0 (mod n), and everything is 0 mod 1
		return 0, true
	case base == 1 || modulus == 2:
		// 1^x == 1. Mod 2 a value keeps its parity under repeated
		// multiplication by itself, so x^e == x (mod 2).
		return base % modulus, true
	}
	return 0, false
}
