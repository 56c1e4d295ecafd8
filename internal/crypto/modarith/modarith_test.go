package modarith

import (
	"math"
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/pubcrypt/pkg/pubcrypt"
)

// safeVals avoids 0 and 1, which hit the shortcut branches.
var safeVals = []uint64{
	2, 3, 4, 8, 9, 10, 50, 99, 100, 127, 128, 129, 256, 512, 999, 1024,
	5008, 7777, 9998, 9999, 10000, 12500, 15000, 20000, 50000, 100000,
	1000000, 10000000, 10000000000, 10000000000000, 10000000000000000,
	10000000000000000000, math.MaxUint64,
}

func TestModExpKnownValues(t *testing.T) {
	tests := []struct {
		name     string
		base     uint64
		exp      uint64
		mod      uint64
		expected uint64
	}{
		{"mod one", 1, 1, 1, 0},
		{"small", 16, 4, 13, 3},
		{"fermat", 23, 20, 29, 24},
		{"composite modulus", 23, 391, 55, 12},
		{"composite modulus 2", 31, 397, 55, 26},
		{"max base squared", math.MaxUint64, 2, 100, 25},
		{"max over u32 max", math.MaxUint64, math.MaxUint64, math.MaxUint32, 0},
		{"max over max", math.MaxUint64, math.MaxUint64, math.MaxUint64, 0},
		{"mod two odd", 7, 1000, 2, 1},
		{"mod two even", 8, 1000, 2, 0},
		{"one base", 1, math.MaxUint64, 97, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ModExp(tt.base, tt.exp, tt.mod)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestModExpIdentities(t *testing.T) {
	for _, m := range safeVals {
		for _, x := range safeVals {
			// x^0 == 1 (mod m)
			assert.Equal(t, uint64(1), Exp(x, 0, m), "%d^0 mod %d", x, m)
			// 0^x == 0 (mod m)
			assert.Equal(t, uint64(0), Exp(0, x, m), "0^%d mod %d", x, m)
			// m^x == 0 (mod m)
			assert.Equal(t, uint64(0), Exp(m, x, m), "%d^%d mod %d", m, x, m)
		}
	}
}

func TestModExpZeroExponentModOne(t *testing.T) {
	got, err := ModExp(5, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got)
}

func TestModExpZeroModulus(t *testing.T) {
	_, err := ModExp(3, 4, 0)
	assert.ErrorIs(t, err, pubcrypt.ErrZeroModulus)
}

func TestModExpMatchesBigInt(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 2000; i++ {
		base, exp, mod := rng.Uint64(), rng.Uint64(), rng.Uint64()|1
		if i%3 == 0 {
			mod = rng.Uint64N(1<<32) + 1
		}

		want := new(big.Int).Exp(
			new(big.Int).SetUint64(base),
			new(big.Int).SetUint64(exp),
			new(big.Int).SetUint64(mod),
		)
		got := Exp(base, exp, mod)
		if want.Uint64() != got {
			t.Fatalf("Exp(%d, %d, %d) = %d, want %s", base, exp, mod, got, want)
		}
	}
}

func TestMulMod(t *testing.T) {
	// (2^64-1)^2 mod (2^64-59)
	m := uint64(math.MaxUint64 - 58)
	want := new(big.Int).Mul(new(big.Int).SetUint64(math.MaxUint64), new(big.Int).SetUint64(math.MaxUint64))
	want.Mod(want, new(big.Int).SetUint64(m))
	assert.Equal(t, want.Uint64(), MulMod(math.MaxUint64, math.MaxUint64, m))
	assert.Equal(t, uint64(0), MulMod(12, 5, 6))
}

func BenchmarkExp(b *testing.B) {
	const p = 0xffffffffffffffc5
	for i := 0; i < b.N; i++ {
		Exp(5, uint64(i)|1<<63, p)
	}
}
