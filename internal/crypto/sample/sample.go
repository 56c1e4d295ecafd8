// Package sample draws uniform values from an explicit entropy source.
package sample

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Uint64 reads a uniformly distributed 64-bit value from rng.
func Uint64(rng io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		return 0, fmt.Errorf("sample: read entropy: %w", err)
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

// Uint64InRange returns a uniform value in the closed range [min, max].
// min must not exceed max.
func Uint64InRange(rng io.Reader, min, max uint64) (uint64, error) {
	if min > max {
		return 0, fmt.Errorf("sample: empty range [%d, %d]", min, max)
	}

	span := max - min
	if span == math.MaxUint64 {
		return Uint64(rng)
	}

	// Reject draws from the incomplete final bucket so every residue of
	// n = span+1 is equally likely.
	n := span + 1
	limit := math.MaxUint64 - (math.MaxUint64%n+1)%n
	for {
		v, err := Uint64(rng)
		if err != nil {
			return 0, err
		}
		if v <= limit {
			return min + v%n, nil
		}
	}
}

// Fill overwrites buf with random bytes from rng.
func Fill(rng io.Reader, buf []byte) error {
	if _, err := io.ReadFull(rng, buf); err != nil {
		return fmt.Errorf("sample: read entropy: %w", err)
	}
	return nil
}
