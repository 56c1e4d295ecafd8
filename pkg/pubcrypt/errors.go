package pubcrypt

import (
	"errors"
	"fmt"
)

// Common errors returned by the pubcrypt packages
var (
	ErrInvalidRange        = errors.New("invalid prime search range")
	ErrPrimeNotFound       = errors.New("no prime found in range")
	ErrNotPrime            = errors.New("value is not prime")
	ErrZeroModulus         = errors.New("modulus must be positive")
	ErrInvalidWitnessInput = errors.New("witness test requires an odd n >= 3")
	ErrInvalidKey          = errors.New("invalid key")
	ErrInvalidNonce        = errors.New("invalid ephemeral exponent")
	ErrDecode              = errors.New("ciphertext does not decode to a block")
	ErrFormat              = errors.New("malformed data")
)

// RangeError reports a prime search that failed for the range [Min, Max].
type RangeError struct {
	Min uint64
	Max uint64
	Err error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("range [%d, %d]: %v", e.Min, e.Max, e.Err)
}

func (e *RangeError) Unwrap() error {
	return e.Err
}

// NewRangeError creates a new RangeError.
func NewRangeError(min, max uint64, err error) *RangeError {
	return &RangeError{
		Min: min,
		Max: max,
		Err: err,
	}
}

// FormatError is returned when a key file or ciphertext stream cannot be parsed.
// Line is 1-based for text input and 0 when the input is binary.
type FormatError struct {
	Line   int
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	msg := e.Reason
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap lets errors.Is match both ErrFormat and the underlying cause.
func (e *FormatError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrFormat, e.Err}
	}
	return []error{ErrFormat}
}

// NewFormatError creates a new FormatError.
func NewFormatError(line int, reason string, err error) *FormatError {
	return &FormatError{
		Line:   line,
		Reason: reason,
		Err:    err,
	}
}
