package ciphertext

import (
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/pubcrypt/pkg/pubcrypt"
)

var samplePairs = []pubcrypt.Pair{
	{C1: 0, C2: 0},
	{C1: 1, C2: math.MaxUint64},
	{C1: 4294967311, C2: 123456789},
}

func TestRoundTrip(t *testing.T) {
	for _, f := range []Format{FormatBinary, FormatText} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(&buf, f)
			require.NoError(t, err)
			for _, p := range samplePairs {
				require.NoError(t, w.WritePair(p))
			}
			require.NoError(t, w.Flush())

			r, err := NewReader(&buf, f)
			require.NoError(t, err)
			for _, want := range samplePairs {
				got, err := r.ReadPair()
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}
			_, err = r.ReadPair()
			assert.Equal(t, io.EOF, err)
		})
	}
}

func TestBinaryLayout(t *testing.T) {
	var buf bytes.Buffer
	w, _ := NewWriter(&buf, FormatBinary)
	require.NoError(t, w.WritePair(pubcrypt.Pair{C1: 1, C2: 0x0a0b}))
	require.NoError(t, w.Flush())

	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0x0a, 0x0b}, buf.Bytes())
}

func TestTextLayout(t *testing.T) {
	var buf bytes.Buffer
	w, _ := NewWriter(&buf, FormatText)
	require.NoError(t, w.WritePair(pubcrypt.Pair{C1: 12, C2: 34}))
	require.NoError(t, w.WritePair(pubcrypt.Pair{C1: 5, C2: 6}))
	require.NoError(t, w.Flush())

	assert.Equal(t, "12 34\n5 6\n", buf.String())
}

func TestBinaryTruncated(t *testing.T) {
	r, _ := NewReader(bytes.NewReader(make([]byte, PairBytes+3)), FormatBinary)
	_, err := r.ReadPair()
	require.NoError(t, err)
	_, err = r.ReadPair()
	assert.ErrorIs(t, err, pubcrypt.ErrFormat)
}

func TestTextMalformed(t *testing.T) {
	tests := []struct {
		input string
		line  int
	}{
		{"1 2\n3\n", 2},
		{"1 2 3\n", 1},
		{"a b\n", 1},
		{"\n", 1},
		{"1 -2\n", 1},
		{"1 2\n3 4\n5 x", 3},
		{"18446744073709551616 1", 1},
	}

	for _, tt := range tests {
		r, _ := NewReader(strings.NewReader(tt.input), FormatText)
		var err error
		for err == nil {
			_, err = r.ReadPair()
		}
		require.ErrorIs(t, err, pubcrypt.ErrFormat, "input %q", tt.input)

		var formatErr *pubcrypt.FormatError
		require.ErrorAs(t, err, &formatErr)
		assert.Equal(t, tt.line, formatErr.Line, "input %q", tt.input)
	}
}

func TestParseWords(t *testing.T) {
	vals, err := ParseWords([]byte("  7\t 8  "), 2)
	require.NoError(t, err)
	assert.Equal(t, []uint64{7, 8}, vals)

	_, err = ParseWords([]byte("7"), 2)
	assert.ErrorContains(t, err, "not enough values")

	_, err = ParseWords([]byte("7 8 9"), 2)
	assert.ErrorContains(t, err, "too many values")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("text")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	_, err = ParseFormat("hex")
	assert.Error(t, err)
}

func FuzzTextReader(f *testing.F) {
	f.Add([]byte("1 2\n3 4\n"))
	f.Add([]byte("18446744073709551615 0"))
	f.Add([]byte("\n\n"))
	f.Add([]byte("1 2 3"))

	f.Fuzz(func(t *testing.T, data []byte) {
		r, _ := NewReader(bytes.NewReader(data), FormatText)
		for i := 0; i < 1<<16; i++ {
			if _, err := r.ReadPair(); err != nil {
				return
			}
		}
	})
}
