// Package ciphertext encodes streams of ciphertext pairs.
//
// Two encodings are supported and the encrypting and decrypting sides must
// agree on one:
//
//	binary  16 bytes per pair, c1 then c2, each a big-endian uint64
//	text    one pair per line, two decimal integers separated by whitespace
package ciphertext

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/smallyu/pubcrypt/pkg/pubcrypt"
)

// Format selects a ciphertext encoding.
type Format string

const (
	FormatBinary Format = "binary"
	FormatText   Format = "text"
)

// PairBytes is the size of one binary encoded pair.
const PairBytes = 2 * pubcrypt.NumBytes

// Formats returns the supported format names.
func Formats() []string {
	return []string{string(FormatBinary), string(FormatText)}
}

// ParseFormat looks up a format by name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case FormatBinary, FormatText:
		return f, nil
	}
	return "", fmt.Errorf("ciphertext: unknown format %q (expected one of %v)", name, Formats())
}

// NewWriter returns a CiphertextWriter that encodes pairs to w.
func NewWriter(w io.Writer, f Format) (pubcrypt.CiphertextWriter, error) {
	switch f {
	case FormatBinary:
		return &binaryWriter{w: bufio.NewWriter(w)}, nil
	case FormatText:
		return &textWriter{w: bufio.NewWriter(w)}, nil
	}
	return nil, fmt.Errorf("ciphertext: unknown format %q", f)
}

// NewReader returns a CiphertextReader that decodes pairs from r.
func NewReader(r io.Reader, f Format) (pubcrypt.CiphertextReader, error) {
	switch f {
	case FormatBinary:
		return &binaryReader{r: bufio.NewReader(r)}, nil
	case FormatText:
		return &textReader{s: bufio.NewScanner(r)}, nil
	}
	return nil, fmt.Errorf("ciphertext: unknown format %q", f)
}

type binaryWriter struct {
	w   *bufio.Writer
	buf [PairBytes]byte
}

func (bw *binaryWriter) WritePair(p pubcrypt.Pair) error {
	binary.BigEndian.PutUint64(bw.buf[:8], p.C1)
	binary.BigEndian.PutUint64(bw.buf[8:], p.C2)
	_, err := bw.w.Write(bw.buf[:])
	return err
}

func (bw *binaryWriter) Flush() error {
	return bw.w.Flush()
}

type binaryReader struct {
	r   *bufio.Reader
	buf [PairBytes]byte
}

func (br *binaryReader) ReadPair() (pubcrypt.Pair, error) {
	_, err := io.ReadFull(br.r, br.buf[:])
	switch {
	case err == io.EOF:
		return pubcrypt.Pair{}, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		return pubcrypt.Pair{}, pubcrypt.NewFormatError(0,
			fmt.Sprintf("ciphertext must be a multiple of %d bytes", PairBytes), nil)
	case err != nil:
		return pubcrypt.Pair{}, err
	}

	return pubcrypt.Pair{
		C1: binary.BigEndian.Uint64(br.buf[:8]),
		C2: binary.BigEndian.Uint64(br.buf[8:]),
	}, nil
}

type textWriter struct {
	w *bufio.Writer
}

func (tw *textWriter) WritePair(p pubcrypt.Pair) error {
	_, err := fmt.Fprintf(tw.w, "%d %d\n", p.C1, p.C2)
	return err
}

func (tw *textWriter) Flush() error {
	return tw.w.Flush()
}

type textReader struct {
	s    *bufio.Scanner
	line int
}

func (tr *textReader) ReadPair() (pubcrypt.Pair, error) {
	if !tr.s.Scan() {
		if err := tr.s.Err(); err != nil {
			return pubcrypt.Pair{}, err
		}
		return pubcrypt.Pair{}, io.EOF
	}
	tr.line++

	vals, err := ParseWords(tr.s.Bytes(), 2)
	if err != nil {
		return pubcrypt.Pair{}, pubcrypt.NewFormatError(tr.line, err.Error(), nil)
	}
	return pubcrypt.Pair{C1: vals[0], C2: vals[1]}, nil
}

// ParseWords parses exactly n whitespace-separated decimal uint64 values.
func ParseWords(line []byte, n int) ([]uint64, error) {
	words := bytes.Fields(line)
	switch {
	case len(words) > n:
		return nil, fmt.Errorf("too many values: expected %d, got %d", n, len(words))
	case len(words) < n:
		return nil, fmt.Errorf("not enough values: expected %d, got %d", n, len(words))
	}

	vals := make([]uint64, n)
	for i, w := range words {
		v, err := strconv.ParseUint(string(w), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %q: %w", w, err)
		}
		vals[i] = v
	}
	return vals, nil
}
