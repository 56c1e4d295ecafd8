// Package ecb applies the block cipher to byte streams in electronic-codebook
// mode: every 4-byte block is encrypted on its own.
//
// The final block always carries padding. Its last byte holds the number of
// pad bytes (1 to 4) and the bytes between the data and the count are random.
// A stream whose length is a multiple of the block size gets one extra block
// made entirely of padding.
package ecb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/smallyu/pubcrypt/internal/ciphertext"
	"github.com/smallyu/pubcrypt/internal/crypto/elgamal"
	"github.com/smallyu/pubcrypt/internal/crypto/sample"
	"github.com/smallyu/pubcrypt/pkg/pubcrypt"
)

const blockBytes = pubcrypt.BlockBytes

// Encrypt reads plaintext from src and writes one ciphertext pair per block
// to dst. dst is flushed before returning.
func Encrypt(random io.Reader, src io.Reader, dst pubcrypt.CiphertextWriter, pub *elgamal.PublicKey) error {
	var buf [blockBytes]byte

	for {
		n, err := io.ReadFull(src, buf[:])
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			// n < blockBytes: this is the pad-bearing final block
			if err := pad(random, buf[:], blockBytes-n); err != nil {
				return err
			}
			if err := encryptBlock(random, buf, dst, pub); err != nil {
				return err
			}
			return dst.Flush()
		}
		if err != nil {
			return fmt.Errorf("ecb: read plaintext: %w", err)
		}

		if err := encryptBlock(random, buf, dst, pub); err != nil {
			return err
		}
	}
}

// pad fills the last count bytes of buf with random bytes and stores count in
// the final byte.
func pad(random io.Reader, buf []byte, count int) error {
	start := len(buf) - count
	end := len(buf) - 1
	if err := sample.Fill(random, buf[start:end]); err != nil {
		return err
	}
	buf[end] = byte(count)
	return nil
}

func encryptBlock(random io.Reader, buf [blockBytes]byte, dst pubcrypt.CiphertextWriter, pub *elgamal.PublicKey) error {
	block := binary.BigEndian.Uint32(buf[:])
	ct, err := pub.Encrypt(random, block)
	if err != nil {
		return err
	}
	return dst.WritePair(ct)
}

// Decrypt reads ciphertext pairs from src and writes the plaintext to dst.
// The last pair is decoded as the padded final block.
func Decrypt(src pubcrypt.CiphertextReader, dst io.Writer, priv *elgamal.PrivateKey) error {
	cur, err := src.ReadPair()
	if errors.Is(err, io.EOF) {
		return pubcrypt.NewFormatError(0, "empty ciphertext", nil)
	}
	if err != nil {
		return err
	}

	var buf [blockBytes]byte
	for {
		next, err := src.ReadPair()
		last := errors.Is(err, io.EOF)
		if err != nil && !last {
			return err
		}

		block, err := priv.Decrypt(cur)
		if err != nil {
			return err
		}
		binary.BigEndian.PutUint32(buf[:], block)

		if last {
			count := int(buf[blockBytes-1])
			if count > blockBytes {
				return fmt.Errorf("ecb: pad count %d exceeds block size: %w", count, pubcrypt.ErrDecode)
			}
			_, err := dst.Write(buf[:blockBytes-count])
			return err
		}

		if _, err := dst.Write(buf[:]); err != nil {
			return err
		}
		cur = next
	}
}

// Seal encrypts plaintext in memory using the binary ciphertext encoding.
func Seal(random io.Reader, pub *elgamal.PublicKey, plaintext []byte) ([]byte, error) {
	var out bytes.Buffer
	w, err := ciphertext.NewWriter(&out, ciphertext.FormatBinary)
	if err != nil {
		return nil, err
	}
	if err := Encrypt(random, bytes.NewReader(plaintext), w, pub); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Open decrypts ciphertext produced by Seal.
func Open(priv *elgamal.PrivateKey, sealed []byte) ([]byte, error) {
	r, err := ciphertext.NewReader(bytes.NewReader(sealed), ciphertext.FormatBinary)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := Decrypt(r, &out, priv); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
