package elgamal

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/smallyu/pubcrypt/pkg/pubcrypt"
)

// KeyBytes is the size of a binary encoded key.
const KeyBytes = 3 * pubcrypt.NumBytes

// MarshalBinary encodes the key as three big-endian 64-bit integers:
// prime, root, value.
func (k Key) MarshalBinary() ([]byte, error) {
	buf := make([]byte, KeyBytes)
	binary.BigEndian.PutUint64(buf[0:8], k.Prime)
	binary.BigEndian.PutUint64(buf[8:16], k.Root)
	binary.BigEndian.PutUint64(buf[16:24], k.Value)
	return buf, nil
}

// UnmarshalBinary decodes a key produced by MarshalBinary.
func (k *Key) UnmarshalBinary(data []byte) error {
	if len(data) != KeyBytes {
		return pubcrypt.NewFormatError(0, fmt.Sprintf("key must be %d bytes, got %d", KeyBytes, len(data)), nil)
	}
	k.Prime = binary.BigEndian.Uint64(data[0:8])
	k.Root = binary.BigEndian.Uint64(data[8:16])
	k.Value = binary.BigEndian.Uint64(data[16:24])
	return nil
}

// MarshalText encodes the key as three decimal integers separated by spaces.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%d %d %d", k.Prime, k.Root, k.Value)), nil
}

// UnmarshalText decodes a key produced by MarshalText. Surrounding and
// repeated whitespace is accepted.
func (k *Key) UnmarshalText(text []byte) error {
	fields := bytes.Fields(text)
	if len(fields) != 3 {
		return pubcrypt.NewFormatError(1, fmt.Sprintf("expected 3 values, got %d", len(fields)), nil)
	}

	var vals [3]uint64
	for i, f := range fields {
		v, err := strconv.ParseUint(string(f), 10, 64)
		if err != nil {
			return pubcrypt.NewFormatError(1, fmt.Sprintf("value %d", i+1), err)
		}
		vals[i] = v
	}

	k.Prime, k.Root, k.Value = vals[0], vals[1], vals[2]
	return nil
}

// ParseKey decodes a key in either the binary or the text form.
// Input made only of ASCII digits and whitespace is read as text.
func ParseKey(data []byte) (Key, error) {
	var k Key
	var err error
	if isText(data) {
		err = k.UnmarshalText(data)
	} else {
		err = k.UnmarshalBinary(data)
	}
	if err != nil {
		return Key{}, err
	}
	return k, nil
}

func isText(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	for _, b := range data {
		switch {
		case b >= '0' && b <= '9':
		case b == ' ', b == '\t', b == '\n', b == '\r':
		default:
			return false
		}
	}
	return true
}
