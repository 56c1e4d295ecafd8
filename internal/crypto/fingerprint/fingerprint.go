package fingerprint

import (
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Size is the length of a fingerprint in bytes.
const Size = blake2b.Size256

// domain separates key fingerprints from any other use of the hash.
var domain = []byte("pubcrypt-key-v1")

// Of returns the BLAKE2b-256 fingerprint of the concatenated parts.
func Of(parts ...[]byte) []byte {
	// New256 only fails for keys longer than 64 bytes
	h, _ := blake2b.New256(nil)
	h.Write(domain)
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

// String formats a fingerprint as colon separated hex pairs.
func String(fp []byte) string {
	pairs := make([]string, len(fp))
	for i, b := range fp {
		pairs[i] = hex.EncodeToString([]byte{b})
	}
	return strings.Join(pairs, ":")
}

// Parse accepts a fingerprint with or without colon separators.
func Parse(s string) ([]byte, error) {
	return hex.DecodeString(strings.ReplaceAll(strings.TrimSpace(s), ":", ""))
}

// Verify checks fp against the fingerprint of parts.
func Verify(fp []byte, parts ...[]byte) bool {
	if len(fp) != Size {
		return false
	}
	return subtle.ConstantTimeCompare(fp, Of(parts...)) == 1
}
