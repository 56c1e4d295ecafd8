package fingerprint

import (
	"testing"
)

func TestFingerprint(t *testing.T) {
	key := []byte("0123456789abcdef01234567")

	fp := Of(key)
	if len(fp) != Size {
		t.Fatalf("Expected fingerprint length %d, got %d", Size, len(fp))
	}

	if !Verify(fp, key) {
		t.Fatal("Verification failed for matching key")
	}
}

func TestFingerprintVerifyFailed(t *testing.T) {
	key := []byte("0123456789abcdef01234567")
	fp := Of(key)

	// Case 1: Wrong key
	if Verify(fp, []byte("0123456789abcdef01234568")) {
		t.Fatal("Verification passed for wrong key")
	}

	// Case 2: Tampered fingerprint
	wrong := make([]byte, Size)
	copy(wrong, fp)
	wrong[0] ^= 0xFF
	if Verify(wrong, key) {
		t.Fatal("Verification passed for tampered fingerprint")
	}

	// Case 3: Truncated fingerprint
	if Verify(fp[:16], key) {
		t.Fatal("Verification passed for truncated fingerprint")
	}
}

func TestFingerprintParts(t *testing.T) {
	whole := Of([]byte("abcdef"))
	split := Of([]byte("abc"), []byte("def"))
	if string(whole) != string(split) {
		t.Error("Fingerprint should depend only on the concatenated bytes")
	}
}

func TestStringParse(t *testing.T) {
	fp := Of([]byte("key"))
	s := String(fp)
	if len(s) != Size*3-1 {
		t.Errorf("Unexpected string length %d", len(s))
	}

	parsed, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if string(parsed) != string(fp) {
		t.Error("Parse(String(fp)) != fp")
	}

	if _, err := Parse("zz"); err == nil {
		t.Error("Parse should reject non-hex input")
	}
}
