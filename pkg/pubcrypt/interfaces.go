package pubcrypt

// Num is the width of every modulus, exponent and ciphertext value.
type Num = uint64

// Block is one unit of plaintext. Every key prime is larger than the largest
// Block so each block value is a residue modulo the prime.
type Block = uint32

const (
	// BlockBytes is the number of plaintext bytes carried by one Block.
	BlockBytes = 4
	// NumBytes is the encoded size of a Num.
	NumBytes = 8
)

// Pair is the ciphertext of a single block: C1 = g^r, C2 = m * y^r (mod p).
// Pairs are independent of each other (ECB mode).
type Pair struct {
	C1 Num
	C2 Num
}

// CiphertextWriter is the sink of an encryption stream.
// Implementations decide the wire encoding (binary or text).
type CiphertextWriter interface {
	// WritePair encodes a single ciphertext unit.
	WritePair(p Pair) error

	// Flush writes any buffered data to the underlying writer.
	Flush() error
}

// CiphertextReader is the source of a decryption stream.
type CiphertextReader interface {
	// ReadPair decodes the next ciphertext unit.
	// It returns io.EOF when the stream ends cleanly between pairs.
	ReadPair() (Pair, error)
}
