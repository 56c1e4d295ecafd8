//go:build js && wasm

package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/smallyu/pubcrypt/internal/crypto/ecb"
	"github.com/smallyu/pubcrypt/internal/crypto/elgamal"
)

func main() {
	c := make(chan struct{}, 0)

	fmt.Println("Go pubcrypt WASM Initialized")

	// Expose Go functions to JS
	js.Global().Set("GoPubcrypt", map[string]interface{}{
		"GenerateKey": js.FuncOf(GenerateKey),
		"Encrypt":     js.FuncOf(Encrypt),
		"Decrypt":     js.FuncOf(Decrypt),
	})

	<-c
}

// GenerateKey creates a new key pair.
// Returns:
// JSON string { publicKey, privateKey } with hex encoded binary keys
func GenerateKey(this js.Value, args []js.Value) interface{} {
	kp, err := elgamal.GenerateKey(rand.Reader)
	if err != nil {
		return fmt.Sprintf("error: key generation failed: %v", err)
	}

	pub, _ := kp.Public.MarshalBinary()
	priv, _ := kp.Private.MarshalBinary()

	resp := map[string]string{
		"publicKey":  hex.EncodeToString(pub),
		"privateKey": hex.EncodeToString(priv),
	}
	respBytes, _ := json.Marshal(resp)
	return string(respBytes)
}

// Encrypt encrypts a message.
// Arguments:
// 0: hex encoded public key
// 1: plaintext (string)
// Returns:
// hex encoded ciphertext or error string
func Encrypt(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return "error: expected 2 arguments (publicKey, plaintext)"
	}

	k, err := decodeKey(args[0].String())
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	sealed, err := ecb.Seal(rand.Reader, &elgamal.PublicKey{Key: k}, []byte(args[1].String()))
	if err != nil {
		return fmt.Sprintf("error: encryption failed: %v", err)
	}
	return hex.EncodeToString(sealed)
}

// Decrypt decrypts a message produced by Encrypt.
// Arguments:
// 0: hex encoded private key
// 1: hex encoded ciphertext
// Returns:
// plaintext string or error string
func Decrypt(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return "error: expected 2 arguments (privateKey, ciphertext)"
	}

	k, err := decodeKey(args[0].String())
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	sealed, err := hex.DecodeString(args[1].String())
	if err != nil {
		return fmt.Sprintf("error: invalid hex ciphertext: %v", err)
	}

	plaintext, err := ecb.Open(&elgamal.PrivateKey{Key: k}, sealed)
	if err != nil {
		return fmt.Sprintf("error: decryption failed: %v", err)
	}
	return string(plaintext)
}

func decodeKey(s string) (elgamal.Key, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return elgamal.Key{}, fmt.Errorf("invalid hex key: %v", err)
	}
	var k elgamal.Key
	if err := k.UnmarshalBinary(data); err != nil {
		return elgamal.Key{}, err
	}
	return k, nil
}
