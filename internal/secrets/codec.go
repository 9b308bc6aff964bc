package secrets

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
)

// nonceSize is the secretbox nonce length. The nonce is random per write and
// prepended to the ciphertext, so re-encrypting the same payload produces
// different output.
const nonceSize = 24

// ErrDecrypt indicates the ciphertext could not be opened: wrong key or
// tampered data.
var ErrDecrypt = errors.New("data may be tampered with or the key is wrong")

// Encrypt seals plaintext with the key. The returned blob is nonce||box.
func Encrypt(plaintext []byte, key Key) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	boxKey := [KeySize]byte(key)
	return secretbox.Seal(nonce[:], plaintext, &nonce, &boxKey), nil
}

// Decrypt opens a nonce||box blob produced by Encrypt.
func Decrypt(blob []byte, key Key) ([]byte, error) {
	if len(blob) < nonceSize+secretbox.Overhead {
		return nil, fmt.Errorf("decrypt store: %w", ErrDecrypt)
	}
	var nonce [nonceSize]byte
	copy(nonce[:], blob[:nonceSize])
	boxKey := [KeySize]byte(key)
	plaintext, ok := secretbox.Open(nil, blob[nonceSize:], &nonce, &boxKey)
	if !ok {
		return nil, fmt.Errorf("decrypt store: %w", ErrDecrypt)
	}
	return plaintext, nil
}
