package secrets

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
)

// ErrIntegrity indicates the stored digest does not match the plaintext.
var ErrIntegrity = errors.New("integrity check failed")

// Digest returns the lowercase hex SHA-256 of the plaintext payload.
func Digest(plaintext []byte) string {
	sum := sha256.Sum256(plaintext)
	return hex.EncodeToString(sum[:])
}

// Verify reports whether the plaintext matches the expected hex digest.
func Verify(plaintext []byte, expected string) bool {
	got := Digest(plaintext)
	if len(got) != len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(expected)) == 1
}
