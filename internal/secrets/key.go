// Package secrets provides the encryption key, the crypto codec for the
// store file, and the plaintext integrity digest.
package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
)

const (
	// KeyEnv is the environment variable holding the encryption key.
	KeyEnv = "ENCRYPTION_KEY"

	// KeySize is the symmetric key length in bytes.
	KeySize = 32
)

// ErrKeyMissing indicates the key environment variable is not set.
var ErrKeyMissing = errors.New("encryption key not set")

// ErrKeyInvalid indicates the key is not valid base64 or has the wrong length.
var ErrKeyInvalid = errors.New("encryption key invalid")

// Key is a symmetric encryption key.
type Key [KeySize]byte

// LoadKey reads and validates the key from the process environment.
// The key is resolved once at startup and held for the invocation.
func LoadKey() (Key, error) {
	raw := os.Getenv(KeyEnv)
	if raw == "" {
		return Key{}, fmt.Errorf("%w: %s environment variable required", ErrKeyMissing, KeyEnv)
	}
	return ParseKey(raw)
}

// ParseKey decodes a standard-base64 key string.
func ParseKey(s string) (Key, error) {
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return Key{}, fmt.Errorf("%w: not valid base64", ErrKeyInvalid)
	}
	if len(decoded) != KeySize {
		return Key{}, fmt.Errorf("%w: decoded to %d bytes, want %d", ErrKeyInvalid, len(decoded), KeySize)
	}
	var k Key
	copy(k[:], decoded)
	return k, nil
}

// GenerateKey returns a fresh random key.
func GenerateKey() (Key, error) {
	var k Key
	if _, err := rand.Read(k[:]); err != nil {
		return Key{}, fmt.Errorf("generate key: %w", err)
	}
	return k, nil
}

// Encode returns the base64 form suitable for the environment variable.
func (k Key) Encode() string {
	return base64.StdEncoding.EncodeToString(k[:])
}
