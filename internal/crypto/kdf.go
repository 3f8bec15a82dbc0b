package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Key is a derived AES-256-GCM key. It only holds the initialized AEAD;
// the raw key bytes are not retained and cannot be exported.
type Key struct {
	aead cipher.AEAD
}

// DeriveKey stretches secret and salt into an AES-256-GCM key with
// PBKDF2-HMAC-SHA-256. The result is deterministic for identical inputs.
func DeriveKey(secret, salt []byte, iterations int) (*Key, error) {
	if len(salt) == 0 {
		return nil, fmt.Errorf("%w: empty salt", ErrKeyDerivation)
	}
	if iterations < 1 || iterations > MaxIterations {
		return nil, fmt.Errorf("%w: iterations %d out of range", ErrKeyDerivation, iterations)
	}

	raw := pbkdf2.Key(secret, salt, iterations, KeySize, sha256.New)
	defer clear(raw)

	return newKey(raw)
}

// DerivePasswordKey derives a key from a human password (UTF-8 bytes).
func DerivePasswordKey(password string, salt []byte, iterations int) (*Key, error) {
	return DeriveKey([]byte(password), salt, iterations)
}

func newKey(raw []byte) (*Key, error) {
	if len(raw) != KeySize {
		return nil, fmt.Errorf("%w: %v: got %d, want %d", ErrKeyDerivation, ErrInvalidKeySize, len(raw), KeySize)
	}

	block, err := aes.NewCipher(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: create cipher: %v", ErrKeyDerivation, err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, IVSize)
	if err != nil {
		return nil, fmt.Errorf("%w: create GCM: %v", ErrKeyDerivation, err)
	}

	return &Key{aead: aead}, nil
}
