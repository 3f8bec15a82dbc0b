package crypto

import (
	"fmt"
)

// Seal encrypts plaintext with AES-256-GCM and binds aad to it.
// Returns: ciphertext || tag (16 bytes)
func Seal(key *Key, iv, plaintext, aad []byte) ([]byte, error) {
	if key == nil || key.aead == nil {
		return nil, ErrInvalidKeySize
	}

	if len(iv) != IVSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(iv), IVSize)
	}

	return key.aead.Seal(nil, iv, plaintext, aad), nil
}

// Open decrypts ciphertext || tag produced by Seal. Any failure, including
// a short input, a wrong key or a modified aad, returns ErrAuthentication
// and no plaintext.
func Open(key *Key, iv, ciphertext, aad []byte) ([]byte, error) {
	if key == nil || key.aead == nil {
		return nil, ErrAuthentication
	}

	if len(iv) != IVSize || len(ciphertext) < TagSize {
		return nil, ErrAuthentication
	}

	plaintext, err := key.aead.Open(nil, iv, ciphertext, aad)
	if err != nil {
		return nil, ErrAuthentication
	}

	return plaintext, nil
}
