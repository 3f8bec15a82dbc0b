package crypto

import "errors"

var (
	// ErrKeyDerivation is returned when a key cannot be derived, either
	// because the inputs are unusable or a primitive is unavailable.
	ErrKeyDerivation = errors.New("key derivation failed")

	// ErrAuthentication is returned when AES-GCM authentication fails.
	// Wrong keys, tampered ciphertext and tampered AAD are not distinguished.
	ErrAuthentication = errors.New("message authentication failed")

	// ErrInvalidKeySize is returned when a key has an unexpected length.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when the IV size is invalid.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrInvalidBase58 is returned when a string contains characters outside
	// the Base58 alphabet.
	ErrInvalidBase58 = errors.New("invalid base58 string")

	// ErrRandomSource is returned when the secure random source fails.
	ErrRandomSource = errors.New("secure random source unavailable")
)
