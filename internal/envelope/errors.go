package envelope

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEnvelope is returned when envelope JSON is malformed or
	// missing required fields.
	ErrInvalidEnvelope = errors.New("invalid envelope")

	// ErrUnsupportedVersion is returned for envelope versions this package
	// cannot parse.
	ErrUnsupportedVersion = errors.New("unsupported envelope version")

	// ErrDecryption is returned for every failure to recover a paste. It
	// covers malformed parameters, authentication failures and bad payloads
	// alike.
	ErrDecryption = errors.New("paste decryption failed")

	// ErrEmptyPassword is returned when a password overlay is requested
	// with an empty password.
	ErrEmptyPassword = errors.New("password must not be empty")
)

// DecryptionError records the stage at which opening an envelope failed.
// It matches ErrDecryption with errors.Is.
type DecryptionError struct {
	Stage string // "params", "kdf", "aes", "payload"
	Err   error
}

func (e *DecryptionError) Error() string {
	return fmt.Sprintf("decryption failed at %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecryptionError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *DecryptionError) Is(target error) bool {
	return target == ErrDecryption
}
