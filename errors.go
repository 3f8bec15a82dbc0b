package zenshare

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/zenmark/zenshare/internal/api"
	"github.com/zenmark/zenshare/internal/crypto"
	"github.com/zenmark/zenshare/internal/envelope"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrKeyDerivation is returned when key material cannot be generated or
	// derived, e.g. the random source failed.
	ErrKeyDerivation = errors.New("key derivation failed")

	// ErrAuthentication is the crypto-layer failure for a ciphertext that
	// does not authenticate. Share operations report it as ErrDecryption.
	ErrAuthentication = errors.New("authentication failed")

	// ErrUpload is returned when the paste store rejected or could not be
	// reached during CreateShareLink.
	ErrUpload = errors.New("upload failed")

	// ErrNotFound is returned when the shared note expired or was deleted.
	ErrNotFound = errors.New("shared note not found")

	// ErrFetch is returned when the paste store failed for a reason other
	// than a missing paste during FetchSharedNote.
	ErrFetch = errors.New("fetch failed")

	// ErrDelete is returned when the paste store refused a deletion.
	ErrDelete = errors.New("delete failed")

	// ErrDecryption is returned for every failure to recover a shared note
	// from its ciphertext. Wrong keys and corrupted data are not
	// distinguished.
	ErrDecryption = errors.New("decryption failed")

	// ErrInvalidShareLink is returned for URLs that are not share links.
	ErrInvalidShareLink = errors.New("invalid share link")

	// ErrInvalidOptions is returned when client or share options fail
	// validation.
	ErrInvalidOptions = errors.New("invalid options")
)

// User-facing messages carried by ShareError.
const (
	MsgNotFound         = "This shared note has expired or been deleted."
	MsgDecryption       = "This share link is invalid or could not be decrypted."
	MsgUploadFailed     = "Failed to create share link. Please try again."
	MsgFetchFailed      = "Failed to fetch shared note."
	MsgDeleteFailed     = "Failed to delete shared note."
	MsgInvalidShareLink = "This is not a valid share link."
	MsgInvalidOptions   = "Invalid share settings."
)

// ShareError is returned by every share operation. Message is safe to show
// to end users. Kind is one of the package sentinels and matches with
// errors.Is. Err holds the underlying cause for store and transport
// failures; it is nil for cryptographic failures so that callers cannot
// tell a wrong key from corrupted data.
type ShareError struct {
	Kind    error
	Message string
	Err     error
}

func (e *ShareError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ShareError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *ShareError) Is(target error) bool {
	return target == e.Kind
}

// StoreError is the paste store's own failure report.
type StoreError struct {
	StatusCode int
	Message    string
}

func (e *StoreError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("paste store error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("paste store error %d", e.StatusCode)
}

// NetworkError represents a network-level failure.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ValidationError contains multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// Is implements errors.Is for sentinel error matching.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidOptions
}

// newValidationError flattens validator output into a ValidationError.
func newValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Errors: []string{err.Error()}}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag()))
	}
	return &ValidationError{Errors: msgs}
}

func invalidOptions(err error) *ShareError {
	return &ShareError{Kind: ErrInvalidOptions, Message: MsgInvalidOptions, Err: err}
}

// wrapError converts internal API errors to public errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return &StoreError{
			StatusCode: apiErr.StatusCode,
			Message:    apiErr.Message,
		}
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return &NetworkError{
			Err:     netErr.Err,
			URL:     netErr.URL,
			Attempt: netErr.Attempt,
		}
	}

	return err
}

// storeMessage returns the store's own message for err, if it sent one.
func storeMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Status != -1 {
		return apiErr.Message
	}
	return ""
}

// wrapCreateError classifies a CreateShareLink failure.
func wrapCreateError(err error) *ShareError {
	if errors.Is(err, crypto.ErrKeyDerivation) || errors.Is(err, crypto.ErrRandomSource) {
		return &ShareError{Kind: ErrKeyDerivation, Message: MsgUploadFailed}
	}

	msg := MsgUploadFailed
	if m := storeMessage(err); m != "" {
		msg = m
	}
	return &ShareError{Kind: ErrUpload, Message: msg, Err: wrapError(err)}
}

// wrapFetchError classifies a FetchSharedNote failure. Anything that went
// wrong after the store returned a document is a decryption failure.
func wrapFetchError(err error) *ShareError {
	switch {
	case errors.Is(err, api.ErrNotFound):
		return &ShareError{Kind: ErrNotFound, Message: MsgNotFound, Err: wrapError(err)}
	case errors.Is(err, envelope.ErrDecryption),
		errors.Is(err, envelope.ErrInvalidEnvelope),
		errors.Is(err, envelope.ErrUnsupportedVersion),
		errors.Is(err, crypto.ErrInvalidBase58),
		errors.Is(err, crypto.ErrAuthentication):
		return &ShareError{Kind: ErrDecryption, Message: MsgDecryption}
	}

	msg := MsgFetchFailed
	if m := storeMessage(err); m != "" {
		msg = m
	}
	return &ShareError{Kind: ErrFetch, Message: msg, Err: wrapError(err)}
}

// wrapDeleteError classifies a DeleteShareLink failure.
func wrapDeleteError(err error) *ShareError {
	if errors.Is(err, api.ErrNotFound) {
		return &ShareError{Kind: ErrNotFound, Message: MsgNotFound, Err: wrapError(err)}
	}

	msg := MsgDeleteFailed
	if m := storeMessage(err); m != "" {
		msg = m
	}
	return &ShareError{Kind: ErrDelete, Message: msg, Err: wrapError(err)}
}
