package api

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for store responses, checked with errors.Is.
var (
	// ErrNotFound indicates the paste expired, was deleted or never existed.
	ErrNotFound = errors.New("paste not found")
	// ErrRejected indicates the store refused the request.
	ErrRejected = errors.New("request rejected by paste store")
	// ErrRateLimited indicates the store throttled the client.
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrInvalidResponse indicates the store answered with something other
	// than the expected JSON document.
	ErrInvalidResponse = errors.New("invalid paste store response")
)

// APIError is a failure reported by the paste store, either as an HTTP
// error status or as a JSON body with a non-zero status field.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Status is the JSON status field, or -1 when the body carried none.
	Status int
	// Message is the store's human-readable message, if any.
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("paste store error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("paste store error %d", e.StatusCode)
}

// NotFound reports whether the store said the paste does not exist.
// PrivateBin answers missing pastes with HTTP 200 and a message, so the
// message text is inspected as well as the status code.
func (e *APIError) NotFound() bool {
	if e.StatusCode == 404 {
		return true
	}
	msg := strings.ToLower(e.Message)
	return strings.Contains(msg, "not found") || strings.Contains(msg, "does not exist")
}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.NotFound()
	case ErrRateLimited:
		return e.StatusCode == 429
	case ErrRejected:
		return !e.NotFound() && e.StatusCode != 429
	}
	return false
}

// NetworkError is a transport-level failure. URL never carries a fragment
// because store requests are built from the host and paste id only.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
