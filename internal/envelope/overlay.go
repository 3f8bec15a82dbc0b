package envelope

import (
	"encoding/json"
	"fmt"
)

// WrapPassword adds a password layer around inner. The complete inner
// envelope JSON (v, adata, ct, meta) is sealed under a key derived from
// password and a fresh salt, with fresh IV and its own adata. The result
// carries the inner formatter and meta so the store sees the same expiry.
func WrapPassword(inner *V2, password string, iterations int) (*V2, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}
	if inner == nil {
		return nil, ErrInvalidEnvelope
	}

	plaintext, err := json.Marshal(inner)
	if err != nil {
		return nil, fmt.Errorf("marshal inner envelope: %w", err) //coverage:ignore
	}

	return seal([]byte(password), plaintext, inner.AData.Formatter, inner.Meta, iterations)
}

// UnwrapPassword removes the password layer added by WrapPassword and
// returns the inner envelope. Every failure matches ErrDecryption.
func UnwrapPassword(outer *V2, password string) (*V2, error) {
	if password == "" {
		return nil, &DecryptionError{Stage: "kdf", Err: ErrEmptyPassword}
	}

	plaintext, err := openRaw(outer, []byte(password))
	if err != nil {
		return nil, err
	}

	inner, err := DecodeV2(plaintext)
	if err != nil {
		return nil, &DecryptionError{Stage: "payload", Err: err}
	}
	return inner, nil
}
