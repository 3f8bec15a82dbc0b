package envelope

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/zenmark/zenshare/internal/crypto"
)

// Formatter values written to adata[1].
const (
	FormatterMarkdown  = "markdown"
	FormatterPlainText = "plaintext"
)

// CipherParams is the first adata element:
// [iv, salt, iterations, keySize, tagSize, algorithm, mode, compression].
// IV and Salt keep the exact base64 text received so the AAD can be
// reproduced byte for byte.
type CipherParams struct {
	IV          string
	Salt        string
	Iterations  int
	KeySize     int
	TagSize     int
	Algorithm   string
	Mode        string
	Compression string
}

// MarshalJSON encodes the parameters as a JSON array.
func (p CipherParams) MarshalJSON() ([]byte, error) {
	return marshalCompat([]any{
		p.IV, p.Salt, p.Iterations, p.KeySize, p.TagSize,
		p.Algorithm, p.Mode, p.Compression,
	})
}

// UnmarshalJSON decodes the 8-element parameter array.
func (p *CipherParams) UnmarshalJSON(data []byte) error {
	var fields []json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("%w: cipher params: %v", ErrInvalidEnvelope, err)
	}
	if len(fields) != 8 {
		return fmt.Errorf("%w: cipher params: got %d fields, want 8", ErrInvalidEnvelope, len(fields))
	}

	targets := []any{
		&p.IV, &p.Salt, &p.Iterations, &p.KeySize, &p.TagSize,
		&p.Algorithm, &p.Mode, &p.Compression,
	}
	for i, target := range targets {
		if err := json.Unmarshal(fields[i], target); err != nil {
			return fmt.Errorf("%w: cipher params[%d]: %v", ErrInvalidEnvelope, i, err)
		}
	}
	return nil
}

// validate checks that the parameters describe the only suite we speak.
func (p CipherParams) validate() error {
	if p.Algorithm != crypto.AlgorithmAES || p.Mode != crypto.ModeGCM {
		return fmt.Errorf("unsupported cipher %s-%s", p.Algorithm, p.Mode)
	}
	if p.Compression != crypto.CompressionNone {
		return fmt.Errorf("unsupported compression %q", p.Compression)
	}
	if p.KeySize != crypto.KeySizeBits {
		return fmt.Errorf("unsupported key size %d", p.KeySize)
	}
	if p.TagSize != crypto.TagSizeBits {
		return fmt.Errorf("unsupported tag size %d", p.TagSize)
	}
	return nil
}

// AData is the authenticated metadata tuple
// [cipherParams, formatter, openDiscussion, burnAfterReading].
type AData struct {
	Cipher           CipherParams
	Formatter        string
	OpenDiscussion   int
	BurnAfterReading int
}

// MarshalJSON encodes the tuple as a JSON array.
func (a AData) MarshalJSON() ([]byte, error) {
	return marshalCompat([]any{a.Cipher, a.Formatter, a.OpenDiscussion, a.BurnAfterReading})
}

// UnmarshalJSON decodes the 4-element adata array.
func (a *AData) UnmarshalJSON(data []byte) error {
	var fields []json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("%w: adata: %v", ErrInvalidEnvelope, err)
	}
	if len(fields) != 4 {
		return fmt.Errorf("%w: adata: got %d fields, want 4", ErrInvalidEnvelope, len(fields))
	}

	if err := json.Unmarshal(fields[0], &a.Cipher); err != nil {
		return err
	}
	targets := []any{&a.Formatter, &a.OpenDiscussion, &a.BurnAfterReading}
	for i, target := range targets {
		if err := json.Unmarshal(fields[i+1], target); err != nil {
			return fmt.Errorf("%w: adata[%d]: %v", ErrInvalidEnvelope, i+1, err)
		}
	}
	return nil
}

// AAD returns the additional authenticated data for the tuple: the UTF-8
// bytes of JSON.stringify(adata).
func (a AData) AAD() ([]byte, error) {
	return a.MarshalJSON()
}

// marshalCompat encodes v the way JSON.stringify does for the values used
// in adata: compact output and no HTML escaping.
func marshalCompat(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
