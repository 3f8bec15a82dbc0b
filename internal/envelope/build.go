package envelope

import (
	"encoding/json"
	"fmt"

	"github.com/zenmark/zenshare/internal/crypto"
)

// Paste is the decrypted content of an envelope.
type Paste struct {
	Content string
	Format  string // FormatterMarkdown or FormatterPlainText
}

// pastePayload is the plaintext shape PrivateBin clients encrypt.
type pastePayload struct {
	Paste string `json:"paste"`
}

// Build encrypts content under a fresh random master key.
//
// The build process:
//  1. Draw a 32-byte master key, a 16-byte IV and an 8-byte salt
//  2. PBKDF2-SHA-256 derivation of the AES key from master key and salt
//  3. Seal {"paste": content} with the serialized adata as AAD
//
// The master key is returned to the caller for the URL fragment and is
// never part of the envelope.
func Build(content, format, expire string, iterations int) ([]byte, *V2, error) {
	masterKey, err := crypto.RandomBytes(crypto.MasterKeySize)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: master key: %v", crypto.ErrKeyDerivation, err)
	}

	plaintext, err := json.Marshal(pastePayload{Paste: content})
	if err != nil {
		return nil, nil, fmt.Errorf("marshal paste: %w", err) //coverage:ignore
	}

	env, err := seal(masterKey, plaintext, NormalizeFormat(format), Meta{Expire: expire}, iterations)
	if err != nil {
		clear(masterKey)
		return nil, nil, err
	}

	return masterKey, env, nil
}

// NormalizeFormat maps a formatter name to markdown or plaintext.
func NormalizeFormat(format string) string {
	if format == FormatterMarkdown {
		return FormatterMarkdown
	}
	return FormatterPlainText
}

// seal encrypts plaintext under a key derived from secret and fresh
// salt/IV material.
func seal(secret, plaintext []byte, formatter string, meta Meta, iterations int) (*V2, error) {
	iv, err := crypto.RandomBytes(crypto.IVSize)
	if err != nil {
		return nil, fmt.Errorf("%w: iv: %v", crypto.ErrKeyDerivation, err)
	}
	salt, err := crypto.RandomBytes(crypto.SaltSize)
	if err != nil {
		return nil, fmt.Errorf("%w: salt: %v", crypto.ErrKeyDerivation, err)
	}

	key, err := crypto.DeriveKey(secret, salt, iterations)
	if err != nil {
		return nil, err
	}

	adata := AData{
		Cipher: CipherParams{
			IV:          crypto.ToBase64(iv),
			Salt:        crypto.ToBase64(salt),
			Iterations:  iterations,
			KeySize:     crypto.KeySizeBits,
			TagSize:     crypto.TagSizeBits,
			Algorithm:   crypto.AlgorithmAES,
			Mode:        crypto.ModeGCM,
			Compression: crypto.CompressionNone,
		},
		Formatter: formatter,
	}

	aad, err := adata.AAD()
	if err != nil {
		return nil, fmt.Errorf("marshal adata: %w", err) //coverage:ignore
	}

	ciphertext, err := crypto.Seal(key, iv, plaintext, aad)
	if err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}

	return &V2{
		AData: adata,
		CT:    crypto.ToBase64(ciphertext),
		Meta:  meta,
	}, nil
}
