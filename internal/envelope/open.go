package envelope

import (
	"encoding/json"
	"errors"

	"github.com/zenmark/zenshare/internal/crypto"
)

// Open decrypts a version 2 envelope with the master key from the share
// URL. Every failure matches ErrDecryption.
func Open(env *V2, masterKey []byte) (*Paste, error) {
	plaintext, err := openRaw(env, masterKey)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Paste *string `json:"paste"`
	}
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return nil, &DecryptionError{Stage: "payload", Err: err}
	}
	if payload.Paste == nil {
		return nil, &DecryptionError{Stage: "payload", Err: errors.New("missing paste field")}
	}

	return &Paste{
		Content: *payload.Paste,
		Format:  NormalizeFormat(env.AData.Formatter),
	}, nil
}

// openRaw authenticates and decrypts env.CT with a key derived from secret
// and the parameters in env.AData.
func openRaw(env *V2, secret []byte) ([]byte, error) {
	if env == nil {
		return nil, &DecryptionError{Stage: "params", Err: ErrInvalidEnvelope}
	}

	params := env.AData.Cipher
	if err := params.validate(); err != nil {
		return nil, &DecryptionError{Stage: "params", Err: err}
	}

	iv, err := crypto.FromBase64(params.IV)
	if err != nil {
		return nil, &DecryptionError{Stage: "params", Err: err}
	}
	salt, err := crypto.FromBase64(params.Salt)
	if err != nil {
		return nil, &DecryptionError{Stage: "params", Err: err}
	}
	ciphertext, err := crypto.FromBase64(env.CT)
	if err != nil {
		return nil, &DecryptionError{Stage: "params", Err: err}
	}

	key, err := crypto.DeriveKey(secret, salt, params.Iterations)
	if err != nil {
		return nil, &DecryptionError{Stage: "kdf", Err: err}
	}

	aad, err := env.AData.AAD()
	if err != nil {
		return nil, &DecryptionError{Stage: "params", Err: err} //coverage:ignore
	}

	plaintext, err := crypto.Open(key, iv, ciphertext, aad)
	if err != nil {
		return nil, &DecryptionError{Stage: "aes", Err: err}
	}

	return plaintext, nil
}
