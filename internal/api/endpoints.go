package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/zenmark/zenshare/internal/envelope"
)

// ErrEmptyID is returned when a paste id is blank.
var ErrEmptyID = errors.New("paste id is required")

// CreatePaste uploads env and returns the store-assigned id and delete
// token. Uploads are never retried.
func (c *Client) CreatePaste(ctx context.Context, env *envelope.V2) (*CreatePasteResponse, error) {
	if env == nil {
		return nil, envelope.ErrInvalidEnvelope
	}

	body, err := c.do(ctx, http.MethodPost, "", env)
	if err != nil {
		return nil, err
	}

	var resp CreatePasteResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if resp.ID == "" {
		return nil, fmt.Errorf("%w: missing paste id", ErrInvalidResponse)
	}
	return &resp, nil
}

// GetPaste fetches the envelope stored under id. A store that reports the
// paste as missing yields an error matching ErrNotFound. A body that is not
// a valid envelope yields an error matching envelope.ErrInvalidEnvelope or
// envelope.ErrUnsupportedVersion.
func (c *Client) GetPaste(ctx context.Context, id string) (*envelope.V2, error) {
	if id == "" {
		return nil, ErrEmptyID
	}

	body, err := c.do(ctx, http.MethodGet, url.QueryEscape(id), nil)
	if err != nil {
		return nil, err
	}

	env, err := envelope.DecodeV2(body)
	if err != nil {
		return nil, fmt.Errorf("decode paste %s: %w", id, err)
	}
	return env, nil
}

// DeletePaste removes id using the token returned by CreatePaste.
func (c *Client) DeletePaste(ctx context.Context, id, deleteToken string) error {
	if id == "" {
		return ErrEmptyID
	}
	if deleteToken == "" {
		return fmt.Errorf("%w: delete token is required", ErrRejected)
	}

	_, err := c.do(ctx, http.MethodPost, "", &DeletePasteRequest{
		PasteID:     id,
		DeleteToken: deleteToken,
	})
	return err
}
