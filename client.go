package zenshare

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/zenmark/zenshare/internal/api"
	"github.com/zenmark/zenshare/internal/crypto"
	"github.com/zenmark/zenshare/internal/envelope"
)

// ShareLink is the result of CreateShareLink.
type ShareLink struct {
	// URL is origin + "/share?p=" + PasteID + "#" + EncodedKey.
	URL string
	// PasteID is the store-assigned object id.
	PasteID string
	// EncodedKey is the Base58 master key carried in the URL fragment.
	EncodedKey string
	// DeleteToken lets the creator remove the paste early.
	DeleteToken string
	// Expiration is the lifetime token sent to the store.
	Expiration Expiration
	// PasswordProtected records that viewers need a password. The stored
	// paste does not reveal this, so callers must convey it themselves.
	PasswordProtected bool
}

// Client creates and opens share links. It holds no per-share state and is
// safe for concurrent use.
type Client struct {
	apiClient  *api.Client
	origin     string
	iterations int
	logger     Logger
	stateHook  StateHook
	validate   *validator.Validate
	now        func() time.Time
}

// New creates a client. Options are validated; invalid values yield a
// *ShareError matching ErrInvalidOptions.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		Host:       DefaultHost,
		Origin:     DefaultOrigin,
		Iterations: DefaultIterations,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, invalidOptions(newValidationError(err))
	}

	apiClient, err := buildAPIClient(cfg)
	if err != nil {
		return nil, invalidOptions(err) //coverage:ignore
	}

	logger := cfg.logger
	if logger == nil {
		logger = nopLogger{}
	}

	return &Client{
		apiClient:  apiClient,
		origin:     cfg.Origin,
		iterations: cfg.Iterations,
		logger:     logger,
		stateHook:  cfg.stateHook,
		validate:   validate,
		now:        time.Now,
	}, nil
}

// Host returns the paste store URL.
func (c *Client) Host() string {
	return c.apiClient.BaseURL()
}

// CreateShareLink encrypts note under a fresh master key, uploads it and
// returns the share link. The upload is attempted once; calling again
// starts over with new keys.
func (c *Client) CreateShareLink(ctx context.Context, note Note, opts ...ShareOption) (*ShareLink, error) {
	cfg := &shareConfig{
		Expiration: DefaultExpiration,
		Format:     normalizeFormat(note.Format),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	transition := func(s State) {
		c.logger.Debugf("share: %s", s)
		if c.stateHook != nil {
			c.stateHook(s)
		}
		if cfg.stateHook != nil {
			cfg.stateHook(s)
		}
	}
	fail := func(err *ShareError) (*ShareLink, error) {
		transition(StateFailed)
		return nil, err
	}

	transition(StateIdle)
	if err := c.validate.Struct(cfg); err != nil {
		return fail(invalidOptions(newValidationError(err)))
	}

	transition(StateEncrypting)
	content := composeContent(note.Title, note.Content)
	masterKey, env, err := envelope.Build(content, string(cfg.Format), string(cfg.Expiration), c.iterations)
	if err != nil {
		c.logger.Errorf("share: encryption failed")
		return fail(wrapCreateError(err))
	}
	defer clear(masterKey)

	if cfg.Password != "" {
		env, err = envelope.WrapPassword(env, cfg.Password, c.iterations)
		if err != nil {
			c.logger.Errorf("share: password layer failed")
			return fail(wrapCreateError(err))
		}
	}

	transition(StateUploading)
	resp, err := c.apiClient.CreatePaste(ctx, env)
	if err != nil {
		c.logger.Warnf("share: upload failed: %v", err)
		return fail(wrapCreateError(err))
	}

	encodedKey := crypto.EncodeBase58(masterKey)
	link := &ShareLink{
		URL:               buildShareURL(c.origin, resp.ID, encodedKey),
		PasteID:           resp.ID,
		EncodedKey:        encodedKey,
		DeleteToken:       resp.DeleteToken,
		Expiration:        cfg.Expiration,
		PasswordProtected: cfg.Password != "",
	}

	c.logger.Infof("share: created paste %s (expires: %s)", resp.ID, cfg.Expiration)
	transition(StateReady)
	return link, nil
}

// FetchSharedNote downloads and decrypts the paste pasteID with the Base58
// master key from the link fragment.
func (c *Client) FetchSharedNote(ctx context.Context, pasteID, encodedKey string, opts ...FetchOption) (*SharedNote, error) {
	cfg := &fetchConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if pasteID == "" || encodedKey == "" {
		return nil, &ShareError{Kind: ErrInvalidShareLink, Message: MsgInvalidShareLink}
	}

	masterKey, err := crypto.DecodeBase58(encodedKey)
	if err != nil {
		c.logger.Debugf("fetch %s: undecodable key", pasteID)
		return nil, wrapFetchError(err)
	}
	defer clear(masterKey)

	env, err := c.apiClient.GetPaste(ctx, pasteID)
	if err != nil {
		c.logger.Warnf("fetch %s: %v", pasteID, err)
		return nil, wrapFetchError(err)
	}
	ttl := env.Meta.TimeToLive

	if cfg.password != "" {
		env, err = envelope.UnwrapPassword(env, cfg.password)
		if err != nil {
			c.logger.Debugf("fetch %s: decryption failed", pasteID)
			return nil, wrapFetchError(err)
		}
	}

	paste, err := envelope.Open(env, masterKey)
	if err != nil {
		c.logger.Debugf("fetch %s: decryption failed", pasteID)
		return nil, wrapFetchError(err)
	}

	title, body := splitTitle(paste.Content)
	note := &SharedNote{
		Title:   title,
		Content: body,
		Format:  Format(paste.Format),
	}
	if ttl > 0 {
		note.TimeToLive = time.Duration(ttl) * time.Second
		note.ExpiresAt = c.now().Add(note.TimeToLive)
	}

	c.logger.Infof("fetch: opened paste %s", pasteID)
	return note, nil
}

// ResolveShareLink parses a share URL and fetches the note it points to.
func (c *Client) ResolveShareLink(ctx context.Context, rawURL string, opts ...FetchOption) (*SharedNote, error) {
	params, err := ParseShareURL(rawURL)
	if err != nil {
		return nil, err
	}
	return c.FetchSharedNote(ctx, params.PasteID, params.EncodedKey, opts...)
}

// DeleteShareLink removes a paste using the delete token from its
// ShareLink.
func (c *Client) DeleteShareLink(ctx context.Context, pasteID, deleteToken string) error {
	if pasteID == "" {
		return &ShareError{Kind: ErrInvalidShareLink, Message: MsgInvalidShareLink}
	}
	if deleteToken == "" {
		return &ShareError{Kind: ErrInvalidOptions, Message: MsgDeleteFailed}
	}

	if err := c.apiClient.DeletePaste(ctx, pasteID, deleteToken); err != nil {
		c.logger.Warnf("delete %s: %v", pasteID, err)
		return wrapDeleteError(err)
	}

	c.logger.Infof("delete: removed paste %s", pasteID)
	return nil
}
