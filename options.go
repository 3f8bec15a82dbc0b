package zenshare

import (
	"net/http"
	"time"

	"github.com/zenmark/zenshare/internal/api"
	"github.com/zenmark/zenshare/internal/crypto"
)

const (
	// DefaultHost is the public PrivateBin instance.
	DefaultHost = "https://privatebin.net"
	// DefaultOrigin is the application origin share links point to.
	DefaultOrigin = "https://zenmark.site"
	// DefaultIterations is the PBKDF2 iteration count for new shares.
	DefaultIterations = crypto.DefaultIterations
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	Host       string        `validate:"required,http_url"`
	Origin     string        `validate:"omitempty,http_url"`
	Iterations int           `validate:"min=100000,max=10000000"`
	Timeout    time.Duration `validate:"gte=0"`
	Retries    int           `validate:"gte=0,lte=10"`

	httpClient *http.Client
	retryDelay time.Duration
	logger     Logger
	stateHook  StateHook
}

// shareConfig holds configuration for a single CreateShareLink call.
type shareConfig struct {
	Expiration Expiration `validate:"oneof=5min 10min 1hour 1day 1week 1month never"`
	Format     Format     `validate:"oneof=markdown plaintext"`
	Password   string     `validate:"max=1024"`
	stateHook  StateHook
}

// fetchConfig holds configuration for a single fetch.
type fetchConfig struct {
	password string
}

// Option configures the client.
type Option func(*clientConfig)

// ShareOption configures CreateShareLink.
type ShareOption func(*shareConfig)

// FetchOption configures FetchSharedNote and ResolveShareLink.
type FetchOption func(*fetchConfig)

// WithHost sets the paste store URL.
func WithHost(host string) Option {
	return func(c *clientConfig) {
		c.Host = host
	}
}

// WithOrigin sets the application origin used in share URLs. An empty
// origin produces root-relative links ("/share?p=...").
func WithOrigin(origin string) Option {
	return func(c *clientConfig) {
		c.Origin = origin
	}
}

// WithHTTPClient sets a custom HTTP client. It takes precedence over
// WithTimeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout. Default: 30 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.Timeout = timeout
	}
}

// WithRetries sets how often a failed fetch is retried on transient errors.
// Uploads are never retried. Default: 0
func WithRetries(count int) Option {
	return func(c *clientConfig) {
		c.Retries = count
	}
}

// WithRetryDelay sets the base delay between fetch retries.
func WithRetryDelay(delay time.Duration) Option {
	return func(c *clientConfig) {
		c.retryDelay = delay
	}
}

// WithIterations sets the PBKDF2 iteration count for new shares.
// Default: 100000, the minimum accepted.
func WithIterations(n int) Option {
	return func(c *clientConfig) {
		c.Iterations = n
	}
}

// WithLogger sets the logger. Default: discard.
func WithLogger(logger Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithStateHook observes state transitions of every CreateShareLink call.
func WithStateHook(hook StateHook) Option {
	return func(c *clientConfig) {
		c.stateHook = hook
	}
}

// WithExpiration sets the paste lifetime. Default: 1week
func WithExpiration(e Expiration) ShareOption {
	return func(c *shareConfig) {
		c.Expiration = e
	}
}

// WithPassword adds a password layer. Viewers need the password in
// addition to the link.
func WithPassword(password string) ShareOption {
	return func(c *shareConfig) {
		c.Password = password
	}
}

// WithShareStateHook observes the state transitions of one call, in
// addition to any client-wide hook.
func WithShareStateHook(hook StateHook) ShareOption {
	return func(c *shareConfig) {
		c.stateHook = hook
	}
}

// WithFetchPassword supplies the password of a password-protected link.
func WithFetchPassword(password string) FetchOption {
	return func(c *fetchConfig) {
		c.password = password
	}
}

// buildAPIClient creates and configures an API client from the given config.
func buildAPIClient(cfg *clientConfig) (*api.Client, error) {
	apiOpts := []api.Option{
		api.WithRetries(cfg.Retries),
	}
	if cfg.httpClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(cfg.httpClient))
	} else if cfg.Timeout > 0 {
		apiOpts = append(apiOpts, api.WithTimeout(cfg.Timeout))
	}
	if cfg.retryDelay > 0 {
		apiOpts = append(apiOpts, api.WithRetryDelay(cfg.retryDelay))
	}

	return api.New(cfg.Host, apiOpts...)
}
