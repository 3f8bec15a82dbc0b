package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxRetries is the default number of retries for idempotent
	// requests. Uploads are never retried.
	DefaultMaxRetries = 0
	// DefaultRetryDelay is the base delay between retries.
	DefaultRetryDelay = time.Second

	// RequestedWithHeader marks requests as JSON API calls. PrivateBin
	// answers with HTML unless it is present.
	RequestedWithHeader = "X-Requested-With"
	// RequestedWithValue is the value PrivateBin expects.
	RequestedWithValue = "JSONHttpRequest"

	maxResponseSize = 32 << 20
)

// Client is the HTTP client for a PrivateBin-compatible paste store.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	retryOn    []int
}

// Config configures a Client.
type Config struct {
	// BaseURL is the paste store root, e.g. https://privatebin.net.
	BaseURL string
	// HTTPClient overrides the default client (30s timeout).
	HTTPClient *http.Client
	// MaxRetries is the number of retries for idempotent GET requests.
	MaxRetries int
	// RetryDelay is the base delay for exponential backoff.
	RetryDelay time.Duration
	// RetryOn lists the HTTP status codes that trigger a retry.
	RetryOn []int
}

// NewClient creates a Client from a Config.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	retryDelay := cfg.RetryDelay
	if retryDelay == 0 {
		retryDelay = DefaultRetryDelay
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		maxRetries: cfg.MaxRetries,
		retryDelay: retryDelay,
		retryOn:    cfg.RetryOn,
	}, nil
}

// Option configures the API client.
type Option func(*Config)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPClient = &http.Client{Timeout: timeout}
	}
}

// WithRetries sets the number of retries for idempotent requests.
func WithRetries(retries int) Option {
	return func(c *Config) {
		c.MaxRetries = retries
	}
}

// WithRetryDelay sets the base retry delay.
func WithRetryDelay(delay time.Duration) Option {
	return func(c *Config) {
		c.RetryDelay = delay
	}
}

// WithRetryOn sets the HTTP status codes that trigger a retry.
func WithRetryOn(statusCodes []int) Option {
	return func(c *Config) {
		c.RetryOn = statusCodes
	}
}

// New creates a Client for baseURL using functional options.
func New(baseURL string, opts ...Option) (*Client, error) {
	cfg := Config{BaseURL: baseURL}
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewClient(cfg)
}

// BaseURL returns the paste store root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HTTPClient returns the underlying HTTP client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

func (c *Client) retryConfig() *RetryConfig {
	cfg := DefaultRetryConfig()
	cfg.MaxRetries = c.maxRetries
	cfg.BaseDelay = c.retryDelay
	if len(c.retryOn) > 0 {
		codes := c.retryOn
		cfg.RetryableOn = func(statusCode int) bool {
			for _, code := range codes {
				if code == statusCode {
					return true
				}
			}
			return false
		}
	}
	return cfg
}

// do sends a request to baseURL + "/" (+ "?" + query) and returns the body
// of a response whose JSON status is 0. Only idempotent requests are retried.
func (c *Client) do(ctx context.Context, method, query string, body interface{}) ([]byte, error) {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = data
	}

	target := c.baseURL + "/"
	if query != "" {
		target += "?" + query
	}

	retry := c.retryConfig()
	if !Idempotent(method) {
		retry.MaxRetries = 0
	}

	for attempt := 0; ; attempt++ {
		respBody, statusCode, err := c.roundTrip(ctx, method, target, payload)
		if err != nil {
			if ctx.Err() != nil || attempt >= retry.MaxRetries {
				return nil, &NetworkError{Err: err, URL: target, Attempt: attempt + 1}
			}
		} else if !retry.ShouldRetry(attempt, statusCode) {
			return checkResponse(statusCode, respBody)
		}

		if err := retry.Wait(ctx, attempt); err != nil {
			return nil, &NetworkError{Err: err, URL: target, Attempt: attempt + 1}
		}
	}
}

func (c *Client) roundTrip(ctx context.Context, method, target string, payload []byte) ([]byte, int, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(RequestedWithHeader, RequestedWithValue)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}

	return data, resp.StatusCode, nil
}

// checkResponse turns HTTP failures and non-zero JSON status values into
// *APIError.
func checkResponse(statusCode int, body []byte) ([]byte, error) {
	var status struct {
		Status  *int   `json:"status"`
		Message string `json:"message"`
	}
	jsonErr := json.Unmarshal(body, &status)

	if statusCode >= 400 {
		msg := status.Message
		if jsonErr != nil || msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		return nil, &APIError{StatusCode: statusCode, Status: -1, Message: msg}
	}

	if jsonErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, jsonErr)
	}
	if status.Status == nil {
		return nil, fmt.Errorf("%w: missing status", ErrInvalidResponse)
	}
	if *status.Status != 0 {
		return nil, &APIError{StatusCode: statusCode, Status: *status.Status, Message: status.Message}
	}

	return body, nil
}

// IsRetryable reports whether err is worth retrying at the caller level.
func IsRetryable(err error) bool {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return !errors.Is(netErr.Err, context.Canceled) && !errors.Is(netErr.Err, context.DeadlineExceeded)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return DefaultRetryConfig().RetryableOn(apiErr.StatusCode)
	}
	return false
}
