package zenshare

import (
	"net/http"
	"testing"
	"time"
)

func TestOptions(t *testing.T) {
	t.Run("WithHost", func(t *testing.T) {
		cfg := &clientConfig{}
		WithHost("https://paste.example")(cfg)
		if cfg.Host != "https://paste.example" {
			t.Errorf("Host = %s", cfg.Host)
		}
	})

	t.Run("WithOrigin", func(t *testing.T) {
		cfg := &clientConfig{Origin: DefaultOrigin}
		WithOrigin("")(cfg)
		if cfg.Origin != "" {
			t.Errorf("Origin = %s, want empty", cfg.Origin)
		}
	})

	t.Run("WithHTTPClient", func(t *testing.T) {
		cfg := &clientConfig{}
		hc := &http.Client{Timeout: 5 * time.Second}
		WithHTTPClient(hc)(cfg)
		if cfg.httpClient != hc {
			t.Error("httpClient not set")
		}
	})

	t.Run("WithTimeout", func(t *testing.T) {
		cfg := &clientConfig{}
		WithTimeout(10 * time.Second)(cfg)
		if cfg.Timeout != 10*time.Second {
			t.Errorf("Timeout = %v", cfg.Timeout)
		}
	})

	t.Run("WithRetries", func(t *testing.T) {
		cfg := &clientConfig{}
		WithRetries(3)(cfg)
		WithRetryDelay(50 * time.Millisecond)(cfg)
		if cfg.Retries != 3 || cfg.retryDelay != 50*time.Millisecond {
			t.Errorf("Retries = %d, retryDelay = %v", cfg.Retries, cfg.retryDelay)
		}
	})

	t.Run("WithIterations", func(t *testing.T) {
		cfg := &clientConfig{}
		WithIterations(200000)(cfg)
		if cfg.Iterations != 200000 {
			t.Errorf("Iterations = %d", cfg.Iterations)
		}
	})

	t.Run("WithLogger", func(t *testing.T) {
		cfg := &clientConfig{}
		logger := &recordLogger{}
		WithLogger(logger)(cfg)
		if cfg.logger != logger {
			t.Error("logger not set")
		}
	})

	t.Run("WithStateHook", func(t *testing.T) {
		cfg := &clientConfig{}
		called := false
		WithStateHook(func(State) { called = true })(cfg)
		cfg.stateHook(StateIdle)
		if !called {
			t.Error("stateHook not set")
		}
	})
}

func TestShareOptions(t *testing.T) {
	cfg := &shareConfig{Expiration: DefaultExpiration}
	WithExpiration(Expire5Min)(cfg)
	WithPassword("hunter2")(cfg)
	WithShareStateHook(func(State) {})(cfg)

	if cfg.Expiration != Expire5Min {
		t.Errorf("Expiration = %s", cfg.Expiration)
	}
	if cfg.Password != "hunter2" {
		t.Errorf("Password = %q", cfg.Password)
	}
	if cfg.stateHook == nil {
		t.Error("stateHook not set")
	}

	fetch := &fetchConfig{}
	WithFetchPassword("hunter2")(fetch)
	if fetch.password != "hunter2" {
		t.Errorf("password = %q", fetch.password)
	}
}

func TestShareConfig_Validation(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Fatal(err)
	}

	for _, opt := range Expirations() {
		cfg := &shareConfig{Expiration: opt.Value, Format: FormatMarkdown}
		if err := client.validate.Struct(cfg); err != nil {
			t.Errorf("expiration %s rejected: %v", opt.Value, err)
		}
	}
	for _, f := range []Format{FormatMarkdown, FormatPlainText} {
		cfg := &shareConfig{Expiration: DefaultExpiration, Format: f}
		if err := client.validate.Struct(cfg); err != nil {
			t.Errorf("format %s rejected: %v", f, err)
		}
	}
}

func TestBuildAPIClient(t *testing.T) {
	t.Run("timeout", func(t *testing.T) {
		c, err := buildAPIClient(&clientConfig{Host: "https://paste.example/", Timeout: 3 * time.Second})
		if err != nil {
			t.Fatal(err)
		}
		if c.BaseURL() != "https://paste.example" {
			t.Errorf("BaseURL() = %s", c.BaseURL())
		}
		if c.HTTPClient().Timeout != 3*time.Second {
			t.Errorf("Timeout = %v", c.HTTPClient().Timeout)
		}
	})

	t.Run("http client wins", func(t *testing.T) {
		hc := &http.Client{Timeout: time.Second}
		c, err := buildAPIClient(&clientConfig{Host: "https://paste.example", Timeout: time.Minute, httpClient: hc})
		if err != nil {
			t.Fatal(err)
		}
		if c.HTTPClient() != hc {
			t.Error("custom HTTP client replaced")
		}
	})

	t.Run("missing host", func(t *testing.T) {
		if _, err := buildAPIClient(&clientConfig{}); err == nil {
			t.Error("expected error")
		}
	})
}
