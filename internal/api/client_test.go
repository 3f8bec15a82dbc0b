package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewClient_RequiresBaseURL(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Error("expected error for empty base URL")
	}
}

func TestNewClient_DefaultValues(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "https://paste.example/"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if client.baseURL != "https://paste.example" {
		t.Errorf("baseURL = %s, want trailing slash trimmed", client.baseURL)
	}
	if client.httpClient == nil || client.httpClient.Timeout != DefaultTimeout {
		t.Errorf("httpClient timeout not defaulted to %v", DefaultTimeout)
	}
	if client.maxRetries != DefaultMaxRetries {
		t.Errorf("maxRetries = %d, want %d", client.maxRetries, DefaultMaxRetries)
	}
	if client.retryDelay != DefaultRetryDelay {
		t.Errorf("retryDelay = %v, want %v", client.retryDelay, DefaultRetryDelay)
	}
}

func TestNew_WithOptions(t *testing.T) {
	custom := &http.Client{Timeout: 99 * time.Second}

	client, err := New("https://paste.example",
		WithRetries(4),
		WithRetryDelay(5*time.Millisecond),
		WithHTTPClient(custom),
		WithRetryOn([]int{500}),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if client.maxRetries != 4 {
		t.Errorf("maxRetries = %d, want 4", client.maxRetries)
	}
	if client.retryDelay != 5*time.Millisecond {
		t.Errorf("retryDelay = %v", client.retryDelay)
	}
	if client.HTTPClient() != custom {
		t.Error("WithHTTPClient did not set the custom client")
	}
	if !client.retryConfig().RetryableOn(500) || client.retryConfig().RetryableOn(503) {
		t.Error("WithRetryOn did not replace the retryable status set")
	}
}

func TestWithTimeout(t *testing.T) {
	client, err := New("https://paste.example", WithTimeout(3*time.Second))
	if err != nil {
		t.Fatal(err)
	}
	if client.httpClient.Timeout != 3*time.Second {
		t.Errorf("timeout = %v, want 3s", client.httpClient.Timeout)
	}
}

func TestClient_Do_Headers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get(RequestedWithHeader); got != RequestedWithValue {
			t.Errorf("%s = %q, want %q", RequestedWithHeader, got, RequestedWithValue)
		}
		if r.Method == http.MethodPost && r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", r.Header.Get("Content-Type"))
		}
		if r.URL.Path != "/" {
			t.Errorf("path = %q, want /", r.URL.Path)
		}
		fmt.Fprint(w, `{"status":0}`)
	}))
	defer server.Close()

	client, _ := New(server.URL)

	if _, err := client.do(context.Background(), http.MethodGet, "abc", nil); err != nil {
		t.Fatalf("GET error = %v", err)
	}
	if _, err := client.do(context.Background(), http.MethodPost, "", map[string]string{"a": "b"}); err != nil {
		t.Fatalf("POST error = %v", err)
	}
}

func TestClient_Do_WithBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["pasteid"] != "abc" {
			t.Errorf("pasteid = %q", body["pasteid"])
		}
		fmt.Fprint(w, `{"status":0,"id":"abc"}`)
	}))
	defer server.Close()

	client, _ := New(server.URL)
	body, err := client.do(context.Background(), http.MethodPost, "", map[string]string{"pasteid": "abc"})
	if err != nil {
		t.Fatalf("do() error = %v", err)
	}
	if string(body) != `{"status":0,"id":"abc"}` {
		t.Errorf("body = %s", body)
	}
}

func TestClient_Do_Retry(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"status":0}`)
	}))
	defer server.Close()

	client, _ := NewClient(Config{
		BaseURL:    server.URL,
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	})

	if _, err := client.do(context.Background(), http.MethodGet, "abc", nil); err != nil {
		t.Fatalf("do() error = %v", err)
	}
	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

func TestClient_Do_NoRetryByDefault(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, _ := New(server.URL)
	_, err := client.do(context.Background(), http.MethodGet, "abc", nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 APIError, got %v", err)
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("attempts = %d, want 1", got)
	}
}

func TestClient_Do_NeverRetriesPost(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, _ := New(server.URL, WithRetries(5), WithRetryDelay(time.Millisecond))
	if _, err := client.do(context.Background(), http.MethodPost, "", map[string]int{"x": 1}); err == nil {
		t.Fatal("expected error for 503 response")
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("attempts = %d, want 1 (POST is never retried)", got)
	}
}

func TestClient_Do_RetriesNetworkErrors(t *testing.T) {
	var attempts int32
	transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		if atomic.AddInt32(&attempts, 1) < 2 {
			return nil, errors.New("connection reset")
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"status":0}`)),
			Header:     make(http.Header),
		}, nil
	})

	client, _ := New("https://paste.example",
		WithHTTPClient(&http.Client{Transport: transport}),
		WithRetries(2),
		WithRetryDelay(time.Millisecond),
	)

	if _, err := client.do(context.Background(), http.MethodGet, "abc", nil); err != nil {
		t.Fatalf("do() error = %v", err)
	}
	if got := atomic.LoadInt32(&attempts); got != 2 {
		t.Errorf("attempts = %d, want 2", got)
	}
}

func TestClient_Do_NetworkError(t *testing.T) {
	transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: connection refused")
	})

	client, _ := New("https://paste.example", WithHTTPClient(&http.Client{Transport: transport}))
	_, err := client.do(context.Background(), http.MethodGet, "abc", nil)

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %T: %v", err, err)
	}
	if netErr.URL != "https://paste.example/?abc" {
		t.Errorf("URL = %q", netErr.URL)
	}
	if netErr.Attempt != 1 {
		t.Errorf("Attempt = %d, want 1", netErr.Attempt)
	}
	if !IsRetryable(err) {
		t.Error("network errors should be retryable")
	}
}

func TestClient_Do_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":0}`)
	}))
	defer server.Close()

	client, _ := New(server.URL, WithRetries(3))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.do(ctx, http.MethodGet, "abc", nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if IsRetryable(err) {
		t.Error("cancelled requests should not be retryable")
	}
}

func TestClient_Do_ErrorResponse(t *testing.T) {
	tests := []struct {
		name        string
		statusCode  int
		body        string
		wantStatus  int
		wantMessage string
		wantErr     error
	}{
		{
			name:        "json status 1",
			statusCode:  200,
			body:        `{"status":1,"message":"Paste does not exist, has expired or has been deleted."}`,
			wantStatus:  200,
			wantMessage: "Paste does not exist, has expired or has been deleted.",
			wantErr:     ErrNotFound,
		},
		{
			name:        "http 404 plain text",
			statusCode:  404,
			body:        "missing\n",
			wantStatus:  404,
			wantMessage: "missing",
			wantErr:     ErrNotFound,
		},
		{
			name:        "http 400 json message",
			statusCode:  400,
			body:        `{"status":1,"message":"Invalid data."}`,
			wantStatus:  400,
			wantMessage: "Invalid data.",
			wantErr:     ErrRejected,
		},
		{
			name:        "rate limited",
			statusCode:  429,
			body:        `{"status":1,"message":"Please wait 10 seconds between each post."}`,
			wantStatus:  429,
			wantMessage: "Please wait 10 seconds between each post.",
			wantErr:     ErrRateLimited,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			client, _ := New(server.URL)
			_, err := client.do(context.Background(), http.MethodGet, "abc", nil)

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %T: %v", err, err)
			}
			if apiErr.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.wantStatus)
			}
			if apiErr.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMessage)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("errors.Is(err, %v) = false", tt.wantErr)
			}
		})
	}
}

func TestClient_Do_InvalidResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"html", "<!DOCTYPE html><html></html>"},
		{"missing status", `{"id":"abc"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			client, _ := New(server.URL)
			_, err := client.do(context.Background(), http.MethodGet, "abc", nil)
			if !errors.Is(err, ErrInvalidResponse) {
				t.Errorf("expected ErrInvalidResponse, got %v", err)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("x"), false},
		{"503", &APIError{StatusCode: 503}, true},
		{"429", &APIError{StatusCode: 429}, true},
		{"400", &APIError{StatusCode: 400}, false},
		{"not found", &APIError{StatusCode: 200, Status: 1, Message: "Paste does not exist"}, false},
		{"network", &NetworkError{Err: errors.New("reset")}, true},
		{"deadline", &NetworkError{Err: context.DeadlineExceeded}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// ExampleNew demonstrates creating a store client with functional options.
func ExampleNew() {
	client, err := New("https://privatebin.net/",
		WithRetries(2),
		WithTimeout(10*time.Second),
	)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Client created for: %s\n", client.BaseURL())
	// Output: Client created for: https://privatebin.net
}
