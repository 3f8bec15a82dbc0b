package zenshare

import (
	"errors"
	"net/url"
	"testing"
)

func TestIsShareRoute(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"https://zenmark.site/share?p=abc#key", true},
		{"/share?p=abc#key", true},
		{"/share?p=abc&x=1#key", true},
		{"/share?p=abc", false},
		{"/share#key", false},
		{"/share?p=#key", false},
		{"/shared?p=abc#key", false},
		{"/share/?p=abc#key", false},
		{"/?abc#key", false},
	}

	for _, tt := range tests {
		u, err := url.Parse(tt.raw)
		if err != nil {
			t.Fatal(err)
		}
		if got := IsShareRoute(u); got != tt.want {
			t.Errorf("IsShareRoute(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}

	if IsShareRoute(nil) {
		t.Error("IsShareRoute(nil) = true")
	}
}

func TestGetShareParams(t *testing.T) {
	u, _ := url.Parse("https://zenmark.site/share?p=f468483c313401e8#6MYQUNFmpGAQzkLmdvLhbJZ3iFGkvVYfxsqDCU4eZvZx")
	params, ok := GetShareParams(u)
	if !ok {
		t.Fatal("GetShareParams() ok = false")
	}
	if params.PasteID != "f468483c313401e8" {
		t.Errorf("PasteID = %q", params.PasteID)
	}
	if params.EncodedKey != "6MYQUNFmpGAQzkLmdvLhbJZ3iFGkvVYfxsqDCU4eZvZx" {
		t.Errorf("EncodedKey = %q", params.EncodedKey)
	}

	u, _ = url.Parse("/notes/1")
	if _, ok := GetShareParams(u); ok {
		t.Error("GetShareParams() accepted a non-share route")
	}
}

func TestParseShareURL(t *testing.T) {
	params, err := ParseShareURL("  /share?p=a%26b#key  ")
	if err != nil {
		t.Fatalf("ParseShareURL() error = %v", err)
	}
	if params.PasteID != "a&b" || params.EncodedKey != "key" {
		t.Errorf("params = %+v", params)
	}

	for _, raw := range []string{"", "not a link", "https://zenmark.site/notes", "%zz"} {
		_, err := ParseShareURL(raw)
		if !errors.Is(err, ErrInvalidShareLink) {
			t.Errorf("ParseShareURL(%q) error = %v, want ErrInvalidShareLink", raw, err)
		}
		var shareErr *ShareError
		if errors.As(err, &shareErr) && shareErr.Message != MsgInvalidShareLink {
			t.Errorf("Message = %q", shareErr.Message)
		}
	}
}

func TestBuildShareURL(t *testing.T) {
	tests := []struct {
		origin, id, key, want string
	}{
		{"https://zenmark.site", "abc", "K", "https://zenmark.site/share?p=abc#K"},
		{"https://zenmark.site/", "abc", "K", "https://zenmark.site/share?p=abc#K"},
		{"", "abc", "K", "/share?p=abc#K"},
		{"", "a&b", "K", "/share?p=a%26b#K"},
	}

	for _, tt := range tests {
		got := buildShareURL(tt.origin, tt.id, tt.key)
		if got != tt.want {
			t.Errorf("buildShareURL(%q, %q, %q) = %q, want %q", tt.origin, tt.id, tt.key, got, tt.want)
		}

		params, err := ParseShareURL(got)
		if err != nil || params.PasteID != tt.id || params.EncodedKey != tt.key {
			t.Errorf("ParseShareURL(%q) = %+v, %v", got, params, err)
		}
	}
}
