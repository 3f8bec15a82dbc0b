package zenshare

import (
	"net/url"
	"strings"
)

// Share route layout: <origin>/share?p=<paste id>#<base58 master key>.
const (
	SharePath  = "/share"
	ShareParam = "p"
)

// ShareParams are the two halves of a share link.
type ShareParams struct {
	PasteID    string
	EncodedKey string
}

// IsShareRoute reports whether u addresses a shared note: the share path, a
// non-empty p query parameter and a non-empty fragment.
func IsShareRoute(u *url.URL) bool {
	if u == nil || u.Path != SharePath {
		return false
	}
	return u.Query().Get(ShareParam) != "" && u.Fragment != ""
}

// GetShareParams extracts the paste id and encoded key from a share route.
func GetShareParams(u *url.URL) (ShareParams, bool) {
	if !IsShareRoute(u) {
		return ShareParams{}, false
	}
	return ShareParams{
		PasteID:    u.Query().Get(ShareParam),
		EncodedKey: u.Fragment,
	}, true
}

// ParseShareURL parses raw and extracts its share parameters. Failures are
// *ShareError values matching ErrInvalidShareLink.
func ParseShareURL(raw string) (ShareParams, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ShareParams{}, &ShareError{Kind: ErrInvalidShareLink, Message: MsgInvalidShareLink, Err: err}
	}

	params, ok := GetShareParams(u)
	if !ok {
		return ShareParams{}, &ShareError{Kind: ErrInvalidShareLink, Message: MsgInvalidShareLink}
	}
	return params, nil
}

// buildShareURL assembles the link. The key goes only into the fragment.
func buildShareURL(origin, pasteID, encodedKey string) string {
	return strings.TrimRight(origin, "/") + SharePath + "?" + ShareParam + "=" + url.QueryEscape(pasteID) + "#" + encodedKey
}
