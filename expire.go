package zenshare

import "time"

// Expiration is a paste lifetime token understood by PrivateBin.
type Expiration string

// Expiration tokens offered to users.
const (
	Expire5Min   Expiration = "5min"
	Expire10Min  Expiration = "10min"
	Expire1Hour  Expiration = "1hour"
	Expire1Day   Expiration = "1day"
	Expire1Week  Expiration = "1week"
	Expire1Month Expiration = "1month"
	ExpireNever  Expiration = "never"
)

// DefaultExpiration is used when no expiration is given.
const DefaultExpiration = Expire1Week

// ExpirationOption pairs a token with its display label.
type ExpirationOption struct {
	Value Expiration
	Label string
}

var expirationOptions = []ExpirationOption{
	{Expire5Min, "5 minutes"},
	{Expire10Min, "10 minutes"},
	{Expire1Hour, "1 hour"},
	{Expire1Day, "1 day"},
	{Expire1Week, "1 week"},
	{Expire1Month, "1 month"},
	{ExpireNever, "Never"},
}

var expirationDurations = map[Expiration]time.Duration{
	Expire5Min:   5 * time.Minute,
	Expire10Min:  10 * time.Minute,
	Expire1Hour:  time.Hour,
	Expire1Day:   24 * time.Hour,
	Expire1Week:  7 * 24 * time.Hour,
	Expire1Month: 30 * 24 * time.Hour,
	ExpireNever:  0,
}

// Expirations returns the expiration choices in display order.
func Expirations() []ExpirationOption {
	out := make([]ExpirationOption, len(expirationOptions))
	copy(out, expirationOptions)
	return out
}

// Valid reports whether e is a known token.
func (e Expiration) Valid() bool {
	_, ok := expirationDurations[e]
	return ok
}

// Label returns the display label, or the raw token if unknown.
func (e Expiration) Label() string {
	for _, opt := range expirationOptions {
		if opt.Value == e {
			return opt.Label
		}
	}
	return string(e)
}

// Duration returns the lifetime for e. Never and unknown tokens return 0.
func (e Expiration) Duration() time.Duration {
	return expirationDurations[e]
}
