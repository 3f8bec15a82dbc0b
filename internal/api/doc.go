// Package api is the HTTP client for PrivateBin-compatible paste stores.
//
// Every request goes to the store root. Uploads and deletions POST a JSON
// body; reads GET "/?<id>". Each request carries the
// X-Requested-With: JSONHttpRequest header, without which PrivateBin
// serves its HTML front end instead of JSON.
//
// # Client Creation
//
//   - [NewClient]: struct-based configuration.
//   - [New]: functional options.
//
// # Retry Behavior
//
// Nothing is retried by default. When [Config.MaxRetries] is positive, GET
// requests that fail with a transport error or one of these statuses are
// retried with exponential backoff:
//
//   - 408 Request Timeout
//   - 429 Too Many Requests
//   - 502 Bad Gateway
//   - 503 Service Unavailable
//   - 504 Gateway Timeout
//
// POST requests are sent exactly once so an upload can never create two
// pastes.
//
// # Error Handling
//
// Store failures are returned as [*APIError], transport failures as
// [*NetworkError]. PrivateBin reports a missing paste with HTTP 200 and
// {"status":1,"message":"Paste does not exist, has expired or has been
// deleted."}, so [ErrNotFound] matches on the message as well as on 404:
//
//	if errors.Is(err, api.ErrNotFound) {
//	    // expired or deleted
//	}
//
// # Thread Safety
//
// [Client] is safe for concurrent use.
package api
