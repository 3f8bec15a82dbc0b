// Package pastetest provides an in-memory paste store that speaks the
// PrivateBin v2 JSON API.
//
// It implements paste creation, retrieval by "/?<id>", deletion by token,
// expiry with time_to_live reporting and burn-after-reading. Requests without
// the X-Requested-With: JSONHttpRequest header get an HTML page, as with a
// real PrivateBin instance.
//
//	store, ts := pastetest.Start(t)
//	client, _ := zenshare.New(zenshare.WithHost(ts.URL))
//
// The same server backs the "zenshare dev-store" command.
package pastetest
