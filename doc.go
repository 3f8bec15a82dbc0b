// Package zenshare creates and opens end-to-end encrypted share links for
// notes, stored on a PrivateBin-compatible paste service.
//
// A note is encrypted locally with AES-256-GCM under a key derived by
// PBKDF2-SHA-256 from a fresh 32-byte master key. Only the ciphertext is
// uploaded. The master key travels in the URL fragment, Base58 encoded:
//
//	https://zenmark.site/share?p=<paste id>#<master key>
//
// Browsers never send fragments to servers, so neither the paste store nor
// the application server can read shared notes.
//
// Basic usage:
//
//	client, err := zenshare.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	link, err := client.CreateShareLink(ctx, zenshare.Note{
//	    Title:   "Todo",
//	    Content: "- buy milk",
//	}, zenshare.WithExpiration(zenshare.Expire1Day))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	note, err := client.ResolveShareLink(ctx, link.URL)
//	if err != nil {
//	    var shareErr *zenshare.ShareError
//	    if errors.As(err, &shareErr) {
//	        fmt.Println(shareErr.Message)
//	    }
//	    return
//	}
//	fmt.Println(note.Title, note.Content)
//
// Every failure is a [*ShareError] whose Message can be shown to users and
// whose Kind matches one of the package sentinels with errors.Is.
package zenshare
