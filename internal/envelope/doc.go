// Package envelope builds and parses the encrypted paste format stored on a
// PrivateBin-compatible service.
//
// A version 2 envelope looks like:
//
//	{
//	  "v": 2,
//	  "adata": [[iv, salt, iterations, 256, 128, "aes", "gcm", "none"], "markdown", 0, 0],
//	  "ct": "<base64 ciphertext || tag>",
//	  "meta": {"expire": "1week"}
//	}
//
// The adata array is serialized exactly as a browser's JSON.stringify would
// and bound to the ciphertext as AES-GCM additional data, so the store can
// read it but any change to it breaks decryption.
//
// Envelopes are a sum type keyed on "v": [Decode] returns an [Envelope] and
// callers switch on the concrete variant. Only [V2] exists today.
//
// The password overlay ([WrapPassword]/[UnwrapPassword]) seals the complete
// serialized inner envelope a second time under a password-derived key and
// returns an ordinary V2 envelope around it.
package envelope
