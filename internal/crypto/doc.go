// Package crypto provides the cryptographic primitives behind zenshare
// links. It covers key stretching, authenticated encryption and the byte
// codecs used on the wire and in URLs.
//
// # Algorithm Suite
//
//   - PBKDF2-HMAC-SHA-256: stretches either a 32-byte random master key or
//     a human password, plus an 8-byte salt, into a 256-bit key. The
//     iteration count is stored next to the ciphertext.
//
//   - AES-256-GCM with a 128-bit IV and a 128-bit tag: encrypts the paste
//     and authenticates the serialized adata as additional data. This is
//     the suite PrivateBin clients use, so pastes interoperate with the
//     PrivateBin web client.
//
// # Key Handling
//
// [DeriveKey] returns an opaque [Key]. It wraps the initialized AEAD only;
// the derived bytes are zeroed before returning and there is no accessor
// that exports them.
//
// IVs and salts MUST be fresh for every encryption. [RandomBytes] reads from
// crypto/rand and reports [ErrRandomSource] rather than falling back to a
// weaker source.
//
// # Failure Reporting
//
// [Open] fails closed. Tag mismatch, truncated input, a modified AAD and a
// wrong key all return [ErrAuthentication] and no plaintext, so callers
// cannot build an oracle that tells these cases apart.
//
// # Encodings
//
//   - [EncodeBase58]/[DecodeBase58]: Bitcoin-alphabet Base58 for the master
//     key in the URL fragment. Leading zero bytes round-trip as leading '1's.
//
//   - [ToBase64]/[FromBase64]: standard padded base64 for binary fields
//     inside the JSON envelope.
package crypto
