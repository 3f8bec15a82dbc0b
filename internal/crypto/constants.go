package crypto

const (
	// MasterKeySize is the size of the per-share master key in bytes.
	MasterKeySize = 32

	// IVSize is the size of the AES-GCM initialization vector in bytes.
	// PrivateBin uses 128-bit IVs rather than the 96-bit GCM default.
	IVSize = 16
	// SaltSize is the size of the PBKDF2 salt in bytes.
	SaltSize = 8

	// KeySize is the size of a derived AES-256 key in bytes.
	KeySize = 32
	// KeySizeBits is KeySize expressed in bits, as written to the paste adata.
	KeySizeBits = KeySize * 8
	// TagSize is the size of the AES-GCM authentication tag in bytes.
	TagSize = 16
	// TagSizeBits is TagSize expressed in bits, as written to the paste adata.
	TagSizeBits = TagSize * 8

	// DefaultIterations is the PBKDF2 work factor used for new pastes.
	DefaultIterations = 100000
	// MinIterations is the lowest work factor accepted when sealing.
	MinIterations = 100000
	// MaxIterations bounds the work factor accepted from remote adata so a
	// hostile paste cannot pin the CPU.
	MaxIterations = 10000000
)

// Algorithm identifiers carried in the paste adata tuple.
const (
	AlgorithmAES    = "aes"
	ModeGCM         = "gcm"
	CompressionNone = "none"
)

// Base58Alphabet is the Bitcoin Base58 alphabet. It omits 0, O, I and l.
const Base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
