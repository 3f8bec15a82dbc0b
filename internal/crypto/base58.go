package crypto

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// EncodeBase58 encodes bytes with the Bitcoin alphabet. Each leading zero
// byte becomes a leading '1'. The empty input encodes to the empty string.
func EncodeBase58(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return base58.Encode(data)
}

// DecodeBase58 reverses EncodeBase58.
func DecodeBase58(s string) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}
	data, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase58, err)
	}
	return data, nil
}
