package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

// randReader is the source of all key, salt and IV material.
var randReader io.Reader = rand.Reader

// RandomBytes returns n bytes from the secure random source.
func RandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(randReader, buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomSource, err)
	}
	return buf, nil
}
