package cryptox

import (
	"crypto/rand"
	"fmt"
)

// SecretSize is the length of generated master secrets, 256 bits.
const SecretSize = 32

// GenerateSecret returns size random bytes from crypto/rand.
func GenerateSecret(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("cryptox: secret size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("cryptox: read random: %w", err)
	}
	return buf, nil
}

// MustGenerateSecret is like GenerateSecret but panics on error.
func MustGenerateSecret(size int) []byte {
	b, err := GenerateSecret(size)
	if err != nil {
		panic(err)
	}
	return b
}
