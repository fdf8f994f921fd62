package cryptox

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DerivedKeySize is the size of keys returned by DeriveKey (HS256 wants at
// least the hash size).
const DerivedKeySize = 32

// DeriveKey expands an operator supplied secret into a fixed size key bound
// to info. Different kids derive different keys from the same secret.
func DeriveKey(secret []byte, info string) ([]byte, error) {
	if len(secret) == 0 {
		return nil, errors.New("cryptox: empty secret")
	}

	key := make([]byte, DerivedKeySize)
	r := hkdf.New(sha256.New, secret, nil, []byte(info))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("cryptox: derive key: %w", err)
	}
	return key, nil
}
