package jwtx

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// MinKeySize is the smallest HMAC key accepted, matching the SHA-256 output.
const MinKeySize = 32

var (
	ErrNoKey   = errors.New("jwtx: key not found")
	ErrWeakKey = errors.New("jwtx: key shorter than 32 bytes")
)

// KeySet holds the HMAC keys accepted for verification, indexed by kid.
// The active signing key lives here too, alongside any retired keys that
// still have live tokens out in the wild.
type KeySet struct {
	mu   sync.RWMutex
	keys map[string][]byte
}

// NewKeySet returns an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{
		keys: make(map[string][]byte),
	}
}

// AddSigner registers the signer's key so tokens it mints verify.
func (k *KeySet) AddSigner(s *HS256Signer) error {
	return k.Add(s.kid, s.key)
}

// Add registers a verification key under kid. Re-adding a kid replaces it.
func (k *KeySet) Add(kid string, key []byte) error {
	if kid == "" {
		return errors.New("jwtx: empty kid")
	}
	if len(key) < MinKeySize {
		return fmt.Errorf("%w: kid %q", ErrWeakKey, kid)
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.keys[kid] = slices.Clone(key)
	return nil
}

// Get returns the key for the given kid.
func (k *KeySet) Get(kid string) ([]byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if key, ok := k.keys[kid]; ok {
		return key, nil
	}
	return nil, ErrNoKey
}

// KIDs returns the registered key ids in sorted order.
func (k *KeySet) KIDs() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	kids := make([]string, 0, len(k.keys))
	for kid := range k.keys {
		kids = append(kids, kid)
	}
	slices.Sort(kids)
	return kids
}

// IsReady returns true if the KeySet has at least one key loaded.
func (k *KeySet) IsReady() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.keys) > 0
}
