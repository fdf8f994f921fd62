package jwtx

import (
	"errors"
	"fmt"
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	KID() string
	Sign(Claims) (string, error)
}

// HS256Signer signs tokens with HMAC SHA-256 under a named key.
type HS256Signer struct {
	kid string
	key []byte
}

// NewSignerHS256 creates an HS256 signer. The key should come out of a KDF,
// not straight from an environment variable.
func NewSignerHS256(kid string, key []byte) (*HS256Signer, error) {
	if kid == "" {
		return nil, errors.New("jwtx: empty kid")
	}
	if len(key) < MinKeySize {
		return nil, fmt.Errorf("%w: kid %q", ErrWeakKey, kid)
	}
	return &HS256Signer{kid: kid, key: slices.Clone(key)}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }
func (s *HS256Signer) KID() string { return s.kid }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}
