package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/hdnotes/internal/auth/domain"
	"github.com/aussiebroadwan/hdnotes/internal/auth/store"
	"github.com/aussiebroadwan/hdnotes/pkg/jwtx"
	"github.com/aussiebroadwan/hdnotes/pkg/slogx"
)

// TokenService mints and checks session tokens. Tokens are never stored;
// a valid signature and an unexpired exp claim are the whole session.
type TokenService struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Store    store.Store
	Issuer   string
	TTL      time.Duration

	// Now overrides the minting clock in tests.
	Now func() time.Time
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Mint signs a session token carrying a snapshot of u.
func (s *TokenService) Mint(u domain.User) (string, time.Time, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	claims := jwtx.NewSessionClaims(u.ID, u.Email, u.Name, s.Issuer, ttl, s.now())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}

	return token, claims.ExpiresAt.Time, nil
}

// Authenticate verifies token and resolves the identity it was minted for
// by its email claim, so renames and deletions show up immediately. A token
// whose subject no longer matches the identity under that email (account
// deleted and signed up again) is treated as a missing identity.
func (s *TokenService) Authenticate(ctx context.Context, token string) (domain.User, jwtx.Claims, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		slogx.FromContext(ctx).Debug("session token rejected", slog.String("error", err.Error()))
		return domain.User{}, jwtx.Claims{}, wrapKind(ErrUnauthenticated, err)
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, claims.Email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.User{}, jwtx.Claims{}, ErrIdentityNotFound
	case err != nil:
		return domain.User{}, jwtx.Claims{}, fmt.Errorf("resolve identity: %w", err)
	}

	if user.ID != claims.Subject {
		return domain.User{}, jwtx.Claims{}, ErrIdentityNotFound
	}

	return user, claims, nil
}
