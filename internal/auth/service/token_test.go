package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/hdnotes/internal/auth/domain"
	"github.com/aussiebroadwan/hdnotes/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess := f.signUp(t, "ada@example.com", "Ada")

	user, claims, err := f.tokens.Authenticate(ctx, sess.Token)
	require.NoError(t, err)
	require.Equal(t, sess.User.ID, user.ID)
	require.Equal(t, sess.User.ID, claims.Subject)
	require.Equal(t, "ada@example.com", claims.Email)
	require.Equal(t, "Ada", claims.Name)
	require.Equal(t, testIssuer, claims.Issuer)
}

func TestTokenReflectsRename(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess := f.signUp(t, "ada@example.com", "Ada")

	_, err := f.users.Rename(ctx, sess.User.ID, "Countess Lovelace")
	require.NoError(t, err)

	user, claims, err := f.tokens.Authenticate(ctx, sess.Token)
	require.NoError(t, err)
	require.Equal(t, "Countess Lovelace", user.Name)
	require.Equal(t, "Ada", claims.Name, "claims are a snapshot")
}

func TestTokenExpiry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess := f.signUp(t, "ada@example.com", "Ada")

	f.clock.Advance(jwtx.DefaultSessionTTL - time.Second)
	_, _, err := f.tokens.Authenticate(ctx, sess.Token)
	require.NoError(t, err)

	f.clock.Advance(time.Second)
	_, _, err = f.tokens.Authenticate(ctx, sess.Token)
	require.ErrorIs(t, err, ErrUnauthenticated)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestTokenFromOtherKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess := f.signUp(t, "ada@example.com", "Ada")

	// Same kid, different secret.
	other := newTokenService(t, f.store, f.clock, "session-1", []byte("fedcba9876543210fedcba9876543210"))
	_, _, err := other.Authenticate(ctx, sess.Token)
	require.ErrorIs(t, err, ErrUnauthenticated)

	forged, _, err := other.Mint(sess.User)
	require.NoError(t, err)
	_, _, err = f.tokens.Authenticate(ctx, forged)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestTokenGarbage(t *testing.T) {
	f := newFixture(t)

	for _, tok := range []string{"", "abc", "a.b.c"} {
		_, _, err := f.tokens.Authenticate(context.Background(), tok)
		require.ErrorIs(t, err, ErrUnauthenticated, "token %q", tok)
	}
}

func TestTokenForDeletedIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess := f.signUp(t, "ada@example.com", "Ada")

	require.NoError(t, f.users.Delete(ctx, sess.User))
	_, _, err := f.tokens.Authenticate(ctx, sess.Token)
	require.ErrorIs(t, err, ErrIdentityNotFound)

	// A new identity under the same email does not inherit old tokens.
	fresh := f.signUp(t, "ada@example.com", "Ada II")
	_, _, err = f.tokens.Authenticate(ctx, sess.Token)
	require.ErrorIs(t, err, ErrIdentityNotFound)

	user, _, err := f.tokens.Authenticate(ctx, fresh.Token)
	require.NoError(t, err)
	require.Equal(t, "Ada II", user.Name)
}

func TestMintDefaultTTL(t *testing.T) {
	f := newFixture(t)
	f.tokens.TTL = 0

	_, exp, err := f.tokens.Mint(domain.User{ID: "u1", Email: "a@b.c", Name: "A"})
	require.NoError(t, err)
	require.True(t, f.clock.Now().Add(jwtx.DefaultSessionTTL).Equal(exp))
}
