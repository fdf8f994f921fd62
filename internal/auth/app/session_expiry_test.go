package app

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/hdnotes/internal/auth/domain"
	"github.com/aussiebroadwan/hdnotes/internal/auth/service"
	"github.com/aussiebroadwan/hdnotes/pkg/authsdk"
	"github.com/aussiebroadwan/hdnotes/pkg/idx"
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

// TestWiredSessionExpiryIsExact runs the token service and router exactly as
// New wires them: a token is accepted up to, but not at, its exp.
func TestWiredSessionExpiryIsExact(t *testing.T) {
	ctx := context.Background()

	application, err := New(testConfig(t))
	require.NoError(t, err)

	clk := &testClock{t: time.Now().UTC().Truncate(time.Second)}
	application.clock = clk.Now

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(func() {
		srv.Close()
		require.NoError(t, application.Shutdown())
	})

	now := clk.Now()
	user := domain.User{
		ID:        idx.NewAt(now).String(),
		Email:     "ada@example.com",
		Name:      "Ada",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, application.db.Users().CreateUser(ctx, user))

	token, expiresAt, err := application.tokenService.Mint(user)
	require.NoError(t, err)
	require.True(t, now.Add(application.cfg.SessionTTL).Equal(expiresAt))

	session := authsdk.NewSDKClient(srv.URL).NewSessionFromToken(token, expiresAt,
		authsdk.Subject{ID: user.ID, Name: user.Name, Email: user.Email})

	clk.Set(expiresAt.Add(-time.Millisecond))
	got, _, err := application.tokenService.Authenticate(ctx, token)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	me, err := session.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, user.Email, me.Email)

	for _, at := range []time.Time{expiresAt, expiresAt.Add(10 * time.Second)} {
		clk.Set(at)

		_, _, err = application.tokenService.Authenticate(ctx, token)
		require.ErrorIs(t, err, service.ErrUnauthenticated, "accepted at %s", at)

		_, err = session.Me(ctx)
		require.ErrorIs(t, err, authsdk.ErrUnauthenticated, "accepted over http at %s", at)
	}
}
