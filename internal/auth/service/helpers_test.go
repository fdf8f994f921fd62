package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/hdnotes/internal/auth/store"
	"github.com/aussiebroadwan/hdnotes/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/hdnotes/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "hdnotes-test"

var testKey = []byte("0123456789abcdef0123456789abcdef")

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// fakeMailer remembers the last code sent to every address.
type fakeMailer struct {
	mu    sync.Mutex
	codes map[string]string
	names map[string]string
	sends int
	err   error
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{codes: map[string]string{}, names: map[string]string{}}
}

func (m *fakeMailer) SendCode(_ context.Context, to, code, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sends++
	m.codes[to] = code
	m.names[to] = name
	return m.err
}

func (m *fakeMailer) lastCode(t *testing.T, email string) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	code, ok := m.codes[email]
	require.True(t, ok, "no code sent to %s", email)
	return code
}

func (m *fakeMailer) fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

type fixture struct {
	store  store.Store
	clock  *fakeClock
	mailer *fakeMailer
	tokens *TokenService
	otp    *OTPService
	users  *UserService
	notes  *NoteService
}

func newTokenService(t *testing.T, s store.Store, clk *fakeClock, kid string, key []byte) *TokenService {
	t.Helper()

	signer, err := jwtx.NewSignerHS256(kid, key)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	return &TokenService{
		Signer:   signer,
		Verifier: jwtx.NewVerifierHS256(keys, jwtx.VerifyOptions{Issuer: testIssuer, Now: clk.Now}),
		Store:    s,
		Issuer:   testIssuer,
		TTL:      jwtx.DefaultSessionTTL,
		Now:      clk.Now,
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	clk := newFakeClock()
	mailer := newFakeMailer()
	tokens := newTokenService(t, s, clk, "session-1", testKey)

	return &fixture{
		store:  s,
		clock:  clk,
		mailer: mailer,
		tokens: tokens,
		otp: &OTPService{
			Store:  s,
			Mailer: mailer,
			Tokens: tokens,
			TTL:    DefaultOTPTTL,
			Now:    clk.Now,
		},
		users: &UserService{Store: s, Now: clk.Now},
		notes: &NoteService{Store: s, Now: clk.Now},
	}
}

// signUp runs the full signup flow and returns the session.
func (f *fixture) signUp(t *testing.T, email, name string) Session {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, f.otp.Issue(ctx, email, name, "signup"))
	sess, err := f.otp.Verify(ctx, email, f.mailer.lastCode(t, email), name, "signup")
	require.NoError(t, err)
	return sess
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var errSMTPDown = errors.New("smtp: connection refused")
