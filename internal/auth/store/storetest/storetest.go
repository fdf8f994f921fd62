// Package storetest holds the behavioural contract every store driver must
// pass. Driver tests call Run (or RunCredentials for credential-only
// backends) with a factory returning a fresh, migrated store.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/hdnotes/internal/auth/domain"
	"github.com/aussiebroadwan/hdnotes/internal/auth/store"
	"github.com/aussiebroadwan/hdnotes/pkg/idx"
	"github.com/stretchr/testify/require"
)

// Base is the instant the suites work relative to. It tracks the wall clock
// so backends with their own expiry (Mongo TTL indexes, Redis PEXPIREAT)
// keep the records alive, and is millisecond aligned so every backend
// round-trips it exactly.
var Base = time.Now().UTC().Truncate(time.Millisecond)

// Run exercises the full Store contract.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("Notes", func(t *testing.T) { testNotes(t, newStore(t)) })
	RunCredentials(t, func(t *testing.T) store.Credentials { return newStore(t).Credentials() })
}

// RunCredentials exercises only the Credentials contract.
func RunCredentials(t *testing.T, newCreds func(t *testing.T) store.Credentials) {
	t.Run("Credentials/ReplaceKeepsOnlyLatest", func(t *testing.T) { testReplace(t, newCreds(t)) })
	t.Run("Credentials/ConsumeIsSingleUse", func(t *testing.T) { testSingleUse(t, newCreds(t)) })
	t.Run("Credentials/ConsumeRespectsExpiry", func(t *testing.T) { testExpiry(t, newCreds(t)) })
	t.Run("Credentials/ConsumeIsScopedToEmail", func(t *testing.T) { testScopedToEmail(t, newCreds(t)) })
	t.Run("Credentials/ConcurrentConsume", func(t *testing.T) { testConcurrentConsume(t, newCreds(t)) })
	t.Run("Credentials/DeleteAndReap", func(t *testing.T) { testDeleteAndReap(t, newCreds(t)) })
}

// NewCredential builds a credential for email expiring ttl after Base.
func NewCredential(email, code string, ttl time.Duration) domain.Credential {
	return domain.Credential{
		ID:        idx.New().String(),
		Email:     email,
		Code:      code,
		ExpiresAt: Base.Add(ttl),
		CreatedAt: Base,
	}
}

// NewUser builds a user with a fresh id.
func NewUser(email, name string) domain.User {
	verified := Base
	return domain.User{
		ID:              idx.New().String(),
		Email:           email,
		Name:            name,
		EmailVerifiedAt: &verified,
		CreatedAt:       Base,
		UpdatedAt:       Base,
	}
}

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()

	u := NewUser("ada@example.com", "Ada")
	require.NoError(t, s.Users().CreateUser(ctx, u))

	got, err := s.Users().GetUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, "Ada", got.Name)
	require.NotNil(t, got.EmailVerifiedAt)
	require.True(t, Base.Equal(*got.EmailVerifiedAt))
	require.True(t, Base.Equal(got.CreatedAt))

	byID, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", byID.Email)

	// Email is case-sensitive as stored.
	_, err = s.Users().GetUserByEmail(ctx, "ADA@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	dup := NewUser("ada@example.com", "Impostor")
	require.ErrorIs(t, s.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)

	renamed, err := s.Users().UpdateUserName(ctx, u.ID, "Countess", Base.Add(time.Minute))
	require.NoError(t, err)
	require.Equal(t, "Countess", renamed.Name)
	require.True(t, Base.Add(time.Minute).Equal(renamed.UpdatedAt))

	_, err = s.Users().UpdateUserName(ctx, "missing", "x", Base)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Users().DeleteUser(ctx, u.ID))
	_, err = s.Users().GetUserByID(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, s.Users().DeleteUser(ctx, u.ID), store.ErrNotFound)
}

func testNotes(t *testing.T, s store.Store) {
	ctx := context.Background()

	owner := NewUser("owner@example.com", "Owner")
	other := NewUser("other@example.com", "Other")
	require.NoError(t, s.Users().CreateUser(ctx, owner))
	require.NoError(t, s.Users().CreateUser(ctx, other))

	first := domain.Note{ID: idx.New().String(), UserID: owner.ID, Title: "first", Content: "a", CreatedAt: Base, UpdatedAt: Base}
	second := domain.Note{ID: idx.New().String(), UserID: owner.ID, Title: "second", Content: "b", CreatedAt: Base.Add(time.Second), UpdatedAt: Base.Add(time.Second)}
	require.NoError(t, s.Notes().CreateNote(ctx, first))
	require.NoError(t, s.Notes().CreateNote(ctx, second))

	notes, err := s.Notes().ListNotesByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	require.Equal(t, "second", notes[0].Title, "newest first")

	empty, err := s.Notes().ListNotesByUser(ctx, other.ID)
	require.NoError(t, err)
	require.Empty(t, empty)

	// Someone else's note is invisible.
	_, err = s.Notes().UpdateNote(ctx, domain.Note{ID: first.ID, UserID: other.ID, Title: "x", Content: "y", UpdatedAt: Base})
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, s.Notes().DeleteNote(ctx, other.ID, first.ID), store.ErrNotFound)

	updated, err := s.Notes().UpdateNote(ctx, domain.Note{ID: first.ID, UserID: owner.ID, Title: "edited", Content: "z", UpdatedAt: Base.Add(time.Hour)})
	require.NoError(t, err)
	require.Equal(t, "edited", updated.Title)
	require.True(t, Base.Equal(updated.CreatedAt))
	require.True(t, Base.Add(time.Hour).Equal(updated.UpdatedAt))

	require.NoError(t, s.Notes().DeleteNote(ctx, owner.ID, second.ID))
	notes, err = s.Notes().ListNotesByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)

	// Deleting the owner takes their notes along.
	require.NoError(t, s.Users().DeleteUser(ctx, owner.ID))
	notes, err = s.Notes().ListNotesByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Empty(t, notes)
}

func testReplace(t *testing.T, c store.Credentials) {
	ctx := context.Background()
	now := Base.Add(time.Minute)

	require.NoError(t, c.ReplaceCredential(ctx, NewCredential("ada@example.com", "111111", 10*time.Minute)))
	require.NoError(t, c.ReplaceCredential(ctx, NewCredential("ada@example.com", "222222", 10*time.Minute)))

	_, err := c.ConsumeCredential(ctx, "ada@example.com", "111111", now)
	require.ErrorIs(t, err, store.ErrNotFound, "superseded code must not verify")

	got, err := c.ConsumeCredential(ctx, "ada@example.com", "222222", now)
	require.NoError(t, err)
	require.Equal(t, "222222", got.Code)
	require.Equal(t, "ada@example.com", got.Email)
	require.True(t, Base.Add(10*time.Minute).Equal(got.ExpiresAt))
}

func testSingleUse(t *testing.T, c store.Credentials) {
	ctx := context.Background()
	now := Base.Add(time.Minute)

	require.NoError(t, c.ReplaceCredential(ctx, NewCredential("ada@example.com", "000042", 10*time.Minute)))

	_, err := c.ConsumeCredential(ctx, "ada@example.com", "000042", now)
	require.NoError(t, err)

	_, err = c.ConsumeCredential(ctx, "ada@example.com", "000042", now)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testExpiry(t *testing.T, c store.Credentials) {
	ctx := context.Background()

	require.NoError(t, c.ReplaceCredential(ctx, NewCredential("ada@example.com", "123456", 10*time.Minute)))

	// Exactly at expiry the code is dead.
	_, err := c.ConsumeCredential(ctx, "ada@example.com", "123456", Base.Add(10*time.Minute))
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, c.ReplaceCredential(ctx, NewCredential("ada@example.com", "123456", 10*time.Minute)))
	_, err = c.ConsumeCredential(ctx, "ada@example.com", "123456", Base.Add(10*time.Minute-time.Millisecond))
	require.NoError(t, err)
}

func testScopedToEmail(t *testing.T, c store.Credentials) {
	ctx := context.Background()
	now := Base.Add(time.Minute)

	require.NoError(t, c.ReplaceCredential(ctx, NewCredential("ada@example.com", "123456", 10*time.Minute)))
	require.NoError(t, c.ReplaceCredential(ctx, NewCredential("bob@example.com", "654321", 10*time.Minute)))

	_, err := c.ConsumeCredential(ctx, "bob@example.com", "123456", now)
	require.ErrorIs(t, err, store.ErrNotFound)

	// A wrong guess does not burn the right code.
	_, err = c.ConsumeCredential(ctx, "ada@example.com", "999999", now)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = c.ConsumeCredential(ctx, "ada@example.com", "123456", now)
	require.NoError(t, err)
	_, err = c.ConsumeCredential(ctx, "bob@example.com", "654321", now)
	require.NoError(t, err)
}

func testConcurrentConsume(t *testing.T, c store.Credentials) {
	ctx := context.Background()
	now := Base.Add(time.Minute)

	const workers = 8
	for round := range 5 {
		email := "race" + string(rune('a'+round)) + "@example.com"
		require.NoError(t, c.ReplaceCredential(ctx, NewCredential(email, "777777", 10*time.Minute)))

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			successes int
			misses    int
		)
		start := make(chan struct{})
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				_, err := c.ConsumeCredential(ctx, email, "777777", now)
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					successes++
				case errors.Is(err, store.ErrNotFound):
					misses++
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		close(start)
		wg.Wait()

		require.Equal(t, 1, successes, "exactly one consumer must win")
		require.Equal(t, workers-1, misses)
	}
}

func testDeleteAndReap(t *testing.T, c store.Credentials) {
	ctx := context.Background()

	require.NoError(t, c.ReplaceCredential(ctx, NewCredential("gone@example.com", "111111", 10*time.Minute)))
	require.NoError(t, c.DeleteCredentials(ctx, "gone@example.com"))
	_, err := c.ConsumeCredential(ctx, "gone@example.com", "111111", Base)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Deleting nothing is fine.
	require.NoError(t, c.DeleteCredentials(ctx, "nobody@example.com"))

	require.NoError(t, c.ReplaceCredential(ctx, NewCredential("old@example.com", "111111", time.Minute)))
	require.NoError(t, c.ReplaceCredential(ctx, NewCredential("new@example.com", "222222", time.Hour)))

	n, err := c.DeleteExpiredCredentials(ctx, Base.Add(5*time.Minute))
	require.NoError(t, err)
	require.LessOrEqual(t, n, int64(1))

	_, err = c.ConsumeCredential(ctx, "new@example.com", "222222", Base.Add(5*time.Minute))
	require.NoError(t, err)
}
