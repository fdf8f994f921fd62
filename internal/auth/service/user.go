package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/hdnotes/internal/auth/domain"
	"github.com/aussiebroadwan/hdnotes/internal/auth/store"
	"github.com/aussiebroadwan/hdnotes/pkg/slogx"
)

type UserService struct {
	Store store.Store

	// Now overrides the clock in tests.
	Now func() time.Time
}

// CheckUser reports whether an identity exists for email. The UI uses it to
// choose between the signup and signin flows.
func (s *UserService) CheckUser(ctx context.Context, email string) (domain.User, bool, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return domain.User{}, false, err
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.User{}, false, nil
	case err != nil:
		return domain.User{}, false, fmt.Errorf("lookup identity: %w", err)
	}
	return u, true, nil
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrIdentityNotFound
	}
	return u, err
}

// Rename changes the display name. Tokens minted before the rename keep the
// old name in their claims but resolve to the new one.
func (s *UserService) Rename(ctx context.Context, userID, name string) (domain.User, error) {
	name, err := normalizeName(name)
	if err != nil {
		return domain.User{}, err
	}
	if name == "" {
		return domain.User{}, validation("name is required")
	}

	u, err := s.Store.Users().UpdateUserName(ctx, userID, name, clock(s.Now))
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.User{}, ErrIdentityNotFound
	case err != nil:
		return domain.User{}, fmt.Errorf("rename identity: %w", err)
	}

	slogx.FromContext(ctx).Info("identity renamed", slog.String("user_id", userID))
	return u, nil
}

// Delete removes the identity, its notes and any code still pending for its
// email.
func (s *UserService) Delete(ctx context.Context, u domain.User) error {
	err := s.Store.Users().DeleteUser(ctx, u.ID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrIdentityNotFound
	case err != nil:
		return fmt.Errorf("delete identity: %w", err)
	}

	if err := s.Store.Credentials().DeleteCredentials(ctx, u.Email); err != nil {
		return fmt.Errorf("delete credentials: %w", err)
	}

	slogx.FromContext(ctx).Info("identity deleted", slog.String("user_id", u.ID))
	return nil
}
