package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/hdnotes/internal/auth/domain"
	"github.com/aussiebroadwan/hdnotes/internal/auth/store"
	"github.com/aussiebroadwan/hdnotes/pkg/cryptox"
	"github.com/aussiebroadwan/hdnotes/pkg/idx"
	"github.com/aussiebroadwan/hdnotes/pkg/mailx"
	"github.com/aussiebroadwan/hdnotes/pkg/slogx"
)

// DefaultOTPTTL is how long an issued code can be redeemed.
const DefaultOTPTTL = 10 * time.Minute

type OTPService struct {
	Store  store.Store
	Mailer mailx.Sender
	Tokens *TokenService
	TTL    time.Duration

	// Now overrides the clock in tests.
	Now func() time.Time
}

// Session is the outcome of a successful verification.
type Session struct {
	User      domain.User
	Token     string
	ExpiresAt time.Time
}

func (s *OTPService) now() time.Time {
	return clock(s.Now)
}

func (s *OTPService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultOTPTTL
	}
	return s.TTL
}

// Issue checks the purpose precondition, replaces any pending code for the
// email with a fresh one and mails it. When mailing fails the new code stays
// redeemable and ErrDeliveryFailed is returned; issuing again replaces it.
func (s *OTPService) Issue(ctx context.Context, email, name string, purpose domain.Purpose) error {
	l := slogx.FromContext(ctx)

	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	name, err = normalizeName(name)
	if err != nil {
		return err
	}

	existing, err := s.Store.Users().GetUserByEmail(ctx, email)
	exists := err == nil
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("lookup identity: %w", err)
	}

	switch purpose {
	case domain.PurposeSignin:
		if !exists {
			return ErrIdentityNotFound
		}
		if name == "" {
			name = existing.Name
		}
	case domain.PurposeSignup:
		if exists {
			return ErrIdentityAlreadyExists
		}
	default:
		return validation("unknown purpose %q", purpose)
	}

	code, err := cryptox.GenerateNumericCode(cryptox.OTPDigits)
	if err != nil {
		return err
	}

	now := s.now()
	cred := domain.Credential{
		ID:        idx.NewAt(now).String(),
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(s.ttl()),
		CreatedAt: now,
	}
	if err := s.Store.Credentials().ReplaceCredential(ctx, cred); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}

	if err := s.Mailer.SendCode(ctx, email, code, name); err != nil {
		l.Error("otp delivery failed",
			slog.String("email", email),
			slog.String("purpose", purpose.String()),
			slog.String("error", err.Error()),
		)
		return wrapKind(ErrDeliveryFailed, err)
	}

	l.Info("otp issued",
		slog.String("email", email),
		slog.String("purpose", purpose.String()),
		slog.Time("expires_at", cred.ExpiresAt),
	)
	return nil
}

// Verify redeems (email, code) and returns a session. The credential is
// consumed by the store in one atomic step before anything else can fail,
// so a code never verifies twice. Every miss is ErrInvalidCredential.
func (s *OTPService) Verify(ctx context.Context, email, code, name string, purpose domain.Purpose) (Session, error) {
	l := slogx.FromContext(ctx)

	email, err := normalizeEmail(email)
	if err != nil {
		return Session{}, err
	}
	if code == "" {
		return Session{}, validation("code is required")
	}
	name, err = normalizeName(name)
	if err != nil {
		return Session{}, err
	}
	if purpose != domain.PurposeSignup && purpose != domain.PurposeSignin {
		return Session{}, validation("unknown purpose %q", purpose)
	}

	if !cryptox.IsNumericCode(code, cryptox.OTPDigits) {
		l.Info("otp verification failed", slog.String("email", email), slog.String("reason", "malformed"))
		return Session{}, ErrInvalidCredential
	}

	now := s.now()
	if _, err := s.Store.Credentials().ConsumeCredential(ctx, email, code, now); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("otp verification failed", slog.String("email", email))
			return Session{}, ErrInvalidCredential
		}
		return Session{}, fmt.Errorf("consume credential: %w", err)
	}

	var user domain.User
	switch purpose {
	case domain.PurposeSignup:
		user, err = s.createIdentity(ctx, email, name, now)
	case domain.PurposeSignin:
		user, err = s.Store.Users().GetUserByEmail(ctx, email)
		if errors.Is(err, store.ErrNotFound) {
			err = ErrIdentityNotFound
		}
	}
	if err != nil {
		return Session{}, err
	}

	token, expiresAt, err := s.Tokens.Mint(user)
	if err != nil {
		return Session{}, err
	}

	l.Info("otp verified",
		slog.String("email", email),
		slog.String("user_id", user.ID),
		slog.String("purpose", purpose.String()),
	)
	return Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *OTPService) createIdentity(ctx context.Context, email, name string, now time.Time) (domain.User, error) {
	if name == "" {
		name = domain.DefaultUserName
	}

	verified := now
	u := domain.User{
		ID:              idx.NewAt(now).String(),
		Email:           email,
		Name:            name,
		EmailVerifiedAt: &verified,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrIdentityAlreadyExists
		}
		return domain.User{}, fmt.Errorf("create identity: %w", err)
	}
	return u, nil
}
