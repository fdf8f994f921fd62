package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/hdnotes/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres, mongo) implement this and expose sub-repositories to keep
// concerns tidy and testable.
//
// There is no transaction API. Every mutation the OTP flow needs is a
// single atomic statement (upsert, conditional insert, find-and-delete).
type Store interface {
	Users() Users
	Credentials() Credentials
	Notes() Notes

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks a user up by the exact stored email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID). A second
	// insert for the same email fails with ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUserName sets the display name, bumps updated_at and returns the
	// updated row.
	UpdateUserName(ctx context.Context, id, name string, now time.Time) (domain.User, error)

	// DeleteUser removes the user and cascades to their notes.
	DeleteUser(ctx context.Context, id string) error
}

type Credentials interface {
	// ReplaceCredential stores c as the only credential for c.Email,
	// discarding any previous one in the same atomic operation.
	ReplaceCredential(ctx context.Context, c domain.Credential) error

	// ConsumeCredential atomically finds and deletes the credential for email
	// if its code matches and it is still live at now. Any miss (no
	// credential, wrong code, expired, already consumed) is ErrNotFound.
	ConsumeCredential(ctx context.Context, email, code string, now time.Time) (domain.Credential, error)

	// DeleteCredentials drops any pending credential for email.
	DeleteCredentials(ctx context.Context, email string) error

	// DeleteExpiredCredentials is housekeeping; it returns how many were removed.
	DeleteExpiredCredentials(ctx context.Context, now time.Time) (int64, error)
}

type Notes interface {
	// CreateNote inserts a note (id is provided by app via ULID).
	CreateNote(ctx context.Context, n domain.Note) error

	// ListNotesByUser returns the user's notes, newest first.
	ListNotesByUser(ctx context.Context, userID string) ([]domain.Note, error)

	// UpdateNote replaces title and content of a note owned by n.UserID.
	// A note owned by someone else is ErrNotFound.
	UpdateNote(ctx context.Context, n domain.Note) (domain.Note, error)

	// DeleteNote removes a note owned by userID.
	DeleteNote(ctx context.Context, userID, id string) error
}
