package authsdk

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// ErrSessionExpired is returned before a request is sent with a token the
// client already knows to be expired.
var ErrSessionExpired = errors.New("authsdk: session expired, sign in again")

// Session holds a session token and performs authenticated operations.
type Session struct {
	client *SDKClient

	mu        sync.RWMutex
	token     string
	expiresAt time.Time
	subject   Subject
}

// Token returns the raw bearer token.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// ExpiresAt returns when the token stops being accepted.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// Subject returns the identity snapshot taken at sign in, updated by Me and
// Rename.
func (s *Session) Subject() Subject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subject
}

func (s *Session) validToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.expiresAt.IsZero() && !time.Now().Before(s.expiresAt) {
		return "", ErrSessionExpired
	}
	return s.token, nil
}

func (s *Session) remember(u *UserResponse) {
	s.mu.Lock()
	s.subject = Subject{ID: u.ID, Name: u.Name, Email: u.Email}
	s.mu.Unlock()
}

// ============================================================================
// Identity
// ============================================================================

// Me returns the current identity as the server resolves it now.
func (s *Session) Me(ctx context.Context) (*UserResponse, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodGet, "/v1/me", nil)
	if err != nil {
		return nil, err
	}

	var u UserResponse
	if err := decodeJSON(resp, &u, http.StatusOK); err != nil {
		return nil, err
	}
	s.remember(&u)
	return &u, nil
}

// Rename changes the display name.
func (s *Session) Rename(ctx context.Context, name string) (*UserResponse, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPatch, "/v1/me", RenameRequest{Name: name})
	if err != nil {
		return nil, err
	}

	var u UserResponse
	if err := decodeJSON(resp, &u, http.StatusOK); err != nil {
		return nil, err
	}
	s.remember(&u)
	return &u, nil
}

// DeleteAccount removes the identity and all its notes. The session is
// useless afterwards.
func (s *Session) DeleteAccount(ctx context.Context) error {
	resp, err := s.doAuthJSON(ctx, http.MethodDelete, "/v1/me", nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// ============================================================================
// Notes
// ============================================================================

// ListNotes returns the caller's notes, newest first.
func (s *Session) ListNotes(ctx context.Context) ([]NoteResponse, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodGet, "/v1/notes", nil)
	if err != nil {
		return nil, err
	}

	var out NotesResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Notes, nil
}

// CreateNote stores a new note.
func (s *Session) CreateNote(ctx context.Context, req NoteRequest) (*NoteResponse, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPost, "/v1/notes", req)
	if err != nil {
		return nil, err
	}

	var n NoteResponse
	if err := decodeJSON(resp, &n, http.StatusCreated); err != nil {
		return nil, err
	}
	return &n, nil
}

// UpdateNote replaces the title and content of a note.
func (s *Session) UpdateNote(ctx context.Context, id string, req NoteRequest) (*NoteResponse, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPut, "/v1/notes/"+url.PathEscape(id), req)
	if err != nil {
		return nil, err
	}

	var n NoteResponse
	if err := decodeJSON(resp, &n, http.StatusOK); err != nil {
		return nil, err
	}
	return &n, nil
}

// DeleteNote removes a note.
func (s *Session) DeleteNote(ctx context.Context, id string) error {
	resp, err := s.doAuthJSON(ctx, http.MethodDelete, "/v1/notes/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
