package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/hdnotes/internal/auth/domain"
	"github.com/aussiebroadwan/hdnotes/internal/auth/store"
	"github.com/aussiebroadwan/hdnotes/pkg/idx"
)

// NoteService manages the notes owned by an authenticated identity. Every
// call is scoped to userID; another user's note looks exactly like a
// missing one.
type NoteService struct {
	Store store.Store

	// Now overrides the clock in tests.
	Now func() time.Time
}

func (s *NoteService) List(ctx context.Context, userID string) ([]domain.Note, error) {
	notes, err := s.Store.Notes().ListNotesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (s *NoteService) Create(ctx context.Context, userID, title, content string) (domain.Note, error) {
	title, content, err := validateNote(title, content)
	if err != nil {
		return domain.Note{}, err
	}

	now := clock(s.Now)
	n := domain.Note{
		ID:        idx.NewAt(now).String(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Store.Notes().CreateNote(ctx, n); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Note{}, ErrIdentityNotFound
		}
		return domain.Note{}, fmt.Errorf("create note: %w", err)
	}
	return n, nil
}

func (s *NoteService) Update(ctx context.Context, userID, id, title, content string) (domain.Note, error) {
	title, content, err := validateNote(title, content)
	if err != nil {
		return domain.Note{}, err
	}
	if _, err := idx.Parse(id); err != nil {
		return domain.Note{}, ErrNotFound
	}

	n, err := s.Store.Notes().UpdateNote(ctx, domain.Note{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Content:   content,
		UpdatedAt: clock(s.Now),
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.Note{}, ErrNotFound
	case err != nil:
		return domain.Note{}, fmt.Errorf("update note: %w", err)
	}
	return n, nil
}

func (s *NoteService) Delete(ctx context.Context, userID, id string) error {
	if _, err := idx.Parse(id); err != nil {
		return ErrNotFound
	}

	err := s.Store.Notes().DeleteNote(ctx, userID, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case err != nil:
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

func validateNote(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	if title == "" || strings.TrimSpace(content) == "" {
		return "", "", validation("title and content are required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "", "", validation("title must be at most %d characters", MaxTitleLength)
	}
	if len(content) > MaxContentLength {
		return "", "", validation("content must be at most %d bytes", MaxContentLength)
	}
	return title, content, nil
}
