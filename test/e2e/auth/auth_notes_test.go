package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/hdnotes/pkg/authsdk"
)

// TestNotesLifecycle creates, lists, updates and deletes notes and checks
// they are invisible to other identities.
func TestNotesLifecycle(t *testing.T) {
	s := setupStack(t)
	ctx := t.Context()

	alice := s.signUp(t, "alice@example.com", "Alice")
	eve := s.signUp(t, "eve@example.com", "Eve")

	first, err := alice.CreateNote(ctx, authsdk.NoteRequest{Title: "Groceries", Content: "milk"})
	require.NoError(t, err)
	second, err := alice.CreateNote(ctx, authsdk.NoteRequest{Title: "Ideas", Content: "notes app"})
	require.NoError(t, err)

	notes, err := alice.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	require.Equal(t, second.ID, notes[0].ID, "newest note first")

	updated, err := alice.UpdateNote(ctx, first.ID, authsdk.NoteRequest{Title: "Groceries", Content: "milk, eggs"})
	require.NoError(t, err)
	require.Equal(t, "milk, eggs", updated.Content)

	_, err = eve.UpdateNote(ctx, first.ID, authsdk.NoteRequest{Title: "mine", Content: "now"})
	require.ErrorIs(t, err, authsdk.ErrNotFound)
	require.ErrorIs(t, eve.DeleteNote(ctx, first.ID), authsdk.ErrNotFound)

	eveNotes, err := eve.ListNotes(ctx)
	require.NoError(t, err)
	require.Empty(t, eveNotes)

	require.NoError(t, alice.DeleteNote(ctx, first.ID))
	notes, err = alice.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)

	_, err = alice.CreateNote(ctx, authsdk.NoteRequest{Title: "", Content: "x"})
	require.ErrorIs(t, err, authsdk.ErrValidation)
}
