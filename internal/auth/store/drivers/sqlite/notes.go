package sqlite

import (
	"context"

	"github.com/aussiebroadwan/hdnotes/internal/auth/domain"
)

const noteColumns = `id, user_id, title, content, created_at, updated_at`

type notesRepo struct {
	db dbtx
}

func scanNote(row rowScanner) (domain.Note, error) {
	var (
		n                    domain.Note
		createdAt, updatedAt int64
	)
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &createdAt, &updatedAt); err != nil {
		return domain.Note{}, mapNotFound(err)
	}
	n.CreatedAt = fromMillis(createdAt)
	n.UpdatedAt = fromMillis(updatedAt)
	return n, nil
}

func (r *notesRepo) CreateNote(ctx context.Context, n domain.Note) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (`+noteColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, n.Title, n.Content, toMillis(n.CreatedAt), toMillis(n.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *notesRepo) ListNotesByUser(ctx context.Context, userID string) ([]domain.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []domain.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *notesRepo) UpdateNote(ctx context.Context, n domain.Note) (domain.Note, error) {
	return scanNote(r.db.QueryRowContext(ctx,
		`UPDATE notes SET title = ?, content = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?
		 RETURNING `+noteColumns,
		n.Title, n.Content, toMillis(n.UpdatedAt), n.ID, n.UserID))
}

func (r *notesRepo) DeleteNote(ctx context.Context, userID, id string) error {
	return mustAffect(r.db.ExecContext(ctx,
		`DELETE FROM notes WHERE id = ? AND user_id = ?`, id, userID))
}
