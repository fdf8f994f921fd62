package postgres

import (
	"context"

	"github.com/aussiebroadwan/hdnotes/internal/auth/domain"
	"github.com/jackc/pgx/v5"
)

const noteColumns = `id, user_id, title, content, created_at, updated_at`

type notesRepo struct {
	q querier
}

func scanNote(row pgx.Row) (domain.Note, error) {
	var n domain.Note
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return domain.Note{}, mapPgErr(err)
	}
	n.CreatedAt = utc(n.CreatedAt)
	n.UpdatedAt = utc(n.UpdatedAt)
	return n, nil
}

func (r *notesRepo) CreateNote(ctx context.Context, n domain.Note) error {
	_, err := r.q.Exec(ctx, `
		insert into notes (`+noteColumns+`)
		values ($1, $2, $3, $4, $5, $6)`,
		n.ID, n.UserID, n.Title, n.Content, n.CreatedAt, n.UpdatedAt,
	)
	return mapPgErr(err)
}

func (r *notesRepo) ListNotesByUser(ctx context.Context, userID string) ([]domain.Note, error) {
	rows, err := r.q.Query(ctx, `
		select `+noteColumns+` from notes
		where user_id = $1
		order by created_at desc, id desc`, userID)
	if err != nil {
		return nil, mapPgErr(err)
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
	return scanNote(r.q.QueryRow(ctx, `
		update notes set title = $1, content = $2, updated_at = $3
		where id = $4 and user_id = $5
		returning `+noteColumns,
		n.Title, n.Content, n.UpdatedAt, n.ID, n.UserID))
}

func (r *notesRepo) DeleteNote(ctx context.Context, userID, id string) error {
	return mustAffect(r.q.Exec(ctx, `delete from notes where id = $1 and user_id = $2`, id, userID))
}
