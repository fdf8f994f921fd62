package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/hdnotes/internal/auth/domain"
)

type credentialsRepo struct {
	q querier
}

func (r *credentialsRepo) ReplaceCredential(ctx context.Context, c domain.Credential) error {
	_, err := r.q.Exec(ctx, `
		insert into credentials (id, email, code, expires_at, created_at)
		values ($1, $2, $3, $4, $5)
		on conflict (email) do update
		set id = excluded.id,
		    code = excluded.code,
		    expires_at = excluded.expires_at,
		    created_at = excluded.created_at`,
		c.ID, c.Email, c.Code, c.ExpiresAt, c.CreatedAt,
	)
	return mapPgErr(err)
}

// ConsumeCredential relies on row locking: a concurrent delete of the same
// row blocks, then finds nothing left to return.
func (r *credentialsRepo) ConsumeCredential(
	ctx context.Context,
	email, code string,
	now time.Time,
) (domain.Credential, error) {
	var c domain.Credential
	err := r.q.QueryRow(ctx, `
		delete from credentials
		where email = $1 and code = $2 and expires_at > $3
		returning id, email, code, expires_at, created_at`,
		email, code, now,
	).Scan(&c.ID, &c.Email, &c.Code, &c.ExpiresAt, &c.CreatedAt)
	if err != nil {
		return domain.Credential{}, mapPgErr(err)
	}
	c.ExpiresAt = utc(c.ExpiresAt)
	c.CreatedAt = utc(c.CreatedAt)
	return c, nil
}

func (r *credentialsRepo) DeleteCredentials(ctx context.Context, email string) error {
	_, err := r.q.Exec(ctx, `delete from credentials where email = $1`, email)
	return mapPgErr(err)
}

func (r *credentialsRepo) DeleteExpiredCredentials(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `delete from credentials where expires_at <= $1`, now)
	if err != nil {
		return 0, mapPgErr(err)
	}
	return tag.RowsAffected(), nil
}
