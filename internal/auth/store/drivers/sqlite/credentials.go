package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/hdnotes/internal/auth/domain"
)

type credentialsRepo struct {
	db dbtx
}

func (r *credentialsRepo) ReplaceCredential(ctx context.Context, c domain.Credential) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO credentials (id, email, code, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (email) DO UPDATE SET
			id         = excluded.id,
			code       = excluded.code,
			expires_at = excluded.expires_at,
			created_at = excluded.created_at`,
		c.ID, c.Email, c.Code, toMillis(c.ExpiresAt), toMillis(c.CreatedAt),
	)
	return err
}

// ConsumeCredential is a single DELETE ... RETURNING so two concurrent
// callers can never both see the row.
func (r *credentialsRepo) ConsumeCredential(
	ctx context.Context,
	email, code string,
	now time.Time,
) (domain.Credential, error) {
	var (
		c                    domain.Credential
		expiresAt, createdAt int64
	)
	err := r.db.QueryRowContext(ctx, `
		DELETE FROM credentials
		WHERE email = ? AND code = ? AND expires_at > ?
		RETURNING id, email, code, expires_at, created_at`,
		email, code, toMillis(now),
	).Scan(&c.ID, &c.Email, &c.Code, &expiresAt, &createdAt)
	if err != nil {
		return domain.Credential{}, mapNotFound(err)
	}
	c.ExpiresAt = fromMillis(expiresAt)
	c.CreatedAt = fromMillis(createdAt)
	return c, nil
}

func (r *credentialsRepo) DeleteCredentials(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE email = ?`, email)
	return err
}

func (r *credentialsRepo) DeleteExpiredCredentials(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE expires_at <= ?`, toMillis(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
