package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/hdnotes/internal/auth/domain"
)

const userColumns = `id, email, name, avatar_ref, email_verified_at, created_at, updated_at`

type usersRepo struct {
	db dbtx
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u                    domain.User
		verified             sql.NullInt64
		createdAt, updatedAt int64
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.AvatarRef, &verified, &createdAt, &updatedAt); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.EmailVerifiedAt = mapNullMillis(verified)
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Name, u.AvatarRef,
		mapOptionalMillis(u.EmailVerifiedAt),
		toMillis(u.CreatedAt), toMillis(u.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateUserName(ctx context.Context, id, name string, now time.Time) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`UPDATE users SET name = ?, updated_at = ? WHERE id = ? RETURNING `+userColumns,
		name, toMillis(now), id))
}

func (r *usersRepo) DeleteUser(ctx context.Context, id string) error {
	return mustAffect(r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id))
}
