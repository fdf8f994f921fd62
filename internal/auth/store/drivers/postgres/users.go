package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/hdnotes/internal/auth/domain"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, name, avatar_ref, email_verified_at, created_at, updated_at`

type usersRepo struct {
	q querier
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.AvatarRef, &u.EmailVerifiedAt, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return domain.User{}, mapPgErr(err)
	}
	if u.EmailVerifiedAt != nil {
		v := utc(*u.EmailVerifiedAt)
		u.EmailVerifiedAt = &v
	}
	u.CreatedAt = utc(u.CreatedAt)
	u.UpdatedAt = utc(u.UpdatedAt)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.q.QueryRow(ctx, `select `+userColumns+` from users where id = $1`, id))
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.q.QueryRow(ctx, `select `+userColumns+` from users where email = $1`, email))
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.Exec(ctx, `
		insert into users (`+userColumns+`)
		values ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Email, u.Name, u.AvatarRef, u.EmailVerifiedAt, u.CreatedAt, u.UpdatedAt,
	)
	return mapPgErr(err)
}

func (r *usersRepo) UpdateUserName(ctx context.Context, id, name string, now time.Time) (domain.User, error) {
	return scanUser(r.q.QueryRow(ctx, `
		update users set name = $1, updated_at = $2
		where id = $3
		returning `+userColumns,
		name, now, id))
}

func (r *usersRepo) DeleteUser(ctx context.Context, id string) error {
	return mustAffect(r.q.Exec(ctx, `delete from users where id = $1`, id))
}
