package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estatehub/listing-api/internal/core/domain"
)

const userColumns = `id, name, email, COALESCE(password_hash, ''), role,
	COALESCE(provider, ''), COALESCE(provider_id, ''), created_at, updated_at`

type UserRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewUserRepository(pool *pgxpool.Pool, queryTimeout time.Duration) *UserRepository {
	return &UserRepository{pool: pool, timeout: queryTimeout}
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.Provider, &u.ProviderID, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, provider, provider_id, created_at, updated_at)
		VALUES ($1, $2, lower($3), NULLIF($4, ''), $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.Provider, u.ProviderID, u.CreatedAt, u.UpdatedAt,
	)
	return mapError("insert user", err, domain.ErrUserNotFound)
}

func (r *UserRepository) findOne(ctx context.Context, op, where string, args ...any) (*domain.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	u, err := scanUser(r.pool.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE "+where, args...))
	if err != nil {
		return nil, mapError(op, err, domain.ErrUserNotFound)
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, "find user", "id = $1", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "find user by email", "lower(email) = lower($1)", email)
}

func (r *UserRepository) FindByProvider(ctx context.Context, provider, providerID string) (*domain.User, error) {
	return r.findOne(ctx, "find user by provider", "provider = $1 AND provider_id = $2", provider, providerID)
}

func (r *UserRepository) exec(ctx context.Context, op, sql string, args ...any) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return mapError(op, err, domain.ErrUserNotFound)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) LinkProvider(ctx context.Context, id, provider, providerID string) error {
	return r.exec(ctx, "link provider",
		"UPDATE users SET provider = $2, provider_id = $3, updated_at = now() WHERE id = $1",
		id, provider, providerID)
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at DESC, id ASC")
	if err != nil {
		return nil, mapError("list users", err, domain.ErrUserNotFound)
	}
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.User, error) {
		return scanUser(row)
	})
	if err != nil {
		return nil, mapError("scan users", err, domain.ErrUserNotFound)
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	return r.exec(ctx, "update user",
		"UPDATE users SET name = $2, email = lower($3), role = $4, updated_at = $5 WHERE id = $1",
		u.ID, u.Name, u.Email, u.Role, u.UpdatedAt)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	return r.exec(ctx, "update password",
		"UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1", id, hash)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, "delete user", "DELETE FROM users WHERE id = $1", id)
}

func (r *UserRepository) RegistrationStats(ctx context.Context, since time.Time) ([]domain.RegistrationStats, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT date_trunc('day', created_at AT TIME ZONE 'UTC') AS day,
			count(*),
			count(*) FILTER (WHERE provider IS NULL),
			count(*) FILTER (WHERE provider = 'google'),
			count(*) FILTER (WHERE provider = 'facebook'),
			count(*) FILTER (WHERE provider = 'apple')
		FROM users
		WHERE created_at >= $1
		GROUP BY day
		ORDER BY day DESC`, since)
	if err != nil {
		return nil, mapError("registration stats", err, domain.ErrUserNotFound)
	}
	stats, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RegistrationStats, error) {
		var st domain.RegistrationStats
		err := row.Scan(&st.Day, &st.TotalUsers, &st.EmailUsers, &st.GoogleUsers, &st.FacebookUsers, &st.AppleUsers)
		return st, err
	})
	if err != nil {
		return nil, mapError("scan registration stats", err, domain.ErrUserNotFound)
	}
	return stats, nil
}
