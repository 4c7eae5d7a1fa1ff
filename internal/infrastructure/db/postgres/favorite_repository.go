package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estatehub/listing-api/internal/core/domain"
)

type FavoriteRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewFavoriteRepository(pool *pgxpool.Pool, queryTimeout time.Duration) *FavoriteRepository {
	return &FavoriteRepository{pool: pool, timeout: queryTimeout}
}

func (r *FavoriteRepository) Add(ctx context.Context, userID, propertyID string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_favorites (user_id, property_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, property_id) DO NOTHING`, userID, propertyID)
	return mapError("add favorite", err, domain.ErrPropertyNotFound)
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, propertyID string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.pool.Exec(ctx,
		"DELETE FROM user_favorites WHERE user_id = $1 AND property_id = $2", userID, propertyID)
	return mapError("remove favorite", err, domain.ErrPropertyNotFound)
}

func (r *FavoriteRepository) ListProperties(ctx context.Context, userID string) ([]domain.Property, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT `+qualified("p", propertyColumns)+`
		FROM user_favorites f
		JOIN properties p ON p.id = f.property_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC, p.id ASC`, userID)
	if err != nil {
		return nil, mapError("list favorites", err, domain.ErrUserNotFound)
	}
	items, err := collectProperties(rows)
	if err != nil {
		return nil, mapError("scan favorites", err, domain.ErrUserNotFound)
	}
	return items, nil
}

func (r *FavoriteRepository) FavoriteIDs(ctx context.Context, userID string, propertyIDs []string) (map[string]bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT property_id::text FROM user_favorites
		WHERE user_id = $1 AND property_id = ANY($2::uuid[])`, userID, propertyIDs)
	if err != nil {
		return nil, mapError("favorite ids", err, domain.ErrUserNotFound)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, mapError("scan favorite ids", err, domain.ErrUserNotFound)
		}
		out[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("favorite ids", err, domain.ErrUserNotFound)
	}
	return out, nil
}

// DeleteByProperty and DeleteByUser are normally no-ops here because the foreign
// keys cascade; they exist for the lifecycle dispatcher shared with other backends.
func (r *FavoriteRepository) DeleteByProperty(ctx context.Context, propertyID string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, "DELETE FROM user_favorites WHERE property_id = $1", propertyID)
	return mapError("delete favorites by property", err, domain.ErrPropertyNotFound)
}

func (r *FavoriteRepository) DeleteByUser(ctx context.Context, userID string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, "DELETE FROM user_favorites WHERE user_id = $1", userID)
	return mapError("delete favorites by user", err, domain.ErrUserNotFound)
}
