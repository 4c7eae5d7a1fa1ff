package memory

import (
	"context"
	"slices"
	"time"

	"github.com/estatehub/listing-api/internal/core/domain"
)

// FavoriteRepository keeps favorites in insertion order, which is also the
// order they were added in.
type FavoriteRepository struct {
	store *Store
	now   func() time.Time
}

func NewFavoriteRepository(store *Store) *FavoriteRepository {
	return &FavoriteRepository{store: store, now: func() time.Time { return time.Now().UTC() }}
}

func (r *FavoriteRepository) Add(ctx context.Context, userID, propertyID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.properties[propertyID]; !ok {
		return domain.ErrPropertyNotFound
	}
	for _, f := range r.store.favorites {
		if f.UserID == userID && f.PropertyID == propertyID {
			return nil
		}
	}
	r.store.favorites = append(r.store.favorites, domain.Favorite{
		UserID:     userID,
		PropertyID: propertyID,
		CreatedAt:  r.now(),
	})
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, propertyID string) error {
	return r.deleteWhere(ctx, func(f domain.Favorite) bool {
		return f.UserID == userID && f.PropertyID == propertyID
	})
}

func (r *FavoriteRepository) ListProperties(ctx context.Context, userID string) ([]domain.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := []domain.Property{}
	for i := len(r.store.favorites) - 1; i >= 0; i-- {
		f := r.store.favorites[i]
		if f.UserID != userID {
			continue
		}
		if p, ok := r.store.properties[f.PropertyID]; ok {
			out = append(out, cloneProperty(p))
		}
	}
	return out, nil
}

func (r *FavoriteRepository) FavoriteIDs(ctx context.Context, userID string, propertyIDs []string) (map[string]bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make(map[string]bool)
	for _, f := range r.store.favorites {
		if f.UserID == userID && slices.Contains(propertyIDs, f.PropertyID) {
			out[f.PropertyID] = true
		}
	}
	return out, nil
}

func (r *FavoriteRepository) DeleteByProperty(ctx context.Context, propertyID string) error {
	return r.deleteWhere(ctx, func(f domain.Favorite) bool { return f.PropertyID == propertyID })
}

func (r *FavoriteRepository) DeleteByUser(ctx context.Context, userID string) error {
	return r.deleteWhere(ctx, func(f domain.Favorite) bool { return f.UserID == userID })
}

func (r *FavoriteRepository) deleteWhere(ctx context.Context, match func(domain.Favorite) bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.favorites = slices.DeleteFunc(r.store.favorites, match)
	return nil
}
