package ports

import (
	"context"

	"github.com/estatehub/listing-api/internal/core/domain"
)

// FavoriteRepository stores (user, property) bookmarks. Add and Remove are
// idempotent.
type FavoriteRepository interface {
	Add(ctx context.Context, userID, propertyID string) error
	Remove(ctx context.Context, userID, propertyID string) error
	// ListProperties returns the user's favorite properties, most recently added first.
	ListProperties(ctx context.Context, userID string) ([]domain.Property, error)
	// FavoriteIDs reports which of propertyIDs the user has favorited.
	FavoriteIDs(ctx context.Context, userID string, propertyIDs []string) (map[string]bool, error)
	DeleteByProperty(ctx context.Context, propertyID string) error
	DeleteByUser(ctx context.Context, userID string) error
}
