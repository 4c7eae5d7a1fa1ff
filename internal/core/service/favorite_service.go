package service

import (
	"context"

	"github.com/estatehub/listing-api/internal/core/domain"
	"github.com/estatehub/listing-api/internal/core/ports"
)

type FavoriteService struct {
	favorites  ports.FavoriteRepository
	properties ports.PropertyRepository
}

func NewFavoriteService(favorites ports.FavoriteRepository, properties ports.PropertyRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites, properties: properties}
}

// List returns the favorites newest-added first, each flagged IsFavorite.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]domain.Property, error) {
	items, err := s.favorites.ListProperties(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].IsFavorite = true
	}
	return items, nil
}

// Add bookmarks an existing property. Adding it twice is not an error.
func (s *FavoriteService) Add(ctx context.Context, userID, propertyID string) error {
	if _, err := s.properties.FindByID(ctx, propertyID); err != nil {
		return err
	}
	return s.favorites.Add(ctx, userID, propertyID)
}

func (s *FavoriteService) Remove(ctx context.Context, userID, propertyID string) error {
	return s.favorites.Remove(ctx, userID, propertyID)
}
