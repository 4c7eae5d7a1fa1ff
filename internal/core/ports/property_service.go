package ports

import (
	"context"
	"io"

	"github.com/estatehub/listing-api/internal/core/domain"
	"github.com/estatehub/listing-api/internal/core/filter"
)

// PropertyInput carries the fields of a create or full-replace update. Enum
// fields arrive as user-facing strings and are mapped by the service.
type PropertyInput struct {
	Title        string
	Description  string
	Price        float64
	Location     string
	State        string
	Area         string
	Status       string
	PropertyType string
	Bedrooms     int
	Bathrooms    int
	FloorArea    float64
	Amenities    []string
	ImageURL     string
	IsFeatured   bool
}

// PropertyService defines use-case operations for listings. viewerID is the
// authenticated caller, or empty for anonymous reads; it only drives IsFavorite.
type PropertyService interface {
	Search(ctx context.Context, q filter.Query, viewerID string) (filter.Result, error)
	Get(ctx context.Context, id, viewerID string) (*domain.Property, error)
	Featured(ctx context.Context, viewerID string) ([]domain.Property, error)
	Recent(ctx context.Context, viewerID string) ([]domain.Property, error)
	Similar(ctx context.Context, id, viewerID string) ([]domain.Property, error)
	Create(ctx context.Context, in PropertyInput) (*domain.Property, error)
	Update(ctx context.Context, id string, in PropertyInput) (*domain.Property, error)
	Delete(ctx context.Context, id string) error
	SetImage(ctx context.Context, id string, image io.Reader) (*domain.Property, error)
}

// ImageStore uploads listing photos and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, image io.Reader, publicID string) (string, error)
}
