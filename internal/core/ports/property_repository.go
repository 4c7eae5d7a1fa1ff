package ports

import (
	"context"

	"github.com/estatehub/listing-api/internal/core/domain"
	"github.com/estatehub/listing-api/internal/core/filter"
)

// PropertyRepository defines persistence operations for listings. Every backend
// evaluates filter.Query with the same semantics as filter.Run.
type PropertyRepository interface {
	// FindAll returns one page of properties matching q and the total match count.
	// An empty result is not an error; backend failures wrap domain.ErrStoreUnavailable.
	FindAll(ctx context.Context, q filter.Query) (filter.Result, error)
	FindByID(ctx context.Context, id string) (*domain.Property, error)
	// Featured returns up to limit featured listings, newest first.
	Featured(ctx context.Context, limit int) ([]domain.Property, error)
	Create(ctx context.Context, p *domain.Property) error
	// Update replaces the stored record; CreatedAt is preserved by the caller.
	Update(ctx context.Context, p *domain.Property) error
	Delete(ctx context.Context, id string) error
}
