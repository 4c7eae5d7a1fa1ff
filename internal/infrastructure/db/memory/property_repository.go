package memory

import (
	"context"

	"github.com/estatehub/listing-api/internal/core/domain"
	"github.com/estatehub/listing-api/internal/core/filter"
)

type PropertyRepository struct {
	store *Store
}

func NewPropertyRepository(store *Store) *PropertyRepository {
	return &PropertyRepository{store: store}
}

func (r *PropertyRepository) FindAll(ctx context.Context, q filter.Query) (filter.Result, error) {
	if err := ctx.Err(); err != nil {
		return filter.Result{}, err
	}
	r.store.mu.RLock()
	props := r.store.snapshot()
	r.store.mu.RUnlock()

	return filter.Run(props, q), nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.properties[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	clone := cloneProperty(p)
	return &clone, nil
}

func (r *PropertyRepository) Featured(ctx context.Context, limit int) ([]domain.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	props := r.store.snapshot()
	r.store.mu.RUnlock()

	out := make([]domain.Property, 0, limit)
	for _, p := range filter.Apply(props, filter.Criteria{}, filter.SortNewest) {
		if len(out) == limit {
			break
		}
		if p.IsFeatured {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.properties[p.ID] = cloneProperty(*p)
	return nil
}

func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.properties[p.ID]; !ok {
		return domain.ErrPropertyNotFound
	}
	r.store.properties[p.ID] = cloneProperty(*p)
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.properties[id]; !ok {
		return domain.ErrPropertyNotFound
	}
	delete(r.store.properties, id)
	return nil
}
