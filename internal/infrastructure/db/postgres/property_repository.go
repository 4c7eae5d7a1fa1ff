package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estatehub/listing-api/internal/core/domain"
	"github.com/estatehub/listing-api/internal/core/filter"
)

const propertyColumns = `id, title, description, price, location, state, area, status, property_type,
	bedrooms, bathrooms, floor_area, amenities, image_url, is_featured, created_at, updated_at`

type PropertyRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewPropertyRepository(pool *pgxpool.Pool, queryTimeout time.Duration) *PropertyRepository {
	return &PropertyRepository{pool: pool, timeout: queryTimeout}
}

func scanProperty(row pgx.Row) (domain.Property, error) {
	var (
		p         domain.Property
		status    string
		ptype     string
		amenities []string
	)
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Location, &p.State, &p.Area,
		&status, &ptype, &p.Bedrooms, &p.Bathrooms, &p.FloorArea, &amenities,
		&p.ImageURL, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Property{}, err
	}
	p.Status = domain.ListingStatus(status)
	p.PropertyType = domain.PropertyType(ptype)
	p.Amenities = make([]domain.Amenity, len(amenities))
	for i, a := range amenities {
		p.Amenities[i] = domain.Amenity(a)
	}
	return p, nil
}

// propertyArgs lists p's values in propertyColumns order.
func propertyArgs(p *domain.Property) []any {
	return []any{
		p.ID, p.Title, p.Description, p.Price, p.Location, p.State, p.Area,
		string(p.Status), string(p.PropertyType), p.Bedrooms, p.Bathrooms, p.FloorArea,
		amenityStrings(p.Amenities), p.ImageURL, p.IsFeatured, p.CreatedAt, p.UpdatedAt,
	}
}

func collectProperties(rows pgx.Rows) ([]domain.Property, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Property, error) {
		return scanProperty(row)
	})
}

func amenityStrings(in []domain.Amenity) []string {
	out := make([]string, len(in))
	for i, a := range in {
		out[i] = string(a)
	}
	return out
}

func (r *PropertyRepository) FindAll(ctx context.Context, q filter.Query) (filter.Result, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	where, args := compileWhere(q.Criteria.Predicates())

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM properties"+where, args...).Scan(&total); err != nil {
		return filter.Result{}, mapError("count properties", err, domain.ErrPropertyNotFound)
	}

	page, args := limitOffset(q.Page, args)
	rows, err := r.pool.Query(ctx, "SELECT "+propertyColumns+" FROM properties"+where+orderBy(q.Sort)+page, args...)
	if err != nil {
		return filter.Result{}, mapError("search properties", err, domain.ErrPropertyNotFound)
	}
	items, err := collectProperties(rows)
	if err != nil {
		return filter.Result{}, mapError("scan properties", err, domain.ErrPropertyNotFound)
	}
	return filter.NewResult(items, total, q.Page), nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, "SELECT "+propertyColumns+" FROM properties WHERE id = $1", id)
	p, err := scanProperty(row)
	if err != nil {
		return nil, mapError("find property", err, domain.ErrPropertyNotFound)
	}
	return &p, nil
}

func (r *PropertyRepository) Featured(ctx context.Context, limit int) ([]domain.Property, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx,
		"SELECT "+propertyColumns+" FROM properties WHERE is_featured"+orderBy(filter.SortNewest)+" LIMIT $1", limit)
	if err != nil {
		return nil, mapError("featured properties", err, domain.ErrPropertyNotFound)
	}
	items, err := collectProperties(rows)
	if err != nil {
		return nil, mapError("scan properties", err, domain.ErrPropertyNotFound)
	}
	return items, nil
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO properties (`+propertyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		propertyArgs(p)...,
	)
	return mapError("insert property", err, domain.ErrInvalidProperty)
}

func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `
		UPDATE properties SET
			title = $2, description = $3, price = $4, location = $5, state = $6, area = $7,
			status = $8, property_type = $9, bedrooms = $10, bathrooms = $11, floor_area = $12,
			amenities = $13, image_url = $14, is_featured = $15, updated_at = $16
		WHERE id = $1`,
		p.ID, p.Title, p.Description, p.Price, p.Location, p.State, p.Area,
		string(p.Status), string(p.PropertyType), p.Bedrooms, p.Bathrooms, p.FloorArea,
		amenityStrings(p.Amenities), p.ImageURL, p.IsFeatured, p.UpdatedAt,
	)
	if err != nil {
		return mapError("update property", err, domain.ErrPropertyNotFound)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

// Delete removes the listing; favorites referencing it go with it through the
// foreign key cascade.
func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, "DELETE FROM properties WHERE id = $1", id)
	if err != nil {
		return mapError("delete property", err, domain.ErrPropertyNotFound)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}
