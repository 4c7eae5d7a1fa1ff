package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/estatehub/listing-api/internal/core/domain"
	"github.com/estatehub/listing-api/internal/core/filter"
)

type PropertyRepository struct {
	col *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{col: db.Collection(collectionProperties)}
}

// FindAll counts and fetches with the same compiled filter.
func (r *PropertyRepository) FindAll(ctx context.Context, q filter.Query) (filter.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := compileFilter(q.Criteria.Predicates())
	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return filter.Result{}, mapError("count properties", err, domain.ErrPropertyNotFound)
	}

	opts := options.Find().SetSort(sortDoc(q.Sort))
	if q.Page.Limit > 0 {
		opts.SetSkip(int64(q.Page.Offset())).SetLimit(int64(q.Page.Limit))
	}
	items, err := r.find(ctx, query, opts)
	if err != nil {
		return filter.Result{}, err
	}
	return filter.NewResult(items, int(total), q.Page), nil
}

func (r *PropertyRepository) find(ctx context.Context, query any, opts *options.FindOptions) ([]domain.Property, error) {
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, mapError("find properties", err, domain.ErrPropertyNotFound)
	}
	items := []domain.Property{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, mapError("decode properties", err, domain.ErrPropertyNotFound)
	}
	return items, nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var p domain.Property
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, mapError("find property", err, domain.ErrPropertyNotFound)
	}
	return &p, nil
}

func (r *PropertyRepository) Featured(ctx context.Context, limit int) ([]domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(sortDoc(filter.SortNewest)).SetLimit(int64(limit))
	return r.find(ctx, bson.M{"is_featured": true}, opts)
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, p)
	return mapError("insert property", err, domain.ErrInvalidProperty)
}

func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return mapError("replace property", err, domain.ErrPropertyNotFound)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError("delete property", err, domain.ErrPropertyNotFound)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}
