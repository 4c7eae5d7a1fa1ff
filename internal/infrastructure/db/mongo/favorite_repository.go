package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/estatehub/listing-api/internal/core/domain"
)

type FavoriteRepository struct {
	col *mongo.Collection
}

func NewFavoriteRepository(db *mongo.Database) *FavoriteRepository {
	return &FavoriteRepository{col: db.Collection(collectionFavorites)}
}

// Add upserts the pair so a repeated add keeps the original CreatedAt.
func (r *FavoriteRepository) Add(ctx context.Context, userID, propertyID string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	pair := bson.M{"user_id": userID, "property_id": propertyID}
	update := bson.M{"$setOnInsert": domain.Favorite{UserID: userID, PropertyID: propertyID, CreatedAt: time.Now().UTC()}}
	_, err := r.col.UpdateOne(ctx, pair, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		// lost an upsert race with an identical add
		return nil
	}
	return mapError("add favorite", err, domain.ErrPropertyNotFound)
}

func (r *FavoriteRepository) deleteMany(ctx context.Context, op string, query bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, query)
	return mapError(op, err, domain.ErrPropertyNotFound)
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, propertyID string) error {
	return r.deleteMany(ctx, "remove favorite", bson.M{"user_id": userID, "property_id": propertyID})
}

func (r *FavoriteRepository) DeleteByProperty(ctx context.Context, propertyID string) error {
	return r.deleteMany(ctx, "delete favorites by property", bson.M{"property_id": propertyID})
}

func (r *FavoriteRepository) DeleteByUser(ctx context.Context, userID string) error {
	return r.deleteMany(ctx, "delete favorites by user", bson.M{"user_id": userID})
}

// ListProperties joins favorites to their properties, newest favorite first.
// Favorites whose property is gone are skipped.
func (r *FavoriteRepository) ListProperties(ctx context.Context, userID string) ([]domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "property_id", Value: 1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionProperties,
			"localField":   "property_id",
			"foreignField": "_id",
			"as":           "property",
		}}},
		{{Key: "$unwind", Value: "$property"}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$property"}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, mapError("list favorites", err, domain.ErrUserNotFound)
	}
	items := []domain.Property{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, mapError("decode favorites", err, domain.ErrUserNotFound)
	}
	return items, nil
}

func (r *FavoriteRepository) FavoriteIDs(ctx context.Context, userID string, propertyIDs []string) (map[string]bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx,
		bson.M{"user_id": userID, "property_id": bson.M{"$in": propertyIDs}},
		options.Find().SetProjection(bson.M{"property_id": 1}))
	if err != nil {
		return nil, mapError("favorite ids", err, domain.ErrUserNotFound)
	}
	var favs []domain.Favorite
	if err := cur.All(ctx, &favs); err != nil {
		return nil, mapError("decode favorite ids", err, domain.ErrUserNotFound)
	}

	out := make(map[string]bool, len(favs))
	for _, f := range favs {
		out[f.PropertyID] = true
	}
	return out, nil
}
