package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/estatehub/listing-api/internal/core/domain"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	doc := *u
	doc.Email = strings.ToLower(doc.Email)
	_, err := r.col.InsertOne(ctx, doc)
	return mapError("insert user", err, domain.ErrUserNotFound)
}

func (r *UserRepository) findOne(ctx context.Context, query bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var u domain.User
	if err := r.col.FindOne(ctx, query).Decode(&u); err != nil {
		return nil, mapError("find user", err, domain.ErrUserNotFound)
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

func (r *UserRepository) FindByProvider(ctx context.Context, provider, providerID string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"provider": provider, "provider_id": providerID})
}

func (r *UserRepository) set(ctx context.Context, op, id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": fields})
	if err != nil {
		return mapError(op, err, domain.ErrUserNotFound)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) LinkProvider(ctx context.Context, id, provider, providerID string) error {
	return r.set(ctx, "link provider", id, bson.M{
		"provider":    provider,
		"provider_id": providerID,
		"updated_at":  time.Now().UTC(),
	})
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, mapError("list users", err, domain.ErrUserNotFound)
	}
	users := []domain.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, mapError("decode users", err, domain.ErrUserNotFound)
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	return r.set(ctx, "update user", u.ID, bson.M{
		"name":       u.Name,
		"email":      strings.ToLower(u.Email),
		"role":       u.Role,
		"updated_at": u.UpdatedAt,
	})
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	return r.set(ctx, "update password", id, bson.M{
		"password_hash": hash,
		"updated_at":    time.Now().UTC(),
	})
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError("delete user", err, domain.ErrUserNotFound)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

type registrationRow struct {
	Day      string `bson:"_id"`
	Total    int64  `bson:"total"`
	Email    int64  `bson:"email"`
	Google   int64  `bson:"google"`
	Facebook int64  `bson:"facebook"`
	Apple    int64  `bson:"apple"`
}

func countProvider(provider string) bson.M {
	return bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$provider", provider}}, 1, 0}}}
}

func (r *UserRepository) RegistrationStats(ctx context.Context, since time.Time) ([]domain.RegistrationStats, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"created_at": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$created_at"}},
			"total": bson.M{"$sum": 1},
			"email": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$gt": bson.A{bson.M{"$ifNull": bson.A{"$provider", ""}}, ""}}, 0, 1,
			}}},
			"google":   countProvider(domain.ProviderGoogle),
			"facebook": countProvider(domain.ProviderFacebook),
			"apple":    countProvider(domain.ProviderApple),
		}}},
		{{Key: "$sort", Value: bson.M{"_id": -1}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, mapError("registration stats", err, domain.ErrUserNotFound)
	}
	var rows []registrationRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, mapError("decode registration stats", err, domain.ErrUserNotFound)
	}

	out := make([]domain.RegistrationStats, 0, len(rows))
	for _, row := range rows {
		day, err := time.Parse(time.DateOnly, row.Day)
		if err != nil {
			return nil, fmt.Errorf("registration stats: bad day %q: %w", row.Day, err)
		}
		out = append(out, domain.RegistrationStats{
			Day:           day,
			TotalUsers:    row.Total,
			EmailUsers:    row.Email,
			GoogleUsers:   row.Google,
			FacebookUsers: row.Facebook,
			AppleUsers:    row.Apple,
		})
	}
	return out, nil
}
