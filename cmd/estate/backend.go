package main

import (
	"context"
	"fmt"

	"github.com/estatehub/listing-api/internal/api/handler"
	"github.com/estatehub/listing-api/internal/core/ports"
	"github.com/estatehub/listing-api/internal/infrastructure/config"
	"github.com/estatehub/listing-api/internal/infrastructure/db/memory"
	mongodb "github.com/estatehub/listing-api/internal/infrastructure/db/mongo"
	"github.com/estatehub/listing-api/internal/infrastructure/db/postgres"
)

// backend is one storage driver behind the repository ports.
type backend struct {
	properties ports.PropertyRepository
	users      ports.UserRepository
	favorites  ports.FavoriteRepository
	health     map[string]handler.Pinger
	close      func()
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, postgres.Config{
			URL:          cfg.Postgres.URL,
			MaxConns:     cfg.Postgres.MaxConns,
			QueryTimeout: cfg.Postgres.QueryTimeout,
		})
		if err != nil {
			return nil, err
		}
		qt := cfg.Postgres.QueryTimeout
		return &backend{
			properties: postgres.NewPropertyRepository(pool, qt),
			users:      postgres.NewUserRepository(pool, qt),
			favorites:  postgres.NewFavoriteRepository(pool, qt),
			health:     map[string]handler.Pinger{"postgres": pool},
			close:      pool.Close,
		}, nil

	case config.DriverMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &backend{
			properties: mongodb.NewPropertyRepository(db),
			users:      mongodb.NewUserRepository(db),
			favorites:  mongodb.NewFavoriteRepository(db),
			health: map[string]handler.Pinger{
				"mongodb": handler.PingFunc(func(ctx context.Context) error { return client.Ping(ctx, nil) }),
			},
			close: func() { _ = client.Disconnect(context.Background()) },
		}, nil

	case config.DriverMemory:
		store := memory.NewStore()
		return &backend{
			properties: memory.NewPropertyRepository(store),
			users:      memory.NewUserRepository(store),
			favorites:  memory.NewFavoriteRepository(store),
			health:     map[string]handler.Pinger{},
			close:      func() {},
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
