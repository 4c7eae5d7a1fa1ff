package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/estatehub/listing-api/internal/infrastructure/config"
	mongodb "github.com/estatehub/listing-api/internal/infrastructure/db/mongo"
	"github.com/estatehub/listing-api/internal/infrastructure/db/postgres"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back the database schema",
	Long:      "Applies the embedded SQL migrations for postgres. For mongo, \"up\" creates the indexes and \"down\" is not supported.",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		up := args[0] == "up"

		switch cfg.StorageDriver {
		case config.DriverPostgres:
			if err := postgres.Migrate(cfg.Postgres.URL, up); err != nil {
				return err
			}
		case config.DriverMongo:
			if !up {
				return errors.New("mongo has no down migration")
			}
			client, db, err := mongodb.Connect(cmd.Context(), mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
			if err != nil {
				return err
			}
			defer client.Disconnect(cmd.Context())
			if err := mongodb.EnsureIndexes(cmd.Context(), db); err != nil {
				return err
			}
		default:
			return errors.New("the memory driver has no schema")
		}

		log.Info().Str("driver", cfg.StorageDriver).Str("direction", args[0]).Msg("migration complete")
		return nil
	},
}
