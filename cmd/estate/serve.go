package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/estatehub/listing-api/internal/api"
	"github.com/estatehub/listing-api/internal/api/metrics"
	"github.com/estatehub/listing-api/internal/core/ports"
	"github.com/estatehub/listing-api/internal/core/service"
	redisdb "github.com/estatehub/listing-api/internal/infrastructure/db/redis"
	"github.com/estatehub/listing-api/internal/infrastructure/media"
	"github.com/estatehub/listing-api/internal/infrastructure/queue"
	"github.com/estatehub/listing-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var seedFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&seedFile, "seed", "", "YAML fixtures to load at startup (useful with the memory driver)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.close()

	var properties ports.PropertyRepository = b.properties
	if cfg.Redis.Enabled {
		cache, err := redisdb.Open(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("search cache disabled")
		} else {
			defer cache.Close()
			properties = redisdb.NewSearchCache(properties, cache, cfg.Redis.TTL, logger.Component("search_cache"))
			b.health["redis"] = cache
		}
	}

	var images ports.ImageStore
	mediaCfg := media.Config{
		CloudName: cfg.Cloudinary.CloudName,
		APIKey:    cfg.Cloudinary.APIKey,
		APISecret: cfg.Cloudinary.APISecret,
		Folder:    cfg.Cloudinary.Folder,
	}
	if mediaCfg.Enabled() {
		store, err := media.NewCloudinaryStore(mediaCfg)
		if err != nil {
			return err
		}
		images = store
	} else {
		log.Info().Msg("cloudinary not configured, image uploads disabled")
	}

	lifecycle := metrics.InstrumentLifecycle(service.NewLifecycleService(b.favorites, logger.Component("lifecycle")))
	dispatcher := queue.NewDispatcher(cfg.DispatchWorkers, lifecycle, logger.Component("dispatcher"))
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)
	defer func() {
		stopWorkers()
		dispatcher.Wait()
	}()

	propertyService := service.NewPropertyService(properties, b.favorites, images, dispatcher, logger.Component("properties"))
	if seedFile != "" {
		n, err := loadFixtures(ctx, seedFile, propertyService)
		if err != nil {
			return err
		}
		log.Info().Int("count", n).Str("file", seedFile).Msg("fixtures loaded")
	}

	secret := cfg.JWTSecret
	if secret == "" {
		secret = uuid.NewString()
		log.Warn().Msg("JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	}

	e := api.NewRouter(api.Deps{
		Properties:    propertyService,
		Auth:          service.NewAuthService(b.users, secret, cfg.JWTTTL),
		Users:         service.NewUserService(b.users, dispatcher, logger.Component("users")),
		Favorites:     service.NewFavoriteService(b.favorites, properties),
		Health:        b.health,
		JWTSecret:     secret,
		CORSOrigins:   cfg.CORSOrigins,
		AuthRateLimit: cfg.AuthRateLimit,
		Logger:        logger.Component("http"),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("driver", cfg.StorageDriver).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
