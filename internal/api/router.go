package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/estatehub/listing-api/docs"
	"github.com/estatehub/listing-api/internal/api/handler"
	"github.com/estatehub/listing-api/internal/api/middleware"
	"github.com/estatehub/listing-api/internal/core/domain"
	"github.com/estatehub/listing-api/internal/core/ports"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Properties ports.PropertyService
	Auth       ports.AuthService
	Users      ports.UserService
	Favorites  ports.FavoriteService
	// Health lists the dependencies checked by /health/ready.
	Health map[string]handler.Pinger

	JWTSecret   string
	CORSOrigins []string
	// AuthRateLimit is the sustained requests per second allowed per client IP
	// on /api/auth. Zero disables the limiter.
	AuthRateLimit float64
	Logger        zerolog.Logger
	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// default Prometheus registry, which also carries the listing metrics.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: d.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "listing_http",
		Registerer: registerer,
	}))

	// --- Operational endpoints (no auth required) ---
	health := handler.NewHealthHandler(d.Health)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	requireAuth := middleware.Auth(d.JWTSecret)
	optionalAuth := middleware.OptionalAuth(d.JWTSecret)
	staff := middleware.RBAC(domain.RoleAgent, domain.RoleAdmin)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	selfOrAdmin := middleware.SelfOrAdmin("id")

	api := e.Group("/api")

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth)
	auth := api.Group("/auth")
	if d.AuthRateLimit > 0 {
		auth.Use(echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
			Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(d.AuthRateLimit),
				Burst:     int(d.AuthRateLimit*2) + 1,
				ExpiresIn: 3 * time.Minute,
			}),
		}))
	}
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/social-login", authHandler.SocialLogin)
	auth.GET("/me", authHandler.Me, requireAuth)

	// --- Listings ---
	propertyHandler := handler.NewPropertyHandler(d.Properties)
	properties := api.Group("/properties")
	properties.GET("", propertyHandler.Search, optionalAuth)
	properties.GET("/search", propertyHandler.Search, optionalAuth)
	properties.GET("/featured", propertyHandler.Featured, optionalAuth)
	properties.GET("/recent", propertyHandler.Recent, optionalAuth)
	properties.GET("/export.xlsx", propertyHandler.Export, requireAuth, staff)
	properties.GET("/:id", propertyHandler.Get, optionalAuth)
	properties.GET("/:id/similar", propertyHandler.Similar, optionalAuth)
	properties.POST("", propertyHandler.Create, requireAuth, staff)
	properties.PUT("/:id", propertyHandler.Update, requireAuth, staff)
	properties.DELETE("/:id", propertyHandler.Delete, requireAuth, adminOnly)
	properties.POST("/:id/image", propertyHandler.UploadImage, requireAuth, staff)

	// --- Users and favorites ---
	userHandler := handler.NewUserHandler(d.Users, d.Favorites)
	users := api.Group("/users", requireAuth)
	users.GET("", userHandler.List, adminOnly)
	users.GET("/stats/registrations", userHandler.RegistrationStats, adminOnly)
	users.GET("/:id", userHandler.Get, adminOnly)
	users.PUT("/:id", userHandler.Update, adminOnly)
	users.DELETE("/:id", userHandler.Delete, adminOnly)
	users.PUT("/:id/password", userHandler.ChangePassword, selfOrAdmin)
	users.GET("/:id/favorites", userHandler.ListFavorites, selfOrAdmin)
	users.POST("/:id/favorites", userHandler.AddFavorite, selfOrAdmin)
	users.DELETE("/:id/favorites/:propertyId", userHandler.RemoveFavorite, selfOrAdmin)

	return e
}
