package container

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/tahoefourseasons/itinerary-api/app/observability/metrics"
	"github.com/tahoefourseasons/itinerary-api/config"
	"github.com/tahoefourseasons/itinerary-api/internal/api/catalog"
	generativeAI "github.com/tahoefourseasons/itinerary-api/internal/api/generative_ai"
	"github.com/tahoefourseasons/itinerary-api/internal/api/itinerary"
	"github.com/tahoefourseasons/itinerary-api/internal/cache"
	"github.com/tahoefourseasons/itinerary-api/internal/limiter"
)

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	Logger           *slog.Logger
	Metrics          *metrics.AppMetrics
	RedisClient      *redis.Client
	CatalogRepo      catalog.Repository
	Store            cache.Store
	Limiter          limiter.Limiter
	ItineraryHandler *itinerary.Handler
}

// NewContainer initializes and returns a new dependency container
func NewContainer(ctx context.Context, cfg *config.Config, m *metrics.AppMetrics, logger *slog.Logger) (*Container, error) {
	// The catalog is loaded eagerly so a broken data file fails startup
	// instead of the first request.
	catalogRepo := catalog.NewFileRepository(cfg.Catalog.Path, logger)
	if _, err := catalogRepo.GetCatalog(ctx); err != nil {
		logger.Error("Failed to load POI catalog", slog.Any("error", err))
		return nil, err
	}

	aiClient, err := generativeAI.NewAIClient(ctx, cfg.Model.Name, cfg.Model.Temperature, itinerary.GenAISchema(), m)
	if err != nil {
		logger.Error("Failed to create AI client", slog.Any("error", err))
		return nil, err
	}

	var redisClient *redis.Client
	var store cache.Store
	var admit limiter.Limiter
	if cfg.Cache.Backend == "redis" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store = cache.NewRedisStore(redisClient, cfg.Cache.TTL, logger)
		admit = limiter.NewRedisLimiter(redisClient, cfg.Limiter.Window, cfg.Limiter.MaxRequests)
		logger.Info("Using Redis cache and rate limiter", slog.String("addr", cfg.Redis.Addr))
	} else {
		store = cache.NewMemoryStore(cfg.Cache.TTL)
		admit = limiter.NewMemoryLimiter(cfg.Limiter.Window, cfg.Limiter.MaxRequests)
	}

	itineraryService := itinerary.NewService(catalogRepo, aiClient, store, m, logger)
	itineraryHandler := itinerary.NewHandler(itineraryService, m, logger)

	return &Container{
		Config:           cfg,
		Logger:           logger,
		Metrics:          m,
		RedisClient:      redisClient,
		CatalogRepo:      catalogRepo,
		Store:            store,
		Limiter:          admit,
		ItineraryHandler: itineraryHandler,
	}, nil
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Error("Failed to close Redis client", slog.Any("error", err))
		}
	}
}
