package di

import (
	"time"

	"go.uber.org/zap"

	"github.com/pineapple-tours/catalog-insights/internal/clock"
	"github.com/pineapple-tours/catalog-insights/internal/handler"
	"github.com/pineapple-tours/catalog-insights/internal/repository"
	"github.com/pineapple-tours/catalog-insights/internal/segmentation"
	"github.com/pineapple-tours/catalog-insights/internal/service"
	"github.com/pineapple-tours/catalog-insights/pkg/database"
	"github.com/pineapple-tours/catalog-insights/pkg/kafka"
	"github.com/pineapple-tours/catalog-insights/pkg/redis"
)

// Container holds all dependencies of the service
type Container struct {
	// Infrastructure
	DB       *database.PostgresDB
	Redis    *redis.Client
	Producer *kafka.Producer
	Logger   *zap.Logger

	// Repositories
	CatalogRepo repository.CatalogRepository

	// Services
	Engine          *segmentation.Engine
	CatalogService  service.CatalogService
	InsightsService service.InsightsService

	// Handlers
	HealthHandler   *handler.HealthHandler
	CatalogHandler  *handler.CatalogHandler
	InsightsHandler *handler.InsightsHandler
}

// ContainerConfig contains configuration for building the container.
// Redis and Producer are optional.
type ContainerConfig struct {
	DB         *database.PostgresDB
	Redis      *redis.Client
	Producer   *kafka.Producer
	Logger     *zap.Logger
	EventTopic string
	CacheTTL   time.Duration
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:       cfg.DB,
		Redis:    cfg.Redis,
		Producer: cfg.Producer,
		Logger:   cfg.Logger,
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}

	// Initialize repositories
	pgCatalogRepo := repository.NewPostgresCatalogRepository(c.DB.Pool())

	// Wrap with cache if Redis is available
	if c.Redis != nil {
		c.CatalogRepo = repository.NewCachedCatalogRepository(pgCatalogRepo, c.Redis, cfg.CacheTTL)
	} else {
		c.CatalogRepo = pgCatalogRepo
	}

	// Initialize services
	c.Engine = segmentation.NewEngine(clock.Real{}, c.Logger)
	c.CatalogService = service.NewCatalogService(c.CatalogRepo, c.Logger)
	c.InsightsService = service.NewInsightsService(c.CatalogRepo, c.Engine, service.InsightsOptions{
		Cache:    c.Redis,
		Producer: c.Producer,
		Topic:    cfg.EventTopic,
		CacheTTL: cfg.CacheTTL,
		Logger:   c.Logger,
	})

	// Initialize handlers
	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis)
	c.CatalogHandler = handler.NewCatalogHandler(c.CatalogService)
	c.InsightsHandler = handler.NewInsightsHandler(c.InsightsService)

	return c
}
