package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pineapple-tours/catalog-insights/internal/di"
	"github.com/pineapple-tours/catalog-insights/pkg/config"
	"github.com/pineapple-tours/catalog-insights/pkg/database"
	"github.com/pineapple-tours/catalog-insights/pkg/kafka"
	"github.com/pineapple-tours/catalog-insights/pkg/logger"
	"github.com/pineapple-tours/catalog-insights/pkg/middleware"
	"github.com/pineapple-tours/catalog-insights/pkg/redis"
	"github.com/pineapple-tours/catalog-insights/pkg/telemetry"
)

const serviceName = "catalog-insights"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logCfg := &logger.Config{
		Level:       "info",
		ServiceName: serviceName,
		Development: cfg.IsDevelopment(),
	}
	if cfg.App.Debug {
		logCfg.Level = "debug"
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting Catalog Insights Service...")

	ctx := context.Background()

	// Initialize OpenTelemetry
	telemetryCfg := &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    serviceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}
	if _, err := telemetry.Init(ctx, telemetryCfg); err != nil {
		appLog.Warn(fmt.Sprintf("Failed to initialize telemetry: %v", err))
	} else if telemetryCfg.Enabled {
		appLog.Info(fmt.Sprintf("Telemetry initialized (collector: %s)", telemetryCfg.CollectorAddr))
	}
	defer telemetry.Shutdown(ctx)

	// Initialize database connection
	dbCfg := &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxOpenConns),
		MinConns:        int32(cfg.Database.MaxIdleConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      3,
		RetryInterval:   time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	}
	db, err := database.NewPostgres(ctx, dbCfg)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Database connection failed: %v", err))
	}
	defer db.Close()
	appLog.Info(fmt.Sprintf("Database connected (pool: min=%d, max=%d)", dbCfg.MinConns, dbCfg.MaxConns))

	// Initialize Redis connection (optional - caching disabled on failure)
	var redisClient *redis.Client
	redisCfg := &redis.Config{
		Host:          cfg.Redis.Host,
		Port:          cfg.Redis.Port,
		Password:      cfg.Redis.Password,
		DB:            cfg.Redis.DB,
		PoolSize:      cfg.Redis.PoolSize,
		MinIdleConns:  cfg.Redis.MinIdleConns,
		DialTimeout:   cfg.Redis.DialTimeout,
		ReadTimeout:   cfg.Redis.ReadTimeout,
		WriteTimeout:  cfg.Redis.WriteTimeout,
		MaxRetries:    3,
		RetryInterval: time.Second,
	}
	redisClient, err = redis.NewClient(ctx, redisCfg)
	if err != nil {
		appLog.Warn(fmt.Sprintf("Redis connection failed (caching disabled): %v", err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		appLog.Info(fmt.Sprintf("Redis connected (%s)", redisCfg.Addr()))
	}

	// Initialize Kafka producer (optional - events disabled on failure)
	var producer *kafka.Producer
	if cfg.Kafka.Enabled {
		producerCfg := &kafka.ProducerConfig{
			Brokers:       cfg.Kafka.Brokers,
			ClientID:      serviceName,
			MaxRetries:    3,
			RetryInterval: time.Second,
		}
		producer, err = kafka.NewProducer(ctx, producerCfg)
		if err != nil {
			appLog.Warn(fmt.Sprintf("Kafka connection failed (events disabled): %v", err))
			producer = nil
		} else {
			defer producer.Close()
			appLog.Info(fmt.Sprintf("Kafka connected (brokers: %v)", cfg.Kafka.Brokers))
		}
	}

	// Build dependency injection container
	container := di.NewContainer(&di.ContainerConfig{
		DB:         db,
		Redis:      redisClient,
		Producer:   producer,
		Logger:     appLog,
		EventTopic: cfg.Kafka.Topic,
		CacheTTL:   cfg.Insights.CacheTTL,
	})

	// Setup Gin
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	if cfg.OTel.Enabled {
		router.Use(telemetry.TracingMiddleware(serviceName))
	}

	// Health check endpoints
	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)

	jwtConfig := &middleware.JWTConfig{
		Secret: cfg.JWT.Secret,
	}

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Catalog endpoints - public
		products := v1.Group("/products")
		{
			products.GET("", container.CatalogHandler.List)
			products.GET("/:slug", container.CatalogHandler.GetBySlug)
			products.GET("/:slug/related", container.CatalogHandler.GetRelated)
		}
		v1.GET("/cities", container.CatalogHandler.ListCities)

		// Insights endpoints - authenticated
		insights := v1.Group("/insights")
		insights.Use(middleware.JWTMiddleware(jwtConfig))
		{
			insights.POST("/products/segments", container.InsightsHandler.SegmentProducts)
			insights.POST("/products/filter", container.InsightsHandler.FilterProducts)
			insights.GET("/products/categories", container.InsightsHandler.Categories)
			insights.GET("/products/metrics", container.InsightsHandler.ProductMetrics)
			insights.GET("/customers/segments", container.InsightsHandler.CustomerSegments)
			insights.GET("/bookings/classification", container.InsightsHandler.BookingClassification)

			// Refresh is restricted to operators
			insights.POST("/refresh", middleware.RequireRole("admin"), container.InsightsHandler.Refresh)
		}
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		appLog.Info(fmt.Sprintf("Catalog Insights Service listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(fmt.Sprintf("Failed to start server: %v", err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("Shutting down Catalog Insights Service...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error(fmt.Sprintf("Server forced to shutdown: %v", err))
	}

	appLog.Info("Catalog Insights Service stopped")
}
