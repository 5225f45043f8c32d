package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/pineapple-tours/catalog-insights/internal/catalog"
	"github.com/pineapple-tours/catalog-insights/internal/domain"
	"github.com/pineapple-tours/catalog-insights/internal/repository"
	"github.com/pineapple-tours/catalog-insights/internal/segmentation"
	"github.com/pineapple-tours/catalog-insights/pkg/kafka"
	"github.com/pineapple-tours/catalog-insights/pkg/redis"
)

const (
	// Cache key prefixes for computed insights
	insightsKeyPrefix        = "insights:"
	productSegmentsKeyPrefix = "insights:segments:products:"
	customerSegmentsKey      = "insights:segments:customers"
	bookingClassificationKey = "insights:bookings"
	productMetricsKey        = "insights:metrics"
	categorizedProductsKey   = "insights:categories"

	// Default TTL for computed insights
	insightsCacheTTL = 5 * time.Minute

	// refreshedEventType is published when cached insights are dropped
	refreshedEventType = "insights.refreshed"
)

// SnapshotInvalidator is implemented by repositories that cache snapshots
type SnapshotInvalidator interface {
	Invalidate(ctx context.Context) error
}

// InsightsOptions carries the optional collaborators of the insights
// service. Cache and Producer may be nil; the service then computes on
// every call and publishes nothing.
type InsightsOptions struct {
	Cache    *redis.Client
	Producer *kafka.Producer
	Topic    string
	CacheTTL time.Duration
	Logger   *zap.Logger
}

// insightsService implements InsightsService
type insightsService struct {
	repo     repository.CatalogRepository
	engine   *segmentation.Engine
	cache    *redis.Client
	producer *kafka.Producer
	topic    string
	ttl      time.Duration
	sfGroup  singleflight.Group
	log      *zap.Logger
}

// customerInsights bundles the two customer views for caching
type customerInsights struct {
	Segments     domain.CustomerSegments     `json:"segments"`
	Demographics domain.CustomerDemographics `json:"demographics"`
}

// NewInsightsService creates a new InsightsService
func NewInsightsService(repo repository.CatalogRepository, engine *segmentation.Engine, opts InsightsOptions) InsightsService {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = insightsCacheTTL
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &insightsService{
		repo:     repo,
		engine:   engine,
		cache:    opts.Cache,
		producer: opts.Producer,
		topic:    opts.Topic,
		ttl:      opts.CacheTTL,
		log:      opts.Logger,
	}
}

// SegmentProducts segments the product snapshot, optionally against
// filter criteria. Results are memoized per criteria; concurrent calls
// for the same criteria share one computation.
func (s *insightsService) SegmentProducts(ctx context.Context, criteria *domain.FilterCriteria) (domain.SegmentedProducts, error) {
	key := productSegmentsKeyPrefix + criteriaHash(criteria)

	result, err, _ := s.sfGroup.Do(key, func() (interface{}, error) {
		var cached domain.SegmentedProducts
		if s.getCached(ctx, key, &cached) {
			return cached, nil
		}

		products, err := s.repo.ListProducts(ctx)
		if err != nil {
			return domain.SegmentedProducts{}, err
		}

		segments := s.engine.SegmentProducts(products, criteria)
		s.setCached(ctx, key, segments)
		return segments, nil
	})
	if err != nil {
		return domain.SegmentedProducts{}, err
	}
	return result.(domain.SegmentedProducts), nil
}

// FilterProducts applies a structured multi-dimensional filter. Not
// cached; a filter pass over the snapshot is cheap.
func (s *insightsService) FilterProducts(ctx context.Context, criteria domain.FilterCriteria) ([]domain.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.ApplyMultiDimensionalFilter(products, criteria), nil
}

// SegmentCustomers segments customers by spend and recency
func (s *insightsService) SegmentCustomers(ctx context.Context) (domain.CustomerSegments, domain.CustomerDemographics, error) {
	result, err, _ := s.sfGroup.Do(customerSegmentsKey, func() (interface{}, error) {
		var cached customerInsights
		if s.getCached(ctx, customerSegmentsKey, &cached) {
			return cached, nil
		}

		customers, err := s.repo.ListCustomers(ctx)
		if err != nil {
			return customerInsights{}, err
		}
		bookings, err := s.repo.ListBookings(ctx)
		if err != nil {
			return customerInsights{}, err
		}

		insights := customerInsights{
			Segments:     s.engine.SegmentCustomers(customers, bookings),
			Demographics: s.engine.SegmentCustomerDemographics(customers, bookings),
		}
		s.setCached(ctx, customerSegmentsKey, insights)
		return insights, nil
	})
	if err != nil {
		return domain.CustomerSegments{}, domain.CustomerDemographics{}, err
	}

	insights := result.(customerInsights)
	return insights.Segments, insights.Demographics, nil
}

// ClassifyBookings classifies bookings by status, timing, and value
func (s *insightsService) ClassifyBookings(ctx context.Context) (domain.BookingClassification, error) {
	result, err, _ := s.sfGroup.Do(bookingClassificationKey, func() (interface{}, error) {
		var cached domain.BookingClassification
		if s.getCached(ctx, bookingClassificationKey, &cached) {
			return cached, nil
		}

		bookings, err := s.repo.ListBookings(ctx)
		if err != nil {
			return domain.BookingClassification{}, err
		}

		classification := s.engine.ClassifyBookings(bookings)
		s.setCached(ctx, bookingClassificationKey, classification)
		return classification, nil
	})
	if err != nil {
		return domain.BookingClassification{}, err
	}
	return result.(domain.BookingClassification), nil
}

// ProductMetrics computes revenue and popularity tiers
func (s *insightsService) ProductMetrics(ctx context.Context) (domain.ProductMetrics, error) {
	result, err, _ := s.sfGroup.Do(productMetricsKey, func() (interface{}, error) {
		var cached domain.ProductMetrics
		if s.getCached(ctx, productMetricsKey, &cached) {
			return cached, nil
		}

		products, err := s.repo.ListProducts(ctx)
		if err != nil {
			return domain.ProductMetrics{}, err
		}
		bookings, err := s.repo.ListBookings(ctx)
		if err != nil {
			return domain.ProductMetrics{}, err
		}

		metrics := s.engine.ProductMetrics(products, bookings)
		s.setCached(ctx, productMetricsKey, metrics)
		return metrics, nil
	})
	if err != nil {
		return domain.ProductMetrics{}, err
	}
	return result.(domain.ProductMetrics), nil
}

// CategorizeProducts buckets products per category tag
func (s *insightsService) CategorizeProducts(ctx context.Context) (domain.CategorizedProducts, error) {
	result, err, _ := s.sfGroup.Do(categorizedProductsKey, func() (interface{}, error) {
		var cached domain.CategorizedProducts
		if s.getCached(ctx, categorizedProductsKey, &cached) {
			return cached, nil
		}

		products, err := s.repo.ListProducts(ctx)
		if err != nil {
			return nil, err
		}

		categories := s.engine.CategorizeProducts(products)
		s.setCached(ctx, categorizedProductsKey, categories)
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(domain.CategorizedProducts), nil
}

// Refresh drops cached insights and snapshots, then publishes a refresh
// event for downstream consumers.
func (s *insightsService) Refresh(ctx context.Context) error {
	if s.cache != nil {
		if err := s.cache.DeleteByPattern(ctx, insightsKeyPrefix+"*"); err != nil {
			return err
		}
	}
	if invalidator, ok := s.repo.(SnapshotInvalidator); ok {
		if err := invalidator.Invalidate(ctx); err != nil {
			return err
		}
	}

	if s.producer != nil && s.topic != "" {
		event := map[string]interface{}{
			"event_id":    uuid.New().String(),
			"event_type":  refreshedEventType,
			"occurred_at": time.Now().UTC().Format(time.RFC3339),
		}
		if err := s.producer.ProduceJSON(ctx, s.topic, refreshedEventType, event, nil); err != nil {
			// Refresh already happened; a failed publish is not fatal
			s.log.Warn("failed to publish refresh event", zap.Error(err))
		}
	}

	s.log.Info("insights caches refreshed")
	return nil
}

// criteriaHash derives a stable cache key fragment from filter criteria.
// Nil criteria hash to a fixed "none" fragment.
func criteriaHash(criteria *domain.FilterCriteria) string {
	if criteria == nil {
		return "none"
	}
	data, err := json.Marshal(criteria)
	if err != nil {
		return "none"
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// getCached loads a JSON value from the cache. Returns false on miss,
// nil cache, or decode failure.
func (s *insightsService) getCached(ctx context.Context, key string, out interface{}) bool {
	if s.cache == nil {
		return false
	}
	cached, err := s.cache.Get(ctx, key).Result()
	if err != nil || cached == "" {
		return false
	}
	return json.Unmarshal([]byte(cached), out) == nil
}

// setCached stores a JSON value in the cache. Failures are ignored.
func (s *insightsService) setCached(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	s.cache.Set(ctx, key, string(data), s.ttl)
}
