package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pineapple-tours/catalog-insights/internal/domain"
	"github.com/pineapple-tours/catalog-insights/pkg/redis"
)

const (
	// Cache key prefixes
	productListKey      = "catalog:products"
	productDetailPrefix = "catalog:product:"
	customerListKey     = "catalog:customers"
	bookingListKey      = "catalog:bookings"

	// Default TTL for catalog snapshots
	catalogCacheTTL = 5 * time.Minute
)

// CachedCatalogRepository wraps CatalogRepository with Redis caching.
// Snapshots are cached whole; a miss or unmarshal failure falls through
// to the database.
type CachedCatalogRepository struct {
	repo  CatalogRepository
	cache *redis.Client
	ttl   time.Duration
}

// NewCachedCatalogRepository creates a new CachedCatalogRepository. A
// zero ttl uses the default.
func NewCachedCatalogRepository(repo CatalogRepository, cache *redis.Client, ttl time.Duration) *CachedCatalogRepository {
	if ttl <= 0 {
		ttl = catalogCacheTTL
	}
	return &CachedCatalogRepository{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
	}
}

// ListProducts retrieves the product snapshot with caching
func (r *CachedCatalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	cached, err := r.cache.Get(ctx, productListKey).Result()
	if err == nil && cached != "" {
		var products []domain.Product
		if err := json.Unmarshal([]byte(cached), &products); err == nil {
			return products, nil
		}
	}

	products, err := r.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	r.cacheValue(ctx, productListKey, products)
	return products, nil
}

// GetProductByCode retrieves a product by code with caching
func (r *CachedCatalogRepository) GetProductByCode(ctx context.Context, code string) (*domain.Product, error) {
	cacheKey := productDetailPrefix + code
	cached, err := r.cache.Get(ctx, cacheKey).Result()
	if err == nil && cached != "" {
		var product domain.Product
		if err := json.Unmarshal([]byte(cached), &product); err == nil {
			return &product, nil
		}
	}

	product, err := r.repo.GetProductByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}

	r.cacheValue(ctx, cacheKey, product)
	return product, nil
}

// ListCustomers retrieves the customer snapshot with caching
func (r *CachedCatalogRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	cached, err := r.cache.Get(ctx, customerListKey).Result()
	if err == nil && cached != "" {
		var customers []domain.Customer
		if err := json.Unmarshal([]byte(cached), &customers); err == nil {
			return customers, nil
		}
	}

	customers, err := r.repo.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}

	r.cacheValue(ctx, customerListKey, customers)
	return customers, nil
}

// ListBookings retrieves the booking snapshot with caching
func (r *CachedCatalogRepository) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	cached, err := r.cache.Get(ctx, bookingListKey).Result()
	if err == nil && cached != "" {
		var bookings []domain.Booking
		if err := json.Unmarshal([]byte(cached), &bookings); err == nil {
			return bookings, nil
		}
	}

	bookings, err := r.repo.ListBookings(ctx)
	if err != nil {
		return nil, err
	}

	r.cacheValue(ctx, bookingListKey, bookings)
	return bookings, nil
}

// Invalidate drops every cached catalog snapshot.
func (r *CachedCatalogRepository) Invalidate(ctx context.Context) error {
	return r.cache.DeleteByPattern(ctx, "catalog:*")
}

// cacheValue stores a value as JSON. Cache write failures are ignored;
// the database remains the source of truth.
func (r *CachedCatalogRepository) cacheValue(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	r.cache.Set(ctx, key, string(data), r.ttl)
}
