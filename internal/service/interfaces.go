package service

import (
	"context"

	"github.com/pineapple-tours/catalog-insights/internal/domain"
	"github.com/pineapple-tours/catalog-insights/internal/dto"
)

// CatalogService defines the business logic of the public catalog surface
type CatalogService interface {
	// ListProducts lists products matching the field filters, paginated
	ListProducts(ctx context.Context, filter *dto.ProductListFilter) ([]domain.Product, int, error)
	// GetProductBySlug resolves a URL slug to a product
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	// GetRelatedProducts resolves a slug and returns products operating
	// from the same area
	GetRelatedProducts(ctx context.Context, slug string) (*domain.Product, []domain.Product, error)
	// ListCities lists the distinct cities of the catalog
	ListCities(ctx context.Context) ([]string, error)
}

// InsightsService defines the segmentation and analytics operations
type InsightsService interface {
	// SegmentProducts segments the product snapshot, optionally against
	// filter criteria
	SegmentProducts(ctx context.Context, criteria *domain.FilterCriteria) (domain.SegmentedProducts, error)
	// FilterProducts applies a structured multi-dimensional filter
	FilterProducts(ctx context.Context, criteria domain.FilterCriteria) ([]domain.Product, error)
	// SegmentCustomers segments customers by spend and recency
	SegmentCustomers(ctx context.Context) (domain.CustomerSegments, domain.CustomerDemographics, error)
	// ClassifyBookings classifies bookings by status, timing, and value
	ClassifyBookings(ctx context.Context) (domain.BookingClassification, error)
	// ProductMetrics computes revenue and popularity tiers
	ProductMetrics(ctx context.Context) (domain.ProductMetrics, error)
	// CategorizeProducts buckets products per category tag
	CategorizeProducts(ctx context.Context) (domain.CategorizedProducts, error)
	// Refresh drops cached insights and snapshots
	Refresh(ctx context.Context) error
}
