package repository

import (
	"context"

	"github.com/pineapple-tours/catalog-insights/internal/domain"
)

// CatalogRepository defines the interface for catalog snapshot access.
// Segmentation and filtering run in memory over full snapshots, so the
// listing methods return every live row rather than a page.
type CatalogRepository interface {
	// ListProducts retrieves the full product snapshot
	ListProducts(ctx context.Context) ([]domain.Product, error)
	// GetProductByCode retrieves a single product by its code
	GetProductByCode(ctx context.Context, code string) (*domain.Product, error)
	// ListCustomers retrieves the full customer snapshot
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	// ListBookings retrieves the full booking snapshot
	ListBookings(ctx context.Context) ([]domain.Booking, error)
}
