package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/pineapple-tours/catalog-insights/internal/catalog"
	"github.com/pineapple-tours/catalog-insights/internal/domain"
	"github.com/pineapple-tours/catalog-insights/internal/dto"
	"github.com/pineapple-tours/catalog-insights/internal/repository"
)

// Common errors
var (
	ErrProductNotFound = errors.New("product not found")
)

// relatedProductsLimit caps the related products list
const relatedProductsLimit = 8

// catalogService implements CatalogService
type catalogService struct {
	repo     repository.CatalogRepository
	resolver *catalog.SlugResolver
	log      *zap.Logger
}

// NewCatalogService creates a new CatalogService. A nil logger disables
// diagnostics.
func NewCatalogService(repo repository.CatalogRepository, log *zap.Logger) CatalogService {
	if log == nil {
		log = zap.NewNop()
	}
	return &catalogService{
		repo:     repo,
		resolver: catalog.NewSlugResolver(log),
		log:      log,
	}
}

// ListProducts lists products matching the field filters, paginated
func (s *catalogService) ListProducts(ctx context.Context, filter *dto.ProductListFilter) ([]domain.Product, int, error) {
	if valid, msg := filter.Validate(); !valid {
		return nil, 0, errors.New(msg)
	}
	filter.SetDefaults()

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, 0, err
	}

	matched := catalog.FilterProducts(products, filter.ToFilters())
	total := len(matched)

	// Filters run over the full snapshot, so pagination is a slice window
	start := filter.Offset
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}

	return matched[start:end], total, nil
}

// GetProductBySlug resolves a URL slug to a product
func (s *catalogService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	product := s.resolver.Find(products, slug)
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetRelatedProducts resolves a slug and returns products operating from
// the same area
func (s *catalogService) GetRelatedProducts(ctx context.Context, slug string) (*domain.Product, []domain.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, nil, err
	}

	product := s.resolver.Find(products, slug)
	if product == nil {
		return nil, nil, ErrProductNotFound
	}

	related := []domain.Product{}
	for i := range products {
		if products[i].Code == product.Code {
			continue
		}
		if catalog.ProductsLocationRelated(product, &products[i]) {
			related = append(related, products[i])
			if len(related) == relatedProductsLimit {
				break
			}
		}
	}

	return product, related, nil
}

// ListCities lists the distinct cities of the catalog
func (s *catalogService) ListCities(ctx context.Context) ([]string, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.UniqueCities(products), nil
}
