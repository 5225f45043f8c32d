package dto

import (
	"github.com/pineapple-tours/catalog-insights/internal/domain"
)

// ProductListFilter represents the query filters of the product listing
type ProductListFilter struct {
	Search       string `form:"search"`
	ProductType  string `form:"product_type"`
	PriceRange   string `form:"price_range"`
	Availability string `form:"availability"`
	Location     string `form:"location"`
	Category     string `form:"category"`
	Limit        int    `form:"limit"`
	Offset       int    `form:"offset"`
}

// SetDefaults sets default values for pagination
func (f *ProductListFilter) SetDefaults() {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// validPriceRanges are the labels the listing filter accepts
var validPriceRanges = map[string]struct{}{
	"":         {},
	"all":      {},
	"under-99": {},
	"99-159":   {},
	"159-299":  {},
	"over-299": {},
}

// Validate validates the ProductListFilter
func (f *ProductListFilter) Validate() (bool, string) {
	if _, ok := validPriceRanges[f.PriceRange]; !ok {
		return false, "Unknown price range"
	}
	return true, ""
}

// ToFilters converts the query filters to the domain filter set
func (f *ProductListFilter) ToFilters() domain.ProductFilters {
	return domain.ProductFilters{
		SearchTerm:   f.Search,
		ProductType:  f.ProductType,
		PriceRange:   f.PriceRange,
		Availability: f.Availability,
		Location:     f.Location,
		Category:     f.Category,
	}
}

// ProductResponse represents a single product in API responses
type ProductResponse struct {
	Code             string         `json:"code"`
	Name             string         `json:"name"`
	Slug             string         `json:"slug"`
	ShortDescription string         `json:"short_description,omitempty"`
	Description      string         `json:"description,omitempty"`
	Type             string         `json:"type,omitempty"`
	AdvertisedPrice  *float64       `json:"advertised_price,omitempty"`
	Categories       []string       `json:"categories,omitempty"`
	Location         string         `json:"location,omitempty"`
	Status           string         `json:"status,omitempty"`
	Images           []domain.Image `json:"images,omitempty"`
}

// ProductListResponse represents a page of products
type ProductListResponse struct {
	Products []*ProductResponse `json:"products"`
	Total    int                `json:"total"`
	Limit    int                `json:"limit"`
	Offset   int                `json:"offset"`
}

// RelatedProductsResponse represents a product and its related products
type RelatedProductsResponse struct {
	Product *ProductResponse   `json:"product"`
	Related []*ProductResponse `json:"related"`
}

// CityListResponse represents the distinct cities of the catalog
type CityListResponse struct {
	Cities []string `json:"cities"`
	Total  int      `json:"total"`
}
