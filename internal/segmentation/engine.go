// Package segmentation computes marketing and analytics views over
// catalog snapshots: product segments, customer segments, booking
// classification, and revenue/popularity tiers. All computations are
// pure functions over the supplied slices; inputs are never mutated and
// every result is freshly allocated.
package segmentation

import (
	"go.uber.org/zap"

	"github.com/pineapple-tours/catalog-insights/internal/catalog"
	"github.com/pineapple-tours/catalog-insights/internal/clock"
	"github.com/pineapple-tours/catalog-insights/internal/domain"
)

// Engine runs segmentation over catalog snapshots. It holds no snapshot
// state of its own; the clock and logger are the only injected
// collaborators, so identical inputs always yield identical outputs.
type Engine struct {
	clock clock.Clock
	log   *zap.Logger
}

// NewEngine creates an Engine. A nil clock falls back to the system
// clock; a nil logger disables diagnostics.
func NewEngine(clk clock.Clock, log *zap.Logger) *Engine {
	if clk == nil {
		clk = clock.Real{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{clock: clk, log: log}
}

// SegmentProducts runs four independent product filters over the same
// input. Segments are views, not a partition: a product may appear in
// several or none.
func (e *Engine) SegmentProducts(products []domain.Product, criteria *domain.FilterCriteria) domain.SegmentedProducts {
	segments := domain.SegmentedProducts{
		HighDemand:     []domain.Product{},
		Seasonal:       []domain.Product{},
		LocationBased:  []domain.Product{},
		PriceOptimized: []domain.Product{},
	}

	for i := range products {
		p := &products[i]
		if isHighDemand(p) {
			segments.HighDemand = append(segments.HighDemand, *p)
		}
		if isPriceOptimized(p) {
			segments.PriceOptimized = append(segments.PriceOptimized, *p)
		}
	}

	if criteria != nil && criteria.Temporal != nil && criteria.Temporal.Season != "" {
		for i := range products {
			if catalog.MatchesSeason(&products[i], criteria.Temporal.Season) {
				segments.Seasonal = append(segments.Seasonal, products[i])
			}
		}
	}

	segments.LocationBased = locationSegment(products, criteria)

	e.log.Debug("segmented products",
		zap.Int("input", len(products)),
		zap.Int("high_demand", len(segments.HighDemand)),
		zap.Int("seasonal", len(segments.Seasonal)),
		zap.Int("location_based", len(segments.LocationBased)),
		zap.Int("price_optimized", len(segments.PriceOptimized)))

	return segments
}

// isHighDemand: bookable tours and experiences with a real price
func isHighDemand(p *domain.Product) bool {
	if p.Type != domain.ProductTypeTour && p.Type != domain.ProductTypeExperience {
		return false
	}
	return p.HasPrice()
}

// isPriceOptimized: priced products with enough copy and imagery to
// convert well
func isPriceOptimized(p *domain.Product) bool {
	return p.HasPrice() && len(p.Description) > 50 && len(p.Images) > 0
}

// locationSegment matches products against the geographical criteria.
// No criteria yields an empty segment; criteria with an empty location
// list pass everything through unchanged.
func locationSegment(products []domain.Product, criteria *domain.FilterCriteria) []domain.Product {
	if criteria == nil {
		return []domain.Product{}
	}
	if criteria.Geographical == nil || len(criteria.Geographical.Locations) == 0 {
		out := make([]domain.Product, len(products))
		copy(out, products)
		return out
	}

	out := []domain.Product{}
	for i := range products {
		for _, loc := range criteria.Geographical.Locations {
			if catalog.MatchesLocation(&products[i], loc) {
				out = append(out, products[i])
				break
			}
		}
	}
	return out
}

// CategorizeProducts buckets products per category tag. A product may
// land in multiple buckets.
func (e *Engine) CategorizeProducts(products []domain.Product) domain.CategorizedProducts {
	result := make(domain.CategorizedProducts, len(catalog.CanonicalCategories()))
	for _, tag := range catalog.CanonicalCategories() {
		bucket := []domain.Product{}
		for i := range products {
			if catalog.MatchesCategory(&products[i], tag) {
				bucket = append(bucket, products[i])
			}
		}
		result[tag] = bucket
	}
	return result
}

// ProductMetrics computes revenue and popularity tiers from booking
// items. Revenue is the summed item amount per product code; popularity
// is the item count. Tiers are percentile bands: top 25, middle 25-75,
// bottom 25.
func (e *Engine) ProductMetrics(products []domain.Product, bookings []domain.Booking) domain.ProductMetrics {
	revenue := make(map[string]float64)
	popularity := make(map[string]float64)
	for i := range bookings {
		for _, item := range bookings[i].Items {
			revenue[item.ProductCode] += item.Amount
			popularity[item.ProductCode]++
		}
	}

	byRevenue := func(p *domain.Product) float64 { return revenue[p.Code] }
	byPopularity := func(p *domain.Product) float64 { return popularity[p.Code] }

	return domain.ProductMetrics{
		TopRevenue:       TopPercentile(products, byRevenue, 25),
		MidRevenue:       MiddlePercentile(products, byRevenue, 25, 75),
		LowRevenue:       BottomPercentile(products, byRevenue, 25),
		MostPopular:      TopPercentile(products, byPopularity, 25),
		ModeratelyBooked: MiddlePercentile(products, byPopularity, 25, 75),
		RarelyBooked:     BottomPercentile(products, byPopularity, 25),
	}
}
