package segmentation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pineapple-tours/catalog-insights/internal/clock"
	"github.com/pineapple-tours/catalog-insights/internal/domain"
)

func newTestEngine() *Engine {
	return NewEngine(clock.Fake{Instant: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}, nil)
}

func price(v float64) *float64 { return &v }

func testProducts() []domain.Product {
	longDescription := "A full-day guided tour through the hinterland with tastings at three cellar doors and lunch included."
	return []domain.Product{
		{
			Code: "TOUR1", Name: "Winery Day Tour", Type: domain.ProductTypeTour,
			AdvertisedPrice: price(149), Description: longDescription,
			Images:          []domain.Image{{ItemURL: "https://img.example/1.jpg"}},
			LocationAddress: &domain.Address{City: "Brisbane"},
		},
		{
			Code: "EXP1", Name: "Glow Worm Experience", Type: domain.ProductTypeExperience,
			AdvertisedPrice: price(89),
			LocationAddress: &domain.Address{Raw: "Springbrook, QLD"},
		},
		{
			Code: "GC1", Name: "Gift Voucher", Type: domain.ProductTypeGiftCard,
			AdvertisedPrice: price(100), Description: longDescription,
			Images: []domain.Image{{ItemURL: "https://img.example/2.jpg"}},
		},
		{
			Code: "TOUR2", Name: "Spring Blossom Tour", Type: domain.ProductTypeTour,
			ShortDescription: "Spring wildflower walk",
		},
	}
}

func TestSegmentProducts_HighDemand(t *testing.T) {
	e := newTestEngine()

	segments := e.SegmentProducts(testProducts(), nil)

	// Tours and experiences with a price; gift cards and unpriced tours excluded
	assert.Equal(t, []string{"TOUR1", "EXP1"}, productCodes(segments.HighDemand))
}

func TestSegmentProducts_PriceOptimized(t *testing.T) {
	e := newTestEngine()

	segments := e.SegmentProducts(testProducts(), nil)

	// Needs price, substantial description, and at least one image
	assert.Equal(t, []string{"TOUR1", "GC1"}, productCodes(segments.PriceOptimized))
}

func TestSegmentProducts_Seasonal(t *testing.T) {
	e := newTestEngine()
	criteria := &domain.FilterCriteria{
		Temporal: &domain.TemporalCriteria{Season: "spring"},
	}

	segments := e.SegmentProducts(testProducts(), criteria)

	assert.Equal(t, []string{"TOUR2"}, productCodes(segments.Seasonal))
}

func TestSegmentProducts_SeasonalEmptyWithoutCriteria(t *testing.T) {
	e := newTestEngine()

	segments := e.SegmentProducts(testProducts(), nil)

	assert.Empty(t, segments.Seasonal)
}

func TestSegmentProducts_LocationBased(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name     string
		criteria *domain.FilterCriteria
		want     []string
	}{
		{
			name:     "no criteria yields empty segment",
			criteria: nil,
			want:     []string{},
		},
		{
			name:     "empty location list passes everything",
			criteria: &domain.FilterCriteria{Geographical: &domain.GeographicalCriteria{}},
			want:     []string{"TOUR1", "EXP1", "GC1", "TOUR2"},
		},
		{
			name: "city match on structured address only",
			criteria: &domain.FilterCriteria{
				Geographical: &domain.GeographicalCriteria{Locations: []string{"Brisbane"}},
			},
			want: []string{"TOUR1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := e.SegmentProducts(testProducts(), tt.criteria)
			assert.Equal(t, tt.want, productCodes(segments.LocationBased))
		})
	}
}

func TestSegmentProducts_Deterministic(t *testing.T) {
	e := newTestEngine()
	products := testProducts()
	criteria := &domain.FilterCriteria{
		Temporal:     &domain.TemporalCriteria{Season: "spring"},
		Geographical: &domain.GeographicalCriteria{Locations: []string{"Brisbane"}},
	}

	first := e.SegmentProducts(products, criteria)
	second := e.SegmentProducts(products, criteria)

	assert.Equal(t, first, second)
	// Input untouched
	assert.Equal(t, testProducts(), products)
}

func TestCategorizeProducts(t *testing.T) {
	e := newTestEngine()
	products := []domain.Product{
		{Code: "A1", Name: "Rainforest Waterfall Hike"},
		{Code: "G1", Name: "Christmas Gift Voucher"},
		{Code: "T1", Name: "Airport Shuttle", Type: domain.ProductTypeTransfer},
	}

	result := e.CategorizeProducts(products)

	assert.Equal(t, []string{"A1"}, productCodes(result["adventure"]))
	assert.Equal(t, []string{"G1"}, productCodes(result["gift-vouchers"]))
	assert.Equal(t, []string{"T1"}, productCodes(result["transfers"]))

	// Type code alone is a signal: transfers also land in hop-on-hop-off
	assert.Equal(t, []string{"T1"}, productCodes(result["hop-on-hop-off"]))

	// Every canonical tag gets a bucket, even when empty
	assert.Contains(t, result, "winery-tours")
	assert.Empty(t, result["winery-tours"])
}

func TestProductMetrics(t *testing.T) {
	e := newTestEngine()
	products := []domain.Product{
		{Code: "A"}, {Code: "B"}, {Code: "C"}, {Code: "D"},
	}
	bookings := []domain.Booking{
		{OrderNumber: "O1", Items: []domain.BookingItem{{ProductCode: "A", Amount: 500}}},
		{OrderNumber: "O2", Items: []domain.BookingItem{{ProductCode: "A", Amount: 300}}},
		{OrderNumber: "O3", Items: []domain.BookingItem{{ProductCode: "B", Amount: 200}}},
		{OrderNumber: "O4", Items: []domain.BookingItem{{ProductCode: "C", Amount: 50}}},
	}

	metrics := e.ProductMetrics(products, bookings)

	// A: revenue 800, 2 items; B: 200, 1; C: 50, 1; D: 0, 0
	assert.Equal(t, []string{"A"}, productCodes(metrics.TopRevenue))
	assert.Equal(t, []string{"D"}, productCodes(metrics.LowRevenue))
	assert.Equal(t, []string{"B", "C"}, productCodes(metrics.MidRevenue))

	assert.Equal(t, []string{"A"}, productCodes(metrics.MostPopular))
	assert.Equal(t, []string{"D"}, productCodes(metrics.RarelyBooked))
}

func productCodes(products []domain.Product) []string {
	out := make([]string, len(products))
	for i := range products {
		out[i] = products[i].Code
	}
	return out
}
