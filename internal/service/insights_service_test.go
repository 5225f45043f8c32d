package service

import (
	"context"
	"testing"
	"time"

	"github.com/pineapple-tours/catalog-insights/internal/clock"
	"github.com/pineapple-tours/catalog-insights/internal/domain"
	"github.com/pineapple-tours/catalog-insights/internal/segmentation"
)

var insightsNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestInsightsService(repo *MockCatalogRepository) InsightsService {
	engine := segmentation.NewEngine(clock.Fake{Instant: insightsNow}, nil)
	return NewInsightsService(repo, engine, InsightsOptions{})
}

func TestInsightsService_SegmentProducts(t *testing.T) {
	repo := NewMockCatalogRepository()
	repo.products = seedProducts()
	svc := newTestInsightsService(repo)

	segments, err := svc.SegmentProducts(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Priced tours and experiences: everything except the transfer
	if len(segments.HighDemand) != 3 {
		t.Errorf("expected 3 high demand products, got %d", len(segments.HighDemand))
	}
	if len(segments.LocationBased) != 0 {
		t.Errorf("expected empty location segment without criteria, got %d", len(segments.LocationBased))
	}
}

func TestInsightsService_SegmentProducts_WithCriteria(t *testing.T) {
	repo := NewMockCatalogRepository()
	repo.products = seedProducts()
	svc := newTestInsightsService(repo)

	criteria := &domain.FilterCriteria{
		Geographical: &domain.GeographicalCriteria{Locations: []string{"tamborine"}},
	}
	segments, err := svc.SegmentProducts(context.Background(), criteria)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(segments.LocationBased) != 2 {
		t.Errorf("expected 2 location based products, got %d", len(segments.LocationBased))
	}
}

func TestInsightsService_FilterProducts(t *testing.T) {
	repo := NewMockCatalogRepository()
	repo.products = seedProducts()
	svc := newTestInsightsService(repo)

	criteria := domain.FilterCriteria{
		Commercial: &domain.CommercialCriteria{
			PriceRange: &domain.PriceRange{Min: 80, Max: 160},
		},
	}
	filtered, err := svc.FilterProducts(context.Background(), criteria)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 89 and 149 fall inside the bounds; 65 and 175 do not
	if len(filtered) != 2 {
		t.Fatalf("expected 2 products, got %d", len(filtered))
	}
	if filtered[0].Code != "PH1FEA" || filtered[1].Code != "PWQF1Y" {
		t.Errorf("unexpected filter result: %v", filtered)
	}
}

func TestInsightsService_SegmentCustomers(t *testing.T) {
	repo := NewMockCatalogRepository()
	repo.customers = []domain.Customer{
		{Email: "vip@example.com"},
		{Email: "quiet@example.com"},
		{Email: "new@example.com"},
	}
	repo.bookings = []domain.Booking{
		{
			OrderNumber: "O1",
			Customer:    domain.Customer{Email: "vip@example.com"},
			TotalAmount: 2000,
			Status:      domain.BookingStatusConfirmed,
			CreatedDate: insightsNow.AddDate(0, -1, 0),
		},
		{
			OrderNumber: "O2",
			Customer:    domain.Customer{Email: "quiet@example.com"},
			TotalAmount: 100,
			Status:      domain.BookingStatusCompleted,
			CreatedDate: insightsNow.AddDate(0, -8, 0),
		},
	}
	svc := newTestInsightsService(repo)

	segments, demographics, err := svc.SegmentCustomers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(segments.VIP) != 1 || segments.VIP[0].Email != "vip@example.com" {
		t.Errorf("unexpected VIP segment: %v", segments.VIP)
	}
	if len(segments.AtRisk) != 1 || segments.AtRisk[0].Email != "quiet@example.com" {
		t.Errorf("unexpected at risk segment: %v", segments.AtRisk)
	}
	if len(demographics.Prospect) != 1 || demographics.Prospect[0].Email != "new@example.com" {
		t.Errorf("unexpected prospect bucket: %v", demographics.Prospect)
	}
}

func TestInsightsService_ClassifyBookings(t *testing.T) {
	repo := NewMockCatalogRepository()
	created := insightsNow.AddDate(0, -1, 0)
	repo.bookings = []domain.Booking{
		{
			OrderNumber: "O1",
			Status:      domain.BookingStatusConfirmed,
			TotalAmount: 300,
			CreatedDate: created,
			Items: []domain.BookingItem{
				{ProductCode: "PWQF1Y", StartTimeLocal: created.AddDate(0, 0, 40), Amount: 300},
			},
		},
		{
			OrderNumber: "O2",
			Status:      domain.BookingStatusCancelled,
			TotalAmount: 90,
			CreatedDate: created,
			Items: []domain.BookingItem{
				{ProductCode: "PH1FEA", StartTimeLocal: created.AddDate(0, 0, 2), Amount: 90},
			},
		},
	}
	svc := newTestInsightsService(repo)

	classification, err := svc.ClassifyBookings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(classification.Confirmed) != 1 || len(classification.Cancelled) != 1 {
		t.Errorf("unexpected status axis: %+v", classification)
	}
	if len(classification.Advance) != 1 || classification.Advance[0].OrderNumber != "O1" {
		t.Errorf("unexpected advance bookings: %v", classification.Advance)
	}
	if len(classification.LastMinute) != 1 || classification.LastMinute[0].OrderNumber != "O2" {
		t.Errorf("unexpected last minute bookings: %v", classification.LastMinute)
	}
}

func TestInsightsService_ProductMetrics(t *testing.T) {
	repo := NewMockCatalogRepository()
	repo.products = seedProducts()
	repo.bookings = []domain.Booking{
		{OrderNumber: "O1", Items: []domain.BookingItem{{ProductCode: "PWQF1Y", Amount: 500}}},
		{OrderNumber: "O2", Items: []domain.BookingItem{{ProductCode: "PWQF1Y", Amount: 400}}},
		{OrderNumber: "O3", Items: []domain.BookingItem{{ProductCode: "PH1FEA", Amount: 90}}},
	}
	svc := newTestInsightsService(repo)

	metrics, err := svc.ProductMetrics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(metrics.TopRevenue) != 1 || metrics.TopRevenue[0].Code != "PWQF1Y" {
		t.Errorf("unexpected top revenue tier: %v", metrics.TopRevenue)
	}
	if len(metrics.MostPopular) != 1 || metrics.MostPopular[0].Code != "PWQF1Y" {
		t.Errorf("unexpected most popular tier: %v", metrics.MostPopular)
	}
}

func TestInsightsService_CategorizeProducts(t *testing.T) {
	repo := NewMockCatalogRepository()
	repo.products = seedProducts()
	svc := newTestInsightsService(repo)

	categories, err := svc.CategorizeProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wineryTours := categories["winery-tours"]
	found := false
	for i := range wineryTours {
		if wineryTours[i].Code == "PWQF1Y" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected PWQF1Y in winery-tours, got %v", wineryTours)
	}
}

func TestInsightsService_Refresh_NoCollaborators(t *testing.T) {
	repo := NewMockCatalogRepository()
	svc := newTestInsightsService(repo)

	// Without cache and producer the refresh is a no-op that must still
	// succeed
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
