package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/pineapple-tours/catalog-insights/internal/catalog"
	"github.com/pineapple-tours/catalog-insights/internal/clock"
	"github.com/pineapple-tours/catalog-insights/internal/domain"
	"github.com/pineapple-tours/catalog-insights/internal/dto"
	"github.com/pineapple-tours/catalog-insights/internal/segmentation"
)

// MockInsightsService is a mock implementation of InsightsService
type MockInsightsService struct {
	products  []domain.Product
	customers []domain.Customer
	bookings  []domain.Booking
	engine    *segmentation.Engine
	refreshed bool
}

func NewMockInsightsService() *MockInsightsService {
	return &MockInsightsService{engine: segmentation.NewEngine(clock.Real{}, nil)}
}

func (m *MockInsightsService) SegmentProducts(ctx context.Context, criteria *domain.FilterCriteria) (domain.SegmentedProducts, error) {
	return m.engine.SegmentProducts(m.products, criteria), nil
}

func (m *MockInsightsService) FilterProducts(ctx context.Context, criteria domain.FilterCriteria) ([]domain.Product, error) {
	return catalog.ApplyMultiDimensionalFilter(m.products, criteria), nil
}

func (m *MockInsightsService) SegmentCustomers(ctx context.Context) (domain.CustomerSegments, domain.CustomerDemographics, error) {
	return m.engine.SegmentCustomers(m.customers, m.bookings),
		m.engine.SegmentCustomerDemographics(m.customers, m.bookings), nil
}

func (m *MockInsightsService) ClassifyBookings(ctx context.Context) (domain.BookingClassification, error) {
	return m.engine.ClassifyBookings(m.bookings), nil
}

func (m *MockInsightsService) ProductMetrics(ctx context.Context) (domain.ProductMetrics, error) {
	return m.engine.ProductMetrics(m.products, m.bookings), nil
}

func (m *MockInsightsService) CategorizeProducts(ctx context.Context) (domain.CategorizedProducts, error) {
	return m.engine.CategorizeProducts(m.products), nil
}

func (m *MockInsightsService) Refresh(ctx context.Context) error {
	m.refreshed = true
	return nil
}

func setupInsightsRouter(h *InsightsHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	insights := router.Group("/api/v1/insights")
	{
		insights.POST("/products/segments", h.SegmentProducts)
		insights.GET("/customers/segments", h.CustomerSegments)
		insights.POST("/products/filter", h.FilterProducts)
		insights.GET("/bookings/classification", h.BookingClassification)
		insights.GET("/products/metrics", h.ProductMetrics)
		insights.GET("/products/categories", h.Categories)
		insights.POST("/refresh", h.Refresh)
	}

	return router
}

func seedInsightsService() *MockInsightsService {
	svc := NewMockInsightsService()
	svc.products = []domain.Product{
		{
			Code: "PWQF1Y", Name: "Tamborine Winery Tour", Type: domain.ProductTypeTour,
			AdvertisedPrice: handlerPrice(149),
			LocationAddress: &domain.Address{City: "Mount Tamborine"},
		},
		{
			Code: "PT3BNE", Name: "Brisbane Airport Transfer", Type: domain.ProductTypeTransfer,
			AdvertisedPrice: handlerPrice(65),
			LocationAddress: &domain.Address{City: "Brisbane"},
		},
	}
	return svc
}

func TestInsightsHandler_SegmentProducts(t *testing.T) {
	handler := NewInsightsHandler(seedInsightsService())
	router := setupInsightsRouter(handler)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"empty body", "", http.StatusOK},
		{"empty criteria", `{}`, http.StatusOK},
		{"with criteria", `{"criteria":{"geographical":{"locations":["tamborine"]}}}`, http.StatusOK},
		{"invalid price range", `{"criteria":{"commercial":{"price_range":{"min":200,"max":100}}}}`, http.StatusBadRequest},
		{"malformed json", `{"criteria":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodPost, "/api/v1/insights/products/segments", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d: %s", tt.wantStatus, resp.Code, resp.Body.String())
			}
		})
	}
}

func TestInsightsHandler_SegmentProducts_Summary(t *testing.T) {
	handler := NewInsightsHandler(seedInsightsService())
	router := setupInsightsRouter(handler)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/insights/products/segments", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.Code)
	}

	var body struct {
		Success bool                         `json:"success"`
		Data    *dto.SegmentProductsResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	// Only the priced tour qualifies as high demand
	if body.Data.Summary.HighDemand != 1 {
		t.Errorf("expected 1 high demand product, got %d", body.Data.Summary.HighDemand)
	}
}

func TestInsightsHandler_FilterProducts(t *testing.T) {
	handler := NewInsightsHandler(seedInsightsService())
	router := setupInsightsRouter(handler)

	body := `{"criteria":{"commercial":{"price_range":{"min":100,"max":200}}}}`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/insights/products/filter", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.Code)
	}

	var result struct {
		Success bool                   `json:"success"`
		Data    []*dto.ProductResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(result.Data) != 1 || result.Data[0].Code != "PWQF1Y" {
		t.Errorf("unexpected filter result: %+v", result.Data)
	}
}

func TestInsightsHandler_CustomerSegments(t *testing.T) {
	handler := NewInsightsHandler(seedInsightsService())
	router := setupInsightsRouter(handler)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/insights/customers/segments", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, resp.Code)
	}
}

func TestInsightsHandler_BookingClassification(t *testing.T) {
	handler := NewInsightsHandler(seedInsightsService())
	router := setupInsightsRouter(handler)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/insights/bookings/classification", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, resp.Code)
	}
}

func TestInsightsHandler_Categories(t *testing.T) {
	handler := NewInsightsHandler(seedInsightsService())
	router := setupInsightsRouter(handler)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/insights/products/categories", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.Code)
	}

	var body struct {
		Success bool                            `json:"success"`
		Data    dto.CategorizedProductsResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, ok := body.Data.Categories["winery-tours"]; !ok {
		t.Error("expected winery-tours bucket in response")
	}
}

func TestInsightsHandler_Refresh(t *testing.T) {
	svc := seedInsightsService()
	handler := NewInsightsHandler(svc)
	router := setupInsightsRouter(handler)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/insights/refresh", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.Code)
	}
	if !svc.refreshed {
		t.Error("expected refresh to reach the service")
	}
}
