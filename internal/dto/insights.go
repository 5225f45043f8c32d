package dto

import (
	"github.com/pineapple-tours/catalog-insights/internal/domain"
)

// SegmentProductsRequest represents the request body for product
// segmentation. Criteria is optional; without it only the high demand
// and price optimized segments are populated.
type SegmentProductsRequest struct {
	Criteria *domain.FilterCriteria `json:"criteria,omitempty"`
}

// Validate validates the SegmentProductsRequest
func (r *SegmentProductsRequest) Validate() (bool, string) {
	if r.Criteria == nil || r.Criteria.Commercial == nil {
		return true, ""
	}
	pr := r.Criteria.Commercial.PriceRange
	if pr != nil && pr.Max > 0 && pr.Min > pr.Max {
		return false, "Price range min cannot exceed max"
	}
	return true, ""
}

// MultiFilterRequest represents the request body for multi-dimensional
// filtering
type MultiFilterRequest struct {
	Criteria domain.FilterCriteria `json:"criteria"`
}

// Validate validates the MultiFilterRequest
func (r *MultiFilterRequest) Validate() (bool, string) {
	if r.Criteria.Commercial == nil {
		return true, ""
	}
	pr := r.Criteria.Commercial.PriceRange
	if pr != nil && pr.Max > 0 && pr.Min > pr.Max {
		return false, "Price range min cannot exceed max"
	}
	return true, ""
}

// SegmentSummary counts the members of each product segment
type SegmentSummary struct {
	HighDemand     int `json:"high_demand"`
	Seasonal       int `json:"seasonal"`
	LocationBased  int `json:"location_based"`
	PriceOptimized int `json:"price_optimized"`
}

// SegmentProductsResponse represents the product segmentation result
type SegmentProductsResponse struct {
	Segments domain.SegmentedProducts `json:"segments"`
	Summary  SegmentSummary           `json:"summary"`
}

// NewSegmentProductsResponse builds the response with its summary counts
func NewSegmentProductsResponse(segments domain.SegmentedProducts) *SegmentProductsResponse {
	return &SegmentProductsResponse{
		Segments: segments,
		Summary: SegmentSummary{
			HighDemand:     len(segments.HighDemand),
			Seasonal:       len(segments.Seasonal),
			LocationBased:  len(segments.LocationBased),
			PriceOptimized: len(segments.PriceOptimized),
		},
	}
}

// CustomerSegmentsResponse represents the customer segmentation result
type CustomerSegmentsResponse struct {
	Segments     domain.CustomerSegments     `json:"segments"`
	Demographics domain.CustomerDemographics `json:"demographics"`
}

// BookingClassificationResponse represents the booking classification
// result
type BookingClassificationResponse struct {
	Classification domain.BookingClassification `json:"classification"`
}

// ProductMetricsResponse represents the revenue and popularity tiers
type ProductMetricsResponse struct {
	Metrics domain.ProductMetrics `json:"metrics"`
}

// CategorizedProductsResponse represents products bucketed per category
type CategorizedProductsResponse struct {
	Categories domain.CategorizedProducts `json:"categories"`
}

// RefreshResponse acknowledges a cache refresh
type RefreshResponse struct {
	Invalidated bool   `json:"invalidated"`
	Message     string `json:"message"`
}
