package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/pineapple-tours/catalog-insights/internal/dto"
	"github.com/pineapple-tours/catalog-insights/internal/service"
	"github.com/pineapple-tours/catalog-insights/pkg/response"
)

// InsightsHandler handles the protected insights HTTP requests
type InsightsHandler struct {
	insightsService service.InsightsService
}

// NewInsightsHandler creates a new InsightsHandler
func NewInsightsHandler(insightsService service.InsightsService) *InsightsHandler {
	return &InsightsHandler{
		insightsService: insightsService,
	}
}

// SegmentProducts handles POST /insights/segments/products
func (h *InsightsHandler) SegmentProducts(c *gin.Context) {
	// An empty body means segment without criteria
	var req dto.SegmentProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	segments, err := h.insightsService.SegmentProducts(c.Request.Context(), req.Criteria)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	response.Success(c, dto.NewSegmentProductsResponse(segments))
}

// FilterProducts handles POST /insights/filter
func (h *InsightsHandler) FilterProducts(c *gin.Context) {
	var req dto.MultiFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	products, err := h.insightsService.FilterProducts(c.Request.Context(), req.Criteria)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	productResponses := make([]*dto.ProductResponse, len(products))
	for i := range products {
		productResponses[i] = toProductResponse(&products[i])
	}
	response.Success(c, productResponses)
}

// CustomerSegments handles GET /insights/segments/customers
func (h *InsightsHandler) CustomerSegments(c *gin.Context) {
	segments, demographics, err := h.insightsService.SegmentCustomers(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}

	response.Success(c, dto.CustomerSegmentsResponse{
		Segments:     segments,
		Demographics: demographics,
	})
}

// BookingClassification handles GET /insights/bookings
func (h *InsightsHandler) BookingClassification(c *gin.Context) {
	classification, err := h.insightsService.ClassifyBookings(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}

	response.Success(c, dto.BookingClassificationResponse{Classification: classification})
}

// ProductMetrics handles GET /insights/metrics
func (h *InsightsHandler) ProductMetrics(c *gin.Context) {
	metrics, err := h.insightsService.ProductMetrics(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}

	response.Success(c, dto.ProductMetricsResponse{Metrics: metrics})
}

// Categories handles GET /insights/categories
func (h *InsightsHandler) Categories(c *gin.Context) {
	categories, err := h.insightsService.CategorizeProducts(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}

	response.Success(c, dto.CategorizedProductsResponse{Categories: categories})
}

// Refresh handles POST /insights/refresh - drops cached insights
func (h *InsightsHandler) Refresh(c *gin.Context) {
	if err := h.insightsService.Refresh(c.Request.Context()); err != nil {
		response.InternalError(c, err)
		return
	}

	response.Success(c, dto.RefreshResponse{
		Invalidated: true,
		Message:     "Insights caches refreshed",
	})
}
