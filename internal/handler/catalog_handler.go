package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/pineapple-tours/catalog-insights/internal/catalog"
	"github.com/pineapple-tours/catalog-insights/internal/domain"
	"github.com/pineapple-tours/catalog-insights/internal/dto"
	"github.com/pineapple-tours/catalog-insights/internal/service"
	"github.com/pineapple-tours/catalog-insights/pkg/response"
)

// CatalogHandler handles the public catalog HTTP requests
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// List handles GET /products - lists products with filters and pagination
func (h *CatalogHandler) List(c *gin.Context) {
	var filter dto.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	if valid, msg := filter.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	products, total, err := h.catalogService.ListProducts(c.Request.Context(), &filter)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	productResponses := make([]*dto.ProductResponse, len(products))
	for i := range products {
		productResponses[i] = toProductResponse(&products[i])
	}

	filter.SetDefaults()
	response.Paginated(c, productResponses, filter.Offset/filter.Limit+1, filter.Limit, int64(total))
}

// GetBySlug handles GET /products/:slug - resolves a slug to a product
func (h *CatalogHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.BadRequest(c, "Slug is required")
		return
	}

	product, err := h.catalogService.GetProductBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.NotFound(c, "Product not found")
			return
		}
		response.InternalError(c, err)
		return
	}

	response.Success(c, toProductResponse(product))
}

// GetRelated handles GET /products/:slug/related - lists products
// operating from the same area as the resolved product
func (h *CatalogHandler) GetRelated(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.BadRequest(c, "Slug is required")
		return
	}

	product, related, err := h.catalogService.GetRelatedProducts(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.NotFound(c, "Product not found")
			return
		}
		response.InternalError(c, err)
		return
	}

	relatedResponses := make([]*dto.ProductResponse, len(related))
	for i := range related {
		relatedResponses[i] = toProductResponse(&related[i])
	}

	response.Success(c, dto.RelatedProductsResponse{
		Product: toProductResponse(product),
		Related: relatedResponses,
	})
}

// ListCities handles GET /cities - lists the distinct catalog cities
func (h *CatalogHandler) ListCities(c *gin.Context) {
	cities, err := h.catalogService.ListCities(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}

	response.Success(c, dto.CityListResponse{
		Cities: cities,
		Total:  len(cities),
	})
}

// toProductResponse maps a product to its API shape
func toProductResponse(p *domain.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		Code:             p.Code,
		Name:             p.Name,
		Slug:             catalog.GenerateProductSlug(p),
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		Type:             p.Type,
		AdvertisedPrice:  p.AdvertisedPrice,
		Categories:       p.Categories,
		Location:         p.LocationAddress.Display(),
		Status:           p.Status,
		Images:           p.Images,
	}
}
