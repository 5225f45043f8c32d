package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pineapple-tours/catalog-insights/pkg/database"
	"github.com/pineapple-tours/catalog-insights/pkg/redis"
)

// HealthHandler reports service liveness and readiness
type HealthHandler struct {
	db    *database.PostgresDB
	cache *redis.Client
}

// NewHealthHandler creates a new HealthHandler. Both dependencies may be
// nil; absent dependencies are skipped in the readiness check.
func NewHealthHandler(db *database.PostgresDB, cache *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health handles GET /health - liveness probe
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "catalog-insights",
	})
}

// Ready handles GET /ready - readiness probe checking the backing stores
func (h *HealthHandler) Ready(c *gin.Context) {
	checks := gin.H{}
	healthy := true

	if h.db != nil {
		if err := h.db.HealthCheck(c.Request.Context()); err != nil {
			checks["database"] = err.Error()
			healthy = false
		} else {
			checks["database"] = "ok"
		}
	}

	if h.cache != nil {
		if err := h.cache.HealthCheck(c.Request.Context()); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
}
