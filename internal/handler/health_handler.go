package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uploadrelay/internal/service"
)

const greeting = "Welcome to my server"

// HealthHandler handles the root greeting and health check endpoints.
type HealthHandler struct {
	mediaService service.MediaService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(mediaService service.MediaService) *HealthHandler {
	return &HealthHandler{mediaService: mediaService}
}

// Root handles GET /
func (h *HealthHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, greeting)
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.mediaService.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "media store not reachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
