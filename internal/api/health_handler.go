package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/broadbandiq/subscription-intel/internal/services"
)

// HealthHandler reports service health and model state
type HealthHandler struct {
	advisor services.AdvisorService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(advisor services.AdvisorService) *HealthHandler {
	return &HealthHandler{advisor: advisor}
}

// Health returns service status and whether the churn model is trained
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"service":      "subscription-intel",
		"model_loaded": h.advisor.ModelLoaded(),
		"timestamp":    time.Now(),
	})
}
