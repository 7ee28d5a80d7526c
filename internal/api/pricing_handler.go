package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/broadbandiq/subscription-intel/internal/services"
)

// PricingHandler handles pricing optimization requests
type PricingHandler struct {
	advisor services.AdvisorService
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(advisor services.AdvisorService) *PricingHandler {
	return &PricingHandler{advisor: advisor}
}

// Optimize proposes a plan price from churn and competitor signals
func (h *PricingHandler) Optimize(c *gin.Context) {
	var req PricingRequest
	if !bindAndValidate(c, &req, "No plan data provided") {
		return
	}

	optimization, err := h.advisor.OptimizePricing(req.toQuery())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"optimization": optimization,
		"plan_data":    req,
		"timestamp":    time.Now(),
	})
}
