package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/broadbandiq/subscription-intel/internal/services"
)

// ChurnHandler handles churn prediction requests
type ChurnHandler struct {
	advisor services.AdvisorService
}

// NewChurnHandler creates a new churn prediction handler
func NewChurnHandler(advisor services.AdvisorService) *ChurnHandler {
	return &ChurnHandler{advisor: advisor}
}

// Predict estimates churn risk for one subscription. The core never fails
// here: it substitutes rule-based or default responses internally, so the
// only client error is a missing body.
func (h *ChurnHandler) Predict(c *gin.Context) {
	var req ChurnRequest
	if !bindAndValidate(c, &req, "No subscription data provided") {
		return
	}

	prediction := h.advisor.PredictChurn(req.toQuery())

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"churn_prediction":  prediction,
		"subscription_data": req,
		"timestamp":         time.Now(),
	})
}
