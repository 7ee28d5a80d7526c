package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/broadbandiq/subscription-intel/internal/services"
)

// RecommendHandler handles plan recommendation requests
type RecommendHandler struct {
	advisor services.AdvisorService
}

// NewRecommendHandler creates a new recommendation handler
func NewRecommendHandler(advisor services.AdvisorService) *RecommendHandler {
	return &RecommendHandler{advisor: advisor}
}

// Recommend ranks catalog plans for the user's usage, budget and preference
func (h *RecommendHandler) Recommend(c *gin.Context) {
	var req RecommendRequest
	if !bindAndValidate(c, &req, "No user data provided") {
		return
	}

	recommendations, err := h.advisor.RecommendPlans(req.toQuery())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"recommendations": recommendations,
		"user_data":       req,
		"timestamp":       time.Now(),
	})
}
