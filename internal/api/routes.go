package api

import (
	"github.com/gin-gonic/gin"

	"github.com/broadbandiq/subscription-intel/internal/services"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, svcs *services.Services) {
	healthHandler := NewHealthHandler(svcs.Advisor)
	recommendHandler := NewRecommendHandler(svcs.Advisor)
	churnHandler := NewChurnHandler(svcs.Advisor)
	pricingHandler := NewPricingHandler(svcs.Advisor)

	// Health probe: a pure read of initialization state
	r.GET("/health", healthHandler.Health)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/recommend", recommendHandler.Recommend)
		v1.POST("/churn/predict", churnHandler.Predict)
		v1.POST("/pricing/optimize", pricingHandler.Optimize)
	}
}
