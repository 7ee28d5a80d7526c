package services

import (
	"github.com/broadbandiq/subscription-intel/internal/catalog"
	"github.com/broadbandiq/subscription-intel/internal/churn"
	"github.com/broadbandiq/subscription-intel/internal/pricing"
	"github.com/broadbandiq/subscription-intel/internal/recommend"
)

// Services contains all application services
type Services struct {
	Advisor AdvisorService
}

// AdvisorService defines the interface for the decision-support business
// logic consumed by the HTTP handlers.
type AdvisorService interface {
	// RecommendPlans ranks catalog plans for a user query.
	RecommendPlans(q recommend.Query) ([]recommend.Recommendation, error)
	// PredictChurn estimates churn risk; it never returns an error.
	PredictChurn(q churn.Query) churn.Prediction
	// OptimizePricing proposes a plan price and its expected impact.
	OptimizePricing(q pricing.Query) (*pricing.Result, error)
	// ModelLoaded reports whether the churn classifier is in trained mode.
	ModelLoaded() bool
}

// NewServices creates a new Services instance with all dependencies
func NewServices(cat *catalog.Catalog, classifier *churn.Classifier) *Services {
	return &Services{
		Advisor: newAdvisorService(cat, classifier),
	}
}
