package services

import (
	"github.com/broadbandiq/subscription-intel/internal/catalog"
	"github.com/broadbandiq/subscription-intel/internal/churn"
	"github.com/broadbandiq/subscription-intel/internal/pricing"
	"github.com/broadbandiq/subscription-intel/internal/recommend"
)

// advisorService implements AdvisorService over the read-only core
// components. The scorer and optimizer are immutable after construction;
// the classifier guards its own randomness source.
type advisorService struct {
	scorer     *recommend.Scorer
	classifier *churn.Classifier
	optimizer  *pricing.Optimizer
}

func newAdvisorService(cat *catalog.Catalog, classifier *churn.Classifier) AdvisorService {
	return &advisorService{
		scorer:     recommend.NewScorer(cat),
		classifier: classifier,
		optimizer:  pricing.NewOptimizer(),
	}
}

func (s *advisorService) RecommendPlans(q recommend.Query) ([]recommend.Recommendation, error) {
	return s.scorer.Recommend(q)
}

func (s *advisorService) PredictChurn(q churn.Query) churn.Prediction {
	return s.classifier.Predict(q)
}

func (s *advisorService) OptimizePricing(q pricing.Query) (*pricing.Result, error) {
	return s.optimizer.Optimize(q)
}

func (s *advisorService) ModelLoaded() bool {
	return s.classifier.Trained()
}
