package recommend

import (
	"fmt"
	"math"
	"sort"

	"github.com/broadbandiq/subscription-intel/internal/catalog"
	apperrors "github.com/broadbandiq/subscription-intel/internal/errors"
)

// Scoring weights and thresholds. Tunable parameters, not hard physics;
// values carried over from the production heuristics.
const (
	usageFitWeight   = 0.4
	priceValueWeight = 0.3
	typeMatchWeight  = 0.3

	// quotaBufferRatio is the headroom factor above current usage that
	// counts as a comfortable fit.
	quotaBufferRatio = 1.2

	maxRecommendations = 5
	maxReasons         = 3
)

// Query is the per-request input to the scorer.
type Query struct {
	MonthlyUsageGB        float64
	BudgetMax             float64
	CurrentPlanPrice      *float64 // nil when the user has no current plan
	ServiceTypePreference string   // empty means no preference
}

// Recommendation is one scored plan.
type Recommendation struct {
	PlanID           string   `json:"plan_id"`
	PlanName         string   `json:"plan_name"`
	Price            float64  `json:"price"`
	DataQuotaGB      float64  `json:"data_quota"`
	SpeedMbps        int      `json:"speed"`
	SuitabilityScore float64  `json:"suitability_score"`
	Reasons          []string `json:"reasons"`
	SavingsPotential float64  `json:"savings_potential"`
}

// Scorer ranks catalog plans for a user query.
type Scorer struct {
	catalog *catalog.Catalog
}

// NewScorer creates a scorer over the given catalog.
func NewScorer(c *catalog.Catalog) *Scorer {
	return &Scorer{catalog: c}
}

// Recommend computes a suitability score for every plan within budget and
// returns at most five plans, sorted by score descending. Ties keep catalog
// insertion order.
func (s *Scorer) Recommend(q Query) ([]Recommendation, error) {
	if q.BudgetMax <= 0 {
		return nil, apperrors.InvalidInput("budget_max must be positive", nil)
	}
	if q.MonthlyUsageGB <= 0 {
		return nil, apperrors.InvalidInput("monthly_usage_gb must be positive", nil)
	}

	recommendations := make([]Recommendation, 0, s.catalog.Len())
	for _, plan := range s.catalog.Plans() {
		if plan.MonthlyPrice > q.BudgetMax {
			continue
		}

		usageFit := usageFitScore(q.MonthlyUsageGB, plan.DataQuotaGB)
		priceValue := priceValueScore(plan.MonthlyPrice, q.BudgetMax)
		typeMatch := 1.0
		if q.ServiceTypePreference != "" && plan.ServiceType != q.ServiceTypePreference {
			typeMatch = 0.7
		}

		overall := usageFit*usageFitWeight + priceValue*priceValueWeight + typeMatch*typeMatchWeight

		recommendations = append(recommendations, Recommendation{
			PlanID:           plan.ID,
			PlanName:         plan.Name(),
			Price:            plan.MonthlyPrice,
			DataQuotaGB:      plan.DataQuotaGB,
			SpeedMbps:        plan.SpeedMbps,
			SuitabilityScore: round2(overall),
			Reasons:          reasons(q, plan),
			SavingsPotential: savings(q.CurrentPlanPrice, plan.MonthlyPrice),
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].SuitabilityScore > recommendations[j].SuitabilityScore
	})

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations, nil
}

// usageFitScore rates how well the plan quota covers the user's usage.
func usageFitScore(usage, quota float64) float64 {
	switch {
	case quota >= usage*quotaBufferRatio:
		return 0.9
	case quota >= usage:
		return 0.7
	default:
		return 0.3
	}
}

// priceValueScore rates the plan price against the user's budget.
func priceValueScore(price, budgetMax float64) float64 {
	switch {
	case price <= budgetMax*0.8:
		return 1.0
	case price <= budgetMax:
		return 0.8
	default:
		return 0.4
	}
}

// reasons generates up to three human-readable justifications, checked in a
// fixed priority order.
func reasons(q Query, plan catalog.Plan) []string {
	out := make([]string, 0, maxReasons)

	if plan.DataQuotaGB >= q.MonthlyUsageGB*quotaBufferRatio {
		out = append(out, fmt.Sprintf("Provides %.0fGB quota, suitable for your %.0fGB usage", plan.DataQuotaGB, q.MonthlyUsageGB))
	}
	if plan.MonthlyPrice < 40 {
		out = append(out, "Cost-effective option")
	}
	if plan.ServiceType == "Fibernet" {
		out = append(out, "High-speed fiber connection for better performance")
	}
	if q.CurrentPlanPrice != nil && plan.MonthlyPrice < *q.CurrentPlanPrice {
		out = append(out, fmt.Sprintf("Save $%.2f per month", *q.CurrentPlanPrice-plan.MonthlyPrice))
	}

	if len(out) > maxReasons {
		out = out[:maxReasons]
	}
	return out
}

// savings is the monthly amount saved by switching from the current plan.
func savings(currentPrice *float64, planPrice float64) float64 {
	if currentPrice == nil {
		return 0
	}
	return math.Max(0, *currentPrice-planPrice)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
