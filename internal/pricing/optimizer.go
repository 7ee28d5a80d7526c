package pricing

import (
	"math"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	apperrors "github.com/broadbandiq/subscription-intel/internal/errors"
)

// Pricing strategies.
const (
	StrategyPriceReduction = "price_reduction"
	StrategyPriceIncrease  = "price_increase"
	StrategyMaintainPrice  = "maintain_price"
)

// Decision thresholds and the demand model constant. Tunable parameters
// carried over from the production heuristics.
const (
	highChurnThreshold = 0.10
	lowChurnThreshold  = 0.03
	popularPlanFloor   = 500

	// demandElasticity approximates subscriber-count response to a price
	// change (linear model).
	demandElasticity = -0.5
)

// Query is the per-request input to the optimizer.
type Query struct {
	CurrentPrice     float64
	SubscriberCount  int
	ChurnRate        float64
	CompetitorPrices []float64
}

// Impact estimates the revenue and subscriber effect of the suggested price.
type Impact struct {
	RevenueChange    float64 `json:"revenue_change"`
	SubscriberChange int     `json:"subscriber_change"`
	RevenueChangePct float64 `json:"revenue_change_pct"`
}

// Result is the optimizer output.
type Result struct {
	CurrentPrice   float64 `json:"current_price"`
	SuggestedPrice float64 `json:"suggested_price"`
	Strategy       string  `json:"strategy"`
	ExpectedImpact Impact  `json:"expected_impact"`
}

// Optimizer proposes plan prices from churn and competitor signals. It is
// deterministic: identical queries yield identical results.
type Optimizer struct{}

// NewOptimizer creates a new pricing optimizer.
func NewOptimizer() *Optimizer {
	return &Optimizer{}
}

// Optimize applies the pricing decision rule and the linear elasticity
// impact model. Invalid numeric input is rejected rather than producing
// silently wrong numbers.
func (o *Optimizer) Optimize(q Query) (*Result, error) {
	if q.CurrentPrice <= 0 {
		return nil, apperrors.InvalidInput("current_price must be positive", nil)
	}
	if q.SubscriberCount <= 0 {
		return nil, apperrors.InvalidInput("subscriber_count must be positive", nil)
	}
	if q.ChurnRate < 0 || q.ChurnRate > 1 {
		return nil, apperrors.InvalidInput("churn_rate must be between 0 and 1", nil)
	}
	if len(q.CompetitorPrices) == 0 {
		return nil, apperrors.InvalidInput("competitor_prices must not be empty", nil)
	}
	for _, p := range q.CompetitorPrices {
		if p <= 0 {
			return nil, apperrors.InvalidInput("competitor_prices must be positive", nil)
		}
	}

	avgCompetitor := decimal.NewFromFloat(stat.Mean(q.CompetitorPrices, nil))
	current := decimal.NewFromFloat(q.CurrentPrice)

	var suggested decimal.Decimal
	var strategy string
	switch {
	case q.ChurnRate > highChurnThreshold:
		// Losing subscribers: undercut ourselves but stay near the market.
		suggested = decimal.Max(
			current.Mul(decimal.NewFromFloat(0.9)),
			avgCompetitor.Mul(decimal.NewFromFloat(0.95)),
		)
		strategy = StrategyPriceReduction
	case q.ChurnRate < lowChurnThreshold && q.SubscriberCount > popularPlanFloor:
		// Sticky, popular plan: room to raise, capped by the market.
		suggested = decimal.Min(
			current.Mul(decimal.NewFromFloat(1.1)),
			avgCompetitor.Mul(decimal.NewFromFloat(1.05)),
		)
		strategy = StrategyPriceIncrease
	default:
		suggested = current
		strategy = StrategyMaintainPrice
	}

	suggestedPrice, _ := suggested.Round(2).Float64()

	return &Result{
		CurrentPrice:   q.CurrentPrice,
		SuggestedPrice: suggestedPrice,
		Strategy:       strategy,
		ExpectedImpact: expectedImpact(q.CurrentPrice, suggestedPrice, q.SubscriberCount),
	}, nil
}

// expectedImpact models the subscriber and revenue response to the price
// change with a constant elasticity.
func expectedImpact(currentPrice, newPrice float64, subscriberCount int) Impact {
	priceChangePct := (newPrice - currentPrice) / currentPrice
	subscriberChangePct := demandElasticity * priceChangePct

	newCount := int(math.Floor(float64(subscriberCount) * (1 + subscriberChangePct)))

	currentRevenue := currentPrice * float64(subscriberCount)
	newRevenue := newPrice * float64(newCount)

	return Impact{
		RevenueChange:    newRevenue - currentRevenue,
		SubscriberChange: newCount - subscriberCount,
		RevenueChangePct: (newRevenue - currentRevenue) / currentRevenue * 100,
	}
}
