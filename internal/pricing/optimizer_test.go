package pricing

import (
	"math"
	"testing"

	apperrors "github.com/broadbandiq/subscription-intel/internal/errors"
)

func TestOptimize_PriceReduction(t *testing.T) {
	o := NewOptimizer()

	// Competitor mean is exactly 50, so the market floor is 47.50 and it
	// beats the 10% self-cut of 45.00.
	result, err := o.Optimize(Query{
		CurrentPrice:     50,
		SubscriberCount:  600,
		ChurnRate:        0.12,
		CompetitorPrices: []float64{40, 50, 60},
	})
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	if result.Strategy != StrategyPriceReduction {
		t.Errorf("Expected price_reduction, got %q", result.Strategy)
	}
	if result.SuggestedPrice != 47.5 {
		t.Errorf("Expected suggested price 47.5, got %v", result.SuggestedPrice)
	}
	if result.CurrentPrice != 50 {
		t.Errorf("Expected current price echoed, got %v", result.CurrentPrice)
	}

	// Elasticity -0.5 on a -5% price move: subscribers up ~2.5%, revenue
	// down despite the gain.
	impact := result.ExpectedImpact
	if impact.SubscriberChange < 14 || impact.SubscriberChange > 15 {
		t.Errorf("Expected subscriber gain around 15, got %d", impact.SubscriberChange)
	}
	if impact.RevenueChange >= 0 {
		t.Errorf("Expected negative revenue change, got %v", impact.RevenueChange)
	}
	if math.Abs(impact.RevenueChange-(-787.5)) > 50 {
		t.Errorf("Expected revenue change near -787.5, got %v", impact.RevenueChange)
	}
	if impact.RevenueChangePct >= 0 {
		t.Errorf("Expected negative revenue change pct, got %v", impact.RevenueChangePct)
	}
}

func TestOptimize_PriceIncrease(t *testing.T) {
	o := NewOptimizer()

	// Low churn on a popular plan: raise toward the 5% market premium,
	// which caps below the 10% self-raise of 55.00.
	result, err := o.Optimize(Query{
		CurrentPrice:     50,
		SubscriberCount:  600,
		ChurnRate:        0.02,
		CompetitorPrices: []float64{40, 50, 60},
	})
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	if result.Strategy != StrategyPriceIncrease {
		t.Errorf("Expected price_increase, got %q", result.Strategy)
	}
	if result.SuggestedPrice != 52.5 {
		t.Errorf("Expected suggested price 52.5, got %v", result.SuggestedPrice)
	}

	impact := result.ExpectedImpact
	if impact.SubscriberChange < -16 || impact.SubscriberChange > -15 {
		t.Errorf("Expected subscriber loss around -15, got %d", impact.SubscriberChange)
	}
	if impact.RevenueChange <= 0 {
		t.Errorf("Expected positive revenue change, got %v", impact.RevenueChange)
	}
}

func TestOptimize_PriceIncreaseNeedsPopularity(t *testing.T) {
	o := NewOptimizer()

	// Low churn alone is not enough; 500 subscribers is the exclusive
	// floor for a raise.
	result, err := o.Optimize(Query{
		CurrentPrice:     50,
		SubscriberCount:  500,
		ChurnRate:        0.02,
		CompetitorPrices: []float64{40, 50, 60},
	})
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	if result.Strategy != StrategyMaintainPrice {
		t.Errorf("Expected maintain_price at the popularity floor, got %q", result.Strategy)
	}
}

func TestOptimize_MaintainPrice(t *testing.T) {
	o := NewOptimizer()

	result, err := o.Optimize(Query{
		CurrentPrice:     50,
		SubscriberCount:  100,
		ChurnRate:        0.05,
		CompetitorPrices: []float64{45, 55, 60},
	})
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	if result.Strategy != StrategyMaintainPrice {
		t.Errorf("Expected maintain_price, got %q", result.Strategy)
	}
	if result.SuggestedPrice != 50 {
		t.Errorf("Expected unchanged price, got %v", result.SuggestedPrice)
	}

	// No price move means an exactly-zero impact.
	impact := result.ExpectedImpact
	if impact.RevenueChange != 0 || impact.SubscriberChange != 0 || impact.RevenueChangePct != 0 {
		t.Errorf("Expected zero impact, got %+v", impact)
	}
}

func TestOptimize_BoundaryChurnRates(t *testing.T) {
	o := NewOptimizer()

	testCases := []struct {
		name      string
		churnRate float64
		count     int
		expected  string
	}{
		{"Exactly high threshold holds price", 0.10, 600, StrategyMaintainPrice},
		{"Just above high threshold cuts", 0.101, 600, StrategyPriceReduction},
		{"Exactly low threshold holds price", 0.03, 600, StrategyMaintainPrice},
		{"Just below low threshold raises", 0.029, 600, StrategyPriceIncrease},
		{"Zero churn on small plan holds price", 0.0, 100, StrategyMaintainPrice},
		{"Full churn cuts", 1.0, 100, StrategyPriceReduction},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := o.Optimize(Query{
				CurrentPrice:     50,
				SubscriberCount:  tc.count,
				ChurnRate:        tc.churnRate,
				CompetitorPrices: []float64{45, 55, 60},
			})
			if err != nil {
				t.Fatalf("Optimize failed: %v", err)
			}
			if result.Strategy != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, result.Strategy)
			}
		})
	}
}

func TestOptimize_Deterministic(t *testing.T) {
	o := NewOptimizer()
	q := Query{CurrentPrice: 50, SubscriberCount: 600, ChurnRate: 0.12, CompetitorPrices: []float64{45, 55, 60}}

	first, err := o.Optimize(q)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	second, err := o.Optimize(q)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	if *first != *second {
		t.Errorf("Expected identical results for identical queries, got %+v and %+v", *first, *second)
	}
}

func TestOptimize_InvalidInput(t *testing.T) {
	o := NewOptimizer()

	testCases := []struct {
		name  string
		query Query
	}{
		{"Zero price", Query{CurrentPrice: 0, SubscriberCount: 100, ChurnRate: 0.05, CompetitorPrices: []float64{45}}},
		{"Negative price", Query{CurrentPrice: -5, SubscriberCount: 100, ChurnRate: 0.05, CompetitorPrices: []float64{45}}},
		{"Zero subscribers", Query{CurrentPrice: 50, SubscriberCount: 0, ChurnRate: 0.05, CompetitorPrices: []float64{45}}},
		{"Churn below zero", Query{CurrentPrice: 50, SubscriberCount: 100, ChurnRate: -0.1, CompetitorPrices: []float64{45}}},
		{"Churn above one", Query{CurrentPrice: 50, SubscriberCount: 100, ChurnRate: 1.1, CompetitorPrices: []float64{45}}},
		{"Empty competitor list", Query{CurrentPrice: 50, SubscriberCount: 100, ChurnRate: 0.05, CompetitorPrices: []float64{}}},
		{"Nonpositive competitor price", Query{CurrentPrice: 50, SubscriberCount: 100, ChurnRate: 0.05, CompetitorPrices: []float64{45, 0}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := o.Optimize(tc.query)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !apperrors.HasCode(err, apperrors.ErrCodeInvalidInput) {
				t.Errorf("Expected INVALID_INPUT, got %v", err)
			}
		})
	}
}
