package retention

import (
	"reflect"
	"testing"
)

func TestStrategies(t *testing.T) {
	testCases := []struct {
		name     string
		factors  Factors
		expected []string
	}{
		{
			name:     "All factors zero yields no advice",
			factors:  Factors{},
			expected: nil,
		},
		{
			name:    "Single factor maps to its one action",
			factors: Factors{HighPrice: 1.0},
			expected: []string{
				"Provide discount or loyalty pricing",
			},
		},
		{
			name: "All factors positive yields all actions in fixed order",
			factors: Factors{
				LowUsage:      0.4,
				HighPrice:     1.0,
				NewCustomer:   1.0,
				SupportIssues: 0.2,
				PaymentIssues: 0.6,
			},
			expected: []string{
				"Offer usage tutorials or downgrade to cheaper plan",
				"Provide discount or loyalty pricing",
				"Implement onboarding program and early engagement",
				"Priority customer support and proactive assistance",
				"Flexible payment options and automatic billing",
			},
		},
		{
			name:    "Tiny positive score still triggers",
			factors: Factors{PaymentIssues: 0.001},
			expected: []string{
				"Flexible payment options and automatic billing",
			},
		},
		{
			name:    "Mixed factors preserve evaluation order",
			factors: Factors{PaymentIssues: 0.9, LowUsage: 0.1},
			expected: []string{
				"Offer usage tutorials or downgrade to cheaper plan",
				"Flexible payment options and automatic billing",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Strategies(tc.factors)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestStrategies_OneActionPerFactor(t *testing.T) {
	// Each factor contributes at most one action, so a full house is
	// exactly five and needs no deduplication.
	f := Factors{LowUsage: 1, HighPrice: 1, NewCustomer: 1, SupportIssues: 1, PaymentIssues: 1}
	got := Strategies(f)

	if len(got) != 5 {
		t.Fatalf("Expected 5 actions, got %d", len(got))
	}
	seen := make(map[string]bool, len(got))
	for _, action := range got {
		if seen[action] {
			t.Errorf("Duplicate action %q", action)
		}
		seen[action] = true
	}
}
