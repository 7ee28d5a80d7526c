package churn

import (
	"testing"
	"time"
)

func testReferenceDate(t *testing.T) time.Time {
	t.Helper()
	ref, err := time.Parse(dateLayout, "2024-01-01")
	if err != nil {
		t.Fatalf("Failed to parse reference date: %v", err)
	}
	return ref
}

func TestEncoder_FitAndEncode(t *testing.T) {
	enc := NewEncoder(testReferenceDate(t))
	enc.Fit(colSubscriptionType, []string{"yearly", "monthly", "yearly", "weekly"})

	testCases := []struct {
		name     string
		column   string
		value    string
		expected int
	}{
		{
			name:     "Codes follow sorted order",
			column:   colSubscriptionType,
			value:    "monthly",
			expected: 0,
		},
		{
			name:     "Second sorted value",
			column:   colSubscriptionType,
			value:    "weekly",
			expected: 1,
		},
		{
			name:     "Third sorted value",
			column:   colSubscriptionType,
			value:    "yearly",
			expected: 2,
		},
		{
			name:     "Unseen value encodes to default",
			column:   colSubscriptionType,
			value:    "quarterly",
			expected: 0,
		},
		{
			name:     "Untrained column encodes to default",
			column:   colUserStatus,
			value:    "active",
			expected: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := enc.Encode(tc.column, tc.value); got != tc.expected {
				t.Errorf("Expected code %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestEncoder_UntrainedNeverFails(t *testing.T) {
	enc := NewEncoder(testReferenceDate(t))

	if got := enc.Encode(colAutoRenewal, "Yes"); got != 0 {
		t.Errorf("Expected untrained encoder to return 0, got %d", got)
	}
	if got := enc.Encode("no_such_column", "anything"); got != 0 {
		t.Errorf("Expected unknown column to return 0, got %d", got)
	}
}

func TestEncoder_DurationFeatures(t *testing.T) {
	enc := NewEncoder(testReferenceDate(t))

	testCases := []struct {
		name     string
		date     string
		expected int
	}{
		{
			name:     "Whole year before reference",
			date:     "2023-01-01",
			expected: 365,
		},
		{
			name:     "Same day",
			date:     "2024-01-01",
			expected: 0,
		},
		{
			name:     "Future date passes through negative",
			date:     "2024-02-01",
			expected: -31,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := time.Parse(dateLayout, tc.date)
			if err != nil {
				t.Fatalf("Failed to parse date: %v", err)
			}
			if got := enc.DurationDays(d); got != tc.expected {
				t.Errorf("Expected %d days, got %d", tc.expected, got)
			}
			if got := enc.DaysSinceRenewal(d); got != tc.expected {
				t.Errorf("Expected %d days since renewal, got %d", tc.expected, got)
			}
		})
	}
}

func TestEncoder_FeatureVector(t *testing.T) {
	enc := NewEncoder(testReferenceDate(t))
	enc.Fit(colSubscriptionType, []string{"monthly", "yearly"})
	enc.Fit(colAutoRenewal, []string{"No", "Yes"})
	enc.Fit(colUserStatus, []string{"active", "inactive"})

	vector := enc.FeatureVector(49.99, 180, 30, 2, 1, "yearly", "Yes", "inactive")

	expected := []float64{49.99, 180, 30, 2, 1, 1, 1, 1}
	if len(vector) != featureCount {
		t.Fatalf("Expected %d features, got %d", featureCount, len(vector))
	}
	for i := range expected {
		if vector[i] != expected[i] {
			t.Errorf("Feature %d: expected %v, got %v", i, expected[i], vector[i])
		}
	}
}
