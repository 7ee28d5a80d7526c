package churn

import (
	"sort"
	"time"
)

// The three categorical feature columns.
const (
	colSubscriptionType = "subscription_type"
	colAutoRenewal      = "auto_renewal_allowed"
	colUserStatus       = "user_status"
)

// featureCount is the dimensionality of the classifier input vector.
const featureCount = 8

// Encoder owns the label-encoding state learned at training time and the
// derived duration features. It is created once during training and
// read-only afterwards; code 0 doubles as the unknown/default category.
type Encoder struct {
	codes         map[string]map[string]int
	referenceDate time.Time
}

// NewEncoder creates an untrained encoder anchored to the given reference
// date. An untrained encoder maps every category to 0.
func NewEncoder(referenceDate time.Time) *Encoder {
	return &Encoder{
		codes:         make(map[string]map[string]int),
		referenceDate: referenceDate,
	}
}

// Fit learns the code mapping for one categorical column. Codes follow the
// sorted order of the distinct training values, so they are stable across
// runs.
func (e *Encoder) Fit(column string, values []string) {
	distinct := make(map[string]struct{}, len(values))
	for _, v := range values {
		distinct[v] = struct{}{}
	}

	ordered := make([]string, 0, len(distinct))
	for v := range distinct {
		ordered = append(ordered, v)
	}
	sort.Strings(ordered)

	mapping := make(map[string]int, len(ordered))
	for i, v := range ordered {
		mapping[v] = i
	}
	e.codes[column] = mapping
}

// Encode maps a raw categorical value to its learned integer code. Unseen
// values and untrained columns encode to 0; Encode never fails.
func (e *Encoder) Encode(column, raw string) int {
	mapping, ok := e.codes[column]
	if !ok {
		return 0
	}
	code, ok := mapping[raw]
	if !ok {
		return 0
	}
	return code
}

// ReferenceDate returns the date the duration features are computed against.
func (e *Encoder) ReferenceDate() time.Time {
	return e.referenceDate
}

// DurationDays is the whole-day count from start to the reference date.
// Negative counts pass through unclamped; callers treat them as data-quality
// signals, not errors.
func (e *Encoder) DurationDays(start time.Time) int {
	return daysBetween(start, e.referenceDate)
}

// DaysSinceRenewal is the whole-day count from the last renewal to the
// reference date, unclamped like DurationDays.
func (e *Encoder) DaysSinceRenewal(lastRenewed time.Time) int {
	return daysBetween(lastRenewed, e.referenceDate)
}

// FeatureVector assembles the classifier input in its fixed column order:
// price, duration_days, days_since_renewal, payment_failures,
// renew_failures, then the three encoded categoricals.
func (e *Encoder) FeatureVector(price float64, durationDays, daysSinceRenewal, paymentFailures, renewFailures int, subscriptionType, autoRenewal, userStatus string) []float64 {
	return []float64{
		price,
		float64(durationDays),
		float64(daysSinceRenewal),
		float64(paymentFailures),
		float64(renewFailures),
		float64(e.Encode(colSubscriptionType, subscriptionType)),
		float64(e.Encode(colAutoRenewal, autoRenewal)),
		float64(e.Encode(colUserStatus, userStatus)),
	}
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
