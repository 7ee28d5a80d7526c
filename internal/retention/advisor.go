package retention

// Factors holds the churn risk factor scores that drive retention advice.
// Field order matches the fixed evaluation order of the advisor.
type Factors struct {
	LowUsage      float64 `json:"low_usage"`
	HighPrice     float64 `json:"high_price"`
	NewCustomer   float64 `json:"new_customer"`
	SupportIssues float64 `json:"support_issues"`
	PaymentIssues float64 `json:"payment_issues"`
}

// strategy is one factor-to-action mapping.
type strategy struct {
	value  func(Factors) float64
	action string
}

// Each factor maps to exactly one action, so the output needs no
// deduplication.
var strategies = []strategy{
	{func(f Factors) float64 { return f.LowUsage }, "Offer usage tutorials or downgrade to cheaper plan"},
	{func(f Factors) float64 { return f.HighPrice }, "Provide discount or loyalty pricing"},
	{func(f Factors) float64 { return f.NewCustomer }, "Implement onboarding program and early engagement"},
	{func(f Factors) float64 { return f.SupportIssues }, "Priority customer support and proactive assistance"},
	{func(f Factors) float64 { return f.PaymentIssues }, "Flexible payment options and automatic billing"},
}

// Strategies returns the mitigation actions for every factor with a positive
// score, in fixed evaluation order.
func Strategies(f Factors) []string {
	var out []string
	for _, s := range strategies {
		if s.value(f) > 0 {
			out = append(out, s.action)
		}
	}
	return out
}
