package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/broadbandiq/subscription-intel/internal/churn"
	apperrors "github.com/broadbandiq/subscription-intel/internal/errors"
	"github.com/broadbandiq/subscription-intel/internal/pricing"
	"github.com/broadbandiq/subscription-intel/internal/recommend"
)

var validate = validator.New()

// Boundary defaults for absent request fields. Pointer fields distinguish
// "absent" from an explicit zero, which is rejected instead of defaulted.
const (
	defaultMonthlyUsageGB   = 100.0
	defaultBudgetMax        = 50.0
	defaultChurnRate        = 0.05
	defaultSubscriberCount  = 100
	defaultChurnPrice       = 50.0
	defaultMonthsSubscribed = 1
)

var defaultCompetitorPrices = []float64{45, 55, 60}

// CurrentPlanRequest carries the user's existing plan, used only for
// savings calculations.
type CurrentPlanRequest struct {
	Price float64 `json:"price" validate:"gt=0"`
}

// RecommendRequest is the typed payload for POST /api/v1/recommend.
type RecommendRequest struct {
	MonthlyUsageGB        *float64            `json:"monthly_usage_gb" validate:"omitempty,gt=0"`
	BudgetMax             *float64            `json:"budget_max" validate:"omitempty,gt=0"`
	CurrentPlan           *CurrentPlanRequest `json:"current_plan" validate:"omitempty"`
	ServiceTypePreference string              `json:"service_type_preference"`
}

func (r *RecommendRequest) toQuery() recommend.Query {
	q := recommend.Query{
		MonthlyUsageGB:        defaultMonthlyUsageGB,
		BudgetMax:             defaultBudgetMax,
		ServiceTypePreference: r.ServiceTypePreference,
	}
	if r.MonthlyUsageGB != nil {
		q.MonthlyUsageGB = *r.MonthlyUsageGB
	}
	if r.BudgetMax != nil {
		q.BudgetMax = *r.BudgetMax
	}
	if r.CurrentPlan != nil {
		price := r.CurrentPlan.Price
		q.CurrentPlanPrice = &price
	}
	return q
}

// ChurnRequest is the typed payload for POST /api/v1/churn/predict. Every
// field is optional; the core substitutes documented defaults and never
// fails.
type ChurnRequest struct {
	SubscriptionID     string   `json:"subscription_id"`
	UserID             string   `json:"user_id"`
	Price              *float64 `json:"price"`
	MonthsSubscribed   *int     `json:"months_subscribed"`
	StartDate          string   `json:"start_date"`
	LastRenewedDate    string   `json:"last_renewed_date"`
	PaymentFailures    int      `json:"payment_failures"`
	RenewFailures      int      `json:"renew_failures"`
	SubscriptionType   string   `json:"subscription_type"`
	AutoRenewalAllowed string   `json:"auto_renewal_allowed"`
	UserStatus         string   `json:"user_status"`
	UsageRatio         *float64 `json:"usage_ratio"`
	SupportTickets     *int     `json:"support_tickets"`
}

func (r *ChurnRequest) toQuery() churn.Query {
	q := churn.Query{
		SubscriptionID:     r.SubscriptionID,
		UserID:             r.UserID,
		Price:              defaultChurnPrice,
		MonthsSubscribed:   defaultMonthsSubscribed,
		StartDate:          r.StartDate,
		LastRenewedDate:    r.LastRenewedDate,
		PaymentFailures:    r.PaymentFailures,
		RenewFailures:      r.RenewFailures,
		SubscriptionType:   r.SubscriptionType,
		AutoRenewalAllowed: r.AutoRenewalAllowed,
		UserStatus:         r.UserStatus,
		UsageRatio:         r.UsageRatio,
		SupportTickets:     r.SupportTickets,
	}
	if r.Price != nil {
		q.Price = *r.Price
	}
	if r.MonthsSubscribed != nil {
		q.MonthsSubscribed = *r.MonthsSubscribed
	}
	return q
}

// PricingRequest is the typed payload for POST /api/v1/pricing/optimize.
type PricingRequest struct {
	CurrentPrice     *float64  `json:"current_price" validate:"required,gt=0"`
	SubscriberCount  *int      `json:"subscriber_count" validate:"omitempty,gt=0"`
	ChurnRate        *float64  `json:"churn_rate" validate:"omitempty,gte=0,lte=1"`
	CompetitorPrices []float64 `json:"competitor_prices" validate:"omitempty,dive,gt=0"`
}

func (r *PricingRequest) toQuery() pricing.Query {
	q := pricing.Query{
		CurrentPrice:     *r.CurrentPrice,
		SubscriberCount:  defaultSubscriberCount,
		ChurnRate:        defaultChurnRate,
		CompetitorPrices: r.CompetitorPrices,
	}
	if r.SubscriberCount != nil {
		q.SubscriberCount = *r.SubscriberCount
	}
	if r.ChurnRate != nil {
		q.ChurnRate = *r.ChurnRate
	}
	// An absent list gets the default; an explicitly empty list is a
	// precondition violation the optimizer rejects.
	if r.CompetitorPrices == nil {
		q.CompetitorPrices = defaultCompetitorPrices
	}
	return q
}

// bindAndValidate decodes the JSON body into req and runs struct
// validation. A missing or unparseable body is rejected here, before the
// core is invoked.
func bindAndValidate(c *gin.Context, req interface{}, emptyBodyMsg string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": emptyBodyMsg})
		return false
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid field values: " + err.Error()})
		return false
	}
	return true
}

// respondError maps core errors to HTTP responses: invalid input is the
// caller's fault, everything else is ours.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code == apperrors.ErrCodeInvalidInput {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": appErr.Message, "code": appErr.Code})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
}
