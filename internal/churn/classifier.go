package churn

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	randomforest "github.com/malaschitz/randomForest"

	apperrors "github.com/broadbandiq/subscription-intel/internal/errors"
	"github.com/broadbandiq/subscription-intel/internal/logger"
	"github.com/broadbandiq/subscription-intel/internal/retention"
)

// Mode is the classifier operating state, chosen once at initialization.
type Mode int

const (
	// ModeFallback serves deterministic rule-based estimates; entered when
	// the training dataset is missing/empty or training fails.
	ModeFallback Mode = iota
	// ModeTrained serves probabilities from the fitted forest.
	ModeTrained
)

func (m Mode) String() string {
	if m == ModeTrained {
		return "trained"
	}
	return "fallback"
}

// Risk level thresholds and rule-score constants. Tunable parameters, not
// hard physics.
const (
	highRiskThreshold   = 0.7
	mediumRiskThreshold = 0.4

	ruleJitterMax = 0.10
	ruleScoreCap  = 0.95
)

// Defaults substituted for absent churn query fields.
const (
	defaultSubscriptionType = "monthly"
	defaultAutoRenewal      = "Yes"
	defaultUserStatus       = "active"
	defaultISODate          = "2024-01-01"
)

// Query is the per-request input to churn prediction. Identifier fields are
// echoed back by the API layer but never reach the model.
type Query struct {
	SubscriptionID     string
	UserID             string
	Price              float64
	MonthsSubscribed   int
	StartDate          string
	LastRenewedDate    string
	PaymentFailures    int
	RenewFailures      int
	SubscriptionType   string
	AutoRenewalAllowed string
	UserStatus         string

	// Optional authoritative signals. When nil, the matching factors are
	// stochastic stubs reported via UnmodeledSignals.
	UsageRatio     *float64
	SupportTickets *int
}

// Prediction is the churn estimate plus the retention advice derived from
// its risk factors.
type Prediction struct {
	ChurnProbability    float64           `json:"churn_probability"`
	RiskLevel           string            `json:"risk_level"`
	Factors             retention.Factors `json:"factors"`
	RetentionStrategies []string          `json:"retention_strategies"`
	// UnmodeledSignals names the factors that were generated as random
	// placeholders because no authoritative signal was supplied.
	UnmodeledSignals []string `json:"unmodeled_signals,omitempty"`
}

// Classifier estimates churn probability. It is immutable after
// construction and safe for concurrent use: the randomness source shared by
// gin's per-request goroutines is mutex-guarded, since rand.Rand is itself
// a writer. Callers wanting strict determinism inject their own seeded
// source.
type Classifier struct {
	mode    Mode
	forest  *randomforest.Forest
	encoder *Encoder
	rngMu   sync.Mutex
	rng     *rand.Rand
	log     logger.Logger
}

// NewClassifier trains from the CSV datasets under dataDir. Any failure —
// missing files, empty data, a training error — yields a fallback-mode
// classifier with empty encoders, logged once and never retried.
func NewClassifier(dataDir string, referenceDate time.Time, rng *rand.Rand, log logger.Logger) *Classifier {
	c := newBase(referenceDate, rng, log)

	ds, err := LoadDataset(dataDir)
	if err != nil {
		c.log.Warn("churn training data unavailable, entering fallback mode", "error", err)
		return c
	}

	forest, report, err := Train(ds, c.encoder)
	if err != nil {
		c.log.Warn("churn training failed, entering fallback mode", "error", err)
		c.encoder = NewEncoder(referenceDate)
		return c
	}

	c.mode = ModeTrained
	c.forest = forest
	c.log.Info("churn classifier trained",
		"rows", report.Rows,
		"holdout_rows", report.HoldoutRows,
		"positive_rate", fmt.Sprintf("%.3f", report.PositiveRate),
		"holdout_auc", fmt.Sprintf("%.3f", report.HoldoutAUC),
	)
	return c
}

// NewFallbackClassifier returns a classifier that always uses the
// rule-based estimator.
func NewFallbackClassifier(referenceDate time.Time, rng *rand.Rand, log logger.Logger) *Classifier {
	return newBase(referenceDate, rng, log)
}

func newBase(referenceDate time.Time, rng *rand.Rand, log logger.Logger) *Classifier {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = logger.NewSimpleLogger()
	}
	return &Classifier{
		mode:    ModeFallback,
		encoder: NewEncoder(referenceDate),
		rng:     rng,
		log:     log,
	}
}

// Mode returns the operating state selected at initialization.
func (c *Classifier) Mode() Mode {
	return c.mode
}

// Trained reports whether a fitted model is being served.
func (c *Classifier) Trained() bool {
	return c.mode == ModeTrained
}

// Predict estimates churn probability for one subscription. It never fails:
// model errors fall back to the rule-based estimate, and any panic in the
// pipeline yields the fixed default response.
func (c *Classifier) Predict(q Query) (pred Prediction) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("churn prediction pipeline panicked, serving default response", fmt.Errorf("%v", r))
			pred = defaultPrediction()
		}
	}()

	q = q.withDefaults()

	var probability float64
	if c.mode == ModeTrained {
		p, err := c.modelProbability(q)
		if err != nil {
			c.log.Warn("model inference failed, using rule-based estimate", "error", err)
			probability = c.ruleProbability(q)
		} else {
			probability = p
		}
	} else {
		probability = c.ruleProbability(q)
	}
	probability = clamp01(probability)

	factors, unmodeled := c.factors(q)

	return Prediction{
		ChurnProbability:    round2(probability),
		RiskLevel:           riskLevel(probability),
		Factors:             factors,
		RetentionStrategies: retention.Strategies(factors),
		UnmodeledSignals:    unmodeled,
	}
}

// withDefaults fills absent categorical and date fields with the documented
// defaults.
func (q Query) withDefaults() Query {
	if q.SubscriptionType == "" {
		q.SubscriptionType = defaultSubscriptionType
	}
	if q.AutoRenewalAllowed == "" {
		q.AutoRenewalAllowed = defaultAutoRenewal
	}
	if q.UserStatus == "" {
		q.UserStatus = defaultUserStatus
	}
	if q.StartDate == "" {
		q.StartDate = defaultISODate
	}
	if q.LastRenewedDate == "" {
		q.LastRenewedDate = defaultISODate
	}
	return q
}

// modelProbability runs trained-mode inference over the 8-feature vector.
func (c *Classifier) modelProbability(q Query) (float64, error) {
	start, err := time.Parse(dateLayout, q.StartDate)
	if err != nil {
		return 0, apperrors.EncodingMiss("start_date is not an ISO date", err)
	}
	lastRenewed, err := time.Parse(dateLayout, q.LastRenewedDate)
	if err != nil {
		return 0, apperrors.EncodingMiss("last_renewed_date is not an ISO date", err)
	}

	vector := c.encoder.FeatureVector(
		q.Price,
		c.encoder.DurationDays(start),
		c.encoder.DaysSinceRenewal(lastRenewed),
		q.PaymentFailures,
		q.RenewFailures,
		q.SubscriptionType,
		q.AutoRenewalAllowed,
		q.UserStatus,
	)
	if len(vector) != featureCount {
		return 0, apperrors.InternalError("feature vector has wrong dimensionality", nil)
	}

	votes := c.forest.Vote(vector)
	if len(votes) < 2 {
		return 0, apperrors.InternalError("model emitted no positive-class vote", nil)
	}
	return votes[1], nil
}

// randFloat draws from the shared randomness source under the mutex.
func (c *Classifier) randFloat() float64 {
	c.rngMu.Lock()
	defer c.rngMu.Unlock()
	return c.rng.Float64()
}

// ruleProbability is the deterministic rule score plus a small uniform
// jitter, capped at 0.95.
func (c *Classifier) ruleProbability(q Query) float64 {
	score := ruleScore(q)
	score += c.randFloat() * ruleJitterMax
	if score > ruleScoreCap {
		score = ruleScoreCap
	}
	return score
}

// ruleScore is the pre-jitter fallback estimate. It is monotonic in each
// input: raising price, failures, or lowering tenure never lowers it.
func ruleScore(q Query) float64 {
	var score float64

	switch {
	case q.Price > 70:
		score += 0.3
	case q.Price > 50:
		score += 0.1
	}

	switch {
	case q.MonthsSubscribed < 3:
		score += 0.2
	case q.MonthsSubscribed < 6:
		score += 0.1
	}

	score += math.Min(float64(q.PaymentFailures)*0.15, 0.3)
	score += math.Min(float64(q.RenewFailures)*0.10, 0.20)
	return score
}

// factors derives the fixed-key risk factors that drive retention advice,
// independent of which probability path was taken.
func (c *Classifier) factors(q Query) (retention.Factors, []string) {
	var f retention.Factors
	var unmodeled []string

	if q.UsageRatio != nil {
		if *q.UsageRatio < 0.2 {
			f.LowUsage = 1.0
		}
	} else {
		f.LowUsage = c.randFloat()
		unmodeled = append(unmodeled, "low_usage")
	}

	if q.Price > 70 {
		f.HighPrice = 1.0
	}
	if q.MonthsSubscribed < 3 {
		f.NewCustomer = 1.0
	}

	if q.SupportTickets != nil {
		f.SupportIssues = math.Min(float64(*q.SupportTickets)*0.2, 1.0)
	} else {
		f.SupportIssues = c.randFloat()
		unmodeled = append(unmodeled, "support_issues")
	}

	f.PaymentIssues = math.Min(float64(q.PaymentFailures)*0.3, 1.0)
	return f, unmodeled
}

// defaultPrediction is the total-failure response; it must never raise
// further.
func defaultPrediction() Prediction {
	return Prediction{
		ChurnProbability: 0.3,
		RiskLevel:        "medium",
		Factors:          retention.Factors{},
		RetentionStrategies: []string{
			"Reach out with a personalized retention offer",
			"Review recent account activity with the subscriber",
		},
		UnmodeledSignals: []string{"low_usage", "support_issues"},
	}
}

// riskLevel buckets a probability. The medium band includes its lower
// boundary: exactly 0.4 is medium, not low.
func riskLevel(probability float64) string {
	switch {
	case probability > highRiskThreshold:
		return "high"
	case probability >= mediumRiskThreshold:
		return "medium"
	default:
		return "low"
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
