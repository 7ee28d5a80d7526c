package churn

import (
	"math"
	"math/rand"
	"sort"
	"time"

	randomforest "github.com/malaschitz/randomForest"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"

	apperrors "github.com/broadbandiq/subscription-intel/internal/errors"
)

const (
	// churnedStatus is the subscription status that defines the positive
	// label.
	churnedStatus = "paused"

	forestTrees   = 100
	trainSplit    = 0.8
	trainSeed     = 42
	dateLayout    = "2006-01-02"
	failedPayment = "failed"
	renewFailed   = "renew_failed"
)

// Record is one joined training row: subscription + plan + subscriber,
// enriched with billing and event-log aggregates.
type Record struct {
	SubscriptionID   string
	Price            float64
	DurationDays     int
	DaysSinceRenewal int
	PaymentFailures  int
	RenewFailures    int
	SubscriptionType string
	AutoRenewal      string
	UserStatus       string
	Churned          bool
}

// TrainingReport summarizes one training run. HoldoutAUC is a log-only
// diagnostic and is never surfaced in API responses.
type TrainingReport struct {
	Rows         int
	TrainRows    int
	HoldoutRows  int
	PositiveRate float64
	HoldoutAUC   float64
}

// BuildRecords joins the five tables into training rows. Missing joins and
// unparseable values are imputed (zero counts, zero durations) rather than
// dropped.
func BuildRecords(ds *Dataset, enc *Encoder) []Record {
	plansByID := make(map[string]PlanRecord, len(ds.Plans))
	for _, p := range ds.Plans {
		plansByID[p.ProductID] = p
	}
	usersByID := make(map[string]Subscriber, len(ds.Subscribers))
	for _, u := range ds.Subscribers {
		usersByID[u.UserID] = u
	}

	paymentFailures := make(map[string]int)
	for _, b := range ds.Billing {
		if b.Status == failedPayment {
			paymentFailures[b.SubscriptionID]++
		}
	}
	renewFailures := make(map[string]int)
	for _, l := range ds.Logs {
		if l.Action == renewFailed {
			renewFailures[l.SubscriptionID]++
		}
	}

	records := make([]Record, 0, len(ds.Subscriptions))
	for _, sub := range ds.Subscriptions {
		plan := plansByID[sub.ProductID]
		user := usersByID[sub.UserID]

		records = append(records, Record{
			SubscriptionID:   sub.SubscriptionID,
			Price:            plan.Price,
			DurationDays:     durationOrZero(enc, sub.StartDate),
			DaysSinceRenewal: durationOrZero(enc, sub.LastRenewedDate),
			PaymentFailures:  paymentFailures[sub.SubscriptionID],
			RenewFailures:    renewFailures[sub.SubscriptionID],
			SubscriptionType: sub.SubscriptionType,
			AutoRenewal:      plan.AutoRenewalAllowed,
			UserStatus:       user.Status,
			Churned:          sub.Status == churnedStatus,
		})
	}
	return records
}

// Train fits the label encoders and the forest on an 80/20 split of the
// joined records. The split is seeded, so repeated runs over the same data
// produce the same model.
func Train(ds *Dataset, enc *Encoder) (*randomforest.Forest, *TrainingReport, error) {
	records := BuildRecords(ds, enc)
	if len(records) == 0 {
		return nil, nil, apperrors.TrainingDataUnavailable("no subscription rows to train on", nil)
	}

	fitEncoders(enc, records)

	features := make([][]float64, len(records))
	labels := make([]int, len(records))
	positives := 0
	for i, r := range records {
		features[i] = enc.FeatureVector(
			r.Price, r.DurationDays, r.DaysSinceRenewal,
			r.PaymentFailures, r.RenewFailures,
			r.SubscriptionType, r.AutoRenewal, r.UserStatus,
		)
		if r.Churned {
			labels[i] = 1
			positives++
		}
	}

	rng := rand.New(rand.NewSource(trainSeed))
	order := rng.Perm(len(records))
	cut := int(float64(len(records)) * trainSplit)
	if cut == 0 {
		cut = len(records)
	}

	trainX := make([][]float64, 0, cut)
	trainY := make([]int, 0, cut)
	holdX := make([][]float64, 0, len(records)-cut)
	holdY := make([]int, 0, len(records)-cut)
	for i, idx := range order {
		if i < cut {
			trainX = append(trainX, features[idx])
			trainY = append(trainY, labels[idx])
		} else {
			holdX = append(holdX, features[idx])
			holdY = append(holdY, labels[idx])
		}
	}

	forest := &randomforest.Forest{}
	forest.Data = randomforest.ForestData{X: trainX, Class: trainY}
	forest.Train(forestTrees)

	report := &TrainingReport{
		Rows:         len(records),
		TrainRows:    len(trainX),
		HoldoutRows:  len(holdX),
		PositiveRate: float64(positives) / float64(len(records)),
		HoldoutAUC:   holdoutAUC(forest, holdX, holdY),
	}
	return forest, report, nil
}

func fitEncoders(enc *Encoder, records []Record) {
	types := make([]string, len(records))
	renewals := make([]string, len(records))
	statuses := make([]string, len(records))
	for i, r := range records {
		types[i] = r.SubscriptionType
		renewals[i] = r.AutoRenewal
		statuses[i] = r.UserStatus
	}
	enc.Fit(colSubscriptionType, types)
	enc.Fit(colAutoRenewal, renewals)
	enc.Fit(colUserStatus, statuses)
}

// holdoutAUC computes the area under the ROC curve on the holdout split.
// Returns 0 when the holdout is empty or single-class.
func holdoutAUC(forest *randomforest.Forest, holdX [][]float64, holdY []int) float64 {
	if len(holdX) == 0 {
		return 0
	}

	scores := make([]float64, len(holdX))
	classes := make([]bool, len(holdX))
	for i, x := range holdX {
		scores[i] = positiveProbability(forest, x)
		classes[i] = holdY[i] == 1
	}
	return aucFromScores(scores, classes)
}

// aucFromScores is the trapezoidal area under the ROC curve for a scored
// sample. Returns 0 for degenerate (empty or single-class) input.
func aucFromScores(scores []float64, classes []bool) float64 {
	if len(scores) < 2 {
		return 0
	}

	// stat.ROC requires scores in ascending order.
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return scores[order[i]] < scores[order[j]] })

	sortedScores := make([]float64, len(scores))
	sortedClasses := make([]bool, len(scores))
	for i, idx := range order {
		sortedScores[i] = scores[idx]
		sortedClasses[i] = classes[idx]
	}

	tpr, fpr, _ := stat.ROC(nil, sortedScores, sortedClasses, nil)
	auc := integrate.Trapezoidal(fpr, tpr)
	if math.IsNaN(auc) {
		return 0
	}
	return auc
}

// positiveProbability is the forest's vote share for the churn class.
func positiveProbability(forest *randomforest.Forest, features []float64) float64 {
	votes := forest.Vote(features)
	if len(votes) < 2 {
		return 0
	}
	return votes[1]
}

// durationOrZero derives a duration feature from an ISO date string,
// imputing 0 when the date is missing or malformed.
func durationOrZero(enc *Encoder, isoDate string) int {
	t, err := time.Parse(dateLayout, isoDate)
	if err != nil {
		return 0
	}
	return enc.DurationDays(t)
}
