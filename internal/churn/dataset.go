package churn

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	apperrors "github.com/broadbandiq/subscription-intel/internal/errors"
)

// The five training datasets, joined on subscriber/subscription/product
// identifiers. Their schema is a hard contract for reproducing the trained
// classifier.
const (
	subscribersFile   = "subscribers.csv"
	plansFile         = "plans.csv"
	subscriptionsFile = "subscriptions.csv"
	billingFile       = "billing.csv"
	logsFile          = "logs.csv"
)

// Subscriber is one row of subscribers.csv.
type Subscriber struct {
	UserID string
	Name   string
	Phone  string
	Status string
}

// PlanRecord is one row of plans.csv.
type PlanRecord struct {
	ProductID          string
	Name               string
	Price              float64
	AutoRenewalAllowed string
}

// SubscriptionRow is one row of subscriptions.csv.
type SubscriptionRow struct {
	SubscriptionID   string
	UserID           string
	ProductID        string
	Status           string
	SubscriptionType string
	StartDate        string
	LastRenewedDate  string
}

// BillingRecord is one row of billing.csv.
type BillingRecord struct {
	PaymentID      string
	SubscriptionID string
	Amount         float64
	Status         string
	Date           string
}

// LogRecord is one row of logs.csv.
type LogRecord struct {
	LogID          string
	SubscriptionID string
	Action         string
	Date           string
}

// Dataset holds the five raw training tables.
type Dataset struct {
	Subscribers   []Subscriber
	Plans         []PlanRecord
	Subscriptions []SubscriptionRow
	Billing       []BillingRecord
	Logs          []LogRecord
}

// LoadDataset reads the five CSV files under dir. A missing or unreadable
// file makes the whole dataset unavailable; the caller falls back to the
// rule-based estimator.
func LoadDataset(dir string) (*Dataset, error) {
	ds := &Dataset{}

	subs, err := readCSV(filepath.Join(dir, subscribersFile))
	if err != nil {
		return nil, err
	}
	for _, row := range subs.rows {
		ds.Subscribers = append(ds.Subscribers, Subscriber{
			UserID: subs.get(row, "user_id"),
			Name:   subs.get(row, "name"),
			Phone:  subs.get(row, "phone"),
			Status: subs.get(row, "status"),
		})
	}

	plans, err := readCSV(filepath.Join(dir, plansFile))
	if err != nil {
		return nil, err
	}
	for _, row := range plans.rows {
		ds.Plans = append(ds.Plans, PlanRecord{
			ProductID:          plans.get(row, "product_id"),
			Name:               plans.get(row, "name"),
			Price:              parseFloat(plans.get(row, "price")),
			AutoRenewalAllowed: plans.get(row, "auto_renewal_allowed"),
		})
	}

	subscriptions, err := readCSV(filepath.Join(dir, subscriptionsFile))
	if err != nil {
		return nil, err
	}
	for _, row := range subscriptions.rows {
		ds.Subscriptions = append(ds.Subscriptions, SubscriptionRow{
			SubscriptionID:   subscriptions.get(row, "subscription_id"),
			UserID:           subscriptions.get(row, "user_id"),
			ProductID:        subscriptions.get(row, "product_id"),
			Status:           subscriptions.get(row, "status"),
			SubscriptionType: subscriptions.get(row, "subscription_type"),
			StartDate:        subscriptions.get(row, "start_date"),
			LastRenewedDate:  subscriptions.get(row, "last_renewed_date"),
		})
	}

	billing, err := readCSV(filepath.Join(dir, billingFile))
	if err != nil {
		return nil, err
	}
	for _, row := range billing.rows {
		ds.Billing = append(ds.Billing, BillingRecord{
			PaymentID:      billing.get(row, "payment_id"),
			SubscriptionID: billing.get(row, "subscription_id"),
			Amount:         parseFloat(billing.get(row, "amount")),
			Status:         billing.get(row, "status"),
			Date:           billing.get(row, "date"),
		})
	}

	logs, err := readCSV(filepath.Join(dir, logsFile))
	if err != nil {
		return nil, err
	}
	for _, row := range logs.rows {
		ds.Logs = append(ds.Logs, LogRecord{
			LogID:          logs.get(row, "log_id"),
			SubscriptionID: logs.get(row, "subscription_id"),
			Action:         logs.get(row, "action"),
			Date:           logs.get(row, "date"),
		})
	}

	return ds, nil
}

// table pairs CSV rows with a header index so columns are looked up by name
// rather than position.
type table struct {
	index map[string]int
	rows  [][]string
}

func (t *table) get(row []string, column string) string {
	i, ok := t.index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func readCSV(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.TrainingDataUnavailable(fmt.Sprintf("cannot open %s", filepath.Base(path)), err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged rows are imputed, not fatal

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.TrainingDataUnavailable(fmt.Sprintf("cannot parse %s", filepath.Base(path)), err)
	}
	if len(records) == 0 {
		return nil, apperrors.TrainingDataUnavailable(fmt.Sprintf("%s has no header row", filepath.Base(path)), nil)
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[name] = i
	}
	return &table{index: index, rows: records[1:]}, nil
}

// parseFloat imputes unparseable numeric values to 0.
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
