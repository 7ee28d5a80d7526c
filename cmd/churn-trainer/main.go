package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/broadbandiq/subscription-intel/internal/churn"
	"github.com/broadbandiq/subscription-intel/pkg/config"
)

// Standalone one-shot training run: loads the five CSV datasets, fits the
// churn forest, and prints the holdout diagnostics the server only logs.
func main() {
	fmt.Println("Churn Classifier Training")
	fmt.Println("=========================")

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.New()
	fmt.Printf("Data directory: %s\n", cfg.DataDir)
	fmt.Printf("Reference date: %s\n", cfg.ReferenceDate)

	ds, err := churn.LoadDataset(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to load training datasets: %v", err)
	}

	fmt.Printf("\nDatasets loaded:\n")
	fmt.Printf("   - Subscribers:   %d\n", len(ds.Subscribers))
	fmt.Printf("   - Plans:         %d\n", len(ds.Plans))
	fmt.Printf("   - Subscriptions: %d\n", len(ds.Subscriptions))
	fmt.Printf("   - Billing rows:  %d\n", len(ds.Billing))
	fmt.Printf("   - Log rows:      %d\n", len(ds.Logs))

	enc := churn.NewEncoder(cfg.GetReferenceDate())
	_, report, err := churn.Train(ds, enc)
	if err != nil {
		log.Fatalf("Training failed: %v", err)
	}

	fmt.Printf("\nTraining completed:\n")
	fmt.Printf("   - Rows:          %d\n", report.Rows)
	fmt.Printf("   - Train rows:    %d\n", report.TrainRows)
	fmt.Printf("   - Holdout rows:  %d\n", report.HoldoutRows)
	fmt.Printf("   - Positive rate: %.3f\n", report.PositiveRate)
	fmt.Printf("   - Holdout AUC:   %.3f\n", report.HoldoutAUC)
}
