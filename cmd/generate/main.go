package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/mineh7/Marketing-Analytics-Project/internal/etl"
	"github.com/mineh7/Marketing-Analytics-Project/internal/generator"
	"github.com/mineh7/Marketing-Analytics-Project/pkg/config"
	"github.com/mineh7/Marketing-Analytics-Project/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	appLogger.Info("Starting data generation",
		zap.Int("customers", cfg.Generator.Customers),
		zap.Int("usage_records", cfg.Generator.UsageRecords),
		zap.Int("transactions", cfg.Generator.Transactions),
		zap.Int("feedback_records", cfg.Generator.FeedbackRecords),
		zap.Int64("seed", cfg.Generator.Seed),
	)

	if err := os.MkdirAll(cfg.Generator.DataDir, 0755); err != nil {
		appLogger.Fatal("Failed to create data directory", zap.Error(err))
	}

	gen := generator.New(cfg.Generator.Seed)

	customers := gen.Customers(cfg.Generator.Customers)
	customerIDs := make([]int64, 0, len(customers))
	for _, c := range customers {
		customerIDs = append(customerIDs, c.CustomerID)
	}

	usage := gen.UsageRecords(cfg.Generator.UsageRecords, customerIDs)
	transactions := gen.Transactions(cfg.Generator.Transactions, customerIDs)
	feedback := gen.FeedbackRecords(cfg.Generator.FeedbackRecords, customerIDs)

	files := []struct {
		name  string
		count int
		write func(path string) error
	}{
		{"customers.csv", len(customers), func(p string) error { return etl.WriteCustomersCSV(p, customers) }},
		{"usage.csv", len(usage), func(p string) error { return etl.WriteUsageCSV(p, usage) }},
		{"transactions.csv", len(transactions), func(p string) error { return etl.WriteTransactionsCSV(p, transactions) }},
		{"feedback.csv", len(feedback), func(p string) error { return etl.WriteFeedbackCSV(p, feedback) }},
	}

	for _, f := range files {
		path := filepath.Join(cfg.Generator.DataDir, f.name)
		if err := f.write(path); err != nil {
			appLogger.Fatal("Failed to write data file", zap.String("path", path), zap.Error(err))
		}
		appLogger.Info("Generated data file", zap.String("path", path), zap.Int("records", f.count))
	}

	appLogger.Info("Data generation completed")
}
