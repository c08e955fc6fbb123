package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mineh7/Marketing-Analytics-Project/internal/etl"
	"github.com/mineh7/Marketing-Analytics-Project/internal/repository"
	"github.com/mineh7/Marketing-Analytics-Project/internal/service"
	"github.com/mineh7/Marketing-Analytics-Project/pkg/config"
	"github.com/mineh7/Marketing-Analytics-Project/pkg/logger"
	"github.com/mineh7/Marketing-Analytics-Project/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const lowRatingCutoff = 3

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

	runID := uuid.New()
	appLogger.Info("Starting retention pipeline", zap.String("run_id", runID.String()))

	// Connect to database; unreachable storage aborts the run before
	// any stage executes.
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := repository.EnsureSchema(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to ensure schema", zap.Error(err))
	}

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(db, appLogger)
	usageRepo := repository.NewUsageRepository(db, appLogger)
	transactionRepo := repository.NewTransactionRepository(db, appLogger)
	feedbackRepo := repository.NewFeedbackRepository(db, appLogger)
	predictionRepo := repository.NewPredictionRepository(db, appLogger)

	// Stage 1: load CSVs into storage, one table at a time.
	loader := service.NewLoader(cfg.Loader.Policy, customerRepo, usageRepo, transactionRepo, feedbackRepo, appLogger)
	for _, result := range loader.LoadDir(ctx, cfg.Generator.DataDir) {
		if result.Err != nil {
			appLogger.Warn("Table load failed", zap.String("table", result.Table), zap.Error(result.Err))
		}
	}

	// Stage 2: build the per-customer feature table.
	aggregator := service.NewAggregator(customerRepo, usageRepo, transactionRepo, feedbackRepo, appLogger)
	features, err := aggregator.Aggregate(ctx)
	if err != nil {
		appLogger.Fatal("Aggregation failed", zap.Error(err))
	}

	// Stage 3: train and score.
	trainer := service.NewTrainer(cfg.Model, appLogger)
	result, err := trainer.TrainAndScore(features)
	if err != nil {
		appLogger.Fatal("Training failed", zap.Error(err))
	}

	// Stage 4: persist the prediction run.
	persister := service.NewPersister(predictionRepo, appLogger)
	rows, inserted, err := persister.Persist(ctx, result.Scored)
	if err != nil {
		appLogger.Fatal("Persist stage failed", zap.Error(err))
	}
	appLogger.Info("Predictions persisted", zap.Int64("rows", inserted))

	// Artifacts: serialized model, metrics report, optional CSV.
	if err := writeModel(cfg.Artifacts.ModelPath, result); err != nil {
		appLogger.Fatal("Failed to write model artifact", zap.Error(err))
	}
	if err := writeReport(cfg.Artifacts.ReportPath, runID.String(), result); err != nil {
		appLogger.Fatal("Failed to write metrics report", zap.Error(err))
	}
	if cfg.Artifacts.PredictionsCSV != "" {
		if err := etl.WritePredictionsCSV(cfg.Artifacts.PredictionsCSV, rows); err != nil {
			appLogger.Fatal("Failed to write predictions CSV", zap.Error(err))
		}
	}

	// Run summary: customers flagged by low rating or low usage.
	highRisk, err := customerRepo.HighRisk(ctx, lowRatingCutoff, cfg.Model.ChurnThreshold)
	if err != nil {
		appLogger.Warn("Failed to fetch high-risk customers", zap.Error(err))
	} else {
		appLogger.Info("High-risk customers", zap.Int("count", len(highRisk)))
	}

	appLogger.Info("Retention pipeline completed",
		zap.String("run_id", runID.String()),
		zap.Float64("accuracy", result.Report.Accuracy),
	)
}

func writeModel(path string, result *service.TrainResult) error {
	blob, err := result.Forest.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, blob, 0644)
}

func writeReport(path, runID string, result *service.TrainResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	text := fmt.Sprintf("Churn model classification report\nrun_id: %s\ngenerated_at: %s\nfeatures: %v\n\n%s",
		runID,
		time.Now().UTC().Format(time.RFC3339),
		result.FeatureNames,
		result.Report.String(),
	)
	if result.LabelDerived {
		text += "\nNote: the churn label is derived from usage_frequency, which is also a feature;\nthese metrics do not reflect performance on an independent signal.\n"
	}
	return os.WriteFile(path, []byte(text), 0644)
}
