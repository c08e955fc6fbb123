package service

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mineh7/Marketing-Analytics-Project/internal/etl"
	"github.com/mineh7/Marketing-Analytics-Project/internal/models"
	"github.com/mineh7/Marketing-Analytics-Project/pkg/config"

	"go.uber.org/zap"
)

// TableResult reports the outcome of loading one table. A non-nil Err
// means the whole table failed; per-row skips are only logged.
type TableResult struct {
	Table  string
	Loaded int64
	Err    error
}

// Loader moves CSV batches into storage one table at a time. Each table
// load runs in its own transaction and a failure in one table never
// prevents the remaining tables from loading.
type Loader struct {
	policy       config.LoadPolicy
	customers    CustomerStore
	usage        UsageStore
	transactions TransactionStore
	feedback     FeedbackStore
	logger       *zap.Logger
}

func NewLoader(
	policy config.LoadPolicy,
	customers CustomerStore,
	usage UsageStore,
	transactions TransactionStore,
	feedback FeedbackStore,
	logger *zap.Logger,
) *Loader {
	return &Loader{
		policy:       policy,
		customers:    customers,
		usage:        usage,
		transactions: transactions,
		feedback:     feedback,
		logger:       logger,
	}
}

// LoadDir loads whichever of the four entity CSVs exist in dataDir.
// Customers load first so dependent rows can resolve their foreign keys.
func (l *Loader) LoadDir(ctx context.Context, dataDir string) []TableResult {
	var results []TableResult

	if path, ok := l.dataFile(dataDir, "customers.csv"); ok {
		rows, err := etl.ReadCustomersCSV(path)
		if err != nil {
			results = append(results, l.failed("customers", err))
		} else {
			results = append(results, l.LoadCustomers(ctx, rows))
		}
	}

	if path, ok := l.dataFile(dataDir, "usage.csv"); ok {
		rows, err := etl.ReadUsageCSV(path)
		if err != nil {
			results = append(results, l.failed("usage", err))
		} else {
			results = append(results, l.LoadUsage(ctx, rows))
		}
	}

	if path, ok := l.dataFile(dataDir, "transactions.csv"); ok {
		rows, err := etl.ReadTransactionsCSV(path)
		if err != nil {
			results = append(results, l.failed("transactions", err))
		} else {
			results = append(results, l.LoadTransactions(ctx, rows))
		}
	}

	if path, ok := l.dataFile(dataDir, "feedback.csv"); ok {
		rows, err := etl.ReadFeedbackCSV(path)
		if err != nil {
			results = append(results, l.failed("feedback", err))
		} else {
			results = append(results, l.LoadFeedback(ctx, rows))
		}
	}

	return results
}

func (l *Loader) LoadCustomers(ctx context.Context, rows []models.Customer) TableResult {
	var loaded int64
	var err error
	if l.policy == config.PolicyReplace {
		loaded, err = l.customers.ReplaceAll(ctx, rows)
	} else {
		loaded, err = l.customers.InsertSkipDuplicates(ctx, rows)
	}
	return l.result("customers", len(rows), loaded, err)
}

func (l *Loader) LoadUsage(ctx context.Context, rows []models.Usage) TableResult {
	var loaded int64
	var err error
	if l.policy == config.PolicyReplace {
		loaded, err = l.usage.ReplaceAll(ctx, rows)
	} else {
		loaded, err = l.usage.InsertSkipDuplicates(ctx, rows)
	}
	return l.result("usage", len(rows), loaded, err)
}

func (l *Loader) LoadTransactions(ctx context.Context, rows []models.Transaction) TableResult {
	var loaded int64
	var err error
	if l.policy == config.PolicyReplace {
		loaded, err = l.transactions.ReplaceAll(ctx, rows)
	} else {
		loaded, err = l.transactions.InsertSkipDuplicates(ctx, rows)
	}
	return l.result("transactions", len(rows), loaded, err)
}

func (l *Loader) LoadFeedback(ctx context.Context, rows []models.Feedback) TableResult {
	var loaded int64
	var err error
	if l.policy == config.PolicyReplace {
		loaded, err = l.feedback.ReplaceAll(ctx, rows)
	} else {
		loaded, err = l.feedback.InsertSkipDuplicates(ctx, rows)
	}
	return l.result("feedback", len(rows), loaded, err)
}

func (l *Loader) dataFile(dataDir, name string) (string, bool) {
	path := filepath.Join(dataDir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		l.logger.Info("Data file not found, skipping table", zap.String("path", path))
		return "", false
	}
	return path, true
}

func (l *Loader) failed(table string, err error) TableResult {
	l.logger.Error("Failed to load table, moving to the next",
		zap.String("table", table),
		zap.Error(err),
	)
	return TableResult{Table: table, Err: err}
}

func (l *Loader) result(table string, batch int, loaded int64, err error) TableResult {
	if err != nil {
		return l.failed(table, err)
	}
	l.logger.Info("Table loaded",
		zap.String("table", table),
		zap.Int("batch", batch),
		zap.Int64("loaded", loaded),
		zap.String("policy", string(l.policy)),
	)
	return TableResult{Table: table, Loaded: loaded}
}
