package service

import (
	"context"
	"fmt"
	"math"

	"github.com/mineh7/Marketing-Analytics-Project/internal/models"

	"go.uber.org/zap"
)

// Aggregator builds the feature table: one row per customer, produced by
// left-joining usage and transaction aggregates onto the customer table.
// One-to-many rows are collapsed before the join (mean usage frequency,
// summed transaction amount, plan type of the latest payment) so the join
// can never fan out. Feedback is fetched for the run summary but not
// joined into the features.
type Aggregator struct {
	customers    CustomerStore
	usage        UsageStore
	transactions TransactionStore
	feedback     FeedbackStore
	logger       *zap.Logger
}

func NewAggregator(
	customers CustomerStore,
	usage UsageStore,
	transactions TransactionStore,
	feedback FeedbackStore,
	logger *zap.Logger,
) *Aggregator {
	return &Aggregator{
		customers:    customers,
		usage:        usage,
		transactions: transactions,
		feedback:     feedback,
		logger:       logger,
	}
}

type usageAggregate struct {
	totalFrequency int
	records        int
}

type transactionAggregate struct {
	totalAmount float64
	latestPlan  models.PlanType
	latestDate  int64
}

func (a *Aggregator) Aggregate(ctx context.Context) ([]models.FeatureRow, error) {
	customers, err := a.customers.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customers: %w", err)
	}
	usage, err := a.usage.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch usage: %w", err)
	}
	transactions, err := a.transactions.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	feedback, err := a.feedback.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feedback: %w", err)
	}

	usageByCustomer := make(map[int64]*usageAggregate)
	for _, u := range usage {
		agg, ok := usageByCustomer[u.CustomerID]
		if !ok {
			agg = &usageAggregate{}
			usageByCustomer[u.CustomerID] = agg
		}
		agg.totalFrequency += u.UsageFrequency
		agg.records++
	}

	txByCustomer := make(map[int64]*transactionAggregate)
	for _, t := range transactions {
		agg, ok := txByCustomer[t.CustomerID]
		if !ok {
			agg = &transactionAggregate{}
			txByCustomer[t.CustomerID] = agg
		}
		agg.totalAmount += t.Amount
		if t.PaymentDate.Unix() >= agg.latestDate {
			agg.latestDate = t.PaymentDate.Unix()
			agg.latestPlan = t.PlanType
		}
	}

	rows := make([]models.FeatureRow, 0, len(customers))
	for _, c := range customers {
		row := models.FeatureRow{
			CustomerID: c.CustomerID,
			Age:        c.Age,
			Gender:     c.Gender,
			Location:   c.Location,
			PlanType:   models.PlanType(models.UnknownCategory),
		}
		if agg, ok := usageByCustomer[c.CustomerID]; ok {
			row.UsageFrequency = int(math.Round(float64(agg.totalFrequency) / float64(agg.records)))
		}
		if agg, ok := txByCustomer[c.CustomerID]; ok {
			row.Amount = agg.totalAmount
			row.PlanType = agg.latestPlan
		}
		rows = append(rows, row)
	}

	a.logger.Info("Feature table aggregated",
		zap.Int("customers", len(customers)),
		zap.Int("usage_rows", len(usage)),
		zap.Int("transaction_rows", len(transactions)),
		zap.Int("feedback_rows", len(feedback)),
		zap.Int("feature_rows", len(rows)),
	)
	return rows, nil
}
