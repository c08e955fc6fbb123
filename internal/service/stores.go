package service

import (
	"context"

	"github.com/mineh7/Marketing-Analytics-Project/internal/models"
)

// Store interfaces are declared on the consumer side so the pipeline
// services own their storage contract and tests can inject an isolated
// in-memory store. The repository package satisfies all of them.

type CustomerStore interface {
	InsertSkipDuplicates(ctx context.Context, customers []models.Customer) (int64, error)
	ReplaceAll(ctx context.Context, customers []models.Customer) (int64, error)
	GetAll(ctx context.Context) ([]models.Customer, error)
}

type UsageStore interface {
	InsertSkipDuplicates(ctx context.Context, usage []models.Usage) (int64, error)
	ReplaceAll(ctx context.Context, usage []models.Usage) (int64, error)
	GetAll(ctx context.Context) ([]models.Usage, error)
}

type TransactionStore interface {
	InsertSkipDuplicates(ctx context.Context, transactions []models.Transaction) (int64, error)
	ReplaceAll(ctx context.Context, transactions []models.Transaction) (int64, error)
	GetAll(ctx context.Context) ([]models.Transaction, error)
}

type FeedbackStore interface {
	InsertSkipDuplicates(ctx context.Context, feedback []models.Feedback) (int64, error)
	ReplaceAll(ctx context.Context, feedback []models.Feedback) (int64, error)
	GetAll(ctx context.Context) ([]models.Feedback, error)
}

type PredictionStore interface {
	AppendRun(ctx context.Context, predictions []models.Prediction) (int64, error)
}
