package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mineh7/Marketing-Analytics-Project/internal/models"

	"go.uber.org/zap"
)

// Persister writes one prediction row per scored customer per run. The
// whole run is one transaction; rows that fail individually are skipped
// and logged by the store, and the survivors commit together.
type Persister struct {
	predictions PredictionStore
	logger      *zap.Logger
}

func NewPersister(predictions PredictionStore, logger *zap.Logger) *Persister {
	return &Persister{predictions: predictions, logger: logger}
}

// Persist returns the rows it attempted to write (for the optional CSV
// artifact) and the count that actually committed.
func (p *Persister) Persist(ctx context.Context, scored []ScoredCustomer) ([]models.Prediction, int64, error) {
	now := time.Now().UTC()
	rows := make([]models.Prediction, 0, len(scored))
	for _, s := range scored {
		rows = append(rows, models.Prediction{
			CustomerID:  s.CustomerID,
			Prediction:  s.Label,
			Probability: s.Probability,
			CreatedAt:   now,
		})
	}

	inserted, err := p.predictions.AppendRun(ctx, rows)
	if err != nil {
		return rows, inserted, fmt.Errorf("persist stage failed: %w", err)
	}

	if skipped := int64(len(rows)) - inserted; skipped > 0 {
		p.logger.Warn("Some prediction rows were skipped",
			zap.Int64("skipped", skipped),
			zap.Int64("inserted", inserted),
		)
	}
	return rows, inserted, nil
}
