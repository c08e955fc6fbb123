package models

import "time"

type ChurnLabel string

const (
	LabelChurn   ChurnLabel = "Churn"
	LabelNoChurn ChurnLabel = "NoChurn"
)

// Prediction is one row of the append-only results log. Every pipeline
// run inserts fresh rows; prior runs are never updated.
type Prediction struct {
	ID          int64      `db:"id"`
	CustomerID  int64      `db:"customer_id"`
	Prediction  ChurnLabel `db:"prediction"`
	Probability float64    `db:"probability"`
	CreatedAt   time.Time  `db:"created_at"`
}
