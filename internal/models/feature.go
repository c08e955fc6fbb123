package models

// FeatureRow is one customer's merged training row: customer attributes
// left-joined with usage and transaction aggregates. Missing numeric
// fields are filled with 0 and missing categorical fields with "Unknown"
// before a row reaches the trainer.
type FeatureRow struct {
	CustomerID     int64
	Age            int
	Gender         Gender
	Location       string
	UsageFrequency int
	Amount         float64
	PlanType       PlanType
}

const UnknownCategory = "Unknown"
