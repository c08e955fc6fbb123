package models

import "time"

type PlanType string

const (
	PlanBasic      PlanType = "Basic"
	PlanPremium    PlanType = "Premium"
	PlanEnterprise PlanType = "Enterprise"
)

// PlanPrices holds the base subscription price per plan; generated
// transaction amounts are this price plus bounded jitter.
var PlanPrices = map[PlanType]float64{
	PlanBasic:      9.99,
	PlanPremium:    19.99,
	PlanEnterprise: 49.99,
}

type Transaction struct {
	TransactionID int64     `db:"transaction_id"`
	CustomerID    int64     `db:"customer_id"`
	PaymentDate   time.Time `db:"payment_date"`
	Amount        float64   `db:"amount"`
	PlanType      PlanType  `db:"plan_type"`
}
