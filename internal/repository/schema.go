package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		customer_id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		age INT,
		gender TEXT,
		location TEXT,
		churn_prediction BOOLEAN
	)`,
	`CREATE TABLE IF NOT EXISTS usage (
		usage_id BIGINT PRIMARY KEY,
		customer_id BIGINT REFERENCES customers(customer_id),
		feature_name TEXT NOT NULL,
		usage_frequency INT,
		last_used_date DATE
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		transaction_id BIGINT PRIMARY KEY,
		customer_id BIGINT REFERENCES customers(customer_id),
		payment_date DATE,
		amount DOUBLE PRECISION,
		plan_type TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS feedback (
		feedback_id BIGINT PRIMARY KEY,
		customer_id BIGINT REFERENCES customers(customer_id),
		feedback_text TEXT,
		rating INT
	)`,
	// No FK to customers: the prediction log is history and must
	// survive entity-table reloads. Referential integrity is enforced
	// at write time by AppendRun.
	`CREATE TABLE IF NOT EXISTS predictions (
		id BIGSERIAL PRIMARY KEY,
		customer_id BIGINT,
		prediction TEXT NOT NULL,
		probability DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL
	)`,
}

// EnsureSchema creates all pipeline tables if they do not exist yet.
// Existing tables are left untouched.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	logger.Info("Database schema ensured", zap.Int("tables", len(schemaStatements)))
	return nil
}
