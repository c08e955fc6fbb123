package repository

import (
	"context"

	"github.com/mineh7/Marketing-Analytics-Project/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TransactionRepository) InsertSkipDuplicates(ctx context.Context, transactions []models.Transaction) (int64, error) {
	if len(transactions) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var inserted int64
	for _, t := range transactions {
		query := squirrel.Insert("transactions").
			Columns("transaction_id", "customer_id", "payment_date", "amount", "plan_type").
			Values(t.TransactionID, t.CustomerID, t.PaymentDate, t.Amount, t.PlanType).
			Suffix("ON CONFLICT (transaction_id) DO NOTHING").
			PlaceholderFormat(squirrel.Dollar)

		sql, args, err := query.ToSql()
		if err != nil {
			return inserted, err
		}

		n, err := execRow(ctx, tx, r.logger, "transactions", sql, args)
		if err != nil {
			return inserted, err
		}
		inserted += n
	}

	if err := tx.Commit(ctx); err != nil {
		return inserted, err
	}
	return inserted, nil
}

func (r *TransactionRepository) ReplaceAll(ctx context.Context, transactions []models.Transaction) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE transactions RESTART IDENTITY"); err != nil {
		return 0, err
	}

	if len(transactions) > 0 {
		builder := squirrel.Insert("transactions").
			Columns("transaction_id", "customer_id", "payment_date", "amount", "plan_type").
			PlaceholderFormat(squirrel.Dollar)

		for _, t := range transactions {
			builder = builder.Values(t.TransactionID, t.CustomerID, t.PaymentDate, t.Amount, t.PlanType)
		}

		sql, args, err := builder.ToSql()
		if err != nil {
			return 0, err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return int64(len(transactions)), nil
}

func (r *TransactionRepository) GetAll(ctx context.Context) ([]models.Transaction, error) {
	query := squirrel.Select("transaction_id", "customer_id", "payment_date", "amount", "plan_type").
		From("transactions").
		OrderBy("transaction_id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(
			&t.TransactionID, &t.CustomerID, &t.PaymentDate, &t.Amount, &t.PlanType,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}
