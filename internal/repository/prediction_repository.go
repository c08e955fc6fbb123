package repository

import (
	"context"

	"github.com/mineh7/Marketing-Analytics-Project/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type PredictionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPredictionRepository(db *pgxpool.Pool, logger *zap.Logger) *PredictionRepository {
	return &PredictionRepository{
		db:     db,
		logger: logger,
	}
}

// AppendRun writes one prediction row per customer inside a single
// transaction and refreshes the denormalized churn_prediction flag on the
// customer. The predictions table is append-only: each run adds rows and
// never touches prior runs. The table carries no FK, so the insert
// checks the customer exists itself; rows referencing missing customers
// are skipped and logged, and the surviving rows commit together.
func (r *PredictionRepository) AppendRun(ctx context.Context, predictions []models.Prediction) (int64, error) {
	if len(predictions) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var inserted int64
	for _, p := range predictions {
		query := squirrel.Insert("predictions").
			Columns("customer_id", "prediction", "probability", "created_at").
			Select(squirrel.
				Select().
				Column(squirrel.Expr("?, ?, ?, ?", p.CustomerID, p.Prediction, p.Probability, p.CreatedAt)).
				Where(squirrel.Expr("EXISTS (SELECT 1 FROM customers WHERE customer_id = ?)", p.CustomerID))).
			PlaceholderFormat(squirrel.Dollar)

		sql, args, err := query.ToSql()
		if err != nil {
			return inserted, err
		}

		n, err := execRow(ctx, tx, r.logger, "predictions", sql, args)
		if err != nil {
			return inserted, err
		}
		if n == 0 {
			r.logger.Warn("Skipping prediction for unknown customer",
				zap.Int64("customer_id", p.CustomerID),
			)
			continue
		}
		inserted += n

		update := squirrel.Update("customers").
			Set("churn_prediction", p.Prediction == models.LabelChurn).
			Where(squirrel.Eq{"customer_id": p.CustomerID}).
			PlaceholderFormat(squirrel.Dollar)

		sql, args, err = update.ToSql()
		if err != nil {
			return inserted, err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return inserted, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return inserted, err
	}

	r.logger.Info("Prediction run persisted",
		zap.Int64("inserted", inserted),
		zap.Int("scored", len(predictions)),
	)
	return inserted, nil
}

func (r *PredictionRepository) GetAll(ctx context.Context) ([]models.Prediction, error) {
	query := squirrel.Select("id", "customer_id", "prediction", "probability", "created_at").
		From("predictions").
		OrderBy("id").
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

	var predictions []models.Prediction
	for rows.Next() {
		var p models.Prediction
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.Prediction, &p.Probability, &p.CreatedAt); err != nil {
			return nil, err
		}
		predictions = append(predictions, p)
	}

	return predictions, rows.Err()
}
