package repository

import (
	"context"

	"github.com/mineh7/Marketing-Analytics-Project/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type FeedbackRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewFeedbackRepository(db *pgxpool.Pool, logger *zap.Logger) *FeedbackRepository {
	return &FeedbackRepository{
		db:     db,
		logger: logger,
	}
}

func (r *FeedbackRepository) InsertSkipDuplicates(ctx context.Context, feedback []models.Feedback) (int64, error) {
	if len(feedback) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var inserted int64
	for _, f := range feedback {
		query := squirrel.Insert("feedback").
			Columns("feedback_id", "customer_id", "feedback_text", "rating").
			Values(f.FeedbackID, f.CustomerID, f.FeedbackText, f.Rating).
			Suffix("ON CONFLICT (feedback_id) DO NOTHING").
			PlaceholderFormat(squirrel.Dollar)

		sql, args, err := query.ToSql()
		if err != nil {
			return inserted, err
		}

		n, err := execRow(ctx, tx, r.logger, "feedback", sql, args)
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

func (r *FeedbackRepository) ReplaceAll(ctx context.Context, feedback []models.Feedback) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE feedback RESTART IDENTITY"); err != nil {
		return 0, err
	}

	if len(feedback) > 0 {
		builder := squirrel.Insert("feedback").
			Columns("feedback_id", "customer_id", "feedback_text", "rating").
			PlaceholderFormat(squirrel.Dollar)

		for _, f := range feedback {
			builder = builder.Values(f.FeedbackID, f.CustomerID, f.FeedbackText, f.Rating)
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
	return int64(len(feedback)), nil
}

func (r *FeedbackRepository) GetAll(ctx context.Context) ([]models.Feedback, error) {
	query := squirrel.Select("feedback_id", "customer_id", "feedback_text", "rating").
		From("feedback").
		OrderBy("feedback_id").
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

	var feedback []models.Feedback
	for rows.Next() {
		var f models.Feedback
		if err := rows.Scan(&f.FeedbackID, &f.CustomerID, &f.FeedbackText, &f.Rating); err != nil {
			return nil, err
		}
		feedback = append(feedback, f)
	}

	return feedback, rows.Err()
}
