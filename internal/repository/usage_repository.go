package repository

import (
	"context"

	"github.com/mineh7/Marketing-Analytics-Project/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UsageRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUsageRepository(db *pgxpool.Pool, logger *zap.Logger) *UsageRepository {
	return &UsageRepository{
		db:     db,
		logger: logger,
	}
}

// InsertSkipDuplicates inserts each usage row in its own savepoint within
// a single transaction. Duplicate primary keys and references to missing
// customers are skipped with a warning; the batch keeps going.
func (r *UsageRepository) InsertSkipDuplicates(ctx context.Context, usage []models.Usage) (int64, error) {
	if len(usage) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var inserted int64
	for _, u := range usage {
		query := squirrel.Insert("usage").
			Columns("usage_id", "customer_id", "feature_name", "usage_frequency", "last_used_date").
			Values(u.UsageID, u.CustomerID, u.FeatureName, u.UsageFrequency, u.LastUsedDate).
			Suffix("ON CONFLICT (usage_id) DO NOTHING").
			PlaceholderFormat(squirrel.Dollar)

		sql, args, err := query.ToSql()
		if err != nil {
			return inserted, err
		}

		n, err := execRow(ctx, tx, r.logger, "usage", sql, args)
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

func (r *UsageRepository) ReplaceAll(ctx context.Context, usage []models.Usage) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE usage RESTART IDENTITY"); err != nil {
		return 0, err
	}

	if len(usage) > 0 {
		builder := squirrel.Insert("usage").
			Columns("usage_id", "customer_id", "feature_name", "usage_frequency", "last_used_date").
			PlaceholderFormat(squirrel.Dollar)

		for _, u := range usage {
			builder = builder.Values(u.UsageID, u.CustomerID, u.FeatureName, u.UsageFrequency, u.LastUsedDate)
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
	return int64(len(usage)), nil
}

func (r *UsageRepository) GetAll(ctx context.Context) ([]models.Usage, error) {
	query := squirrel.Select("usage_id", "customer_id", "feature_name", "usage_frequency", "last_used_date").
		From("usage").
		OrderBy("usage_id").
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

	var usage []models.Usage
	for rows.Next() {
		var u models.Usage
		if err := rows.Scan(
			&u.UsageID, &u.CustomerID, &u.FeatureName, &u.UsageFrequency, &u.LastUsedDate,
		); err != nil {
			return nil, err
		}
		usage = append(usage, u)
	}

	return usage, rows.Err()
}
