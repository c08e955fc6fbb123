package repository

import (
	"context"

	"github.com/mineh7/Marketing-Analytics-Project/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type CustomerRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCustomerRepository(db *pgxpool.Pool, logger *zap.Logger) *CustomerRepository {
	return &CustomerRepository{
		db:     db,
		logger: logger,
	}
}

// InsertSkipDuplicates inserts each customer in its own savepoint within a
// single transaction, skipping rows whose primary key already exists.
func (r *CustomerRepository) InsertSkipDuplicates(ctx context.Context, customers []models.Customer) (int64, error) {
	if len(customers) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var inserted int64
	for _, c := range customers {
		query := squirrel.Insert("customers").
			Columns("customer_id", "name", "age", "gender", "location").
			Values(c.CustomerID, c.Name, c.Age, c.Gender, c.Location).
			Suffix("ON CONFLICT (customer_id) DO NOTHING").
			PlaceholderFormat(squirrel.Dollar)

		sql, args, err := query.ToSql()
		if err != nil {
			return inserted, err
		}

		n, err := execRow(ctx, tx, r.logger, "customers", sql, args)
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

// ReplaceAll truncates the four entity tables (dependent tables must go
// with their customers, identity counters reset) and bulk-appends the
// batch. The predictions log is deliberately not touched: it is
// append-only history and survives entity reloads.
func (r *CustomerRepository) ReplaceAll(ctx context.Context, customers []models.Customer) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE customers, usage, transactions, feedback RESTART IDENTITY"); err != nil {
		return 0, err
	}

	if len(customers) > 0 {
		builder := squirrel.Insert("customers").
			Columns("customer_id", "name", "age", "gender", "location").
			PlaceholderFormat(squirrel.Dollar)

		for _, c := range customers {
			builder = builder.Values(c.CustomerID, c.Name, c.Age, c.Gender, c.Location)
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
	return int64(len(customers)), nil
}

func (r *CustomerRepository) GetAll(ctx context.Context) ([]models.Customer, error) {
	query := squirrel.Select("customer_id", "name", "age", "gender", "location", "churn_prediction").
		From("customers").
		OrderBy("customer_id").
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

	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(
			&c.CustomerID, &c.Name, &c.Age, &c.Gender, &c.Location, &c.ChurnPrediction,
		); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}

	return customers, rows.Err()
}

// HighRisk lists customers whose feedback rating is below maxRating or
// whose usage frequency is below usageThreshold.
func (r *CustomerRepository) HighRisk(ctx context.Context, maxRating, usageThreshold int) ([]models.HighRiskCustomer, error) {
	query := squirrel.Select("c.customer_id", "c.name", "c.location", "f.rating", "u.usage_frequency").
		From("customers c").
		LeftJoin("feedback f ON f.customer_id = c.customer_id").
		LeftJoin("usage u ON u.customer_id = c.customer_id").
		Where(squirrel.Or{
			squirrel.Lt{"f.rating": maxRating},
			squirrel.Lt{"u.usage_frequency": usageThreshold},
		}).
		OrderBy("c.customer_id").
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

	var customers []models.HighRiskCustomer
	for rows.Next() {
		var c models.HighRiskCustomer
		if err := rows.Scan(&c.CustomerID, &c.Name, &c.Location, &c.Rating, &c.UsageFrequency); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}

	return customers, rows.Err()
}
