package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// SQLSTATE codes treated as row-level problems: the row is skipped and
// the batch keeps going.
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
)

func isRowLevel(code string) bool {
	switch code {
	case codeForeignKeyViolation, codeUniqueViolation, codeCheckViolation:
		return true
	}
	return false
}

// execRow runs one statement inside a savepoint so a failed row does not
// poison the surrounding transaction. Integrity violations are logged and
// swallowed; anything else propagates. Returns the affected row count.
func execRow(ctx context.Context, tx pgx.Tx, logger *zap.Logger, table, sql string, args []interface{}) (int64, error) {
	sp, err := tx.Begin(ctx)
	if err != nil {
		return 0, err
	}

	tag, err := sp.Exec(ctx, sql, args...)
	if err != nil {
		_ = sp.Rollback(ctx)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && isRowLevel(pgErr.Code) {
			logger.Warn("Skipping row",
				zap.String("table", table),
				zap.String("code", pgErr.Code),
				zap.String("detail", pgErr.Detail),
			)
			return 0, nil
		}
		return 0, err
	}

	if err := sp.Commit(ctx); err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
