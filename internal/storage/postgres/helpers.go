package postgres

import (
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB bundles the pgx pool with a $-placeholder statement builder so the
// repositories share one query-building setup.
type DB struct {
	Pool    *pgxpool.Pool
	Builder squirrel.StatementBuilderType
}

// NewDB wraps an established connection pool for use by the repositories.
func NewDB(pool *pgxpool.Pool) *DB {
	return &DB{
		Pool:    pool,
		Builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
