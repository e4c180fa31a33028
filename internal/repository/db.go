package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the Postgres SQLSTATE for a broken UNIQUE constraint.
const uniqueViolation = "23505"

var (
	ErrDuplicate = errors.New("record already exists")
	ErrNotFound  = errors.New("record not found")
)

// DBTX is the subset of pgxpool.Pool used by the repositories, so that
// tests can substitute pgxmock.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// sortColumns whitelists the columns list endpoints may order by.
var sortColumns = map[string]string{
	"name":       "name",
	"email":      "email",
	"created_at": "created_at",
	"createdAt":  "created_at",
	"updated_at": "updated_at",
}

// orderBy turns user supplied sort options into a safe ORDER BY clause.
// Unknown columns fall back to name, anything but "desc" sorts ascending.
func orderBy(sortBy, sortOrder string) string {
	col, ok := sortColumns[sortBy]
	if !ok {
		col = "name"
	}
	dir := "ASC"
	if sortOrder == "desc" || sortOrder == "DESC" {
		dir = "DESC"
	}
	return " ORDER BY " + col + " " + dir + ", id ASC"
}
