package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes we care about
const (
	uniqueViolationCode = "23505"
)

// IsUniqueViolation checks if the error is a PostgreSQL unique violation.
// This catches races between an application-level existence check and the
// actual insert, where the offending constraint may not be introspectable.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
