package services

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Custom errors. Handlers switch on these; anything unclassified is
// treated as unexpected and never shown to the caller.

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type DuplicateKeyError struct{ Message string }

func (e *DuplicateKeyError) Error() string { return e.Message }

type ConstraintError struct{ Message string }

func (e *ConstraintError) Error() string { return e.Message }

type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

type SelfShareError struct{}

func (e *SelfShareError) Error() string { return "cannot share a session with yourself" }

type DuplicateShareError struct{ Message string }

func (e *DuplicateShareError) Error() string { return e.Message }

// Postgres error class helpers

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23505" // unique_violation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23503" // foreign_key_violation
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
