// Copyright (c) 2026 Leafmark. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/leafmark/leafmark/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// # Classification
//
//   - pgx.ErrNoRows → NOT_FOUND
//   - SQLSTATE 23505 (unique violation) → CONFLICT. This is the storage-layer
//     backstop for uniqueness rules: the application-level duplicate check can
//     race under concurrent writes, the unique index cannot.
//   - SQLSTATE 23503 (foreign key violation) → NOT_FOUND, since the referenced
//     parent row is missing.
//   - Anything else → INTERNAL_ERROR with the cause preserved for logging.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict("Resource already exists")
		case pgerrcode.ForeignKeyViolation:
			return ErrNotFound
		}
	}

	return apperr.Internal(err)
}
