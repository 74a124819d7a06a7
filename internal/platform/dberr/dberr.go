// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr translates driver errors from pgx into [apperr.AppError]
// values so that storage details never reach a client.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/sixcities/internal/platform/apperr"
)

// ErrNotFound is returned for queries that matched no row.
var ErrNotFound = errors.New("dberr: no rows")

// ReferenceError reports a foreign-key violation. It matches [ErrNotFound]
// so callers that only care about the missing row need no extra case.
type ReferenceError struct {
	Constraint string
}

func (e *ReferenceError) Error() string {
	return "dberr: missing reference " + e.Constraint
}

// Is makes errors.Is(err, ErrNotFound) hold for reference errors.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrNotFound
}

// Wrap classifies a database error.
//
//   - pgx.ErrNoRows      -> [ErrNotFound] (callers map it to their own NotFound)
//   - foreign key miss   -> [*ReferenceError] (matches [ErrNotFound])
//   - unique violation   -> Conflict
//   - anything else      -> Storage, tagged with action as component
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict("Resource already exists").WithComponent(action)
		case pgerrcode.ForeignKeyViolation:
			return &ReferenceError{Constraint: pgError.ConstraintName}
		}
	}

	return apperr.Storage(fmt.Errorf("%s: %w", action, err)).WithComponent(action)
}

// Constraint returns the name of the violated foreign key, or "" when err is
// not a [*ReferenceError].
func Constraint(err error) string {
	var reference *ReferenceError
	if errors.As(err, &reference) {
		return reference.Constraint
	}
	return ""
}

// IsNotFound reports whether err came from a query that matched no row.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, pgx.ErrNoRows)
}
