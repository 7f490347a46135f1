// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/yuedu/internal/platform/apperr"
)

// PostgreSQL SQLSTATE codes the service reacts to.
const (
	sqlStateForeignKeyViolation = "23503"
	sqlStateCheckViolation      = "23514"
)

/*
Wrap inspects a database error and converts it into an [apperr.AppError].

It hides internal database details from the client while classifying the
error type.

Parameters:
  - err: error (raw pgx error, may be nil)
  - resource: string (name used in the NOT_FOUND message, e.g. "Book")

Returns:
  - error: nil when err is nil, otherwise an *apperr.AppError
*/
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// Already classified upstream
	if apperr.As(err) != nil {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case sqlStateForeignKeyViolation:
			// The referenced parent row vanished between check and write
			return apperr.NotFound(resource)
		case sqlStateCheckViolation:
			return apperr.ValidationError("Value violates a storage constraint: " + pgError.ConstraintName)
		}
	}

	return apperr.Internal(err)
}
