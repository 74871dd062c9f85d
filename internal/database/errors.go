package database

import (
	"errors"
	"strings"

	"holonet/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes for integrity constraint violations.
const (
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// TranslateError classifies a store error. Constraint violations come back as
// *models.AppError matching models.ErrUniqueViolation, ErrNotNullViolation or
// ErrForeignKeyViolation, with the driver error still reachable via errors.As.
// Anything else is returned unchanged.
func TranslateError(err error, table string) error {
	if err == nil {
		return nil
	}
	kind := classify(err)
	if kind == nil {
		return err
	}
	return models.NewConstraintError(kind, table, err)
}

// classify returns the constraint sentinel for err, or nil.
// The only CHECK constraints in the schema require text columns to be non-empty,
// so a CHECK failure is reported as a missing required field.
func classify(err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return models.ErrUniqueViolation
		case pgNotNullViolation, pgCheckViolation:
			return models.ErrNotNullViolation
		case pgForeignKeyViolation:
			return models.ErrForeignKeyViolation
		}
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return models.ErrUniqueViolation
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return models.ErrForeignKeyViolation
	}

	// SQLite reports constraint failures only through the message text.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unique constraint failed"):
		return models.ErrUniqueViolation
	case strings.Contains(msg, "not null constraint failed"),
		strings.Contains(msg, "check constraint failed"):
		return models.ErrNotNullViolation
	case strings.Contains(msg, "foreign key constraint failed"):
		return models.ErrForeignKeyViolation
	}
	return nil
}

// KindLabel returns a short metric label for a constraint error.
func KindLabel(err error) string {
	switch {
	case errors.Is(err, models.ErrUniqueViolation):
		return "unique"
	case errors.Is(err, models.ErrNotNullViolation):
		return "not_null"
	case errors.Is(err, models.ErrForeignKeyViolation):
		return "foreign_key"
	}
	return ""
}
