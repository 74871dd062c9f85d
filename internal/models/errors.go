package models

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is.
var (
	ErrNotFound            = errors.New("record not found")
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrNotNullViolation    = errors.New("not-null constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key constraint violation")
	ErrPlaintextPassword   = errors.New("password must be a bcrypt hash")
)

// Error codes carried by AppError.
const (
	CodeNotFound            = "NOT_FOUND"
	CodeValidation          = "VALIDATION_ERROR"
	CodeUniqueViolation     = "UNIQUE_VIOLATION"
	CodeNotNullViolation    = "NOT_NULL_VIOLATION"
	CodeForeignKeyViolation = "FOREIGN_KEY_VIOLATION"
	CodeInternal            = "INTERNAL_ERROR"
)

// AppError represents a custom application error.
// Err is the underlying driver error, left untouched so callers can inspect it.
type AppError struct {
	Code    string
	Message string
	Err     error
	kind    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel the error was classified as.
func (e *AppError) Is(target error) bool {
	return e.kind != nil && e.kind == target
}

// Predefined error constructors

// NewNotFoundError reports a missing record of the given resource type.
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
		kind:    ErrNotFound,
	}
}

// NewValidationError reports input rejected before reaching the store.
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

// NewConstraintError wraps a store constraint violation. kind is one of
// ErrUniqueViolation, ErrNotNullViolation or ErrForeignKeyViolation.
func NewConstraintError(kind error, table string, err error) *AppError {
	code := CodeInternal
	switch kind {
	case ErrUniqueViolation:
		code = CodeUniqueViolation
	case ErrNotNullViolation:
		code = CodeNotNullViolation
	case ErrForeignKeyViolation:
		code = CodeForeignKeyViolation
	}
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf("%s: %v", table, kind),
		Err:     err,
		kind:    kind,
	}
}

// NewInternalError wraps an unexpected store or runtime failure.
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}
