package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrValidation          = errors.New("validation failed")
	ErrDuplicateName       = errors.New("project name already exists")
	ErrProjectClosed       = errors.New("project is closed")
	ErrProjectInvested     = errors.New("project has invested funds")
	ErrAmountBelowInvested = errors.New("full amount below invested amount")
	ErrConflict            = errors.New("concurrent allocation conflict")
	ErrInvariantViolation  = errors.New("ledger invariant violation")
)

func invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
}

// ValidationError describes a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
