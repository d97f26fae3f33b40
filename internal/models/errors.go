package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("resource already exists")
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("access denied")
	ErrUnauthorized = errors.New("unauthorized")
)

var (
	ErrAlreadyVoted       = errors.New("you have already voted this year")
	ErrNoAvailability     = errors.New("no rooms available for the selected dates")
	ErrInvalidSignature   = errors.New("invalid webhook signature")
	ErrShareCodeExhausted = errors.New("could not allocate a unique share code")
)

var (
	ErrUpstream    = errors.New("upstream service failed")
	ErrUnavailable = errors.New("feature not configured")
)

// Invalid builds a validation error carrying a client-facing reason.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// classifyPostgrestError maps PostgREST failures onto the sentinel errors.
// postgrest-go reports non-2xx answers as "(code) message".
func classifyPostgrestError(op string, err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "23505"), strings.Contains(msg, "duplicate key"):
		return fmt.Errorf("%s: %w: %v", op, ErrConflict, err)
	case strings.Contains(msg, "insufficient_inventory"):
		return fmt.Errorf("%s: %w", op, ErrNoAvailability)
	case strings.Contains(msg, "PGRST116"):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %v", op, err)
}
