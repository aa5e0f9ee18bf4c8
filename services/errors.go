package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals an unknown room or booking id. Controllers map it
	// to 404.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a candidate date range overlapping an existing
	// booking for the room. Controllers map it to 409; it must never be
	// swallowed.
	ErrConflict = errors.New("dates conflict with an existing booking")
)

// ValidationError carries a human-readable message for a structural request
// problem (missing field, bad date, malformed email, inverted range).
// Controllers map it to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
