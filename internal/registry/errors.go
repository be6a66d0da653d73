package registry

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound is returned by write operations that target an id with no
// backing record. Read paths report absence as (nil, nil) instead.
var ErrNotFound = errors.New("record not found")

// ValidationError reports a missing or malformed required field. It is
// caller-facing and non-retryable without fixing the input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

func missingField(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "is required"}
}

// ConflictError reports that a business key (prospect url, pitch website) is
// already taken. It carries the existing record's id so the caller can
// redirect to a read instead of retrying.
type ConflictError struct {
	Key        string
	Value      string
	ExistingID uuid.UUID
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s %q already registered as %s", e.Key, e.Value, e.ExistingID)
}

func storeErr(op string, err error) error {
	return fmt.Errorf("store: %s: %w", op, err)
}
