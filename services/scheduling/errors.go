package scheduling

import (
	"fmt"
	"time"
)

// ValidationError reports malformed input: bad clock strings, inverted
// intervals, unknown weekdays. Surfaced to the caller, never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Message
}

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError means the candidate interval overlaps committed
// occupancy. Definitive: the slot is genuinely taken, and retrying the
// same interval cannot succeed.
type ConflictError struct {
	ResourceID string
	StartTime  time.Time
	EndTime    time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot conflict: resource %s is occupied between %s and %s",
		e.ResourceID, e.StartTime.Format(time.RFC3339), e.EndTime.Format(time.RFC3339))
}

// NotFoundError reports a write that required an existing record.
// Reads never raise it; a missing schedule simply resolves empty.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// TransientError wraps a store failure that survived one retry.
// Callers may try again later, unlike ConflictError.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return "transient storage failure: " + e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}
