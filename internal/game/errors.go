package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is returned for self battles and references to
	// entities or battles that cannot exist.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNotFound is returned for unknown entity names or battle ids.
	ErrNotFound = errors.New("not found")
)

// ValidationError describes a malformed or duplicate catalog record. Any
// ValidationError aborts catalog loading.
type ValidationError struct {
	// Record is the zero-based index of the offending record, or -1 when
	// the error is not tied to a single record.
	Record int
	Name   string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Record < 0:
		return fmt.Sprintf("catalog validation: %s", e.Reason)
	case e.Field == "":
		return fmt.Sprintf("catalog record %d (%q): %s", e.Record, e.Name, e.Reason)
	default:
		return fmt.Sprintf("catalog record %d (%q): field %s: %s", e.Record, e.Name, e.Field, e.Reason)
	}
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
