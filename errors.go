package kmeans

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the single error kind reported for precondition
// violations: non-positive counts, k exceeding the number of points,
// inconsistent dimensions and non-finite coordinates.
//
// Use errors.Is(err, ErrInvalidInput) to test for it; the concrete value is
// an *InvalidInputError carrying the offending field.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError describes which argument failed validation and why.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput, e.Field, e.Reason)
}

// Is reports whether target is ErrInvalidInput.
func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

func invalid(field, format string, args ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
