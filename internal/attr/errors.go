package attr

import (
	"errors"
	"fmt"
)

// UsageError reports an attribute used in a way its kind does not
// support: filtering on a non-filterable attribute, substring-matching
// a boolean, ordering by something that cannot be ordered.
//
// Usage errors are raised at the point of misuse and are never
// silently coerced. They travel inside the poisoned expression value
// until the first consumer surfaces them.
type UsageError struct {
	// Attribute is the registry name of the misused attribute.
	Attribute string

	// Op names the attempted operation ("contains", "order_by",
	// "is_high", ...).
	Op string

	// Reason explains why the operation is not allowed.
	Reason string
}

// Error implements the error interface.
func (e *UsageError) Error() string {
	return fmt.Sprintf("attribute %q cannot be used with %s: %s", e.Attribute, e.Op, e.Reason)
}

// IsUsageError returns true if the error is an attribute usage error.
// Uses errors.As to handle wrapped errors.
func IsUsageError(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

func newUsageError(attribute, op, reason string) *UsageError {
	return &UsageError{Attribute: attribute, Op: op, Reason: reason}
}
