package query

import (
	"errors"
	"fmt"
)

// CompileError reports a value the query compiler cannot translate:
// an expression node outside the sealed element set, an unknown
// comparator, or an unsupported order_by argument.
type CompileError struct {
	// Value is the offending value.
	Value any

	// Expected names the acceptable types or values.
	Expected string

	// Message describes what the compiler was doing.
	Message string
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("query: %s: got %v (%T), expected %s", e.Message, e.Value, e.Value, e.Expected)
}

// IsCompileError returns true if the error is a query compile error.
// Uses errors.As to handle wrapped errors.
func IsCompileError(err error) bool {
	var ce *CompileError
	return errors.As(err, &ce)
}

// ErrDetached is returned when Execute is called on a query that was
// created without a container.
var ErrDetached = errors.New("query: detached query has no container to execute against")
