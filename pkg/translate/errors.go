package translate

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration errors. They surface while a dialect builds its tables and
// translator, so dialect packages turn them into panics via Must* helpers.
var (
	// ErrConfig is the root of all configuration errors.
	ErrConfig = errors.New("invalid translator configuration")

	// ErrDuplicateOverride means one override set names the same operation twice.
	ErrDuplicateOverride = fmt.Errorf("%w: duplicate override", ErrConfig)

	// ErrKindCollision means the plain and aggregate column kinds are the same.
	ErrKindCollision = fmt.Errorf("%w: plain and aggregate column kinds must differ", ErrConfig)

	// ErrEmptyTable means a translator was given a nil or empty context table.
	ErrEmptyTable = fmt.Errorf("%w: empty translation table", ErrConfig)
)

// Usage errors, raised while translating one call.
var (
	// ErrNotFound means an operation name is absent from a table.
	ErrNotFound = errors.New("operation not found")

	// ErrInvalidArgument means an argument has the wrong type or is unknown.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotImplemented means an option is recognised but not supported by the dialect.
	ErrNotImplemented = errors.New("not implemented")

	// ErrNestedAggregate means an aggregate-kind expression was passed to an
	// aggregate or window operation.
	ErrNestedAggregate = errors.New("aggregate expression cannot be aggregated again")
)

// UnsupportedError is returned when a translator has no operation for a name
// in the requested context.
type UnsupportedError struct {
	Op        string
	Context   Context
	Available []Context // contexts where the name does exist
}

func (e *UnsupportedError) Error() string {
	msg := fmt.Sprintf("operation %q is not supported in %s context", e.Op, e.Context)
	if len(e.Available) > 0 {
		names := make([]string, len(e.Available))
		for i, c := range e.Available {
			names[i] = c.String()
		}
		msg += fmt.Sprintf(" (available in: %s)", strings.Join(names, ", "))
	}
	return msg
}

// Unwrap allows errors.Is(err, ErrNotFound).
func (e *UnsupportedError) Unwrap() error {
	return ErrNotFound
}

// InvalidArgument returns an error wrapping ErrInvalidArgument.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// NotImplemented returns an error wrapping ErrNotImplemented.
func NotImplemented(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotImplemented, fmt.Sprintf(format, args...))
}
