package translate

import (
	"fmt"
	"strings"
)

// Context is the call context an operation is translated in.
type Context int

// Call contexts.
const (
	Scalar Context = iota
	Aggregate
	Window
)

// Contexts lists every context in table order.
func Contexts() []Context {
	return []Context{Scalar, Aggregate, Window}
}

// String returns the context name.
func (c Context) String() string {
	switch c {
	case Scalar:
		return "scalar"
	case Aggregate:
		return "aggregate"
	case Window:
		return "window"
	default:
		return fmt.Sprintf("Context(%d)", int(c))
	}
}

// ParseContext converts a name ("scalar", "aggregate"/"agg", "window"/"win")
// to a Context.
func ParseContext(s string) (Context, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scalar":
		return Scalar, nil
	case "aggregate", "agg":
		return Aggregate, nil
	case "window", "win":
		return Window, nil
	}
	return Scalar, fmt.Errorf("unknown context %q (expected scalar, aggregate or window)", s)
}
