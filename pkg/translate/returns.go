package translate

import (
	"fmt"

	"github.com/Alex-Monahan/siuba/pkg/core"
)

// ReturnsType returns override entries for exactly names, each re-annotated
// from base with result type t. Other hints of the base records are kept.
func ReturnsType(base *Table, t core.ValueType, names ...string) ([]Entry, error) {
	out := make([]Entry, 0, len(names))
	for _, name := range names {
		op, ok := base.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: cannot set result type %s: %w: %q", ErrConfig, t, ErrNotFound, name)
		}
		out = append(out, Def(name, WrapAnnotate(op, ResultType(t))))
	}
	return out, nil
}

// ReturnsFloat is ReturnsType with core.TypeFloat.
func ReturnsFloat(base *Table, names ...string) ([]Entry, error) {
	return ReturnsType(base, core.TypeFloat, names...)
}

// MustReturnsFloat is like ReturnsFloat but panics on error.
func MustReturnsFloat(base *Table, names ...string) []Entry {
	entries, err := ReturnsFloat(base, names...)
	if err != nil {
		panic(err)
	}
	return entries
}
