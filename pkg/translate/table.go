package translate

import (
	"fmt"
	"iter"
	"slices"
)

// Entry is one named operation in an override set.
type Entry struct {
	Name string
	Op   *Op
}

// Def returns an entry for an existing record.
func Def(name string, op *Op) Entry {
	return Entry{Name: name, Op: op}
}

// Fn returns an entry for an unannotated translation function.
func Fn(name string, fn Func) Entry {
	return Entry{Name: name, Op: Plain(fn)}
}

// Table is an immutable, ordered mapping from operation name to record.
// The zero value is an empty table. Tables are safe for concurrent reads.
type Table struct {
	names []string
	ops   map[string]*Op
}

// NewTable returns a table holding every entry of base, with overrides
// replacing entries of the same name and new names appended in order.
// base may be nil. base is not modified.
//
// Naming the same operation twice in overrides fails with ErrDuplicateOverride.
func NewTable(base *Table, overrides ...Entry) (*Table, error) {
	t := &Table{ops: make(map[string]*Op, base.Len()+len(overrides))}
	if base != nil {
		t.names = slices.Clone(base.names)
		for name, op := range base.ops {
			t.ops[name] = op
		}
	}

	seen := make(map[string]bool, len(overrides))
	for _, e := range overrides {
		if e.Name == "" {
			return nil, fmt.Errorf("%w: override with empty name", ErrConfig)
		}
		if e.Op == nil || e.Op.fn == nil {
			return nil, fmt.Errorf("%w: override %q has no translation function", ErrConfig, e.Name)
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateOverride, e.Name)
		}
		seen[e.Name] = true

		if _, exists := t.ops[e.Name]; !exists {
			t.names = append(t.names, e.Name)
		}
		t.ops[e.Name] = e.Op
	}
	return t, nil
}

// MustTable is like NewTable but panics on error. Dialect packages use it in
// package variable initialisers.
func MustTable(base *Table, overrides ...Entry) *Table {
	t, err := NewTable(base, overrides...)
	if err != nil {
		panic(err)
	}
	return t
}

// Get returns the record for name.
func (t *Table) Get(name string) (*Op, bool) {
	if t == nil {
		return nil, false
	}
	op, ok := t.ops[name]
	return op, ok
}

// Lookup returns the record for name, or an error wrapping ErrNotFound.
func (t *Table) Lookup(name string) (*Op, error) {
	op, ok := t.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return op, nil
}

// Has reports whether name is present.
func (t *Table) Has(name string) bool {
	_, ok := t.Get(name)
	return ok
}

// Len returns the number of operations.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.names)
}

// Names returns the operation names in insertion order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.names)
}

// All iterates over the table in insertion order.
func (t *Table) All() iter.Seq2[string, *Op] {
	return func(yield func(string, *Op) bool) {
		if t == nil {
			return
		}
		for _, name := range t.names {
			if !yield(name, t.ops[name]) {
				return
			}
		}
	}
}

// Overrides returns the names whose record differs from base, including names
// base does not have, in table order.
func (t *Table) Overrides(base *Table) []string {
	var out []string
	for name, op := range t.All() {
		if prev, ok := base.Get(name); !ok || prev != op {
			out = append(out, name)
		}
	}
	return out
}
