package translate

import (
	"fmt"

	"github.com/Alex-Monahan/siuba/pkg/core"
)

// Translator bundles a dialect's three context tables with its two column kinds.
// It is immutable and safe for concurrent use.
type Translator struct {
	scalar    *Table
	aggregate *Table
	window    *Table
	plain     ColumnKind
	agg       ColumnKind
}

// NewTranslator assembles a translator.
//
// Every table must be non-empty (ErrEmptyTable), and the two kinds must
// differ (ErrKindCollision).
func NewTranslator(scalar, aggregate, window *Table, plain, agg ColumnKind) (*Translator, error) {
	for _, t := range []struct {
		ctx   Context
		table *Table
	}{{Scalar, scalar}, {Aggregate, aggregate}, {Window, window}} {
		if t.table.Len() == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyTable, t.ctx)
		}
	}
	if plain == agg {
		return nil, fmt.Errorf("%w: both are %s", ErrKindCollision, plain)
	}
	return &Translator{
		scalar:    scalar,
		aggregate: aggregate,
		window:    window,
		plain:     plain,
		agg:       agg,
	}, nil
}

// MustTranslator is like NewTranslator but panics on error.
func MustTranslator(scalar, aggregate, window *Table, plain, agg ColumnKind) *Translator {
	t, err := NewTranslator(scalar, aggregate, window, plain, agg)
	if err != nil {
		panic(err)
	}
	return t
}

// Scalar returns the scalar table.
func (t *Translator) Scalar() *Table { return t.scalar }

// Aggregate returns the aggregate table.
func (t *Translator) Aggregate() *Table { return t.aggregate }

// Window returns the window table.
func (t *Translator) Window() *Table { return t.window }

// PlainKind returns the plain column kind.
func (t *Translator) PlainKind() ColumnKind { return t.plain }

// AggregateKind returns the aggregate column kind.
func (t *Translator) AggregateKind() ColumnKind { return t.agg }

// Table returns the table for a context.
func (t *Translator) Table(ctx Context) *Table {
	switch ctx {
	case Aggregate:
		return t.aggregate
	case Window:
		return t.window
	default:
		return t.scalar
	}
}

// Lookup returns the record for name in ctx. A miss is an *UnsupportedError.
func (t *Translator) Lookup(ctx Context, name string) (*Op, error) {
	if op, ok := t.Table(ctx).Get(name); ok {
		return op, nil
	}
	uerr := &UnsupportedError{Op: name, Context: ctx}
	for _, c := range Contexts() {
		if c != ctx && t.Table(c).Has(name) {
			uerr.Available = append(uerr.Available, c)
		}
	}
	return nil, uerr
}

// Translate looks up name in ctx and invokes it. When the operation declares a
// result type, the expression is wrapped in a core.TypedExpr carrying it.
func (t *Translator) Translate(ctx Context, name string, call Call) (core.Expr, error) {
	op, err := t.Lookup(ctx, name)
	if err != nil {
		return nil, err
	}
	return Apply(name, op, call)
}

// Apply invokes op and propagates its declared result type.
func Apply(name string, op *Op, call Call) (core.Expr, error) {
	e, err := op.Call(call)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if rt, ok := op.ResultType(); ok && core.TypeOf(e) != rt {
		e = &core.TypedExpr{Expr: e, Type: rt}
	}
	return e, nil
}
