package translate

import (
	"fmt"

	"github.com/Alex-Monahan/siuba/pkg/core"
)

// Func is a translation function: it turns one call node into a SQL expression.
type Func func(Call) (core.Expr, error)

// Hints are the optional type annotations of an operation.
// A zero field means "unconstrained".
type Hints struct {
	InputType  core.ValueType
	ResultType core.ValueType
}

// String renders the hints for listings, e.g. "input=bool result=float".
func (h Hints) String() string {
	switch {
	case h.InputType.IsKnown() && h.ResultType.IsKnown():
		return fmt.Sprintf("input=%s result=%s", h.InputType, h.ResultType)
	case h.InputType.IsKnown():
		return "input=" + string(h.InputType)
	case h.ResultType.IsKnown():
		return "result=" + string(h.ResultType)
	}
	return ""
}

// Hint sets one type annotation.
type Hint func(*Hints)

// InputType declares the value type an operation expects for its column argument.
func InputType(t core.ValueType) Hint {
	return func(h *Hints) { h.InputType = t }
}

// ResultType declares the value type an operation produces.
func ResultType(t core.ValueType) Hint {
	return func(h *Hints) { h.ResultType = t }
}

// Op is an annotated translation function. Ops are immutable; tables compare
// them by pointer identity.
type Op struct {
	fn    Func
	hints Hints
}

// Annotate returns a wrapper that records hints on a translation function.
// Without hints the record carries none.
//
//	round := translate.Annotate(translate.ResultType(core.TypeFloat))(roundFunc)
func Annotate(hints ...Hint) func(Func) *Op {
	return func(fn Func) *Op {
		op := &Op{fn: fn}
		for _, h := range hints {
			h(&op.hints)
		}
		return op
	}
}

// Plain returns an unannotated record for fn.
func Plain(fn Func) *Op {
	return &Op{fn: fn}
}

// WrapAnnotate returns a new record sharing op's function, with hints applied
// over op's existing hints. op itself is left unchanged.
func WrapAnnotate(op *Op, hints ...Hint) *Op {
	out := &Op{fn: op.fn, hints: op.hints}
	for _, h := range hints {
		h(&out.hints)
	}
	return out
}

// Call invokes the translation function. The result is returned untouched.
func (o *Op) Call(c Call) (core.Expr, error) {
	return o.fn(c)
}

// Hints returns the recorded annotations.
func (o *Op) Hints() Hints { return o.hints }

// InputType returns the declared input type, if any.
func (o *Op) InputType() (core.ValueType, bool) {
	return o.hints.InputType, o.hints.InputType.IsKnown()
}

// ResultType returns the declared result type, if any.
func (o *Op) ResultType() (core.ValueType, bool) {
	return o.hints.ResultType, o.hints.ResultType.IsKnown()
}

// Annotated reports whether any hint is recorded.
func (o *Op) Annotated() bool {
	return o.hints != Hints{}
}
