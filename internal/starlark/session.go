package starlark

import (
	"fmt"
	"log/slog"

	"go.starlark.net/starlark"

	"github.com/Alex-Monahan/siuba/pkg/core"
	"github.com/Alex-Monahan/siuba/pkg/dialect"
	"github.com/Alex-Monahan/siuba/pkg/translate"
)

// session resolves operation names against one dialect's translator.
// It is read-only after construction and shared by all threads of a walker.
type session struct {
	dialect *dialect.Dialect
	tr      *translate.Translator
	ctx     translate.Context
	logger  *slog.Logger
}

func (s *session) wrap(e core.Expr, kind translate.ColumnKind) *Expr {
	return &Expr{expr: e, kind: kind, s: s}
}

func (s *session) hasOp(name string) bool {
	for _, c := range translate.Contexts() {
		if s.tr.Table(c).Has(name) {
			return true
		}
	}
	return false
}

func (s *session) opNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, c := range translate.Contexts() {
		for _, name := range s.tr.Table(c).Names() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// method resolves name in the session context, falling back to the scalar
// table when the context table has no entry.
func (s *session) method(name string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	ctx := s.ctx
	if ctx != translate.Scalar && !s.tr.Table(ctx).Has(name) && s.tr.Scalar().Has(name) {
		s.logger.Debug("falling back to scalar table", slog.String("op", name), slog.String("context", ctx.String()))
		ctx = translate.Scalar
	}
	return s.apply(ctx, name, args, kwargs)
}

// apply translates one call node. args[0] is the column the operation
// applies to.
func (s *session) apply(ctx translate.Context, name string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	op, err := s.tr.Lookup(ctx, name)
	if err != nil {
		return nil, err
	}

	call := translate.Call{Args: make([]any, len(args))}
	kind := s.tr.PlainKind()
	for i, a := range args {
		if e, ok := a.(*Expr); ok {
			if ctx != translate.Scalar && e.kind.IsAggregate() {
				return nil, fmt.Errorf("%s: %w", name, translate.ErrNestedAggregate)
			}
			if e.kind.Refines(kind) {
				kind = e.kind
			}
		}
		v, err := ToGo(a)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w: %w", name, i, translate.ErrInvalidArgument, err)
		}
		call.Args[i] = v
	}
	if len(kwargs) > 0 {
		call.Kwargs = make(map[string]any, len(kwargs))
		for _, kv := range kwargs {
			key := string(kv[0].(starlark.String))
			v, err := ToGo(kv[1])
			if err != nil {
				return nil, fmt.Errorf("%s: %s: %w: %w", name, key, translate.ErrInvalidArgument, err)
			}
			call.Kwargs[key] = v
		}
	}

	if err := checkInput(name, op, call); err != nil {
		return nil, err
	}

	e, err := translate.Apply(name, op, call)
	if err != nil {
		return nil, err
	}
	if ctx != translate.Scalar {
		kind = s.tr.AggregateKind()
	}
	if rt, ok := op.ResultType(); ok {
		s.logger.Debug("result type", slog.String("op", name), slog.String("type", rt.String()))
	}
	return s.wrap(e, kind), nil
}

// checkInput compares an operation's declared input type with the type of its
// column. Unknown types on either side pass.
func checkInput(name string, op *translate.Op, call translate.Call) error {
	want, ok := op.InputType()
	if !ok || len(call.Args) == 0 {
		return nil
	}
	col, ok := call.Args[0].(core.Expr)
	if !ok {
		return nil
	}
	got := core.TypeOf(col)
	if got.IsKnown() && got != want {
		return fmt.Errorf("%s: %w", name, translate.InvalidArgument("expects %s input, got %s", want, got))
	}
	return nil
}
