package starlark

import (
	"fmt"

	"go.starlark.net/starlark"

	"github.com/Alex-Monahan/siuba/pkg/core"
	"github.com/Alex-Monahan/siuba/pkg/expr"
	"github.com/Alex-Monahan/siuba/pkg/translate"
)

const sessionKey = "siuba.session"

// Predeclared returns the builtins available to every program:
//   - col(name, type=None): a column reference, optionally typed
//   - lit(value): an inline literal
//   - scalar(op, *args, **kwargs), agg(...), win(...): force a context
//   - call(op, *args, **kwargs): use the session context with scalar fallback
func Predeclared() starlark.StringDict {
	return starlark.StringDict{
		"col":    starlark.NewBuiltin("col", builtinCol),
		"lit":    starlark.NewBuiltin("lit", builtinLit),
		"scalar": starlark.NewBuiltin("scalar", contextCall(translate.Scalar)),
		"agg":    starlark.NewBuiltin("agg", contextCall(translate.Aggregate)),
		"win":    starlark.NewBuiltin("win", contextCall(translate.Window)),
		"call":   starlark.NewBuiltin("call", builtinCall),
	}
}

func sessionOf(thread *starlark.Thread) (*session, error) {
	s, ok := thread.Local(sessionKey).(*session)
	if !ok {
		return nil, fmt.Errorf("%s: no translation session on thread", thread.Name)
	}
	return s, nil
}

func builtinCol(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	s, err := sessionOf(thread)
	if err != nil {
		return nil, err
	}
	var name, typ string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name, "type?", &typ); err != nil {
		return nil, err
	}
	var e core.Expr = expr.Col(name)
	if typ != "" {
		t, err := ParseValueType(typ)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}
		e = expr.Typed(e, t)
	}
	return s.wrap(e, s.tr.PlainKind()), nil
}

func builtinLit(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	s, err := sessionOf(thread)
	if err != nil {
		return nil, err
	}
	var v starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &v); err != nil {
		return nil, err
	}
	if e, ok := v.(*Expr); ok {
		return e, nil
	}
	gv, err := ToGo(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	switch gv.(type) {
	case nil, bool, int64, float64, string:
	default:
		return nil, fmt.Errorf("%s: %w: unsupported literal type %s", b.Name(), translate.ErrInvalidArgument, v.Type())
	}
	return s.wrap(expr.Lit(gv), s.tr.PlainKind()), nil
}

func contextCall(ctx translate.Context) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		s, err := sessionOf(thread)
		if err != nil {
			return nil, err
		}
		name, rest, err := opName(b, args)
		if err != nil {
			return nil, err
		}
		return s.apply(ctx, name, rest, kwargs)
	}
}

func builtinCall(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	s, err := sessionOf(thread)
	if err != nil {
		return nil, err
	}
	name, rest, err := opName(b, args)
	if err != nil {
		return nil, err
	}
	return s.method(name, rest, kwargs)
}

func opName(b *starlark.Builtin, args starlark.Tuple) (string, starlark.Tuple, error) {
	if len(args) < 2 {
		return "", nil, fmt.Errorf("%s: want an operation name and a column, got %d arguments", b.Name(), len(args))
	}
	name, ok := starlark.AsString(args[0])
	if !ok {
		return "", nil, fmt.Errorf("%s: operation name must be a string, got %s", b.Name(), args[0].Type())
	}
	return name, args[1:], nil
}
