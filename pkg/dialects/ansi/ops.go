package ansi

import (
	"github.com/Alex-Monahan/siuba/pkg/core"
	"github.com/Alex-Monahan/siuba/pkg/expr"
	"github.com/Alex-Monahan/siuba/pkg/token"
	"github.com/Alex-Monahan/siuba/pkg/translate"
)

// Operands returns the two operands of a binary operator call.
func Operands(c translate.Call) (core.Expr, core.Expr, error) {
	if err := c.NoKwargs(); err != nil {
		return nil, nil, err
	}
	if len(c.Args) != 2 {
		return nil, nil, translate.InvalidArgument("expected 2 operands, got %d", len(c.Args))
	}
	x, err := c.Expr(0)
	if err != nil {
		return nil, nil, err
	}
	y, err := c.Expr(1)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// Binary translates to x <op> y.
func Binary(op token.TokenType) translate.Func {
	return func(c translate.Call) (core.Expr, error) {
		x, y, err := Operands(c)
		if err != nil {
			return nil, err
		}
		return expr.Op(x, op, y), nil
	}
}

// Reflected swaps the two operands before translating, so __rsub__(x, y)
// becomes y - x.
func Reflected(fn translate.Func) translate.Func {
	return func(c translate.Call) (core.Expr, error) {
		return fn(c.Swap())
	}
}

// Unary translates a single-operand call with build, such as expr.Neg.
func Unary(build func(core.Expr) *core.UnaryExpr) translate.Func {
	return func(c translate.Call) (core.Expr, error) {
		x, err := single(c)
		if err != nil {
			return nil, err
		}
		return build(x), nil
	}
}

func single(c translate.Call) (core.Expr, error) {
	if err := c.NoKwargs(); err != nil {
		return nil, err
	}
	if len(c.Args) != 1 {
		return nil, translate.InvalidArgument("expected 1 argument, got %d", len(c.Args))
	}
	return c.Expr(0)
}

func identity(c translate.Call) (core.Expr, error) {
	return single(c)
}

func floorDiv(c translate.Call) (core.Expr, error) {
	x, y, err := Operands(c)
	if err != nil {
		return nil, err
	}
	return expr.Func("floor", expr.Div(x, y)), nil
}

func pow(c translate.Call) (core.Expr, error) {
	x, y, err := Operands(c)
	if err != nil {
		return nil, err
	}
	return expr.Func("power", x, y), nil
}
