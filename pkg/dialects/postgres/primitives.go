package postgres

import (
	"github.com/Alex-Monahan/siuba/pkg/core"
	"github.com/Alex-Monahan/siuba/pkg/dialects/ansi"
	"github.com/Alex-Monahan/siuba/pkg/expr"
	"github.com/Alex-Monahan/siuba/pkg/translate"
)

// Log translates log(col[, base]). Without a base it is the natural
// logarithm ln(col). With any base it emits log(col), the base-10 logarithm,
// and the base value itself is not used.
func Log(c translate.Call) (core.Expr, error) {
	col, err := c.Expr(0)
	if err != nil {
		return nil, err
	}
	var opts struct {
		Base any `mapstructure:"base"`
	}
	if err := c.Bind(&opts, "base"); err != nil {
		return nil, err
	}
	if opts.Base == nil {
		return expr.Func("ln", col), nil
	}
	return expr.Func("log", col), nil
}

func round(c translate.Call) (core.Expr, error) {
	col, err := c.Expr(0)
	if err != nil {
		return nil, err
	}
	var opts struct {
		N any `mapstructure:"n"`
	}
	if err := c.Bind(&opts, "n"); err != nil {
		return nil, err
	}
	if opts.N == nil {
		return nil, translate.InvalidArgument("round requires n")
	}
	n, err := translate.AsExpr(opts.N)
	if err != nil {
		return nil, err
	}
	return expr.Func("round", col, n), nil
}

// Round translates round(col, n). Its result is a float.
var Round = translate.Annotate(translate.ResultType(core.TypeFloat))(round)

// Contains translates str.contains(pat, case=True, flags=0, na=None, regex=True).
// Literal matches use an escaped LIKE; regular expressions use ~ or, when
// case is false, ~*.
func Contains(c translate.Call) (core.Expr, error) {
	col, pat, opts, err := ansi.BindContains(c)
	if err != nil {
		return nil, err
	}
	if !opts.Regex {
		return ansi.LikeContains(col, pat, opts.Case), nil
	}
	op := RegexMatch
	if !opts.Case {
		op = RegexIMatch
	}
	return expr.Op(col, op, expr.Param(pat)), nil
}

// TrueDiv translates x / y with x cast to FLOAT so integers divide exactly.
func TrueDiv(c translate.Call) (core.Expr, error) {
	x, y, err := ansi.Operands(c)
	if err != nil {
		return nil, err
	}
	return expr.Div(expr.Cast(x, "FLOAT"), y), nil
}

// RTrueDiv is TrueDiv with the operands exchanged.
func RTrueDiv(c translate.Call) (core.Expr, error) {
	return TrueDiv(c.Swap())
}

// FloorDiv translates x // y as CAST(x / y AS INTEGER). The cast follows the
// backend's rounding rule, not a floor, for negative quotients.
func FloorDiv(c translate.Call) (core.Expr, error) {
	x, y, err := ansi.Operands(c)
	if err != nil {
		return nil, err
	}
	return expr.Cast(expr.Div(x, y), "INTEGER"), nil
}

// RFloorDiv is FloorDiv with the operands exchanged.
func RFloorDiv(c translate.Call) (core.Expr, error) {
	return FloorDiv(c.Swap())
}

// Rank translates the average rank of col: ties share the mean of the
// positions they occupy.
//
//	rank() OVER (ORDER BY col) + (count(*) OVER (PARTITION BY col) - 1) / 2.0
func Rank(c translate.Call) (core.Expr, error) {
	if err := c.NoKwargs(); err != nil {
		return nil, err
	}
	if len(c.Args) != 1 {
		return nil, translate.InvalidArgument("rank takes exactly one argument, got %d", len(c.Args))
	}
	col, err := c.Expr(0)
	if err != nil {
		return nil, err
	}
	minRank := expr.Over(expr.Func("rank"), expr.OrderBy(col))
	ties := expr.Over(expr.CountStar(), expr.PartitionBy(col))
	return expr.Add(minRank, expr.Div(expr.Sub(ties, expr.Number("1")), expr.Number("2.0"))), nil
}
