package duckdb

import (
	"github.com/Alex-Monahan/siuba/pkg/core"
	"github.com/Alex-Monahan/siuba/pkg/dialects/ansi"
	"github.com/Alex-Monahan/siuba/pkg/dialects/postgres"
	"github.com/Alex-Monahan/siuba/pkg/expr"
	"github.com/Alex-Monahan/siuba/pkg/translate"
)

func trueDiv(c translate.Call) (core.Expr, error) {
	x, y, err := ansi.Operands(c)
	if err != nil {
		return nil, err
	}
	return expr.Div(expr.Cast(x, "DOUBLE"), y), nil
}

func rtrueDiv(c translate.Call) (core.Expr, error) {
	return trueDiv(c.Swap())
}

// floorDiv uses DuckDB's integer division operator.
func floorDiv(c translate.Call) (core.Expr, error) {
	x, y, err := ansi.Operands(c)
	if err != nil {
		return nil, err
	}
	return expr.Op(x, TokenDslash, y), nil
}

func rfloorDiv(c translate.Call) (core.Expr, error) {
	return floorDiv(c.Swap())
}

// contains matches regular expressions with regexp_matches; the 'i' option
// makes the match case-insensitive.
func contains(c translate.Call) (core.Expr, error) {
	col, pat, opts, err := ansi.BindContains(c)
	if err != nil {
		return nil, err
	}
	if !opts.Regex {
		return ansi.LikeContains(col, pat, opts.Case), nil
	}
	args := []core.Expr{col, expr.Param(pat)}
	if !opts.Case {
		args = append(args, expr.String("i"))
	}
	return expr.Func("regexp_matches", args...), nil
}

func scalarOverrides() []translate.Entry {
	entries := []translate.Entry{
		translate.Fn("__div__", trueDiv),
		translate.Fn("div", trueDiv),
		translate.Fn("divide", trueDiv),
		translate.Fn("rdiv", rtrueDiv),
		translate.Fn("__rdiv__", rtrueDiv),
		translate.Fn("__truediv__", trueDiv),
		translate.Fn("truediv", trueDiv),
		translate.Fn("__rtruediv__", rtrueDiv),
		translate.Fn("__floordiv__", floorDiv),
		translate.Fn("__rfloordiv__", rfloorDiv),
		translate.Fn("floordiv", floorDiv),
		translate.Def("str.contains", translate.Annotate(translate.ResultType(core.TypeBool))(contains)),
	}
	return append(entries, ansi.ScalarWithTypes(TypeNames)...)
}

// DuckDB translation tables.
var (
	Scalar    = translate.MustTable(postgres.Scalar, scalarOverrides()...)
	Aggregate = translate.MustTable(postgres.Aggregate)
	Window    = translate.MustTable(postgres.Window)
)

// Column kinds of DuckDB expressions.
var (
	Column    = translate.PlainKind("duckdb")
	ColumnAgg = translate.AggregateKind("duckdb")
)

// Translator dispatches DuckDB translations by context.
var Translator = translate.MustTranslator(Scalar, Aggregate, Window, Column, ColumnAgg)
