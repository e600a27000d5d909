package sqlite

import (
	"github.com/Alex-Monahan/siuba/pkg/core"
	"github.com/Alex-Monahan/siuba/pkg/dialects/ansi"
	"github.com/Alex-Monahan/siuba/pkg/expr"
	"github.com/Alex-Monahan/siuba/pkg/token"
	"github.com/Alex-Monahan/siuba/pkg/translate"
)

func trueDiv(c translate.Call) (core.Expr, error) {
	x, y, err := ansi.Operands(c)
	if err != nil {
		return nil, err
	}
	return expr.Div(expr.Cast(x, "REAL"), y), nil
}

func floorDiv(c translate.Call) (core.Expr, error) {
	x, y, err := ansi.Operands(c)
	if err != nil {
		return nil, err
	}
	return expr.Cast(expr.Div(x, y), "INTEGER"), nil
}

func strftime(format string, e core.Expr) core.Expr {
	return expr.Func("strftime", expr.String(format), e)
}

// field reads one strftime field as an integer.
func field(format string) func(core.Expr) core.Expr {
	return func(e core.Expr) core.Expr {
		return expr.Cast(strftime(format, e), "INTEGER")
	}
}

// dayOfWeek numbers Monday as 0; %w numbers Sunday as 0.
func dayOfWeek(e core.Expr) core.Expr {
	return expr.Op(expr.Add(field("%w")(e), expr.Number("6")), token.PERCENT, expr.Number("7"))
}

func quarter(e core.Expr) core.Expr {
	return expr.Div(expr.Add(field("%m")(e), expr.Number("2")), expr.Number("3"))
}

func daysInMonth(e core.Expr) core.Expr {
	last := expr.Func("date", e, expr.String("start of month"), expr.String("+1 month"), expr.String("-1 day"))
	return field("%d")(last)
}

func scalarOverrides() []translate.Entry {
	week := ansi.DatetimePart(field("%W"))
	dow := ansi.DatetimePart(dayOfWeek)
	dim := ansi.DatetimePart(daysInMonth)
	rtrueDiv := ansi.Reflected(trueDiv)
	entries := []translate.Entry{
		translate.Fn("__truediv__", trueDiv),
		translate.Fn("__rtruediv__", rtrueDiv),
		translate.Fn("__div__", trueDiv),
		translate.Fn("__rdiv__", rtrueDiv),
		translate.Fn("div", trueDiv),
		translate.Fn("divide", trueDiv),
		translate.Fn("truediv", trueDiv),
		translate.Fn("rdiv", rtrueDiv),
		translate.Fn("__floordiv__", floorDiv),
		translate.Fn("__rfloordiv__", ansi.Reflected(floorDiv)),
		translate.Fn("floordiv", floorDiv),

		translate.Def("dt.year", ansi.DatetimePart(field("%Y"))),
		translate.Def("dt.month", ansi.DatetimePart(field("%m"))),
		translate.Def("dt.day", ansi.DatetimePart(field("%d"))),
		translate.Def("dt.hour", ansi.DatetimePart(field("%H"))),
		translate.Def("dt.minute", ansi.DatetimePart(field("%M"))),
		translate.Def("dt.second", ansi.DatetimePart(field("%S"))),
		translate.Def("dt.quarter", ansi.DatetimePart(quarter)),
		translate.Def("dt.week", week),
		translate.Def("dt.weekofyear", week),
		translate.Def("dt.dayofweek", dow),
		translate.Def("dt.weekday", dow),
		translate.Def("dt.dayofyear", ansi.DatetimePart(field("%j"))),
		translate.Def("dt.days_in_month", dim),
		translate.Def("dt.daysinmonth", dim),
	}
	return append(entries, ansi.ScalarWithTypes(TypeNames)...)
}

func aggregateOverrides() []translate.Entry {
	boolInput := translate.Annotate(translate.InputType(core.TypeBool))
	return []translate.Entry{
		// booleans are stored as 0 and 1
		translate.Def("any", boolInput(translate.SQLAgg("max"))),
		translate.Def("all", boolInput(translate.SQLAgg("min"))),
	}
}

// SQLite translation tables.
var (
	Scalar    = translate.MustTable(ansi.Scalar, scalarOverrides()...)
	Aggregate = translate.MustTable(ansi.Aggregate, aggregateOverrides()...)
	Window    = translate.MustTable(ansi.Window)
)

// Column kinds of SQLite expressions.
var (
	Column    = translate.PlainKind("sqlite")
	ColumnAgg = translate.AggregateKind("sqlite")
)

// Translator dispatches SQLite translations by context.
var Translator = translate.MustTranslator(Scalar, Aggregate, Window, Column, ColumnAgg)
