package postgres

import (
	"github.com/Alex-Monahan/siuba/pkg/core"
	"github.com/Alex-Monahan/siuba/pkg/dialects/ansi"
	"github.com/Alex-Monahan/siuba/pkg/translate"
)

// floatParts are the datetime parts PostgreSQL's EXTRACT returns as double precision.
var floatParts = []string{
	"dt.day", "dt.dayofweek", "dt.dayofyear", "dt.days_in_month",
	"dt.daysinmonth", "dt.hour", "dt.minute", "dt.month",
	"dt.quarter", "dt.second", "dt.week", "dt.weekday",
	"dt.weekofyear", "dt.year",
}

func scalarOverrides() []translate.Entry {
	concat := translate.SQLScalar("concat")
	entries := []translate.Entry{
		translate.Fn("log", Log),

		translate.Fn("concat", concat),
		translate.Fn("cat", concat),
		translate.Fn("str_c", concat),

		translate.Fn("__div__", TrueDiv),
		translate.Fn("div", TrueDiv),
		translate.Fn("divide", TrueDiv),
		translate.Fn("rdiv", RTrueDiv),
		translate.Fn("__rdiv__", RTrueDiv),

		translate.Fn("__truediv__", TrueDiv),
		translate.Fn("truediv", TrueDiv),
		translate.Fn("__rtruediv__", RTrueDiv),

		translate.Fn("__floordiv__", FloorDiv),
		translate.Fn("__rfloordiv__", RFloorDiv),

		translate.Def("round", Round),
		translate.Def("__round__", Round),

		translate.Fn("str.contains", Contains),
	}
	return append(entries, translate.MustReturnsFloat(ansi.Scalar, floatParts...)...)
}

func windowOverrides() []translate.Entry {
	boolInput := translate.Annotate(translate.InputType(core.TypeBool))
	float := translate.Annotate(translate.ResultType(core.TypeFloat))
	return []translate.Entry{
		translate.Def("any", boolInput(translate.WinAgg("bool_or"))),
		translate.Def("all", boolInput(translate.WinAgg("bool_and"))),
		translate.Fn("lag", translate.WinAgg("lag")),
		translate.Fn("std", translate.WinAgg("stddev_samp")),
		translate.Fn("var", translate.WinAgg("var_samp")),

		// sum(bigint) is numeric in PostgreSQL
		translate.Def("sum", float(translate.WinAgg("sum"))),
		translate.Def("cumsum", float(translate.WinCumul("sum"))),
		translate.Fn("rank", Rank),
		translate.Fn("size", translate.WinAgg("count")),
	}
}

func aggregateOverrides() []translate.Entry {
	return []translate.Entry{
		translate.Fn("all", translate.SQLAgg("bool_and")),
		translate.Fn("any", translate.SQLAgg("bool_or")),
		translate.Fn("std", translate.SQLAgg("stddev_samp")),
		translate.Fn("var", translate.SQLAgg("var_samp")),

		translate.Def("sum", translate.Annotate(translate.ResultType(core.TypeFloat))(translate.SQLAgg("sum"))),
	}
}

// PostgreSQL translation tables.
var (
	Scalar    = translate.MustTable(ansi.Scalar, scalarOverrides()...)
	Window    = translate.MustTable(ansi.Window, windowOverrides()...)
	Aggregate = translate.MustTable(ansi.Aggregate, aggregateOverrides()...)
)

// Column kinds of PostgreSQL expressions.
var (
	Column    = translate.PlainKind("postgresql")
	ColumnAgg = translate.AggregateKind("postgresql")
)

// Translator dispatches PostgreSQL translations by context.
var Translator = translate.MustTranslator(Scalar, Aggregate, Window, Column, ColumnAgg)
