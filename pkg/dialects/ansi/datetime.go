package ansi

import (
	"github.com/Alex-Monahan/siuba/pkg/core"
	"github.com/Alex-Monahan/siuba/pkg/expr"
	"github.com/Alex-Monahan/siuba/pkg/token"
	"github.com/Alex-Monahan/siuba/pkg/translate"
)

// DatetimeOps are the dt.* operation names every base scalar table carries.
var DatetimeOps = []string{
	"dt.year", "dt.month", "dt.day", "dt.hour", "dt.minute", "dt.second",
	"dt.quarter", "dt.week", "dt.weekofyear", "dt.dayofweek", "dt.weekday",
	"dt.dayofyear", "dt.days_in_month", "dt.daysinmonth",
}

// DatetimePart returns a translation that extracts one field of a timestamp.
func DatetimePart(fn func(core.Expr) core.Expr) *translate.Op {
	return translate.Annotate(translate.InputType(core.TypeDatetime))(func(c translate.Call) (core.Expr, error) {
		col, err := single(c)
		if err != nil {
			return nil, err
		}
		return fn(col), nil
	})
}

func extract(field string) func(core.Expr) core.Expr {
	return func(e core.Expr) core.Expr { return expr.Extract(field, e) }
}

// dayOfWeek numbers Monday as 0, shifting EXTRACT(dow), which numbers Sunday as 0.
func dayOfWeek(e core.Expr) core.Expr {
	shifted := expr.Cast(expr.Add(expr.Extract("dow", e), expr.Number("6")), "INTEGER")
	return expr.Op(shifted, token.PERCENT, expr.Number("7"))
}

// daysInMonth takes the day of the last day of the month.
func daysInMonth(e core.Expr) core.Expr {
	last := expr.Sub(
		expr.Add(expr.Func("date_trunc", expr.String("month"), e), expr.Interval("1 month")),
		expr.Interval("1 day"),
	)
	return expr.Extract("day", last)
}

func datetimeEntries() []translate.Entry {
	week := DatetimePart(extract("week"))
	dow := DatetimePart(dayOfWeek)
	dim := DatetimePart(daysInMonth)
	return []translate.Entry{
		translate.Def("dt.year", DatetimePart(extract("year"))),
		translate.Def("dt.month", DatetimePart(extract("month"))),
		translate.Def("dt.day", DatetimePart(extract("day"))),
		translate.Def("dt.hour", DatetimePart(extract("hour"))),
		translate.Def("dt.minute", DatetimePart(extract("minute"))),
		translate.Def("dt.second", DatetimePart(extract("second"))),
		translate.Def("dt.quarter", DatetimePart(extract("quarter"))),
		translate.Def("dt.week", week),
		translate.Def("dt.weekofyear", week),
		translate.Def("dt.dayofweek", dow),
		translate.Def("dt.weekday", dow),
		translate.Def("dt.dayofyear", DatetimePart(extract("doy"))),
		translate.Def("dt.days_in_month", dim),
		translate.Def("dt.daysinmonth", dim),
	}
}
