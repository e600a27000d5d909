package ansi

import (
	"github.com/Alex-Monahan/siuba/pkg/core"
	"github.com/Alex-Monahan/siuba/pkg/expr"
	"github.com/Alex-Monahan/siuba/pkg/translate"
)

func aggregateEntries() []translate.Entry {
	return []translate.Entry{
		translate.Fn("sum", translate.SQLAgg("sum")),
		translate.Fn("mean", translate.SQLAgg("avg")),
		translate.Fn("min", translate.SQLAgg("min")),
		translate.Fn("max", translate.SQLAgg("max")),
		translate.Def("count", translate.Annotate(translate.ResultType(core.TypeInteger))(translate.SQLAgg("count"))),
		translate.Def("nunique", translate.Annotate(translate.ResultType(core.TypeInteger))(nunique)),
		translate.Def("size", translate.Annotate(translate.ResultType(core.TypeInteger))(size)),
	}
}

func nunique(c translate.Call) (core.Expr, error) {
	col, err := single(c)
	if err != nil {
		return nil, err
	}
	f := expr.Func("count", col)
	f.Distinct = true
	return f, nil
}

// size counts rows; the column only selects the group.
func size(c translate.Call) (core.Expr, error) {
	if _, err := single(c); err != nil {
		return nil, err
	}
	return expr.CountStar(), nil
}

func windowSize(c translate.Call) (core.Expr, error) {
	if _, err := single(c); err != nil {
		return nil, err
	}
	return expr.Over(expr.CountStar()), nil
}

// shift(periods=1) is lag for positive periods and lead for negative ones.
func shift(c translate.Call) (core.Expr, error) {
	col, err := c.Expr(0)
	if err != nil {
		return nil, err
	}
	opts := struct {
		Periods int `mapstructure:"periods"`
	}{Periods: 1}
	if err := c.Bind(&opts, "periods"); err != nil {
		return nil, err
	}
	name, n := "lag", opts.Periods
	if n < 0 {
		name, n = "lead", -n
	}
	return expr.Over(expr.Func(name, col, expr.Lit(n))), nil
}

func windowEntries() []translate.Entry {
	integer := translate.Annotate(translate.ResultType(core.TypeInteger))
	rank := translate.WinOver("rank")
	return []translate.Entry{
		translate.Fn("sum", translate.WinAgg("sum")),
		translate.Fn("mean", translate.WinAgg("avg")),
		translate.Fn("min", translate.WinAgg("min")),
		translate.Fn("max", translate.WinAgg("max")),
		translate.Def("count", integer(translate.WinAgg("count"))),
		translate.Def("size", integer(windowSize)),
		translate.Fn("cumsum", translate.WinCumul("sum")),
		translate.Fn("cummin", translate.WinCumul("min")),
		translate.Fn("cummax", translate.WinCumul("max")),
		translate.Fn("cummean", translate.WinCumul("avg")),
		translate.Def("rank", integer(rank)),
		translate.Def("min_rank", integer(rank)),
		translate.Def("dense_rank", integer(translate.WinOver("dense_rank"))),
		translate.Def("row_number", integer(translate.WinOver("row_number"))),
		translate.Def("percent_rank", translate.Annotate(translate.ResultType(core.TypeFloat))(translate.WinOver("percent_rank"))),
		translate.Def("cume_dist", translate.Annotate(translate.ResultType(core.TypeFloat))(translate.WinOver("cume_dist"))),
		translate.Fn("lead", translate.WinAgg("lead")),
		translate.Fn("shift", shift),
	}
}
