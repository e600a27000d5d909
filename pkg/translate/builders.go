package translate

import (
	"github.com/Alex-Monahan/siuba/pkg/core"
	"github.com/Alex-Monahan/siuba/pkg/expr"
)

// SQLScalar translates to name(args...) over every positional argument.
func SQLScalar(name string) Func {
	return func(c Call) (core.Expr, error) {
		if err := c.NoKwargs(); err != nil {
			return nil, err
		}
		args, err := c.Exprs(0)
		if err != nil {
			return nil, err
		}
		return expr.Func(name, args...), nil
	}
}

// SQLAgg translates to the aggregate name(col).
func SQLAgg(name string) Func {
	return func(c Call) (core.Expr, error) {
		if err := c.NoKwargs(); err != nil {
			return nil, err
		}
		if len(c.Args) != 1 {
			return nil, InvalidArgument("%s takes exactly one argument, got %d", name, len(c.Args))
		}
		col, err := c.Expr(0)
		if err != nil {
			return nil, err
		}
		return expr.Func(name, col), nil
	}
}

// WinAgg translates to name(col, args...) OVER (). Partitioning and ordering
// are supplied by the surrounding query.
func WinAgg(name string) Func {
	return func(c Call) (core.Expr, error) {
		if err := c.NoKwargs(); err != nil {
			return nil, err
		}
		args, err := c.Exprs(0)
		if err != nil {
			return nil, err
		}
		if len(args) == 0 {
			return nil, InvalidArgument("%s requires a column", name)
		}
		return expr.Over(expr.Func(name, args...)), nil
	}
}

type rankOptions struct {
	Ascending bool `mapstructure:"ascending"`
}

// WinOver translates to name() OVER (ORDER BY col), the form of ranking
// functions. ascending=False orders by col DESC.
func WinOver(name string) Func {
	return func(c Call) (core.Expr, error) {
		if len(c.Args) != 1 {
			return nil, InvalidArgument("%s takes exactly one argument, got %d", name, len(c.Args))
		}
		col, err := c.Expr(0)
		if err != nil {
			return nil, err
		}
		opts := rankOptions{Ascending: true}
		if err := c.Bind(&opts); err != nil {
			return nil, err
		}
		order := expr.OrderBy(col)
		if !opts.Ascending {
			order = expr.OrderByDesc(col)
		}
		return expr.Over(expr.Func(name), order), nil
	}
}

type cumulOptions struct {
	OrderBy any `mapstructure:"order_by"`
}

// WinCumul translates to a running aggregate:
// name(col) OVER ([ORDER BY order_by] ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW).
func WinCumul(name string) Func {
	return func(c Call) (core.Expr, error) {
		col, err := c.Expr(0)
		if err != nil {
			return nil, err
		}
		var opts cumulOptions
		if err := c.Bind(&opts); err != nil {
			return nil, err
		}
		var win []expr.WindowOption
		if opts.OrderBy != nil {
			order, err := AsExpr(opts.OrderBy)
			if err != nil {
				return nil, err
			}
			win = append(win, expr.OrderBy(order))
		}
		win = append(win, expr.RowsToCurrent())
		return expr.Over(expr.Func(name, col), win...), nil
	}
}
