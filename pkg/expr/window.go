package expr

import "github.com/Alex-Monahan/siuba/pkg/core"

// WindowOption configures the OVER clause built by Over.
type WindowOption func(*core.WindowSpec)

// PartitionBy adds PARTITION BY expressions.
func PartitionBy(exprs ...core.Expr) WindowOption {
	return func(w *core.WindowSpec) {
		w.PartitionBy = append(w.PartitionBy, exprs...)
	}
}

// OrderBy adds ascending ORDER BY expressions.
func OrderBy(exprs ...core.Expr) WindowOption {
	return func(w *core.WindowSpec) {
		for _, e := range exprs {
			w.OrderBy = append(w.OrderBy, core.OrderByItem{Expr: e})
		}
	}
}

// OrderByDesc adds a descending ORDER BY expression.
func OrderByDesc(e core.Expr) WindowOption {
	return func(w *core.WindowSpec) {
		w.OrderBy = append(w.OrderBy, core.OrderByItem{Expr: e, Desc: true})
	}
}

// RowsToCurrent sets ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW.
func RowsToCurrent() WindowOption {
	return func(w *core.WindowSpec) {
		w.Frame = &core.FrameSpec{
			Type:  core.FrameRows,
			Start: &core.FrameBound{Type: core.FrameUnboundedPreceding},
			End:   &core.FrameBound{Type: core.FrameCurrentRow},
		}
	}
}

// Over returns a copy of f with an OVER clause. With no options the clause is empty: OVER ().
func Over(f *core.FuncCall, opts ...WindowOption) *core.FuncCall {
	w := &core.WindowSpec{}
	for _, opt := range opts {
		opt(w)
	}
	out := *f
	out.Window = w
	return &out
}
