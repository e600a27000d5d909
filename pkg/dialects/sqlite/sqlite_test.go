package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alex-Monahan/siuba/internal/testutil"
	"github.com/Alex-Monahan/siuba/pkg/core"
	"github.com/Alex-Monahan/siuba/pkg/dialect"
	"github.com/Alex-Monahan/siuba/pkg/expr"
	"github.com/Alex-Monahan/siuba/pkg/format"
	"github.com/Alex-Monahan/siuba/pkg/token"
	"github.com/Alex-Monahan/siuba/pkg/translate"
)

func newDB(t *testing.T) func(t *testing.T, ctx translate.Context, op string, call translate.Call, from string) []any {
	db := testutil.NewSQLite(t,
		`CREATE TABLE nums (id INTEGER, a INTEGER, b INTEGER, flag INTEGER)`,
		`INSERT INTO nums VALUES (1, 6, 4, 1), (2, 1, 2, 0), (3, 7, 7, 1)`,
		`CREATE TABLE times (id INTEGER, ts TEXT)`,
		`INSERT INTO times VALUES (1, '2024-02-15 13:45:30'), (2, '2023-11-05 00:00:00')`,
	)
	return func(t *testing.T, ctx translate.Context, op string, call translate.Call, from string) []any {
		t.Helper()
		e, err := Translator.Translate(ctx, op, call)
		require.NoError(t, err)
		sql, args := format.Render(e, SQLite)
		return testutil.Column(t, db, "SELECT "+sql+" FROM "+from+" ORDER BY id", args...)
	}
}

func TestScalarOnSQLite(t *testing.T) {
	query := newDB(t)
	a, b := expr.Col("a"), expr.Col("b")

	tests := []struct {
		name string
		op   string
		call translate.Call
		want []any
	}{
		{"truediv", "__truediv__", translate.NewCall(a, b), []any{1.5, 0.5, 1.0}},
		{"rtruediv", "__rtruediv__", translate.NewCall(b, a), []any{1.5, 0.5, 1.0}},
		{"floordiv", "__floordiv__", translate.NewCall(a, b), []any{int64(1), int64(0), int64(1)}},
		{"mod", "__mod__", translate.NewCall(a, b), []any{int64(2), int64(1), int64(0)}},
		{"mul of mod", "__mul__", translate.NewCall(a, expr.Op(a, token.PERCENT, b)), []any{int64(12), int64(1), int64(0)}},
		{"mul of integer div", "__mul__", translate.NewCall(a, expr.Div(b, a)), []any{int64(0), int64(2), int64(7)}},
		{"between", "between", translate.NewCall(a, 2, 6), []any{int64(1), int64(0), int64(0)}},
		{"isin", "isin", translate.NewCall(a, []any{1, 7}), []any{int64(0), int64(1), int64(1)}},
		{"clip", "clip", translate.NewCall(a).With("lower", 2).With("upper", 6), []any{int64(6), int64(2), int64(6)}},
		{"astype", "astype", translate.NewCall(a, "float"), []any{6.0, 1.0, 7.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, query(t, translate.Scalar, tt.op, tt.call, "nums"))
		})
	}
}

func TestDatetimeOnSQLite(t *testing.T) {
	query := newDB(t)

	tests := []struct {
		op   string
		want []int64
	}{
		{"dt.year", []int64{2024, 2023}},
		{"dt.month", []int64{2, 11}},
		{"dt.day", []int64{15, 5}},
		{"dt.hour", []int64{13, 0}},
		{"dt.minute", []int64{45, 0}},
		{"dt.second", []int64{30, 0}},
		{"dt.quarter", []int64{1, 4}},
		{"dt.week", []int64{7, 44}},
		{"dt.weekofyear", []int64{7, 44}},
		{"dt.dayofweek", []int64{3, 6}},
		{"dt.weekday", []int64{3, 6}},
		{"dt.dayofyear", []int64{46, 309}},
		{"dt.days_in_month", []int64{29, 30}},
		{"dt.daysinmonth", []int64{29, 30}},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			want := make([]any, len(tt.want))
			for i, v := range tt.want {
				want[i] = v
			}
			assert.Equal(t, want, query(t, translate.Scalar, tt.op, translate.NewCall(expr.Col("ts")), "times"))
		})
	}
}

func TestAggregateOnSQLite(t *testing.T) {
	query := newDB(t)
	flag := expr.Col("flag")

	tests := []struct {
		op   string
		col  core.Expr
		want any
	}{
		{"any", flag, int64(1)},
		{"all", flag, int64(0)},
		{"sum", expr.Col("a"), int64(14)},
		{"nunique", expr.Col("b"), int64(3)},
		{"size", flag, int64(3)},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			got := query(t, translate.Aggregate, tt.op, translate.NewCall(tt.col), "nums")
			assert.Equal(t, []any{tt.want}, got)
		})
	}
}

func TestWindowOnSQLite(t *testing.T) {
	query := newDB(t)

	t.Run("cumsum", func(t *testing.T) {
		call := translate.NewCall(expr.Col("a")).With("order_by", expr.Col("id"))
		assert.Equal(t, []any{int64(6), int64(7), int64(14)}, query(t, translate.Window, "cumsum", call, "nums"))
	})

	t.Run("rank", func(t *testing.T) {
		got := query(t, translate.Window, "rank", translate.NewCall(expr.Col("flag")), "nums")
		assert.Equal(t, []any{int64(2), int64(1), int64(2)}, got)
	})
}

func TestUnsupported(t *testing.T) {
	x := expr.Col("x")

	_, err := Translator.Translate(translate.Scalar, "str.contains", translate.NewCall(x, "a.*"))
	assert.ErrorIs(t, err, translate.ErrNotImplemented)

	for _, name := range []string{"std", "var"} {
		_, err := Translator.Translate(translate.Aggregate, name, translate.NewCall(x))
		assert.ErrorIs(t, err, translate.ErrNotFound, name)
	}
}

func TestDialect(t *testing.T) {
	d, err := dialect.Lookup("sqlite3")
	require.NoError(t, err)
	assert.Same(t, SQLite, d)
	assert.Equal(t, "?", SQLite.FormatPlaceholder(1))

	e, err := Translator.Translate(translate.Scalar, "dt.dayofweek", translate.NewCall(expr.Col("ts")))
	require.NoError(t, err)
	assert.Equal(t, "(CAST(strftime('%w', ts) AS INTEGER) + 6) % 7", format.RenderInline(e, SQLite))
}
