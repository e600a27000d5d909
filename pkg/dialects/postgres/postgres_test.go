package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alex-Monahan/siuba/internal/testutil"
	"github.com/Alex-Monahan/siuba/pkg/core"
	"github.com/Alex-Monahan/siuba/pkg/dialect"
	"github.com/Alex-Monahan/siuba/pkg/dialects/ansi"
	"github.com/Alex-Monahan/siuba/pkg/expr"
	"github.com/Alex-Monahan/siuba/pkg/format"
	"github.com/Alex-Monahan/siuba/pkg/translate"
)

func translateSQL(t *testing.T, ctx translate.Context, name string, call translate.Call) (string, []any) {
	t.Helper()
	e, err := Translator.Translate(ctx, name, call)
	require.NoError(t, err)
	return format.Render(e, Postgres)
}

func TestScalarOverrides(t *testing.T) {
	x, y := expr.Col("x"), expr.Col("y")

	tests := []struct {
		name     string
		op       string
		call     translate.Call
		wantSQL  string
		wantArgs []any
	}{
		{"truediv", "__truediv__", translate.NewCall(x, y), "CAST(x AS FLOAT) / y", nil},
		{"div alias", "div", translate.NewCall(x, y), "CAST(x AS FLOAT) / y", nil},
		{"rtruediv", "__rtruediv__", translate.NewCall(x, 2), "CAST($1 AS FLOAT) / x", []any{2}},
		{"rdiv", "rdiv", translate.NewCall(x, y), "CAST(y AS FLOAT) / x", nil},
		{"floordiv", "__floordiv__", translate.NewCall(x, y), "CAST(x / y AS INTEGER)", nil},
		{"rfloordiv", "__rfloordiv__", translate.NewCall(x, y), "CAST(y / x AS INTEGER)", nil},
		{"log", "log", translate.NewCall(x), "ln(x)", nil},
		{"log base", "log", translate.NewCall(x, 2), "log(x)", nil},
		{"log base kwarg", "log", translate.NewCall(x).With("base", 10), "log(x)", nil},
		{"round", "round", translate.NewCall(x, 2), "round(x, $1)", []any{2}},
		{"round kwarg", "__round__", translate.NewCall(x).With("n", 1), "round(x, $1)", []any{1}},
		{"concat", "concat", translate.NewCall(x), "concat(x)", nil},
		{"str_c", "str_c", translate.NewCall(x), "concat(x)", nil},
		{"contains regex", "str.contains", translate.NewCall(x, "^a.c$"), "x ~ $1", []any{"^a.c$"}},
		{"contains regex no case", "str.contains", translate.NewCall(x, "a").With("case", false), "x ~* $1", []any{"a"}},
		{"contains literal", "str.contains", translate.NewCall(x, "50%").With("regex", false), "x LIKE '%' || $1 || '%' ESCAPE '/'", []any{"50/%"}},
		{"contains literal no case", "str.contains", translate.NewCall(x, "a_b").With("regex", false).With("case", false), "lower(x) LIKE '%' || $1 || '%' ESCAPE '/'", []any{"a/_b"}},
		{"inherited add", "__add__", translate.NewCall(x, 1), "x + $1", []any{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := translateSQL(t, translate.Scalar, tt.op, tt.call)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestRegexOperatorPrecedence(t *testing.T) {
	x := expr.Col("x")
	match, err := Translator.Translate(translate.Scalar, "str.contains", translate.NewCall(x, "a"))
	require.NoError(t, err)

	e, err := Translator.Translate(translate.Scalar, "__invert__", translate.NewCall(match))
	require.NoError(t, err)

	sql, _ := format.Render(e, Postgres)
	assert.Equal(t, "NOT x ~ $1", sql)

	e, err = Translator.Translate(translate.Scalar, "__and__", translate.NewCall(match, expr.Col("b")))
	require.NoError(t, err)
	sql, _ = format.Render(e, Postgres)
	assert.Equal(t, "x ~ $1 AND b", sql)
}

func TestContainsErrors(t *testing.T) {
	x := expr.Col("x")

	tests := []struct {
		name string
		call translate.Call
		want error
	}{
		{"non-string pat", translate.NewCall(x, 1), translate.ErrInvalidArgument},
		{"expression pat", translate.NewCall(x, expr.Col("y")), translate.ErrInvalidArgument},
		{"missing pat", translate.NewCall(x), translate.ErrInvalidArgument},
		{"flags", translate.NewCall(x, "a").With("flags", 1), translate.ErrNotImplemented},
		{"na", translate.NewCall(x, "a").With("na", false), translate.ErrNotImplemented},
		{"unknown keyword", translate.NewCall(x, "a").With("fuzzy", true), translate.ErrInvalidArgument},
		{"non-string pat checked first", translate.NewCall(x, 1).With("flags", 1), translate.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Contains(tt.call)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRoundRequiresN(t *testing.T) {
	_, err := Round.Call(translate.NewCall(expr.Col("x")))
	assert.ErrorIs(t, err, translate.ErrInvalidArgument)
}

func TestOverridePrecedence(t *testing.T) {
	t.Run("overridden entries replace base", func(t *testing.T) {
		for _, name := range []string{"__truediv__", "__floordiv__", "round", "str.contains", "log"} {
			base, ok := ansi.Scalar.Get(name)
			require.True(t, ok, name)
			got, ok := Scalar.Get(name)
			require.True(t, ok, name)
			assert.NotSame(t, base, got, name)
		}
	})

	t.Run("untouched entries keep base identity", func(t *testing.T) {
		for _, name := range []string{"__add__", "__sub__", "isin", "str.lower"} {
			base, _ := ansi.Scalar.Get(name)
			got, _ := Scalar.Get(name)
			assert.Same(t, base, got, name)
		}
		base, _ := ansi.Window.Get("cummax")
		got, _ := Window.Get("cummax")
		assert.Same(t, base, got)
	})

	t.Run("override sets", func(t *testing.T) {
		assert.ElementsMatch(t,
			[]string{"all", "any", "std", "var", "sum"},
			Aggregate.Overrides(ansi.Aggregate))
		assert.ElementsMatch(t,
			[]string{"any", "all", "lag", "std", "var", "sum", "cumsum", "rank", "size"},
			Window.Overrides(ansi.Window))
		assert.Len(t, Scalar.Overrides(ansi.Scalar), 17+len(floatParts))
	})

	t.Run("base tables unchanged", func(t *testing.T) {
		assert.False(t, ansi.Aggregate.Has("std"))
		op, _ := ansi.Scalar.Get("dt.year")
		_, ok := op.ResultType()
		assert.False(t, ok)
	})
}

func TestReturnsFloatDatetimeParts(t *testing.T) {
	for _, name := range floatParts {
		t.Run(name, func(t *testing.T) {
			op, ok := Scalar.Get(name)
			require.True(t, ok)

			rt, ok := op.ResultType()
			require.True(t, ok)
			assert.Equal(t, core.TypeFloat, rt)

			in, ok := op.InputType()
			require.True(t, ok)
			assert.Equal(t, core.TypeDatetime, in)

			base, _ := ansi.Scalar.Get(name)
			call := translate.NewCall(expr.Col("ts"))
			want, err := base.Call(call)
			require.NoError(t, err)
			got, err := op.Call(call)
			require.NoError(t, err)
			assert.Equal(t, format.RenderInline(want, Postgres), format.RenderInline(got, Postgres))

			e, err := Translator.Translate(translate.Scalar, name, call)
			require.NoError(t, err)
			assert.Equal(t, core.TypeFloat, core.TypeOf(e))
		})
	}
}

func TestWindowOverrides(t *testing.T) {
	x := expr.Col("x")

	tests := []struct {
		op       string
		want     string
		wantType core.ValueType
	}{
		{"any", "bool_or(x) OVER ()", core.TypeUnknown},
		{"all", "bool_and(x) OVER ()", core.TypeUnknown},
		{"lag", "lag(x) OVER ()", core.TypeUnknown},
		{"std", "stddev_samp(x) OVER ()", core.TypeUnknown},
		{"var", "var_samp(x) OVER ()", core.TypeUnknown},
		{"sum", "sum(x) OVER ()", core.TypeFloat},
		{"cumsum", "sum(x) OVER (ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW)", core.TypeFloat},
		{"rank", "rank() OVER (ORDER BY x) + (count(*) OVER (PARTITION BY x) - 1) / 2.0", core.TypeUnknown},
		{"size", "count(x) OVER ()", core.TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			e, err := Translator.Translate(translate.Window, tt.op, translate.NewCall(x))
			require.NoError(t, err)
			assert.Equal(t, tt.want, format.RenderInline(e, Postgres))
			assert.Equal(t, tt.wantType, core.TypeOf(e))
		})
	}

	for _, name := range []string{"any", "all"} {
		op, _ := Window.Get(name)
		in, ok := op.InputType()
		assert.True(t, ok)
		assert.Equal(t, core.TypeBool, in)
	}
}

func TestAggregateOverrides(t *testing.T) {
	x := expr.Col("x")

	tests := []struct {
		op   string
		want string
	}{
		{"all", "bool_and(x)"},
		{"any", "bool_or(x)"},
		{"std", "stddev_samp(x)"},
		{"var", "var_samp(x)"},
		{"sum", "sum(x)"},
		{"mean", "avg(x)"},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			sql, _ := translateSQL(t, translate.Aggregate, tt.op, translate.NewCall(x))
			assert.Equal(t, tt.want, sql)
		})
	}

	e, err := Translator.Translate(translate.Aggregate, "sum", translate.NewCall(x))
	require.NoError(t, err)
	assert.Equal(t, core.TypeFloat, core.TypeOf(e))
}

func TestRankIsWindowOnly(t *testing.T) {
	_, err := Translator.Translate(translate.Aggregate, "rank", translate.NewCall(expr.Col("x")))
	require.Error(t, err)
	assert.ErrorIs(t, err, translate.ErrNotFound)

	var unsupported *translate.UnsupportedError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, []translate.Context{translate.Window}, unsupported.Available)
}

func TestEvaluatedOnSQLite(t *testing.T) {
	db := testutil.NewSQLite(t,
		`CREATE TABLE nums (id INTEGER, a INTEGER, b INTEGER)`,
		`INSERT INTO nums VALUES (1, 6, 4)`,
		`CREATE TABLE ranks (id INTEGER, x INTEGER)`,
		`INSERT INTO ranks VALUES (1, 1), (2, 1), (3, 2)`,
		`CREATE TABLE words (id INTEGER, s TEXT)`,
		`INSERT INTO words VALUES (1, 'XA_BY'), (2, 'XAXBY'), (3, 'a_b'), (4, 'A%B')`,
	)
	a, b := expr.Col("a"), expr.Col("b")

	query := func(t *testing.T, ctx translate.Context, op string, call translate.Call, from string) []any {
		t.Helper()
		e, err := Translator.Translate(ctx, op, call)
		require.NoError(t, err)
		return testutil.Column(t, db, "SELECT "+format.RenderInline(e, Postgres)+" FROM "+from+" ORDER BY id")
	}

	t.Run("truediv", func(t *testing.T) {
		assert.Equal(t, []any{1.5}, query(t, translate.Scalar, "__truediv__", translate.NewCall(a, b), "nums"))
	})

	t.Run("rtruediv", func(t *testing.T) {
		assert.Equal(t, []any{1.5}, query(t, translate.Scalar, "__rtruediv__", translate.NewCall(b, a), "nums"))
	})

	t.Run("floordiv", func(t *testing.T) {
		assert.Equal(t, []any{int64(1)}, query(t, translate.Scalar, "__floordiv__", translate.NewCall(a, b), "nums"))
	})

	t.Run("mean rank", func(t *testing.T) {
		got := query(t, translate.Window, "rank", translate.NewCall(expr.Col("x")), "ranks")
		assert.Equal(t, []any{1.5, 1.5, 3.0}, got)
	})

	t.Run("case-insensitive literal contains", func(t *testing.T) {
		call := translate.NewCall(expr.Col("s"), "a_b").With("regex", false).With("case", false)
		got := query(t, translate.Scalar, "str.contains", call, "words")
		assert.Equal(t, []any{int64(1), int64(0), int64(1), int64(0)}, got)
	})
}

func TestDialect(t *testing.T) {
	for _, name := range []string{"postgresql", "postgres", "PostgreSQL"} {
		d, err := dialect.Lookup(name)
		require.NoError(t, err, name)
		assert.Same(t, Postgres, d)
	}

	assert.Equal(t, "$2", Postgres.FormatPlaceholder(2))
	assert.Equal(t, dialect.PrecedenceComparison, Postgres.Precedence(RegexMatch))
	assert.Equal(t, dialect.PrecedenceComparison, Postgres.Precedence(RegexIMatch))
	assert.Equal(t, `"user"`, Postgres.QuoteIdentifierIfNeeded("user"))

	assert.Same(t, Translator, Postgres.Translator())
	assert.Equal(t, "postgresql/plain", Translator.PlainKind().String())
	assert.True(t, ColumnAgg.Refines(Column))
	assert.False(t, Column.Refines(ColumnAgg))
}
