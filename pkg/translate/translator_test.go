package translate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alex-Monahan/siuba/pkg/core"
	"github.com/Alex-Monahan/siuba/pkg/expr"
)

func testTables() (scalar, aggregate, window *Table) {
	scalar = MustTable(nil, Fn("abs", SQLScalar("abs")))
	aggregate = MustTable(nil,
		Def("sum", Annotate(ResultType(core.TypeFloat))(SQLAgg("sum"))),
		Fn("mean", SQLAgg("avg")),
	)
	window = MustTable(nil, Fn("rank", WinOver("rank")), Fn("mean", WinAgg("avg")))
	return scalar, aggregate, window
}

func TestNewTranslator(t *testing.T) {
	scalar, aggregate, window := testTables()

	t.Run("accessors", func(t *testing.T) {
		tr, err := NewTranslator(scalar, aggregate, window, PlainKind("pg"), AggregateKind("pg"))
		require.NoError(t, err)

		assert.Same(t, scalar, tr.Scalar())
		assert.Same(t, aggregate, tr.Aggregate())
		assert.Same(t, window, tr.Window())
		assert.Equal(t, PlainKind("pg"), tr.PlainKind())
		assert.Equal(t, AggregateKind("pg"), tr.AggregateKind())
		assert.Same(t, window, tr.Table(Window))
		assert.Same(t, aggregate, tr.Table(Aggregate))
		assert.Same(t, scalar, tr.Table(Scalar))
	})

	t.Run("kind collision", func(t *testing.T) {
		_, err := NewTranslator(scalar, aggregate, window, PlainKind("pg"), PlainKind("pg"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrKindCollision)
		assert.ErrorIs(t, err, ErrConfig)
	})

	t.Run("empty table", func(t *testing.T) {
		_, err := NewTranslator(scalar, MustTable(nil), window, PlainKind("pg"), AggregateKind("pg"))
		assert.ErrorIs(t, err, ErrEmptyTable)
		assert.Contains(t, err.Error(), "aggregate")

		_, err = NewTranslator(nil, aggregate, window, PlainKind("pg"), AggregateKind("pg"))
		assert.ErrorIs(t, err, ErrConfig)
	})

	t.Run("must panics", func(t *testing.T) {
		assert.Panics(t, func() {
			MustTranslator(scalar, aggregate, window, AggregateKind("pg"), AggregateKind("pg"))
		})
	})
}

func TestTranslate(t *testing.T) {
	scalar, aggregate, window := testTables()
	tr := MustTranslator(scalar, aggregate, window, PlainKind("pg"), AggregateKind("pg"))
	col := expr.Col("x")

	t.Run("declared result type is attached", func(t *testing.T) {
		got, err := tr.Translate(Aggregate, "sum", NewCall(col))
		require.NoError(t, err)
		assert.Equal(t, core.TypeFloat, core.TypeOf(got))
		assert.Equal(t, expr.Func("sum", col), core.Unwrap(got))
	})

	t.Run("undeclared result type is left alone", func(t *testing.T) {
		got, err := tr.Translate(Aggregate, "mean", NewCall(col))
		require.NoError(t, err)
		assert.Equal(t, expr.Func("avg", col), got)
	})

	t.Run("miss", func(t *testing.T) {
		_, err := tr.Translate(Scalar, "rank", NewCall(col))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)

		var uerr *UnsupportedError
		require.True(t, errors.As(err, &uerr))
		assert.Equal(t, "rank", uerr.Op)
		assert.Equal(t, Scalar, uerr.Context)
		assert.Equal(t, []Context{Window}, uerr.Available)
		assert.Contains(t, err.Error(), "available in: window")
	})

	t.Run("translation error names the op", func(t *testing.T) {
		_, err := tr.Translate(Aggregate, "sum", NewCall(col, 1))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Contains(t, err.Error(), "sum:")
	})
}

func TestColumnKind(t *testing.T) {
	pg, pgAgg := PlainKind("postgresql"), AggregateKind("postgresql")
	duck := PlainKind("duckdb")

	assert.True(t, pgAgg.Refines(pg), "aggregate refines plain")
	assert.True(t, pg.Refines(pg))
	assert.True(t, pgAgg.Refines(pgAgg))
	assert.False(t, pg.Refines(pgAgg))
	assert.False(t, pg.Refines(duck), "kinds do not cross dialects")
	assert.True(t, pgAgg.IsAggregate())
	assert.False(t, pg.IsAggregate())
	assert.Equal(t, "postgresql/aggregate", pgAgg.String())
	assert.NotEqual(t, pg, pgAgg)
}

func TestParseContext(t *testing.T) {
	tests := []struct {
		in      string
		want    Context
		wantErr bool
	}{
		{"scalar", Scalar, false},
		{"Aggregate", Aggregate, false},
		{"agg", Aggregate, false},
		{" window ", Window, false},
		{"win", Window, false},
		{"grouped", Scalar, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseContext(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) Context {
	t.Helper()
	c, err := ParseContext(s)
	require.NoError(t, err)
	return c
}
