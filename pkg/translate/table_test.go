package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alex-Monahan/siuba/pkg/core"
	"github.com/Alex-Monahan/siuba/pkg/expr"
)

func TestNewTable(t *testing.T) {
	f1 := Plain(constFunc(expr.Number("1")))
	f2 := Plain(constFunc(expr.Number("2")))
	f3 := Plain(constFunc(expr.Number("3")))
	f4 := Plain(constFunc(expr.Number("4")))

	base := MustTable(nil, Def("a", f1), Def("b", f2))

	t.Run("merge round trip", func(t *testing.T) {
		merged, err := NewTable(base, Def("b", f3), Def("c", f4))
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "b", "c"}, merged.Names())
		for name, want := range map[string]*Op{"a": f1, "b": f3, "c": f4} {
			got, ok := merged.Get(name)
			require.True(t, ok, name)
			assert.Same(t, want, got, name)
		}
	})

	t.Run("base untouched", func(t *testing.T) {
		_, err := NewTable(base, Def("b", f3), Def("c", f4))
		require.NoError(t, err)

		got, _ := base.Get("b")
		assert.Same(t, f2, got)
		assert.False(t, base.Has("c"))
		assert.Equal(t, 2, base.Len())
	})

	t.Run("override precedence", func(t *testing.T) {
		merged := MustTable(base, Def("a", f4))
		op, err := merged.Lookup("a")
		require.NoError(t, err)

		got, err := op.Call(NewCall())
		require.NoError(t, err)
		assert.Equal(t, expr.Number("4"), got)
	})

	t.Run("duplicate override", func(t *testing.T) {
		_, err := NewTable(base, Def("c", f3), Def("c", f4))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateOverride)
		assert.ErrorIs(t, err, ErrConfig)
	})

	t.Run("nil op", func(t *testing.T) {
		_, err := NewTable(base, Def("c", nil))
		assert.ErrorIs(t, err, ErrConfig)
	})

	t.Run("nil base", func(t *testing.T) {
		tbl, err := NewTable(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, tbl.Len())
	})

	t.Run("must panics", func(t *testing.T) {
		assert.Panics(t, func() { MustTable(nil, Def("x", f1), Def("x", f2)) })
	})
}

func TestTableLookup(t *testing.T) {
	tbl := MustTable(nil, Fn("sum", SQLAgg("sum")))

	_, err := tbl.Lookup("sum")
	require.NoError(t, err)

	_, err = tbl.Lookup("median")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), `"median"`)

	var nilTable *Table
	assert.False(t, nilTable.Has("sum"))
	assert.Equal(t, 0, nilTable.Len())
}

func TestTableAll(t *testing.T) {
	tbl := MustTable(nil, Fn("z", SQLScalar("z")), Fn("a", SQLScalar("a")), Fn("m", SQLScalar("m")))

	var names []string
	for name := range tbl.All() {
		names = append(names, name)
	}
	assert.Equal(t, []string{"z", "a", "m"}, names)

	// Early break stops iteration.
	count := 0
	for range tbl.All() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestTableOverrides(t *testing.T) {
	f1 := Plain(SQLScalar("f1"))
	base := MustTable(nil, Def("a", f1), Fn("b", SQLScalar("b")))
	child := MustTable(base, Fn("b", SQLScalar("b2")), Fn("c", SQLScalar("c")))

	assert.Equal(t, []string{"b", "c"}, child.Overrides(base))
	assert.Empty(t, base.Overrides(base))
}

func TestReturnsFloat(t *testing.T) {
	year := Annotate(InputType(core.TypeDatetime))(SQLScalar("year"))
	base := MustTable(nil, Def("dt.year", year), Fn("dt.month", SQLScalar("month")), Fn("abs", SQLScalar("abs")))

	t.Run("restricted to names", func(t *testing.T) {
		entries, err := ReturnsFloat(base, "dt.year", "dt.month")
		require.NoError(t, err)
		require.Len(t, entries, 2)

		assert.Equal(t, "dt.year", entries[0].Name)
		assert.Equal(t, "dt.month", entries[1].Name)
		for _, e := range entries {
			rt, ok := e.Op.ResultType()
			require.True(t, ok)
			assert.Equal(t, core.TypeFloat, rt)
		}
	})

	t.Run("keeps other hints", func(t *testing.T) {
		entries := MustReturnsFloat(base, "dt.year")
		assert.Equal(t, Hints{InputType: core.TypeDatetime, ResultType: core.TypeFloat}, entries[0].Op.Hints())
		assert.NotSame(t, year, entries[0].Op)
	})

	t.Run("same translation", func(t *testing.T) {
		entries := MustReturnsFloat(base, "dt.month")
		got, err := entries[0].Op.Call(NewCall(expr.Col("d")))
		require.NoError(t, err)
		assert.Equal(t, expr.Func("month", expr.Col("d")), got)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := ReturnsFloat(base, "dt.year", "dt.nope")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, err, ErrConfig)
		assert.Panics(t, func() { MustReturnsFloat(base, "dt.nope") })
	})
}
