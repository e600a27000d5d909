// Package ansi provides the base, vendor-neutral translation tables and the
// ANSI SQL dialect built from them.
//
// Dialect packages extend Scalar, Aggregate and Window with their own override
// sets rather than redefining every operation.
package ansi

import (
	"github.com/Alex-Monahan/siuba/pkg/core"
	"github.com/Alex-Monahan/siuba/pkg/dialect"
	"github.com/Alex-Monahan/siuba/pkg/translate"
)

func init() {
	dialect.Register(ANSI)
}

// Base tables.
var (
	Scalar    = translate.MustTable(nil, scalarEntries(TypeNames)...)
	Aggregate = translate.MustTable(nil, aggregateEntries()...)
	Window    = translate.MustTable(nil, windowEntries()...)
)

// ScalarWithTypes returns the scalar entries whose astype/cast target the
// given SQL type names. Dialects with their own type names override with it.
func ScalarWithTypes(names map[core.ValueType]string) []translate.Entry {
	astype := AsType(names)
	return []translate.Entry{
		translate.Fn("astype", astype),
		translate.Fn("cast", astype),
	}
}

// Column kinds of the ANSI dialect.
var (
	Column    = translate.PlainKind("ansi")
	ColumnAgg = translate.AggregateKind("ansi")
)

// Translator dispatches over the base tables.
var Translator = translate.MustTranslator(Scalar, Aggregate, Window, Column, ColumnAgg)

// ANSI is the base ANSI SQL dialect.
var ANSI = dialect.NewDialect("ansi").
	PlaceholderStyle(core.PlaceholderQuestion).
	Operators(dialect.ANSIOperators).
	TypeNames(TypeNames).
	WithReservedWords(
		"all", "and", "as", "asc", "between", "by", "case", "cast", "desc",
		"distinct", "else", "end", "false", "from", "group", "having", "in",
		"is", "like", "not", "null", "or", "order", "select", "table", "then",
		"true", "when", "where", "with",
	).
	Translator(Translator).
	Build()
