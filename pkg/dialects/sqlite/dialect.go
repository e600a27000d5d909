// Package sqlite provides the SQLite dialect, layered on the ANSI base tables.
//
// Operations SQLite has no function for (std, var, regular expressions) are
// absent or fail with translate.ErrNotImplemented.
package sqlite

import (
	"github.com/Alex-Monahan/siuba/pkg/core"
	"github.com/Alex-Monahan/siuba/pkg/dialect"
)

func init() {
	dialect.Register(SQLite)
}

// TypeNames are SQLite's storage class names for astype/cast.
var TypeNames = map[core.ValueType]string{
	core.TypeFloat:    "REAL",
	core.TypeInteger:  "INTEGER",
	core.TypeString:   "TEXT",
	core.TypeBool:     "INTEGER",
	core.TypeDatetime: "TEXT",
}

// SQLite is the SQLite dialect.
var SQLite = dialect.NewDialect("sqlite").
	Aliases("sqlite3").
	Identifiers(`"`, `"`, `""`, core.NormCaseInsensitive).
	PlaceholderStyle(core.PlaceholderQuestion).
	Operators(dialect.ANSIOperators).
	TypeNames(TypeNames).
	WithReservedWords(
		"abort", "all", "and", "as", "asc", "between", "by", "case", "cast",
		"check", "collate", "constraint", "create", "default", "delete", "desc",
		"distinct", "drop", "else", "end", "escape", "except", "exists", "from",
		"glob", "group", "having", "in", "index", "insert", "intersect", "is",
		"isnull", "join", "like", "limit", "match", "not", "notnull", "null",
		"on", "or", "order", "regexp", "select", "set", "table", "then", "to",
		"union", "unique", "update", "using", "values", "when", "where",
	).
	Translator(Translator).
	Build()
