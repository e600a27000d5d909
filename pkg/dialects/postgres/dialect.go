// Package postgres provides the PostgreSQL dialect: its translation tables,
// which override the ANSI base tables, and its rendering configuration.
package postgres

import (
	"github.com/Alex-Monahan/siuba/pkg/core"
	"github.com/Alex-Monahan/siuba/pkg/dialect"
	"github.com/Alex-Monahan/siuba/pkg/dialects/ansi"
	"github.com/Alex-Monahan/siuba/pkg/token"
)

func init() {
	dialect.Register(Postgres)
}

// Regular expression match operators.
var (
	RegexMatch  = token.Register("~")
	RegexIMatch = token.Register("~*")
)

// postgresReservedWords contains common PostgreSQL reserved words.
// This is a manually maintained list of frequently problematic identifiers.
// For a complete list, use pg_get_keywords() at runtime.
var postgresReservedWords = []string{
	"user", "order", "group", "table", "select", "from", "where", "index",
	"all", "and", "any", "array", "as", "asc", "asymmetric", "authorization",
	"between", "binary", "both", "case", "cast", "check", "collate", "column",
	"constraint", "create", "cross", "current_catalog", "current_date",
	"current_role", "current_schema", "current_time", "current_timestamp",
	"current_user", "default", "deferrable", "desc", "distinct", "do", "else",
	"end", "except", "false", "fetch", "for", "foreign", "freeze", "full",
	"grant", "having", "ilike", "in", "initially", "inner", "intersect",
	"into", "is", "isnull", "join", "lateral", "leading", "left", "like",
	"limit", "localtime", "localtimestamp", "natural", "not", "notnull",
	"null", "offset", "on", "only", "or", "outer", "overlaps", "placing",
	"primary", "references", "returning", "right", "session_user", "similar",
	"some", "symmetric", "then", "to", "trailing", "true", "union", "unique",
	"using", "variadic", "verbose", "when", "window", "with",
}

// Postgres is the PostgreSQL dialect. It is registered as "postgresql" with
// the alias "postgres".
var Postgres = dialect.NewDialect("postgresql").
	Aliases("postgres").
	PlaceholderStyle(core.PlaceholderDollar).
	Operators(dialect.ANSIOperators).
	AddInfix(RegexMatch, dialect.PrecedenceComparison).
	AddInfix(RegexIMatch, dialect.PrecedenceComparison).
	TypeNames(ansi.TypeNames).
	WithReservedWords(postgresReservedWords...).
	Translator(Translator).
	Build()
