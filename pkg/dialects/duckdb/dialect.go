// Package duckdb provides the DuckDB dialect. Its translation tables build on
// the PostgreSQL tables, overriding division and regular expression matching.
package duckdb

import (
	"github.com/Alex-Monahan/siuba/pkg/dialect"
	"github.com/Alex-Monahan/siuba/pkg/token"
)

func init() {
	dialect.Register(DuckDB)
}

// TokenDslash is the // integer division operator.
var TokenDslash = token.Register("//")

var duckDBOperators = []dialect.OperatorDef{
	{Token: TokenDslash, Precedence: dialect.PrecedenceMultiply},
}

// DuckDB is the DuckDB dialect.
var DuckDB = dialect.New(Config).
	Operators(
		dialect.ANSIOperators,
		duckDBOperators,
	).
	TypeNames(TypeNames).
	Translator(Translator).
	Build()
