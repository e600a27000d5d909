package duckdb

import "github.com/Alex-Monahan/siuba/pkg/core"

// Config is the DuckDB dialect configuration.
// This is pure data; the translation tables live in tables.go.
var Config = &core.DialectConfig{
	Name:        "duckdb",
	Placeholder: core.PlaceholderQuestion,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormCaseInsensitive,
	},
	Keywords: duckDBReservedWords,
}

// duckDBReservedWords are the DuckDB keywords that cannot be used as bare
// column names.
var duckDBReservedWords = []string{
	"all", "analyse", "analyze", "and", "any", "array", "as", "asc",
	"asymmetric", "both", "case", "cast", "check", "collate", "column",
	"constraint", "create", "default", "deferrable", "desc", "describe",
	"distinct", "do", "else", "end", "except", "false", "fetch", "for",
	"foreign", "from", "grant", "group", "having", "in", "initially",
	"intersect", "into", "lateral", "leading", "limit", "not", "null",
	"offset", "on", "only", "or", "order", "pivot", "pivot_longer",
	"pivot_wider", "placing", "primary", "qualify", "references",
	"returning", "select", "show", "some", "summarize", "symmetric", "table",
	"then", "to", "trailing", "true", "union", "unique", "unpivot", "using",
	"variadic", "when", "where", "window", "with",
}

// TypeNames are DuckDB's SQL type names for astype/cast.
var TypeNames = map[core.ValueType]string{
	core.TypeFloat:    "DOUBLE",
	core.TypeInteger:  "BIGINT",
	core.TypeString:   "VARCHAR",
	core.TypeBool:     "BOOLEAN",
	core.TypeDatetime: "TIMESTAMP",
}
