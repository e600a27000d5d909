// Package token defines the operator and keyword tokens used by SQL expression nodes.
//
// Core tokens are constants (IDs below 1000) so renderers can switch on them.
// Dialect-specific operators (Postgres "~", DuckDB "//") are registered
// dynamically via Register().
package token

import "fmt"

// TokenType identifies an operator or keyword.
//
//nolint:revive // token.TokenType matches the rest of the SQL toolchain naming
type TokenType int32

//nolint:revive // ALL_CAPS names follow SQL token conventions
const (
	ILLEGAL TokenType = iota

	// Operators
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	CARET   // ^
	DPIPE   // ||
	EQ      // =
	NE      // !=
	LT      // <
	GT      // >
	LE      // <=
	GE      // >=

	// Keywords (alphabetical)
	AND
	AS
	ASC
	BETWEEN
	BY
	CASE
	CAST
	CURRENT
	DESC
	DISTINCT
	ELSE
	END
	ESCAPE
	EXTRACT
	FALSE
	FILTER
	FIRST
	FOLLOWING
	FROM
	IN
	INTERVAL
	IS
	LAST
	LIKE
	NOT
	NULL
	NULLS
	OR
	ORDER
	OVER
	PARTITION
	PRECEDING
	RANGE
	ROW
	ROWS
	THEN
	TRUE
	UNBOUNDED
	WHEN
	WHERE

	// Sentinel - dynamic tokens start after this
	maxBuiltin TokenType = 999
)

// String returns the SQL spelling of the token type.
func (t TokenType) String() string {
	if name, ok := getDynamicName(t); ok {
		return name
	}
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

var tokenNames = map[TokenType]string{
	ILLEGAL: "ILLEGAL",

	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	PERCENT: "%",
	CARET:   "^",
	DPIPE:   "||",
	EQ:      "=",
	NE:      "!=",
	LT:      "<",
	GT:      ">",
	LE:      "<=",
	GE:      ">=",

	AND:       "AND",
	AS:        "AS",
	ASC:       "ASC",
	BETWEEN:   "BETWEEN",
	BY:        "BY",
	CASE:      "CASE",
	CAST:      "CAST",
	CURRENT:   "CURRENT",
	DESC:      "DESC",
	DISTINCT:  "DISTINCT",
	ELSE:      "ELSE",
	END:       "END",
	ESCAPE:    "ESCAPE",
	EXTRACT:   "EXTRACT",
	FALSE:     "FALSE",
	FILTER:    "FILTER",
	FIRST:     "FIRST",
	FOLLOWING: "FOLLOWING",
	FROM:      "FROM",
	IN:        "IN",
	INTERVAL:  "INTERVAL",
	IS:        "IS",
	LAST:      "LAST",
	LIKE:      "LIKE",
	NOT:       "NOT",
	NULL:      "NULL",
	NULLS:     "NULLS",
	OR:        "OR",
	ORDER:     "ORDER",
	OVER:      "OVER",
	PARTITION: "PARTITION",
	PRECEDING: "PRECEDING",
	RANGE:     "RANGE",
	ROW:       "ROW",
	ROWS:      "ROWS",
	THEN:      "THEN",
	TRUE:      "TRUE",
	UNBOUNDED: "UNBOUNDED",
	WHEN:      "WHEN",
	WHERE:     "WHERE",
}

// IsKeyword returns true if the token type is a builtin keyword.
func IsKeyword(t TokenType) bool {
	return t >= AND && t <= WHERE
}

// IsOperator returns true if the token type is a builtin operator.
func IsOperator(t TokenType) bool {
	return t >= PLUS && t <= GE
}

// IsComparison returns true for the builtin comparison operators.
func IsComparison(t TokenType) bool {
	return t >= EQ && t <= GE
}
