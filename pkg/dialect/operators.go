package dialect

import "github.com/Alex-Monahan/siuba/pkg/token"

// Precedence constants for operator rendering. Higher binds tighter.
const (
	PrecedenceNone       = 0
	PrecedenceOr         = 1
	PrecedenceAnd        = 2
	PrecedenceNot        = 3
	PrecedenceComparison = 4 // =, <>, <, >, <=, >=, LIKE, IN, BETWEEN, IS
	PrecedenceAddition   = 5 // +, -, ||
	PrecedenceMultiply   = 6 // *, /, %
	PrecedenceUnary      = 7 // -, +, NOT
	PrecedencePostfix    = 8 // ::, [], ()
)

// OperatorDef pairs an operator token with its precedence.
type OperatorDef struct {
	Token      token.TokenType
	Precedence int
}

// ANSIOperators contains standard SQL operators with their precedence.
var ANSIOperators = []OperatorDef{
	// Logical operators (lowest precedence)
	{Token: token.OR, Precedence: PrecedenceOr},
	{Token: token.AND, Precedence: PrecedenceAnd},
	{Token: token.NOT, Precedence: PrecedenceNot},

	// Comparison operators
	{Token: token.EQ, Precedence: PrecedenceComparison},
	{Token: token.NE, Precedence: PrecedenceComparison},
	{Token: token.LT, Precedence: PrecedenceComparison},
	{Token: token.GT, Precedence: PrecedenceComparison},
	{Token: token.LE, Precedence: PrecedenceComparison},
	{Token: token.GE, Precedence: PrecedenceComparison},
	{Token: token.LIKE, Precedence: PrecedenceComparison},
	{Token: token.IN, Precedence: PrecedenceComparison},
	{Token: token.BETWEEN, Precedence: PrecedenceComparison},
	{Token: token.IS, Precedence: PrecedenceComparison},

	// Arithmetic operators
	{Token: token.PLUS, Precedence: PrecedenceAddition},
	{Token: token.MINUS, Precedence: PrecedenceAddition},
	{Token: token.DPIPE, Precedence: PrecedenceAddition}, // || string concatenation

	// Multiplicative operators (highest precedence for binary ops)
	{Token: token.STAR, Precedence: PrecedenceMultiply},
	{Token: token.SLASH, Precedence: PrecedenceMultiply},
	{Token: token.PERCENT, Precedence: PrecedenceMultiply},
}

// commutative operators keep their meaning when operands are regrouped, so
// equal-precedence children on the right need no parentheses.
var commutative = map[token.TokenType]bool{
	token.PLUS: true,
	token.STAR: true,
	token.AND:  true,
	token.OR:   true,
}

// IsCommutative reports whether a op (b op c) equals (a op b) op c.
func IsCommutative(t token.TokenType) bool {
	return commutative[t]
}
