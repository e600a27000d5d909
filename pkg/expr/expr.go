// Package expr provides constructors for SQL expression nodes.
//
// Translation functions use these builders instead of assembling core nodes
// by hand, the way query code calls sql.func.* helpers.
package expr

import (
	"strconv"
	"strings"

	"github.com/Alex-Monahan/siuba/pkg/core"
	"github.com/Alex-Monahan/siuba/pkg/token"
)

// Col returns a column reference. A dotted name ("t.x") is split into
// table qualifier and column.
func Col(name string) *core.ColumnRef {
	if i := strings.LastIndexByte(name, '.'); i > 0 && i < len(name)-1 {
		return &core.ColumnRef{Table: name[:i], Column: name[i+1:]}
	}
	return &core.ColumnRef{Column: name}
}

// Param returns a bound parameter holding v.
func Param(v any) *core.BindParam {
	return &core.BindParam{Value: v}
}

// Lit returns an inline literal for a Go scalar.
// Unsupported values render as NULL.
func Lit(v any) *core.Literal {
	switch x := v.(type) {
	case nil:
		return Null()
	case bool:
		if x {
			return &core.Literal{Type: core.LiteralBool, Value: "TRUE"}
		}
		return &core.Literal{Type: core.LiteralBool, Value: "FALSE"}
	case int:
		return Number(strconv.Itoa(x))
	case int64:
		return Number(strconv.FormatInt(x, 10))
	case float64:
		return Number(FormatFloat(x))
	case string:
		return String(x)
	}
	return Null()
}

// Number returns a numeric literal with the given SQL spelling.
func Number(s string) *core.Literal {
	return &core.Literal{Type: core.LiteralNumber, Value: s}
}

// String returns a string literal. The value is unquoted; renderers quote it.
func String(s string) *core.Literal {
	return &core.Literal{Type: core.LiteralString, Value: s}
}

// Interval returns an interval literal, e.g. Interval("1 month") for INTERVAL '1 month'.
func Interval(s string) *core.Literal {
	return &core.Literal{Type: core.LiteralInterval, Value: s}
}

// Null returns the NULL literal.
func Null() *core.Literal {
	return &core.Literal{Type: core.LiteralNull, Value: "NULL"}
}

// FormatFloat spells a float so that it always reads back as a float (2 -> "2.0").
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// Func returns a function call node.
func Func(name string, args ...core.Expr) *core.FuncCall {
	return &core.FuncCall{Name: name, Args: args}
}

// CountStar returns count(*).
func CountStar() *core.FuncCall {
	return &core.FuncCall{Name: "count", Star: true}
}

// Cast returns CAST(e AS typeName).
func Cast(e core.Expr, typeName string) *core.CastExpr {
	return &core.CastExpr{Expr: e, TypeName: typeName}
}

// Op returns a binary expression.
func Op(left core.Expr, op token.TokenType, right core.Expr) *core.BinaryExpr {
	return &core.BinaryExpr{Left: left, Op: op, Right: right}
}

// Add returns left + right.
func Add(left, right core.Expr) *core.BinaryExpr { return Op(left, token.PLUS, right) }

// Sub returns left - right.
func Sub(left, right core.Expr) *core.BinaryExpr { return Op(left, token.MINUS, right) }

// Mul returns left * right.
func Mul(left, right core.Expr) *core.BinaryExpr { return Op(left, token.STAR, right) }

// Div returns left / right.
func Div(left, right core.Expr) *core.BinaryExpr { return Op(left, token.SLASH, right) }

// Concat chains parts with the || operator.
func Concat(parts ...core.Expr) core.Expr {
	if len(parts) == 0 {
		return String("")
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out = Op(out, token.DPIPE, p)
	}
	return out
}

// Unary returns a unary expression.
func Unary(op token.TokenType, e core.Expr) *core.UnaryExpr {
	return &core.UnaryExpr{Op: op, Expr: e}
}

// Not returns NOT e.
func Not(e core.Expr) *core.UnaryExpr { return Unary(token.NOT, e) }

// Neg returns -e.
func Neg(e core.Expr) *core.UnaryExpr { return Unary(token.MINUS, e) }

// Like returns e LIKE pattern [ESCAPE escape]. A nil escape omits the clause.
func Like(e, pattern, escape core.Expr) *core.LikeExpr {
	return &core.LikeExpr{Expr: e, Pattern: pattern, Escape: escape}
}

// In returns e IN (values...).
func In(e core.Expr, values ...core.Expr) *core.InExpr {
	return &core.InExpr{Expr: e, Values: values}
}

// Between returns e BETWEEN low AND high.
func Between(e, low, high core.Expr) *core.BetweenExpr {
	return &core.BetweenExpr{Expr: e, Low: low, High: high}
}

// IsNull returns e IS NULL, or e IS NOT NULL when not is set.
func IsNull(e core.Expr, not bool) *core.IsNullExpr {
	return &core.IsNullExpr{Expr: e, Not: not}
}

// Extract returns EXTRACT(field FROM e).
func Extract(field string, e core.Expr) *core.ExtractExpr {
	return &core.ExtractExpr{Field: field, From: e}
}

// Case returns a searched CASE expression. els may be nil.
func Case(whens []core.WhenClause, els core.Expr) *core.CaseExpr {
	return &core.CaseExpr{Whens: whens, Else: els}
}

// When returns one WHEN ... THEN ... clause.
func When(cond, result core.Expr) core.WhenClause {
	return core.WhenClause{Condition: cond, Result: result}
}

// Typed attaches a declared result type to e.
func Typed(e core.Expr, t core.ValueType) core.Expr {
	if !t.IsKnown() {
		return e
	}
	return &core.TypedExpr{Expr: e, Type: t}
}
