package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Alex-Monahan/siuba/pkg/token"
)

func TestTypeOf(t *testing.T) {
	col := &ColumnRef{Column: "x"}

	tests := []struct {
		name string
		expr Expr
		want ValueType
	}{
		{"column is unknown", col, TypeUnknown},
		{"typed wins", &TypedExpr{Expr: col, Type: TypeFloat}, TypeFloat},
		{"int param", &BindParam{Value: 3}, TypeInteger},
		{"float param", &BindParam{Value: 1.5}, TypeFloat},
		{"string param", &BindParam{Value: "a"}, TypeString},
		{"bool param", &BindParam{Value: true}, TypeBool},
		{"nil param", &BindParam{}, TypeUnknown},
		{"integer literal", &Literal{Type: LiteralNumber, Value: "2"}, TypeInteger},
		{"float literal", &Literal{Type: LiteralNumber, Value: "2.0"}, TypeFloat},
		{"comparison", &BinaryExpr{Left: col, Op: token.GT, Right: &BindParam{Value: 1}}, TypeBool},
		{"arithmetic", &BinaryExpr{Left: col, Op: token.PLUS, Right: &BindParam{Value: 1}}, TypeUnknown},
		{"not", &UnaryExpr{Op: token.NOT, Expr: col}, TypeBool},
		{"like", &LikeExpr{Expr: col, Pattern: &BindParam{Value: "%a%"}}, TypeBool},
		{"is null", &IsNullExpr{Expr: col}, TypeBool},
		{"function", &FuncCall{Name: "abs", Args: []Expr{col}}, TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeOf(tt.expr))
		})
	}
}

func TestUnwrap(t *testing.T) {
	col := &ColumnRef{Column: "x"}
	nested := &TypedExpr{Expr: &TypedExpr{Expr: col, Type: TypeInteger}, Type: TypeFloat}

	assert.Same(t, col, Unwrap(nested))
	assert.Same(t, col, Unwrap(col))
}

func TestValueTypeString(t *testing.T) {
	assert.Equal(t, "float", TypeFloat.String())
	assert.Equal(t, "-", TypeUnknown.String())
	assert.False(t, TypeUnknown.IsKnown())
	assert.True(t, TypeBool.IsKnown())
}
