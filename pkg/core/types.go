package core

import (
	"strings"

	"github.com/Alex-Monahan/siuba/pkg/token"
)

// ValueType labels the value type an operation consumes or produces.
// Labels are opaque: two labels match only when they are equal.
type ValueType string

// Value type labels.
const (
	TypeUnknown  ValueType = ""
	TypeFloat    ValueType = "float"
	TypeBool     ValueType = "bool"
	TypeInteger  ValueType = "integer"
	TypeString   ValueType = "string"
	TypeDatetime ValueType = "datetime"
)

// String returns the label, or "-" when the type is unknown.
func (t ValueType) String() string {
	if t == TypeUnknown {
		return "-"
	}
	return string(t)
}

// IsKnown reports whether the label is set.
func (t ValueType) IsKnown() bool { return t != TypeUnknown }

// TypeOf returns the value type an expression is known to produce.
// Returns TypeUnknown when nothing is declared or inferable.
func TypeOf(e Expr) ValueType {
	switch n := e.(type) {
	case *TypedExpr:
		return n.Type
	case *BindParam:
		return typeOfValue(n.Value)
	case *Literal:
		switch n.Type {
		case LiteralNumber:
			if strings.ContainsAny(n.Value, ".eE") {
				return TypeFloat
			}
			return TypeInteger
		case LiteralString:
			return TypeString
		case LiteralBool:
			return TypeBool
		}
	case *BinaryExpr:
		if token.IsComparison(n.Op) || n.Op == token.AND || n.Op == token.OR {
			return TypeBool
		}
	case *UnaryExpr:
		if n.Op == token.NOT {
			return TypeBool
		}
	case *LikeExpr, *InExpr, *BetweenExpr, *IsNullExpr:
		return TypeBool
	}
	return TypeUnknown
}

func typeOfValue(v any) ValueType {
	switch v.(type) {
	case bool:
		return TypeBool
	case float32, float64:
		return TypeFloat
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return TypeInteger
	case string:
		return TypeString
	}
	return TypeUnknown
}
