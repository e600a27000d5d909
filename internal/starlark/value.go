package starlark

import (
	"fmt"
	"sort"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/Alex-Monahan/siuba/pkg/core"
	"github.com/Alex-Monahan/siuba/pkg/format"
	"github.com/Alex-Monahan/siuba/pkg/translate"
)

// Method namespaces reachable as attributes, e.g. col("x").str.upper().
var namespaces = []string{"str", "dt"}

// binaryOps maps Starlark infix operators to operation names. Reflected forms
// insert an "r" after the leading underscores.
var binaryOps = map[syntax.Token]string{
	syntax.PLUS:       "add",
	syntax.MINUS:      "sub",
	syntax.STAR:       "mul",
	syntax.SLASH:      "truediv",
	syntax.SLASHSLASH: "floordiv",
	syntax.PERCENT:    "mod",
	syntax.AMP:        "and",
	syntax.PIPE:       "or",
}

var unaryOps = map[syntax.Token]string{
	syntax.MINUS: "__neg__",
	syntax.PLUS:  "__pos__",
	syntax.TILDE: "__invert__",
}

// Starlark comparisons always yield a bool, so they are spelled as methods.
var methodAliases = map[string]string{
	"eq": "__eq__",
	"ne": "__ne__",
	"lt": "__lt__",
	"le": "__le__",
	"gt": "__gt__",
	"ge": "__ge__",
}

// Expr is a column expression inside a Starlark program. It carries the SQL
// expression built so far and its column kind.
type Expr struct {
	expr core.Expr
	kind translate.ColumnKind
	s    *session
}

var (
	_ starlark.HasAttrs  = (*Expr)(nil)
	_ starlark.HasBinary = (*Expr)(nil)
	_ starlark.HasUnary  = (*Expr)(nil)
)

// Expr returns the SQL expression.
func (e *Expr) Expr() core.Expr { return e.expr }

// Kind returns the column kind.
func (e *Expr) Kind() translate.ColumnKind { return e.kind }

func (e *Expr) String() string        { return format.RenderInline(e.expr, e.s.dialect) }
func (e *Expr) Type() string          { return "expr" }
func (e *Expr) Freeze()               {}
func (e *Expr) Truth() starlark.Bool  { return starlark.True }
func (e *Expr) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: expr") }

// Attr returns a bound method for an operation name, or a namespace.
func (e *Expr) Attr(name string) (starlark.Value, error) {
	for _, ns := range namespaces {
		if name == ns {
			return &namespace{recv: e, prefix: ns}, nil
		}
	}
	op := name
	if alias, ok := methodAliases[name]; ok {
		op = alias
	}
	if !e.s.hasOp(op) {
		return nil, nil
	}
	return e.method(name, op), nil
}

// AttrNames lists the methods available in the session's tables.
func (e *Expr) AttrNames() []string {
	names := append([]string{}, namespaces...)
	for alias := range methodAliases {
		names = append(names, alias)
	}
	for _, name := range e.s.opNames() {
		if !strings.Contains(name, ".") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (e *Expr) method(attr, op string) *starlark.Builtin {
	return starlark.NewBuiltin(attr, func(_ *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		return e.s.method(op, append(starlark.Tuple{e}, args...), kwargs)
	})
}

// Binary implements infix operators. When the left operand is a plain value,
// the reflected operation is used with this expression as its column.
func (e *Expr) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	base, ok := binaryOps[op]
	if !ok {
		return nil, nil
	}
	name := "__" + base + "__"
	if side == starlark.Right {
		name = "__r" + base + "__"
	}
	return e.s.apply(translate.Scalar, name, starlark.Tuple{e, y}, nil)
}

// Unary implements -x, +x and ~x.
func (e *Expr) Unary(op syntax.Token) (starlark.Value, error) {
	name, ok := unaryOps[op]
	if !ok {
		return nil, nil
	}
	return e.s.apply(translate.Scalar, name, starlark.Tuple{e}, nil)
}

// namespace groups prefixed operations such as str.upper or dt.year.
type namespace struct {
	recv   *Expr
	prefix string
}

var _ starlark.HasAttrs = (*namespace)(nil)

func (n *namespace) String() string        { return n.recv.String() + "." + n.prefix }
func (n *namespace) Type() string          { return "namespace" }
func (n *namespace) Freeze()               {}
func (n *namespace) Truth() starlark.Bool  { return starlark.True }
func (n *namespace) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: namespace") }

func (n *namespace) Attr(name string) (starlark.Value, error) {
	op := n.prefix + "." + name
	if !n.recv.s.hasOp(op) {
		return nil, nil
	}
	return n.recv.method(name, op), nil
}

func (n *namespace) AttrNames() []string {
	var names []string
	for _, name := range n.recv.s.opNames() {
		if rest, ok := strings.CutPrefix(name, n.prefix+"."); ok {
			names = append(names, rest)
		}
	}
	sort.Strings(names)
	return names
}
