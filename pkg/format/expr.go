package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Alex-Monahan/siuba/pkg/core"
	"github.com/Alex-Monahan/siuba/pkg/dialect"
	"github.com/Alex-Monahan/siuba/pkg/expr"
	"github.com/Alex-Monahan/siuba/pkg/token"
)

func (p *Printer) formatExpr(e core.Expr) {
	if e == nil {
		return
	}

	switch n := e.(type) {
	case *core.Literal:
		p.formatLiteral(n)
	case *core.BindParam:
		p.formatBindParam(n)
	case *core.ColumnRef:
		p.formatColumnRef(n)
	case *core.BinaryExpr:
		p.formatBinaryExpr(n)
	case *core.UnaryExpr:
		p.formatUnaryExpr(n)
	case *core.FuncCall:
		p.formatFuncCall(n)
	case *core.CaseExpr:
		p.formatCaseExpr(n)
	case *core.CastExpr:
		p.formatCastExpr(n)
	case *core.InExpr:
		p.formatInExpr(n)
	case *core.BetweenExpr:
		p.formatBetweenExpr(n)
	case *core.IsNullExpr:
		p.formatIsNullExpr(n)
	case *core.LikeExpr:
		p.formatLikeExpr(n)
	case *core.ExtractExpr:
		p.formatExtractExpr(n)
	case *core.TypedExpr:
		p.formatExpr(n.Expr)
	}
}

// precedence returns how tightly an expression binds when it appears as an
// operand. Atoms (function calls, columns, literals) bind tightest.
func (p *Printer) precedence(e core.Expr) int {
	switch n := e.(type) {
	case *core.TypedExpr:
		return p.precedence(n.Expr)
	case *core.BinaryExpr:
		if prec := p.dialect.Precedence(n.Op); prec != dialect.PrecedenceNone {
			return prec
		}
		// Unregistered operators render like comparisons.
		return dialect.PrecedenceComparison
	case *core.UnaryExpr:
		if n.Op == token.NOT {
			return dialect.PrecedenceNot
		}
		return dialect.PrecedenceUnary
	case *core.LikeExpr, *core.InExpr, *core.BetweenExpr, *core.IsNullExpr:
		return dialect.PrecedenceComparison
	case *core.BindParam:
		if strings.HasPrefix(inlineValue(n.Value), "-") {
			return dialect.PrecedenceUnary
		}
	case *core.Literal:
		if n.Type == core.LiteralNumber && strings.HasPrefix(n.Value, "-") {
			return dialect.PrecedenceUnary
		}
	}
	return dialect.PrecedencePostfix
}

// operand renders e, parenthesized when it binds looser than minPrec.
func (p *Printer) operand(e core.Expr, minPrec int) {
	if p.precedence(e) < minPrec {
		p.write("(")
		p.formatExpr(e)
		p.write(")")
		return
	}
	p.formatExpr(e)
}

func (p *Printer) formatLiteral(lit *core.Literal) {
	switch lit.Type {
	case core.LiteralString:
		p.write(quoteString(lit.Value))
	case core.LiteralBool:
		if strings.EqualFold(lit.Value, "true") {
			p.kw(token.TRUE)
		} else {
			p.kw(token.FALSE)
		}
	case core.LiteralNull:
		p.kw(token.NULL)
	case core.LiteralInterval:
		p.kw(token.INTERVAL)
		p.space()
		p.write(quoteString(lit.Value))
	default:
		p.write(lit.Value)
	}
}

func (p *Printer) formatBindParam(b *core.BindParam) {
	if p.inline {
		p.write(inlineValue(b.Value))
		return
	}
	p.args = append(p.args, b.Value)
	p.write(p.dialect.FormatPlaceholder(len(p.args)))
}

func inlineValue(v any) string {
	switch x := v.(type) {
	case nil:
		return token.NULL.String()
	case bool:
		if x {
			return token.TRUE.String()
		}
		return token.FALSE.String()
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return expr.FormatFloat(x)
	case string:
		return quoteString(x)
	}
	return quoteString(fmt.Sprint(v))
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (p *Printer) formatColumnRef(col *core.ColumnRef) {
	if col.Table != "" {
		p.write(p.dialect.QuoteIdentifierIfNeeded(col.Table))
		p.write(".")
	}
	p.write(p.dialect.QuoteIdentifierIfNeeded(col.Column))
}

func (p *Printer) formatBinaryExpr(b *core.BinaryExpr) {
	prec := p.precedence(b)

	// Comparisons do not chain: (a = b) = c keeps its parentheses.
	left := prec
	if prec == dialect.PrecedenceComparison {
		left++
	}
	p.operand(b.Left, left)
	p.space()
	p.kw(b.Op)
	p.space()

	// a + (b + c) drops its parentheses; a - (b - c) and a * (b % c) keep them.
	right := prec + 1
	if dialect.IsCommutative(b.Op) && sameOp(b.Right, b.Op) {
		right = prec
	}
	p.operand(b.Right, right)
}

// sameOp reports whether e is a binary expression with operator op.
func sameOp(e core.Expr, op token.TokenType) bool {
	for {
		switch n := e.(type) {
		case *core.TypedExpr:
			e = n.Expr
		case *core.BinaryExpr:
			return n.Op == op
		default:
			return false
		}
	}
}

func (p *Printer) formatUnaryExpr(u *core.UnaryExpr) {
	p.kw(u.Op)
	if u.Op == token.NOT {
		p.space()
	}
	// - (-x) must not render as --x, which starts a comment.
	p.operand(u.Expr, p.precedence(u)+1)
}

func (p *Printer) formatFuncCall(fn *core.FuncCall) {
	p.write(fn.Name)
	p.write("(")

	if fn.Distinct {
		p.kw(token.DISTINCT)
		p.space()
	}

	if fn.Star {
		p.write("*")
	} else {
		p.formatList(len(fn.Args), func(i int) { p.formatExpr(fn.Args[i]) }, ", ")
	}

	p.write(")")

	if fn.Filter != nil {
		p.space()
		p.kw(token.FILTER)
		p.write(" (")
		p.kw(token.WHERE)
		p.space()
		p.formatExpr(fn.Filter)
		p.write(")")
	}

	if fn.Window != nil {
		p.space()
		p.formatWindowSpec(fn.Window)
	}
}

func (p *Printer) formatWindowSpec(w *core.WindowSpec) {
	p.kw(token.OVER)
	p.write(" (")

	sep := ""
	if len(w.PartitionBy) > 0 {
		p.kw(token.PARTITION, token.BY)
		p.space()
		p.formatList(len(w.PartitionBy), func(i int) { p.formatExpr(w.PartitionBy[i]) }, ", ")
		sep = " "
	}

	if len(w.OrderBy) > 0 {
		p.write(sep)
		p.kw(token.ORDER, token.BY)
		p.space()
		p.formatList(len(w.OrderBy), func(i int) { p.formatOrderByItem(w.OrderBy[i]) }, ", ")
		sep = " "
	}

	if w.Frame != nil {
		p.write(sep)
		p.formatFrameSpec(w.Frame)
	}

	p.write(")")
}

func (p *Printer) formatOrderByItem(item core.OrderByItem) {
	p.formatExpr(item.Expr)
	if item.Desc {
		p.space()
		p.kw(token.DESC)
	}
	if item.NullsFirst != nil {
		p.space()
		if *item.NullsFirst {
			p.kw(token.NULLS, token.FIRST)
		} else {
			p.kw(token.NULLS, token.LAST)
		}
	}
}

func (p *Printer) formatFrameSpec(f *core.FrameSpec) {
	p.write(string(f.Type))
	p.space()
	p.kw(token.BETWEEN)
	p.space()
	p.formatFrameBound(f.Start)
	p.space()
	p.kw(token.AND)
	p.space()
	p.formatFrameBound(f.End)
}

func (p *Printer) formatFrameBound(b *core.FrameBound) {
	if b == nil {
		return
	}
	switch b.Type {
	case core.FrameUnboundedPreceding:
		p.kw(token.UNBOUNDED, token.PRECEDING)
	case core.FrameCurrentRow:
		p.kw(token.CURRENT, token.ROW)
	}
}

func (p *Printer) formatCaseExpr(c *core.CaseExpr) {
	p.kw(token.CASE)

	if c.Operand != nil {
		p.space()
		p.formatExpr(c.Operand)
	}

	for _, w := range c.Whens {
		p.space()
		p.kw(token.WHEN)
		p.space()
		p.formatExpr(w.Condition)
		p.space()
		p.kw(token.THEN)
		p.space()
		p.formatExpr(w.Result)
	}

	if c.Else != nil {
		p.space()
		p.kw(token.ELSE)
		p.space()
		p.formatExpr(c.Else)
	}

	p.space()
	p.kw(token.END)
}

func (p *Printer) formatCastExpr(c *core.CastExpr) {
	p.kw(token.CAST)
	p.write("(")
	p.formatExpr(c.Expr)
	p.space()
	p.kw(token.AS)
	p.space()
	p.write(c.TypeName)
	p.write(")")
}

func (p *Printer) formatInExpr(in *core.InExpr) {
	p.operand(in.Expr, dialect.PrecedenceComparison+1)
	if in.Not {
		p.space()
		p.kw(token.NOT)
	}
	p.space()
	p.kw(token.IN)
	p.write(" (")
	p.formatList(len(in.Values), func(i int) { p.formatExpr(in.Values[i]) }, ", ")
	p.write(")")
}

func (p *Printer) formatBetweenExpr(b *core.BetweenExpr) {
	p.operand(b.Expr, dialect.PrecedenceComparison+1)
	if b.Not {
		p.space()
		p.kw(token.NOT)
	}
	p.space()
	p.kw(token.BETWEEN)
	p.space()
	p.operand(b.Low, dialect.PrecedenceComparison+1)
	p.space()
	p.kw(token.AND)
	p.space()
	p.operand(b.High, dialect.PrecedenceComparison+1)
}

func (p *Printer) formatIsNullExpr(is *core.IsNullExpr) {
	p.operand(is.Expr, dialect.PrecedenceComparison+1)
	p.space()
	p.kw(token.IS)
	if is.Not {
		p.space()
		p.kw(token.NOT)
	}
	p.space()
	p.kw(token.NULL)
}

func (p *Printer) formatLikeExpr(like *core.LikeExpr) {
	p.operand(like.Expr, dialect.PrecedenceComparison+1)
	if like.Not {
		p.space()
		p.kw(token.NOT)
	}
	p.space()
	p.kw(token.LIKE)
	p.space()
	p.operand(like.Pattern, dialect.PrecedenceComparison+1)
	if like.Escape != nil {
		p.space()
		p.kw(token.ESCAPE)
		p.space()
		p.formatExpr(like.Escape)
	}
}

func (p *Printer) formatExtractExpr(e *core.ExtractExpr) {
	p.kw(token.EXTRACT)
	p.write("(")
	p.write(e.Field)
	p.space()
	p.kw(token.FROM)
	p.space()
	p.formatExpr(e.From)
	p.write(")")
}
