// Package format renders SQL expression trees to dialect-specific SQL text.
package format

import (
	"github.com/Alex-Monahan/siuba/pkg/core"
	"github.com/Alex-Monahan/siuba/pkg/dialect"
)

// Render renders e for dialect d. Bound parameters become placeholders in the
// dialect's style and their values are returned in placeholder order.
func Render(e core.Expr, d *dialect.Dialect) (string, []any) {
	p := newPrinter(d, false)
	p.formatExpr(e)
	return p.String(), p.args
}

// RenderInline renders e for dialect d with every bound parameter inlined as
// a SQL literal. The result is meant for display, not for execution of
// untrusted input.
func RenderInline(e core.Expr, d *dialect.Dialect) string {
	p := newPrinter(d, true)
	p.formatExpr(e)
	return p.String()
}
