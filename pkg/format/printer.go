package format

import (
	"strings"

	"github.com/Alex-Monahan/siuba/pkg/dialect"
	"github.com/Alex-Monahan/siuba/pkg/token"
)

// ansi is used when no dialect is given.
var ansi = dialect.NewDialect("ansi").Operators(dialect.ANSIOperators).Build()

// Printer accumulates rendered SQL and bound parameter values.
type Printer struct {
	dialect *dialect.Dialect
	output  strings.Builder
	inline  bool
	args    []any
}

func newPrinter(d *dialect.Dialect, inline bool) *Printer {
	if d == nil {
		d = ansi
	}
	return &Printer{dialect: d, inline: inline}
}

// String returns the rendered output.
func (p *Printer) String() string {
	return p.output.String()
}

func (p *Printer) write(s string) {
	p.output.WriteString(s)
}

func (p *Printer) space() {
	p.output.WriteByte(' ')
}

// kw prints keywords for the given token types separated by spaces.
func (p *Printer) kw(tokens ...token.TokenType) {
	for i, t := range tokens {
		if i > 0 {
			p.space()
		}
		p.write(t.String())
	}
}

// formatList prints count items separated by sep.
func (p *Printer) formatList(count int, format func(i int), sep string) {
	for i := 0; i < count; i++ {
		if i > 0 {
			p.write(sep)
		}
		format(i)
	}
}
