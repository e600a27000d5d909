// Package dialect provides SQL dialect definitions for the translator.
//
// A Dialect pairs rendering configuration (identifier quoting, placeholder
// style, operator precedence, SQL type names) with the dialect's
// *translate.Translator. Concrete dialects are registered from
// pkg/dialects/*/ packages.
package dialect

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/Alex-Monahan/siuba/pkg/core"
	"github.com/Alex-Monahan/siuba/pkg/token"
	"github.com/Alex-Monahan/siuba/pkg/translate"
)

// ErrNoTranslator is returned when a dialect was built without a translator.
var ErrNoTranslator = errors.New("dialect has no translator")

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	Name        string
	Aliases     []string
	Identifiers core.IdentifierConfig
	Placeholder core.PlaceholderStyle

	reservedWords map[string]struct{} // words that need quoting as identifiers
	precedence    map[token.TokenType]int
	typeNames     map[core.ValueType]string
	translator    *translate.Translator
}

// Config returns the pure data configuration for this dialect.
func (d *Dialect) Config() *core.DialectConfig {
	keywords := make([]string, 0, len(d.reservedWords))
	for kw := range d.reservedWords {
		keywords = append(keywords, kw)
	}
	slices.Sort(keywords)

	return &core.DialectConfig{
		Name:        d.Name,
		Aliases:     slices.Clone(d.Aliases),
		Identifiers: d.Identifiers,
		Placeholder: d.Placeholder,
		Keywords:    keywords,
	}
}

// Translator returns the dialect's translator, or nil.
func (d *Dialect) Translator() *translate.Translator {
	return d.translator
}

// Translate translates one operation call in the given context.
func (d *Dialect) Translate(ctx translate.Context, name string, call translate.Call) (core.Expr, error) {
	if d.translator == nil {
		return nil, ErrNoTranslator
	}
	return d.translator.Translate(ctx, name, call)
}

// NormalizeName normalizes an identifier according to dialect rules.
func (d *Dialect) NormalizeName(name string) string {
	switch d.Identifiers.Normalization {
	case core.NormUppercase:
		return strings.ToUpper(name)
	case core.NormLowercase, core.NormCaseInsensitive:
		return strings.ToLower(name)
	default: // NormCaseSensitive
		return name
	}
}

// FormatPlaceholder returns a placeholder for the given parameter index (1-based).
// Returns "?" for PlaceholderQuestion style, "$1", "$2" etc. for PlaceholderDollar style.
func (d *Dialect) FormatPlaceholder(index int) string {
	switch d.Placeholder {
	case core.PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	default: // PlaceholderQuestion
		return "?"
	}
}

// IsReservedWord returns true if the word needs quoting when used as an identifier.
func (d *Dialect) IsReservedWord(word string) bool {
	_, ok := d.reservedWords[d.NormalizeName(word)]
	return ok
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	// Escape any existing quote end characters in the name (e.g., ] -> ]])
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// QuoteIdentifierIfNeeded quotes an identifier if it is a reserved word, is
// not a plain name, or would change case under normalization.
func (d *Dialect) QuoteIdentifierIfNeeded(name string) string {
	if d.IsReservedWord(name) || !isPlainIdentifier(name) {
		return d.QuoteIdentifier(name)
	}
	if d.Identifiers.Normalization != core.NormCaseInsensitive && d.NormalizeName(name) != name {
		return d.QuoteIdentifier(name)
	}
	return name
}

func isPlainIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// Precedence returns the precedence level for an operator token.
// Returns PrecedenceNone if the operator is not recognized.
func (d *Dialect) Precedence(t token.TokenType) int {
	if p, ok := d.precedence[t]; ok {
		return p
	}
	return PrecedenceNone
}

// TypeName returns the SQL type name the dialect casts to for a value type.
func (d *Dialect) TypeName(t core.ValueType) (string, bool) {
	name, ok := d.typeNames[t]
	return name, ok
}

// ---------- Builder ----------

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with the given name.
// Identifiers default to double quotes with lowercase normalization.
func NewDialect(name string) *Builder {
	return New(&core.DialectConfig{
		Name: name,
		Identifiers: core.IdentifierConfig{
			Quote:         `"`,
			QuoteEnd:      `"`,
			Escape:        `""`,
			Normalization: core.NormLowercase,
		},
	})
}

// New creates a dialect builder from a DialectConfig.
func New(cfg *core.DialectConfig) *Builder {
	b := &Builder{
		dialect: &Dialect{
			Name:          cfg.Name,
			Aliases:       slices.Clone(cfg.Aliases),
			Identifiers:   cfg.Identifiers,
			Placeholder:   cfg.Placeholder,
			reservedWords: make(map[string]struct{}),
			precedence:    make(map[token.TokenType]int),
			typeNames:     make(map[core.ValueType]string),
		},
	}
	b.WithReservedWords(cfg.Keywords...)
	return b
}

// Identifiers configures identifier quoting and normalization.
func (b *Builder) Identifiers(quote, quoteEnd, escape string, norm core.NormalizationStrategy) *Builder {
	b.dialect.Identifiers = core.IdentifierConfig{
		Quote:         quote,
		QuoteEnd:      quoteEnd,
		Escape:        escape,
		Normalization: norm,
	}
	return b
}

// PlaceholderStyle sets how query parameters are formatted.
func (b *Builder) PlaceholderStyle(style core.PlaceholderStyle) *Builder {
	b.dialect.Placeholder = style
	return b
}

// Aliases adds alternative registry names.
func (b *Builder) Aliases(names ...string) *Builder {
	b.dialect.Aliases = append(b.dialect.Aliases, names...)
	return b
}

// WithReservedWords registers words that need quoting when used as identifiers.
func (b *Builder) WithReservedWords(words ...string) *Builder {
	for _, w := range words {
		b.dialect.reservedWords[b.dialect.NormalizeName(w)] = struct{}{}
	}
	return b
}

// AddInfix registers an infix operator with precedence.
func (b *Builder) AddInfix(t token.TokenType, precedence int) *Builder {
	b.dialect.precedence[t] = precedence
	return b
}

// Operators adds operator definitions in bulk.
func (b *Builder) Operators(sets ...[]OperatorDef) *Builder {
	for _, set := range sets {
		for _, op := range set {
			b.dialect.precedence[op.Token] = op.Precedence
		}
	}
	return b
}

// TypeNames sets the SQL type names used for casts.
func (b *Builder) TypeNames(names map[core.ValueType]string) *Builder {
	for t, name := range names {
		b.dialect.typeNames[t] = name
	}
	return b
}

// Translator sets the dialect's translator.
func (b *Builder) Translator(t *translate.Translator) *Builder {
	b.dialect.translator = t
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	return b.dialect
}
