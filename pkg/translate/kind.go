package translate

// Variant distinguishes the two column kinds of a dialect.
type Variant int

// Column kind variants.
const (
	VariantPlain Variant = iota
	VariantAggregate
)

// String returns "plain" or "aggregate".
func (v Variant) String() string {
	if v == VariantAggregate {
		return "aggregate"
	}
	return "plain"
}

// ColumnKind tags expression values so the call-tree walker can tell a plain
// column expression from one that is already aggregated. Kinds are per dialect.
type ColumnKind struct {
	Dialect string
	Variant Variant
}

// PlainKind returns the plain column kind of a dialect.
func PlainKind(dialect string) ColumnKind {
	return ColumnKind{Dialect: dialect, Variant: VariantPlain}
}

// AggregateKind returns the aggregate column kind of a dialect.
func AggregateKind(dialect string) ColumnKind {
	return ColumnKind{Dialect: dialect, Variant: VariantAggregate}
}

// IsAggregate reports whether k is an aggregate kind.
func (k ColumnKind) IsAggregate() bool {
	return k.Variant == VariantAggregate
}

// Refines reports whether a value of kind k can be used wherever kind o is
// expected: same dialect, and either the same variant or k aggregate and o plain.
func (k ColumnKind) Refines(o ColumnKind) bool {
	if k.Dialect != o.Dialect {
		return false
	}
	return k.Variant == o.Variant || (k.Variant == VariantAggregate && o.Variant == VariantPlain)
}

// String returns e.g. "postgresql/aggregate".
func (k ColumnKind) String() string {
	return k.Dialect + "/" + k.Variant.String()
}
