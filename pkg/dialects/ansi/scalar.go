package ansi

import (
	"strings"

	"github.com/Alex-Monahan/siuba/pkg/core"
	"github.com/Alex-Monahan/siuba/pkg/expr"
	"github.com/Alex-Monahan/siuba/pkg/token"
	"github.com/Alex-Monahan/siuba/pkg/translate"
)

// TypeNames are the SQL type names used by astype/cast.
var TypeNames = map[core.ValueType]string{
	core.TypeFloat:    "FLOAT",
	core.TypeInteger:  "INTEGER",
	core.TypeString:   "VARCHAR",
	core.TypeBool:     "BOOLEAN",
	core.TypeDatetime: "TIMESTAMP",
}

// dtypes maps dataframe dtype spellings onto value types.
var dtypes = map[string]core.ValueType{
	"float":          core.TypeFloat,
	"float64":        core.TypeFloat,
	"double":         core.TypeFloat,
	"int":            core.TypeInteger,
	"int64":          core.TypeInteger,
	"integer":        core.TypeInteger,
	"str":            core.TypeString,
	"string":         core.TypeString,
	"object":         core.TypeString,
	"bool":           core.TypeBool,
	"boolean":        core.TypeBool,
	"datetime":       core.TypeDatetime,
	"datetime64":     core.TypeDatetime,
	"datetime64[ns]": core.TypeDatetime,
}

// AsType returns an astype translation that casts to the type names given.
// The result carries the target value type.
func AsType(names map[core.ValueType]string) translate.Func {
	return func(c translate.Call) (core.Expr, error) {
		col, err := c.Expr(0)
		if err != nil {
			return nil, err
		}
		var opts struct {
			Dtype string `mapstructure:"dtype"`
		}
		if err := c.Bind(&opts, "dtype"); err != nil {
			return nil, err
		}
		vt, ok := dtypes[strings.ToLower(opts.Dtype)]
		if !ok {
			return nil, translate.InvalidArgument("unsupported dtype %q", opts.Dtype)
		}
		name, ok := names[vt]
		if !ok {
			return nil, translate.NotImplemented("no SQL type for %s", vt)
		}
		return expr.Typed(expr.Cast(col, name), vt), nil
	}
}

func between(c translate.Call) (core.Expr, error) {
	col, err := c.Expr(0)
	if err != nil {
		return nil, err
	}
	var opts struct {
		Left  any `mapstructure:"left"`
		Right any `mapstructure:"right"`
	}
	if err := c.Bind(&opts, "left", "right"); err != nil {
		return nil, err
	}
	if opts.Left == nil || opts.Right == nil {
		return nil, translate.InvalidArgument("between requires left and right")
	}
	low, err := translate.AsExpr(opts.Left)
	if err != nil {
		return nil, err
	}
	high, err := translate.AsExpr(opts.Right)
	if err != nil {
		return nil, err
	}
	return expr.Between(col, low, high), nil
}

func clip(c translate.Call) (core.Expr, error) {
	col, err := c.Expr(0)
	if err != nil {
		return nil, err
	}
	var opts struct {
		Lower any `mapstructure:"lower"`
		Upper any `mapstructure:"upper"`
	}
	if err := c.Bind(&opts, "lower", "upper"); err != nil {
		return nil, err
	}

	var whens []core.WhenClause
	if opts.Lower != nil {
		lower, err := translate.AsExpr(opts.Lower)
		if err != nil {
			return nil, err
		}
		whens = append(whens, expr.When(expr.Op(col, token.LT, lower), lower))
	}
	if opts.Upper != nil {
		upper, err := translate.AsExpr(opts.Upper)
		if err != nil {
			return nil, err
		}
		whens = append(whens, expr.When(expr.Op(col, token.GT, upper), upper))
	}
	if len(whens) == 0 {
		return col, nil
	}
	return expr.Case(whens, col), nil
}

func isin(c translate.Call) (core.Expr, error) {
	col, err := c.Expr(0)
	if err != nil {
		return nil, err
	}
	var opts struct {
		Values []any `mapstructure:"values"`
	}
	if err := c.Bind(&opts, "values"); err != nil {
		return nil, err
	}
	// x IN () is not valid SQL; an empty list never matches.
	if len(opts.Values) == 0 {
		return expr.Lit(false), nil
	}
	values := make([]core.Expr, 0, len(opts.Values))
	for _, v := range opts.Values {
		e, err := translate.AsExpr(v)
		if err != nil {
			return nil, err
		}
		values = append(values, e)
	}
	return expr.In(col, values...), nil
}

func nullTest(not bool) translate.Func {
	return func(c translate.Call) (core.Expr, error) {
		col, err := single(c)
		if err != nil {
			return nil, err
		}
		return expr.IsNull(col, not), nil
	}
}

func fillna(c translate.Call) (core.Expr, error) {
	col, err := c.Expr(0)
	if err != nil {
		return nil, err
	}
	var opts struct {
		Value any `mapstructure:"value"`
	}
	if err := c.Bind(&opts, "value"); err != nil {
		return nil, err
	}
	if opts.Value == nil {
		return nil, translate.InvalidArgument("fillna requires a value")
	}
	v, err := translate.AsExpr(opts.Value)
	if err != nil {
		return nil, err
	}
	return expr.Func("coalesce", col, v), nil
}

func round(c translate.Call) (core.Expr, error) {
	col, err := c.Expr(0)
	if err != nil {
		return nil, err
	}
	var opts struct {
		Decimals *int `mapstructure:"decimals"`
	}
	if err := c.Bind(&opts, "decimals"); err != nil {
		return nil, err
	}
	if opts.Decimals == nil {
		return expr.Func("round", col), nil
	}
	return expr.Func("round", col, expr.Lit(*opts.Decimals)), nil
}

func unaryFunc(name string) translate.Func {
	return func(c translate.Call) (core.Expr, error) {
		col, err := single(c)
		if err != nil {
			return nil, err
		}
		return expr.Func(name, col), nil
	}
}

// scalarEntries returns the scalar base entries. astype/cast use names.
func scalarEntries(names map[core.ValueType]string) []translate.Entry {
	add := Binary(token.PLUS)
	sub := Binary(token.MINUS)
	mul := Binary(token.STAR)
	div := Binary(token.SLASH)
	mod := Binary(token.PERCENT)
	logical := func(fn translate.Func) *translate.Op {
		return translate.Annotate(translate.InputType(core.TypeBool), translate.ResultType(core.TypeBool))(fn)
	}
	cmp := func(op token.TokenType) *translate.Op {
		return translate.Annotate(translate.ResultType(core.TypeBool))(Binary(op))
	}
	astype := AsType(names)

	entries := []translate.Entry{
		// operators
		translate.Fn("__add__", add),
		translate.Fn("__radd__", Reflected(add)),
		translate.Fn("__sub__", sub),
		translate.Fn("__rsub__", Reflected(sub)),
		translate.Fn("__mul__", mul),
		translate.Fn("__rmul__", Reflected(mul)),
		translate.Fn("__truediv__", div),
		translate.Fn("__rtruediv__", Reflected(div)),
		translate.Fn("__div__", div),
		translate.Fn("__rdiv__", Reflected(div)),
		translate.Fn("__floordiv__", floorDiv),
		translate.Fn("__rfloordiv__", Reflected(floorDiv)),
		translate.Fn("__mod__", mod),
		translate.Fn("__rmod__", Reflected(mod)),
		translate.Fn("__pow__", pow),
		translate.Fn("__neg__", Unary(expr.Neg)),
		translate.Fn("__pos__", identity),
		translate.Def("__invert__", logical(Unary(expr.Not))),
		translate.Def("__and__", logical(Binary(token.AND))),
		translate.Def("__rand__", logical(Reflected(Binary(token.AND)))),
		translate.Def("__or__", logical(Binary(token.OR))),
		translate.Def("__ror__", logical(Reflected(Binary(token.OR)))),
		translate.Def("__eq__", cmp(token.EQ)),
		translate.Def("__ne__", cmp(token.NE)),
		translate.Def("__lt__", cmp(token.LT)),
		translate.Def("__le__", cmp(token.LE)),
		translate.Def("__gt__", cmp(token.GT)),
		translate.Def("__ge__", cmp(token.GE)),

		// aliases
		translate.Fn("add", add),
		translate.Fn("sub", sub),
		translate.Fn("mul", mul),
		translate.Fn("div", div),
		translate.Fn("divide", div),
		translate.Fn("rdiv", Reflected(div)),
		translate.Fn("truediv", div),
		translate.Fn("floordiv", floorDiv),
		translate.Fn("mod", mod),
		translate.Fn("pow", pow),

		// methods
		translate.Fn("abs", unaryFunc("abs")),
		translate.Def("between", translate.Annotate(translate.ResultType(core.TypeBool))(between)),
		translate.Fn("clip", clip),
		translate.Def("isin", translate.Annotate(translate.ResultType(core.TypeBool))(isin)),
		translate.Fn("isna", nullTest(false)),
		translate.Fn("isnull", nullTest(false)),
		translate.Fn("notna", nullTest(true)),
		translate.Fn("notnull", nullTest(true)),
		translate.Fn("fillna", fillna),
		translate.Fn("round", round),
		translate.Fn("__round__", round),
		translate.Fn("log", unaryFunc("ln")),
		translate.Fn("exp", unaryFunc("exp")),
		translate.Fn("sqrt", unaryFunc("sqrt")),
		translate.Fn("cast", astype),
		translate.Fn("astype", astype),
	}
	entries = append(entries, stringEntries()...)
	return append(entries, datetimeEntries()...)
}

func stringEntries() []translate.Entry {
	str := func(fn translate.Func) *translate.Op {
		return translate.Annotate(translate.InputType(core.TypeString))(fn)
	}
	match := func(fn translate.Func) *translate.Op {
		return translate.Annotate(translate.InputType(core.TypeString), translate.ResultType(core.TypeBool))(fn)
	}
	return []translate.Entry{
		translate.Def("str.lower", str(unaryFunc("lower"))),
		translate.Def("str.upper", str(unaryFunc("upper"))),
		translate.Def("str.len", translate.Annotate(translate.InputType(core.TypeString), translate.ResultType(core.TypeInteger))(unaryFunc("length"))),
		translate.Def("str.strip", str(unaryFunc("trim"))),
		translate.Def("str.lstrip", str(unaryFunc("ltrim"))),
		translate.Def("str.rstrip", str(unaryFunc("rtrim"))),
		translate.Def("str.startswith", match(affix(true))),
		translate.Def("str.endswith", match(affix(false))),
		translate.Def("str.contains", match(contains)),
		translate.Def("str.replace", str(replace)),
		translate.Def("str.cat", str(cat)),
	}
}
