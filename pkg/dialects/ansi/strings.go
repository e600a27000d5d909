package ansi

import (
	"strings"

	"github.com/Alex-Monahan/siuba/pkg/core"
	"github.com/Alex-Monahan/siuba/pkg/expr"
	"github.com/Alex-Monahan/siuba/pkg/translate"
)

// LikeEscape is the escape character used for autoescaped LIKE patterns.
const LikeEscape = "/"

var likeEscaper = strings.NewReplacer(
	LikeEscape, LikeEscape+LikeEscape,
	"%", LikeEscape+"%",
	"_", LikeEscape+"_",
)

// EscapeLike escapes the LIKE metacharacters % and _ (and the escape
// character itself) so pat matches literally.
func EscapeLike(pat string) string {
	return likeEscaper.Replace(pat)
}

// likeMatch builds col LIKE prefix || <escaped pat> || suffix ESCAPE '/'.
func likeMatch(col core.Expr, pat string, prefix, suffix bool) core.Expr {
	parts := make([]core.Expr, 0, 3)
	if prefix {
		parts = append(parts, expr.String("%"))
	}
	parts = append(parts, expr.Param(EscapeLike(pat)))
	if suffix {
		parts = append(parts, expr.String("%"))
	}
	return expr.Like(col, expr.Concat(parts...), expr.String(LikeEscape))
}

// LikeContains matches pat literally anywhere in col. When caseSensitive is
// false only the column is lowercased; pat is used as given.
func LikeContains(col core.Expr, pat string, caseSensitive bool) core.Expr {
	target := col
	if !caseSensitive {
		target = expr.Func("lower", col)
	}
	return likeMatch(target, pat, true, true)
}

// ContainsOptions are the keyword options of str.contains.
type ContainsOptions struct {
	Pat   any  `mapstructure:"pat"`
	Case  bool `mapstructure:"case"`
	Flags int  `mapstructure:"flags"`
	Na    any  `mapstructure:"na"`
	Regex bool `mapstructure:"regex"`
}

// BindContains binds str.contains(pat, case=True, flags=0, na=None, regex=True)
// and validates it. A non-string pat fails with ErrInvalidArgument; flags or na
// fail with ErrNotImplemented.
func BindContains(c translate.Call) (core.Expr, string, ContainsOptions, error) {
	opts := ContainsOptions{Case: true, Regex: true}
	col, err := c.Expr(0)
	if err != nil {
		return nil, "", opts, err
	}
	if err := c.Bind(&opts, "pat", "case", "flags", "na", "regex"); err != nil {
		return nil, "", opts, err
	}
	// None is falsy: case=None lowercases, regex=None matches literally.
	if v, ok := c.Arg(2, "case"); ok && v == nil {
		opts.Case = false
	}
	if v, ok := c.Arg(5, "regex"); ok && v == nil {
		opts.Regex = false
	}
	pat, ok := opts.Pat.(string)
	if !ok {
		return nil, "", opts, translate.InvalidArgument("pat argument must be a string, got %T", opts.Pat)
	}
	if opts.Flags != 0 || opts.Na != nil {
		return nil, "", opts, translate.NotImplemented("flags and na options not supported")
	}
	return col, pat, opts, nil
}

// contains supports literal matching only; regular expressions are
// dialect-specific.
func contains(c translate.Call) (core.Expr, error) {
	col, pat, opts, err := BindContains(c)
	if err != nil {
		return nil, err
	}
	if opts.Regex {
		return nil, translate.NotImplemented("regex matching requires a dialect with regular expressions; pass regex=False")
	}
	return LikeContains(col, pat, opts.Case), nil
}

func affix(prefix bool) translate.Func {
	return func(c translate.Call) (core.Expr, error) {
		col, err := c.Expr(0)
		if err != nil {
			return nil, err
		}
		var opts struct {
			Pat any `mapstructure:"pat"`
		}
		if err := c.Bind(&opts, "pat"); err != nil {
			return nil, err
		}
		pat, ok := opts.Pat.(string)
		if !ok {
			return nil, translate.InvalidArgument("pat argument must be a string, got %T", opts.Pat)
		}
		// startswith: x LIKE pat || '%'; endswith: x LIKE '%' || pat
		return likeMatch(col, pat, !prefix, prefix), nil
	}
}

func replace(c translate.Call) (core.Expr, error) {
	if err := c.NoKwargs(); err != nil {
		return nil, err
	}
	if len(c.Args) != 3 {
		return nil, translate.InvalidArgument("str.replace takes pat and repl")
	}
	args, err := c.Exprs(0)
	if err != nil {
		return nil, err
	}
	return expr.Func("replace", args...), nil
}

func cat(c translate.Call) (core.Expr, error) {
	col, err := c.Expr(0)
	if err != nil {
		return nil, err
	}
	var opts struct {
		Others any `mapstructure:"others"`
		Sep    any `mapstructure:"sep"`
	}
	if err := c.Bind(&opts, "others", "sep"); err != nil {
		return nil, err
	}
	if opts.Others == nil {
		return nil, translate.InvalidArgument("str.cat requires others")
	}
	other, err := translate.AsExpr(opts.Others)
	if err != nil {
		return nil, err
	}
	if opts.Sep == nil {
		return expr.Concat(col, other), nil
	}
	sep, err := translate.AsExpr(opts.Sep)
	if err != nil {
		return nil, err
	}
	return expr.Concat(col, sep, other), nil
}
