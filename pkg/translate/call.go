package translate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/Alex-Monahan/siuba/pkg/core"
	"github.com/Alex-Monahan/siuba/pkg/expr"
)

// Call holds the arguments of one call node. Args[0] is normally the column
// expression the operation applies to. Other arguments may be core.Expr values
// or plain Go scalars (nil, bool, int, int64, float64, string).
type Call struct {
	Args   []any
	Kwargs map[string]any
}

// NewCall returns a call with positional arguments only.
func NewCall(args ...any) Call {
	return Call{Args: args}
}

// With returns a copy of c with one keyword argument set.
func (c Call) With(name string, value any) Call {
	kw := make(map[string]any, len(c.Kwargs)+1)
	for k, v := range c.Kwargs {
		kw[k] = v
	}
	kw[name] = value
	return Call{Args: c.Args, Kwargs: kw}
}

// Swap returns a copy of c with the first two positional arguments exchanged.
// Reflected operators (__rsub__, __rtruediv__, ...) use it.
func (c Call) Swap() Call {
	args := slices.Clone(c.Args)
	if len(args) >= 2 {
		args[0], args[1] = args[1], args[0]
	}
	return Call{Args: args, Kwargs: c.Kwargs}
}

// Arg returns positional argument i, or the keyword argument name if the
// positional one is absent.
func (c Call) Arg(i int, name string) (any, bool) {
	if i < len(c.Args) {
		return c.Args[i], true
	}
	v, ok := c.Kwargs[name]
	return v, ok
}

// Expr returns positional argument i as an expression. Go scalars become
// bound parameters.
func (c Call) Expr(i int) (core.Expr, error) {
	if i >= len(c.Args) {
		return nil, InvalidArgument("missing positional argument %d", i)
	}
	return AsExpr(c.Args[i])
}

// Exprs returns all positional arguments from index from onwards as expressions.
func (c Call) Exprs(from int) ([]core.Expr, error) {
	if from > len(c.Args) {
		return nil, InvalidArgument("missing positional argument %d", from)
	}
	out := make([]core.Expr, 0, len(c.Args)-from)
	for i := from; i < len(c.Args); i++ {
		e, err := AsExpr(c.Args[i])
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// NoKwargs fails if any keyword argument was passed.
func (c Call) NoKwargs() error {
	if len(c.Kwargs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(c.Kwargs))
	for k := range c.Kwargs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return InvalidArgument("unexpected keyword arguments: %s", strings.Join(keys, ", "))
}

// Bind decodes the arguments that follow the column into out, a pointer to an
// options struct with mapstructure tags. Positional arguments after Args[0]
// are assigned to params in order, then keyword arguments are merged in.
// Fields of out that receive nothing keep their current values, so callers
// pre-populate defaults.
//
// Unknown keywords, surplus positionals, repeated arguments and values of the
// wrong type all fail with ErrInvalidArgument.
func (c Call) Bind(out any, params ...string) error {
	var rest []any
	if len(c.Args) > 1 {
		rest = c.Args[1:]
	}
	if len(rest) > len(params) {
		return InvalidArgument("takes at most %d arguments after the column, got %d", len(params), len(rest))
	}

	in := make(map[string]any, len(params)+len(c.Kwargs))
	for i, v := range rest {
		in[params[i]] = v
	}
	for k, v := range c.Kwargs {
		if _, dup := in[k]; dup {
			return InvalidArgument("got multiple values for argument %q", k)
		}
		in[k] = v
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
	})
	if err != nil {
		return fmt.Errorf("creating argument decoder: %w", err)
	}
	if err := dec.Decode(in); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return nil
}

// AsExpr converts an argument to an expression. Expressions pass through,
// nil becomes NULL and Go scalars become bound parameters.
func AsExpr(v any) (core.Expr, error) {
	switch x := v.(type) {
	case core.Expr:
		return x, nil
	case nil:
		return expr.Null(), nil
	case bool, int, int64, float64, string:
		return expr.Param(x), nil
	}
	return nil, InvalidArgument("cannot use %T as an expression", v)
}
