// Package starlark walks call trees written as Starlark programs and
// translates them to SQL through a dialect's translator.
//
// A program is either a single expression, such as
//
//	col("x").str.contains("a", case=False) & col("y").gt(1)
//
// or a sequence of statements that assigns the final expression to result.
package starlark

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/Alex-Monahan/siuba/pkg/core"
	"github.com/Alex-Monahan/siuba/pkg/dialect"
	"github.com/Alex-Monahan/siuba/pkg/format"
	"github.com/Alex-Monahan/siuba/pkg/translate"
)

// ResultVar is the global a multi-statement program assigns its expression to.
const ResultVar = "result"

var fileOptions = &syntax.FileOptions{}

// Options configures a Walker.
type Options struct {
	Dialect     *dialect.Dialect  // required
	Context     translate.Context // default context for methods and call()
	Inline      bool              // render literals instead of placeholders
	Vars        map[string]any    // extra predeclared variables
	Concurrency int               // EvalAll worker limit; <= 0 means 4
	Logger      *slog.Logger
}

// Result is a translated expression.
type Result struct {
	Expr core.Expr
	Kind translate.ColumnKind
	Type core.ValueType
	SQL  string
	Args []any
}

// EvalError reports a failed evaluation with its source position when known.
type EvalError struct {
	File   string
	Line   int
	Col    int
	Source string
	Err    error
}

func (e *EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %v", e.File, e.Line, e.Col, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

// Unwrap allows errors.Is against the translate errors.
func (e *EvalError) Unwrap() error {
	return e.Err
}

// Walker evaluates programs against one dialect. It is safe for concurrent use.
type Walker struct {
	s       *session
	inline  bool
	globals starlark.StringDict
	pool    *ThreadPool
	limit   int
}

// NewWalker validates opts and builds a walker.
func NewWalker(opts Options) (*Walker, error) {
	if opts.Dialect == nil {
		return nil, dialect.ErrDialectRequired
	}
	tr := opts.Dialect.Translator()
	if tr == nil {
		return nil, fmt.Errorf("%s: %w", opts.Dialect.Name, dialect.ErrNoTranslator)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With(slog.String("dialect", opts.Dialect.Name))

	globals := Predeclared()
	for name, v := range opts.Vars {
		if _, ok := globals[name]; ok {
			return nil, fmt.Errorf("variable %q conflicts with builtin", name)
		}
		sv, err := GoToStarlark(v)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		globals[name] = sv
	}
	globals.Freeze()

	limit := opts.Concurrency
	if limit <= 0 {
		limit = 4
	}
	printFn := func(thread *starlark.Thread, msg string) {
		logger.Debug(msg, slog.String("thread", thread.Name))
	}
	return &Walker{
		s:       &session{dialect: opts.Dialect, tr: tr, ctx: opts.Context, logger: logger},
		inline:  opts.Inline,
		globals: globals,
		pool:    NewThreadPool(limit, printFn),
		limit:   limit,
	}, nil
}

// Eval evaluates one program with a fresh walker.
func Eval(ctx context.Context, src string, opts Options) (*Result, error) {
	w, err := NewWalker(opts)
	if err != nil {
		return nil, err
	}
	return w.Eval(ctx, "<expr>", src)
}

// Eval evaluates one program. name is used in error positions.
func (w *Walker) Eval(ctx context.Context, name, src string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	thread := w.pool.Get(name)
	thread.SetLocal(sessionKey, w.s)
	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(context.Cause(ctx).Error())
	})
	defer func() {
		if stop() {
			w.pool.Put(thread)
		}
	}()

	v, err := w.run(thread, name, src)
	if err != nil {
		return nil, newEvalError(name, src, err)
	}
	e, ok := v.(*Expr)
	if !ok {
		return nil, &EvalError{
			File:   name,
			Source: src,
			Err:    translate.InvalidArgument("program produced %s, want an expression", v.Type()),
		}
	}

	res := &Result{Expr: e.expr, Kind: e.kind, Type: core.TypeOf(e.expr)}
	if w.inline {
		res.SQL = format.RenderInline(e.expr, w.s.dialect)
	} else {
		res.SQL, res.Args = format.Render(e.expr, w.s.dialect)
	}
	w.s.logger.Debug("translated", slog.String("name", name), slog.String("sql", res.SQL), slog.String("kind", res.Kind.String()))
	return res, nil
}

func (w *Walker) run(thread *starlark.Thread, name, src string) (starlark.Value, error) {
	if _, err := fileOptions.ParseExpr(name, src, 0); err == nil {
		return starlark.EvalOptions(fileOptions, thread, name, src, w.globals)
	}
	globals, err := starlark.ExecFileOptions(fileOptions, thread, name, src, w.globals)
	if err != nil {
		return nil, err
	}
	v, ok := globals[ResultVar]
	if !ok {
		return nil, fmt.Errorf("program does not assign %q", ResultVar)
	}
	return v, nil
}

func newEvalError(name, src string, err error) *EvalError {
	ee := &EvalError{File: name, Source: src, Err: err}

	var serr syntax.Error
	var everr *starlark.EvalError
	switch {
	case errors.As(err, &serr):
		ee.Line, ee.Col = int(serr.Pos.Line), int(serr.Pos.Col)
		ee.Err = errors.New(serr.Msg)
	case errors.As(err, &everr):
		for _, fr := range everr.CallStack {
			if fr.Pos.Line > 0 {
				ee.Line, ee.Col = int(fr.Pos.Line), int(fr.Pos.Col)
			}
		}
	}
	return ee
}
