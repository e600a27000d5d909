package commands

import (
	"fmt"
	"io"
	"maps"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Alex-Monahan/siuba/internal/cli/output"
	starctx "github.com/Alex-Monahan/siuba/internal/starlark"
)

// TranslateOptions holds options for the translate command.
type TranslateOptions struct {
	Files []string
	Vars  map[string]string
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand() *cobra.Command {
	opts := &TranslateOptions{}
	cmd := &cobra.Command{
		Use:   "translate [EXPR...]",
		Short: "Translate dataframe expressions to SQL",
		Long: `Translate Starlark call trees into SQL expressions for the configured dialect.

Each argument is one expression. Files given with --file hold a program that
assigns its expression to "result". Several inputs are translated concurrently.

Expressions are built from col(), lit() and method calls:
  col("x").str.contains("a", case=False)
  col("amount").sum() / col("amount").count()

Output adapts to environment:
  - Terminal: SQL with bind arguments
  - Piped/Scripted: Markdown format
  - JSON / YAML: Machine-readable format`,
		Example: `  # Translate one expression for PostgreSQL
  siuba translate 'col("x") // 2'

  # Aggregate context on DuckDB, literals inlined
  siuba translate -d duckdb -c aggregate --inline 'col("x").mean()'

  # Translate a program file with a variable
  siuba translate -f metric.star --var threshold=10 -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, args, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Files, "file", "f", nil, "Program file to translate (- for stdin, repeatable)")
	cmd.Flags().StringToStringVar(&opts.Vars, "var", nil, "Predeclared string variable (name=value, repeatable)")

	return cmd
}

// TranslateOutput is the structured output of the translate command.
type TranslateOutput struct {
	Dialect string            `json:"dialect" yaml:"dialect"`
	Context string            `json:"context" yaml:"context"`
	Results []TranslateResult `json:"results" yaml:"results"`
}

// TranslateResult is one translated expression.
type TranslateResult struct {
	Name  string `json:"name" yaml:"name"`
	SQL   string `json:"sql" yaml:"sql"`
	Args  []any  `json:"args,omitempty" yaml:"args,omitempty"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
	Kind  string `json:"kind" yaml:"kind"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

func runTranslate(cmd *cobra.Command, args []string, opts *TranslateOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	tasks, err := translateTasks(cmd.InOrStdin(), args, opts.Files)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		return fmt.Errorf("nothing to translate: pass an expression or --file")
	}

	walkerOpts, err := cmdCtx.Cfg.WalkerOptions(cmdCtx.Logger)
	if err != nil {
		return err
	}
	if len(opts.Vars) > 0 {
		vars := maps.Clone(walkerOpts.Vars)
		if vars == nil {
			vars = make(map[string]any, len(opts.Vars))
		}
		for name, value := range opts.Vars {
			vars[name] = value
		}
		walkerOpts.Vars = vars
	}

	w, err := starctx.NewWalker(walkerOpts)
	if err != nil {
		return err
	}

	results, err := w.EvalAll(cmd.Context(), tasks)
	if err != nil {
		return err
	}

	out := TranslateOutput{
		Dialect: walkerOpts.Dialect.Name,
		Context: walkerOpts.Context.String(),
		Results: make([]TranslateResult, 0, len(results)),
	}
	var failed []error
	for _, res := range results {
		item := TranslateResult{Name: res.Name}
		if res.Err != nil {
			item.Error = res.Err.Error()
			failed = append(failed, res.Err)
		} else {
			item.SQL = res.Result.SQL
			item.Args = res.Result.Args
			item.Kind = res.Result.Kind.String()
			if res.Result.Type.IsKnown() {
				item.Type = string(res.Result.Type)
			}
		}
		out.Results = append(out.Results, item)
	}

	// A single failing expression reports its own error.
	if len(results) == 1 && len(failed) == 1 {
		return failed[0]
	}

	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		if _, err := r.Encode(out); err != nil {
			return err
		}
	case output.ModeMarkdown:
		renderTranslateMarkdown(r, &out)
	default:
		renderTranslateText(r, &out)
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d expressions failed to translate", len(failed), len(results))
	}
	return nil
}

// translateTasks collects the expressions from arguments and files.
func translateTasks(stdin io.Reader, args, files []string) ([]starctx.Task, error) {
	tasks := make([]starctx.Task, 0, len(args)+len(files))
	for i, src := range args {
		name := "<expr>"
		if len(args) > 1 {
			name = fmt.Sprintf("<expr %d>", i+1)
		}
		tasks = append(tasks, starctx.Task{Name: name, Source: src})
	}

	for _, path := range files {
		var (
			data []byte
			err  error
		)
		if path == "-" {
			data, err = io.ReadAll(stdin)
			path = "<stdin>"
		} else {
			data, err = os.ReadFile(path) //nolint:gosec // user-provided program file
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		tasks = append(tasks, starctx.Task{Name: path, Source: string(data)})
	}
	return tasks, nil
}

func renderTranslateText(r *output.Renderer, out *TranslateOutput) {
	styles := r.Styles()
	multi := len(out.Results) > 1

	for _, res := range out.Results {
		if multi {
			r.Println(styles.Bold.Render(res.Name))
		}
		if res.Error != "" {
			r.Println(styles.StatusFailed.String() + " " + styles.Error.Render(res.Error))
			continue
		}
		r.Println(styles.SQL.Render(res.SQL))
		for i, arg := range res.Args {
			r.Println(styles.Muted.Render(fmt.Sprintf("  arg %d = %s", i+1, formatArg(arg))))
		}
		if multi {
			r.Println("")
		}
	}
}

func renderTranslateMarkdown(r *output.Renderer, out *TranslateOutput) {
	r.Println(output.FormatHeader(1, "Translation"))
	r.Println("")
	r.Println(output.FormatKeyValue("Dialect", out.Dialect))
	r.Println(output.FormatKeyValue("Context", out.Context))
	r.Println("")

	for _, res := range out.Results {
		r.Println(output.FormatHeader(2, res.Name))
		r.Println("")
		if res.Error != "" {
			r.Println(output.FormatKeyValue("Error", res.Error))
			r.Println("")
			continue
		}
		r.Println(output.FormatCodeBlock("sql", res.SQL))
		r.Println("")
		r.Println(output.FormatKeyValue("Kind", res.Kind))
		if res.Type != "" {
			r.Println(output.FormatKeyValue("Type", res.Type))
		}
		for i, arg := range res.Args {
			r.Println(output.FormatKeyValue(fmt.Sprintf("Arg %d", i+1), formatArg(arg)))
		}
		r.Println("")
	}
}

func formatArg(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprintf("%v", v)
}
