package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Alex-Monahan/siuba/internal/cli/output"
	"github.com/Alex-Monahan/siuba/pkg/dialect"
	"github.com/Alex-Monahan/siuba/pkg/dialects/ansi"
)

// OpsOptions holds options for the ops command.
type OpsOptions struct {
	Overrides bool
}

// NewOpsCommand creates the ops command.
func NewOpsCommand() *cobra.Command {
	opts := &OpsOptions{}
	cmd := &cobra.Command{
		Use:   "ops [PREFIX]",
		Short: "List the operations of a dialect",
		Long: `List the operations the configured dialect translates in one call context,
with their declared input and result types.

An operation is marked as an override when the dialect replaces or adds it
on top of the vendor-neutral base tables.`,
		Example: `  # Scalar operations of PostgreSQL
  siuba ops

  # String operations of SQLite
  siuba ops -d sqlite str.

  # Window operations DuckDB overrides, as JSON
  siuba ops -d duckdb -c window --overrides -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			return runOps(cmd, prefix, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Overrides, "overrides", false, "Only list operations that differ from the base tables")

	return cmd
}

// OpsOutput is the structured output of the ops command.
type OpsOutput struct {
	Dialect    string   `json:"dialect" yaml:"dialect"`
	Context    string   `json:"context" yaml:"context"`
	Operations []OpInfo `json:"operations" yaml:"operations"`
}

// OpInfo describes one operation.
type OpInfo struct {
	Name       string `json:"name" yaml:"name"`
	InputType  string `json:"input_type,omitempty" yaml:"input_type,omitempty"`
	ResultType string `json:"result_type,omitempty" yaml:"result_type,omitempty"`
	Override   bool   `json:"override" yaml:"override"`
}

func runOps(cmd *cobra.Command, prefix string, opts *OpsOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	d, err := cmdCtx.Dialect()
	if err != nil {
		return err
	}
	ctx, err := cmdCtx.Context()
	if err != nil {
		return err
	}
	tr := d.Translator()
	if tr == nil {
		return fmt.Errorf("%s: %w", d.Name, dialect.ErrNoTranslator)
	}

	table := tr.Table(ctx)
	overrides := make(map[string]bool)
	for _, name := range table.Overrides(ansi.Translator.Table(ctx)) {
		overrides[name] = true
	}

	out := OpsOutput{Dialect: d.Name, Context: ctx.String(), Operations: []OpInfo{}}
	for name, op := range table.All() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if opts.Overrides && !overrides[name] {
			continue
		}
		info := OpInfo{Name: name, Override: overrides[name]}
		if t, ok := op.InputType(); ok {
			info.InputType = string(t)
		}
		if t, ok := op.ResultType(); ok {
			info.ResultType = string(t)
		}
		out.Operations = append(out.Operations, info)
	}
	cmdCtx.Logger.Debug("listing operations", "dialect", d.Name, "context", ctx, "count", len(out.Operations))

	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		_, err := r.Encode(out)
		return err
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, fmt.Sprintf("Operations: %s %s (%d)", out.Dialect, out.Context, len(out.Operations))))
		r.Println("")
	default:
		r.Header(1, fmt.Sprintf("Operations: %s %s (%d)", out.Dialect, out.Context, len(out.Operations)))
	}

	if len(out.Operations) == 0 {
		r.Println("No operations found")
		return nil
	}

	rows := make([][]string, 0, len(out.Operations))
	for _, info := range out.Operations {
		override := ""
		if info.Override {
			override = "yes"
		}
		rows = append(rows, []string{info.Name, orDash(info.InputType), orDash(info.ResultType), override})
	}
	r.Table([]string{"Name", "Input", "Result", "Override"}, rows)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
