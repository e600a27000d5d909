package commands

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Alex-Monahan/siuba/internal/cli/output"
	"github.com/Alex-Monahan/siuba/pkg/dialect"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List registered dialects",
		Long: `List the registered SQL dialects with their aliases, placeholder style,
column kinds and the size of each translation table.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDialects(cmd)
		},
	}
}

// DialectInfo describes one registered dialect.
type DialectInfo struct {
	Name          string   `json:"name" yaml:"name"`
	Aliases       []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Placeholder   string   `json:"placeholder" yaml:"placeholder"`
	PlainKind     string   `json:"plain_kind,omitempty" yaml:"plain_kind,omitempty"`
	AggregateKind string   `json:"aggregate_kind,omitempty" yaml:"aggregate_kind,omitempty"`
	Scalar        int      `json:"scalar" yaml:"scalar"`
	Aggregate     int      `json:"aggregate" yaml:"aggregate"`
	Window        int      `json:"window" yaml:"window"`
}

func describeDialect(d *dialect.Dialect) DialectInfo {
	info := DialectInfo{
		Name:        d.Name,
		Aliases:     d.Aliases,
		Placeholder: d.Placeholder.String(),
	}
	if tr := d.Translator(); tr != nil {
		info.PlainKind = tr.PlainKind().String()
		info.AggregateKind = tr.AggregateKind().String()
		info.Scalar = tr.Scalar().Len()
		info.Aggregate = tr.Aggregate().Len()
		info.Window = tr.Window().Len()
	}
	return info
}

func runDialects(cmd *cobra.Command) error {
	r := NewCommandContext(cmd).Renderer

	dialects := dialect.All()
	infos := make([]DialectInfo, 0, len(dialects))
	for _, d := range dialects {
		infos = append(infos, describeDialect(d))
	}

	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		_, err := r.Encode(infos)
		return err
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Dialects"))
		r.Println("")
	default:
		r.Header(1, "Dialects")
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{
			info.Name,
			strings.Join(info.Aliases, ", "),
			info.Placeholder,
			orDash(info.PlainKind),
			orDash(info.AggregateKind),
			strconv.Itoa(info.Scalar),
			strconv.Itoa(info.Aggregate),
			strconv.Itoa(info.Window),
		})
	}
	r.Table([]string{"Name", "Aliases", "Placeholder", "Plain", "Aggregate", "Scalar ops", "Aggregate ops", "Window ops"}, rows)
	return nil
}
