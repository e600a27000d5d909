package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Alex-Monahan/siuba/internal/cli/output"
	starctx "github.com/Alex-Monahan/siuba/internal/starlark"
	"github.com/Alex-Monahan/siuba/pkg/dialect"
	"github.com/Alex-Monahan/siuba/pkg/dialects/ansi"
	"github.com/Alex-Monahan/siuba/pkg/expr"
	"github.com/Alex-Monahan/siuba/pkg/translate"
)

// Check statuses.
const (
	statusPass  = "pass"
	statusWarn  = "warn"
	statusError = "error"
)

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor [DIALECT...]",
		Short: "Check the health of the registered translators",
		Long: `Inspect every registered dialect's translator, or only the named ones.

The doctor command checks each translator concurrently and reports:
- Table sizes per call context
- Operations overriding the vendor-neutral base tables
- Declared type annotations
- Column kinds, including collisions between dialects
- Base operations a dialect leaves untranslated

It fails when a check finds a structural error.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON / YAML: Machine-readable format`,
		Example: `  # Check every dialect
  siuba doctor

  # Check two dialects as JSON
  siuba doctor postgresql sqlite -o json`,
		RunE: runDoctor,
	}
}

// DoctorOutput is the structured output of the doctor command.
type DoctorOutput struct {
	Dialects   []DialectReport `json:"dialects" yaml:"dialects"`
	IssueCount int             `json:"issue_count" yaml:"issue_count"`
	ErrorCount int             `json:"error_count" yaml:"error_count"`
}

// DialectReport is the health report of one dialect.
type DialectReport struct {
	Name      string        `json:"name" yaml:"name"`
	Status    string        `json:"status" yaml:"status"`
	Scalar    int           `json:"scalar" yaml:"scalar"`
	Aggregate int           `json:"aggregate" yaml:"aggregate"`
	Window    int           `json:"window" yaml:"window"`
	Overrides int           `json:"overrides" yaml:"overrides"`
	Annotated int           `json:"annotated" yaml:"annotated"`
	Checks    []HealthCheck `json:"checks" yaml:"checks"`
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	Name    string   `json:"name" yaml:"name"`
	Status  string   `json:"status" yaml:"status"` // "pass", "warn", "error"
	Details []string `json:"details,omitempty" yaml:"details,omitempty"`
}

func (r *DialectReport) add(check HealthCheck) {
	r.Checks = append(r.Checks, check)
	if severity(check.Status) > severity(r.Status) {
		r.Status = check.Status
	}
}

func severity(status string) int {
	switch status {
	case statusError:
		return 2
	case statusWarn:
		return 1
	}
	return 0
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	dialects := dialect.All()
	if len(args) > 0 {
		dialects = dialects[:0:0]
		for _, name := range args {
			d, err := dialect.Lookup(name)
			if err != nil {
				return err
			}
			dialects = append(dialects, d)
		}
	}

	reports := make([]DialectReport, len(dialects))
	g, _ := errgroup.WithContext(cmd.Context())
	if cmdCtx.Cfg.Concurrency > 0 {
		g.SetLimit(cmdCtx.Cfg.Concurrency)
	}
	for i, d := range dialects {
		g.Go(func() error {
			reports[i] = inspectDialect(d, ansi.Translator)
			cmdCtx.Logger.Debug("inspected dialect", "dialect", d.Name, "status", reports[i].Status)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	checkKindCollisions(dialects, reports)

	out := &DoctorOutput{Dialects: reports}
	for _, report := range reports {
		for _, check := range report.Checks {
			switch check.Status {
			case statusError:
				out.ErrorCount++
				out.IssueCount++
			case statusWarn:
				out.IssueCount++
			}
		}
	}

	var err error
	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		_, err = r.Encode(out)
	case output.ModeMarkdown:
		renderDoctorMarkdown(r, out)
	default:
		renderDoctorText(r, out)
	}
	if err != nil {
		return err
	}

	if out.ErrorCount > 0 {
		return fmt.Errorf("doctor found %d errors", out.ErrorCount)
	}
	return nil
}

// inspectDialect runs the per-dialect checks against the base translator.
func inspectDialect(d *dialect.Dialect, base *translate.Translator) DialectReport {
	report := DialectReport{Name: d.Name, Status: statusPass}

	tr := d.Translator()
	if tr == nil {
		report.add(HealthCheck{Name: "translator", Status: statusError, Details: []string{dialect.ErrNoTranslator.Error()}})
		return report
	}
	report.add(HealthCheck{Name: "translator", Status: statusPass})

	report.Scalar = tr.Scalar().Len()
	report.Aggregate = tr.Aggregate().Len()
	report.Window = tr.Window().Len()

	tables := HealthCheck{Name: "tables", Status: statusPass}
	coverage := HealthCheck{Name: "coverage", Status: statusPass}
	annotations := HealthCheck{Name: "annotations", Status: statusPass}
	for _, ctx := range translate.Contexts() {
		table := tr.Table(ctx)
		if table.Len() == 0 {
			tables.Status = statusError
			tables.Details = append(tables.Details, ctx.String()+" table is empty")
		}
		report.Overrides += len(table.Overrides(base.Table(ctx)))

		var missing []string
		for name := range base.Table(ctx).All() {
			if !table.Has(name) {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			coverage.Status = statusWarn
			coverage.Details = append(coverage.Details, fmt.Sprintf("%s: %d base operations untranslated (%s)",
				ctx, len(missing), summarize(missing, 5)))
		}

		for name, op := range table.All() {
			if !op.Annotated() {
				continue
			}
			report.Annotated++
			for _, label := range []string{string(op.Hints().InputType), string(op.Hints().ResultType)} {
				if label == "" {
					continue
				}
				if _, err := starctx.ParseValueType(label); err != nil {
					annotations.Status = statusWarn
					annotations.Details = append(annotations.Details, fmt.Sprintf("%s %s: %v", ctx, name, err))
				}
			}
		}
	}
	report.add(tables)

	kinds := HealthCheck{Name: "kinds", Status: statusPass}
	plain, agg := tr.PlainKind(), tr.AggregateKind()
	switch {
	case plain.IsAggregate() || !agg.IsAggregate():
		kinds.Status = statusError
		kinds.Details = append(kinds.Details, fmt.Sprintf("kinds %s and %s have the wrong variants", plain, agg))
	case !agg.Refines(plain):
		kinds.Status = statusError
		kinds.Details = append(kinds.Details, fmt.Sprintf("aggregate kind %s does not refine %s", agg, plain))
	}
	report.add(kinds)
	report.add(annotations)
	report.add(coverage)
	report.add(smokeTest(tr))
	return report
}

// smokeTest translates one operation per non-empty context.
func smokeTest(tr *translate.Translator) HealthCheck {
	check := HealthCheck{Name: "smoke", Status: statusPass}
	probes := []struct {
		ctx  translate.Context
		name string
		call translate.Call
	}{
		{translate.Scalar, "__add__", translate.NewCall(expr.Col("x"), 1)},
		{translate.Aggregate, "count", translate.NewCall(expr.Col("x"))},
		{translate.Window, "cumsum", translate.NewCall(expr.Col("x"))},
	}
	for _, p := range probes {
		if !tr.Table(p.ctx).Has(p.name) {
			continue
		}
		if _, err := tr.Translate(p.ctx, p.name, p.call); err != nil {
			check.Status = statusError
			check.Details = append(check.Details, fmt.Sprintf("%s %s: %v", p.ctx, p.name, err))
		}
	}
	return check
}

// checkKindCollisions flags dialects sharing a column kind.
func checkKindCollisions(dialects []*dialect.Dialect, reports []DialectReport) {
	owners := make(map[translate.ColumnKind][]int)
	for i, d := range dialects {
		if tr := d.Translator(); tr != nil {
			owners[tr.PlainKind()] = append(owners[tr.PlainKind()], i)
			owners[tr.AggregateKind()] = append(owners[tr.AggregateKind()], i)
		}
	}
	for kind, idx := range owners {
		if len(idx) < 2 {
			continue
		}
		names := make([]string, len(idx))
		for j, i := range idx {
			names[j] = dialects[i].Name
		}
		for _, i := range idx {
			reports[i].add(HealthCheck{
				Name:    "kind collision",
				Status:  statusError,
				Details: []string{fmt.Sprintf("kind %s is shared by %s", kind, strings.Join(names, ", "))},
			})
		}
	}
}

func summarize(names []string, limit int) string {
	if len(names) <= limit {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s, ... and %d more", strings.Join(names[:limit], ", "), len(names)-limit)
}

func sizesLine(report DialectReport) string {
	titleCaser := cases.Title(language.English)
	sizes := []int{report.Scalar, report.Aggregate, report.Window}
	parts := make([]string, 0, len(sizes)+2)
	for i, ctx := range translate.Contexts() {
		parts = append(parts, fmt.Sprintf("%s: %d", titleCaser.String(ctx.String()), sizes[i]))
	}
	parts = append(parts, fmt.Sprintf("Overrides: %d", report.Overrides), fmt.Sprintf("Annotated: %d", report.Annotated))
	return strings.Join(parts, " | ")
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render("siuba Translator Health Report"))
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	r.Println("")

	for _, report := range out.Dialects {
		r.Println(styles.Header2.Render(report.Name))
		r.Println("   " + sizesLine(report))
		r.Println(styles.Muted.Render("   " + strings.Repeat("-", 40)))

		for _, check := range report.Checks {
			icon := styles.StatusSuccess.String()
			switch check.Status {
			case statusWarn:
				icon = styles.StatusWarning.String()
			case statusError:
				icon = styles.StatusFailed.String()
			}
			r.Println("   " + icon + " " + check.Name)

			// Show first 3 details
			for i, detail := range check.Details {
				if i >= 3 {
					r.Println(styles.Muted.Render(fmt.Sprintf("       ... and %d more", len(check.Details)-3)))
					break
				}
				r.Println(styles.Muted.Render("       - " + detail))
			}
		}
		r.Println("")
	}

	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	summaryStyle := styles.Success
	if out.IssueCount > 0 {
		summaryStyle = styles.Warning
	}
	if out.ErrorCount > 0 {
		summaryStyle = styles.Error
	}
	r.Printf("   %s\n", summaryStyle.Render(fmt.Sprintf("%d dialects, %d issues, %d errors", len(out.Dialects), out.IssueCount, out.ErrorCount)))
	r.Println("")
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) {
	r.Println("# siuba Translator Health Report")
	r.Println("")

	titleCaser := cases.Title(language.English)
	for _, report := range out.Dialects {
		r.Println("## " + report.Name)
		r.Println("")
		r.Println(output.FormatKeyValue("Status", titleCaser.String(report.Status)))
		r.Println(output.FormatKeyValue("Tables", sizesLine(report)))
		r.Println("")

		for _, check := range report.Checks {
			r.Printf("- **[%s]** %s\n", strings.ToUpper(check.Status), check.Name)
			for _, detail := range check.Details {
				r.Printf("  - %s\n", detail)
			}
		}
		r.Println("")
	}

	r.Println("## Summary")
	r.Println("")
	r.Printf("**%d dialects, %d issues, %d errors**\n", len(out.Dialects), out.IssueCount, out.ErrorCount)
}
