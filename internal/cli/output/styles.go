package output

import "github.com/charmbracelet/lipgloss"

// Colors used across the CLI.
var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D79F6"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#D29922"}
	colorError   = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6E7781", Dark: "#8B949E"}
	colorInfo    = lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#58A6FF"}
)

// Styles holds the lipgloss styles of one renderer.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	SQL     lipgloss.Style

	// Status icons, rendered with String().
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusFailed  lipgloss.Style
}

// NewStyles creates the styles bound to a lipgloss renderer, so that the
// renderer's color profile decides whether escape codes are emitted.
func NewStyles(lr *lipgloss.Renderer) Styles {
	return Styles{
		Header1: lr.NewStyle().Bold(true).Foreground(colorPrimary),
		Header2: lr.NewStyle().Bold(true),
		Bold:    lr.NewStyle().Bold(true),
		Muted:   lr.NewStyle().Foreground(colorMuted),
		Success: lr.NewStyle().Foreground(colorSuccess),
		Warning: lr.NewStyle().Foreground(colorWarning),
		Error:   lr.NewStyle().Foreground(colorError).Bold(true),
		Info:    lr.NewStyle().Foreground(colorInfo),
		SQL:     lr.NewStyle().Foreground(colorInfo),

		StatusSuccess: lr.NewStyle().Foreground(colorSuccess).SetString("✓"),
		StatusWarning: lr.NewStyle().Foreground(colorWarning).SetString("!"),
		StatusFailed:  lr.NewStyle().Foreground(colorError).SetString("✗"),
	}
}
