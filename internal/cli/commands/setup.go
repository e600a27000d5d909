package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Alex-Monahan/siuba/internal/cli/config"
	"github.com/Alex-Monahan/siuba/internal/cli/output"
	intconfig "github.com/Alex-Monahan/siuba/internal/config"
	"github.com/Alex-Monahan/siuba/pkg/dialect"
	"github.com/Alex-Monahan/siuba/pkg/translate"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Dialect resolves the configured dialect.
func (c *CommandContext) Dialect() (*dialect.Dialect, error) {
	return dialect.Lookup(c.Cfg.Dialect)
}

// Context parses the configured call context.
func (c *CommandContext) Context() (translate.Context, error) {
	return translate.ParseContext(c.Cfg.Context)
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise the project file
// of the working directory, otherwise the defaults.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	cfg := &config.Config{
		OutputFormat: config.DefaultOutput,
		LogLevel:     config.DefaultLogLevel,
	}
	if pc := projectConfig(); pc != nil {
		cfg.ProjectConfig = *pc
	}
	intconfig.ApplyDefaults(&cfg.ProjectConfig)
	return cfg
}

// projectConfig reads siuba.yaml from the nearest project root, if any.
func projectConfig() *intconfig.ProjectConfig {
	cwd, err := os.Getwd()
	if err != nil {
		return nil
	}
	root := intconfig.FindProjectRoot(cwd)
	if root == "" {
		return nil
	}
	pc, err := intconfig.LoadFromDir(root)
	if err != nil {
		return nil
	}
	return pc
}
