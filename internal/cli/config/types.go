// Package config provides configuration management for the siuba CLI.
//
// It extends the shared project configuration from internal/config with
// output and logging settings, and loads all of them with koanf.
package config

import (
	sharedcfg "github.com/Alex-Monahan/siuba/internal/config"
)

// ProjectConfig is an alias for the shared project configuration.
type ProjectConfig = sharedcfg.ProjectConfig

// Config holds all CLI configuration options.
type Config struct {
	ProjectConfig `koanf:",squash"`

	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`
	LogLevel     string `koanf:"log_level"`
}

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultDialect     = sharedcfg.DefaultDialect
	DefaultContext     = sharedcfg.DefaultContext
	DefaultConcurrency = sharedcfg.DefaultConcurrency
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel    = "info"
)

// Output modes.
const (
	OutputAuto     = "auto"
	OutputText     = "text"
	OutputJSON     = "json"
	OutputYAML     = "yaml"
	OutputMarkdown = "markdown"
)

// OutputModes lists the accepted values of the output setting.
var OutputModes = []string{OutputAuto, OutputText, OutputJSON, OutputYAML, OutputMarkdown}
