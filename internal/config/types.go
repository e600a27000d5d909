// Package config provides the project configuration shared by the CLI and by
// library callers: which dialect and default context to translate with, and
// the variables predeclared for Starlark programs.
package config

import (
	"fmt"
	"log/slog"

	starctx "github.com/Alex-Monahan/siuba/internal/starlark"
	"github.com/Alex-Monahan/siuba/pkg/dialect"
	"github.com/Alex-Monahan/siuba/pkg/translate"
)

// ProjectConfig holds the translation settings read from siuba.yaml.
type ProjectConfig struct {
	Dialect     string         `koanf:"dialect"`
	Context     string         `koanf:"context"`
	Inline      bool           `koanf:"inline"`
	Concurrency int            `koanf:"concurrency"`
	Vars        map[string]any `koanf:"vars"`
}

// Validate checks that the dialect is registered and the context is known.
func (c *ProjectConfig) Validate() error {
	if _, err := dialect.Lookup(c.Dialect); err != nil {
		return err
	}
	if _, err := translate.ParseContext(c.Context); err != nil {
		return err
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	return nil
}

// WalkerOptions converts the configuration to options for the Starlark walker.
func (c *ProjectConfig) WalkerOptions(logger *slog.Logger) (starctx.Options, error) {
	d, err := dialect.Lookup(c.Dialect)
	if err != nil {
		return starctx.Options{}, err
	}
	ctx, err := translate.ParseContext(c.Context)
	if err != nil {
		return starctx.Options{}, err
	}
	return starctx.Options{
		Dialect:     d,
		Context:     ctx,
		Inline:      c.Inline,
		Vars:        c.Vars,
		Concurrency: c.Concurrency,
		Logger:      logger,
	}, nil
}
