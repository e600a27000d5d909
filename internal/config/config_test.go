package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alex-Monahan/siuba/pkg/dialect"
	"github.com/Alex-Monahan/siuba/pkg/dialects/postgres"
	"github.com/Alex-Monahan/siuba/pkg/translate"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoadFromDir(t *testing.T) {
	t.Run("no config file", func(t *testing.T) {
		cfg, err := LoadFromDir(t.TempDir())
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("defaults applied", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, ConfigFileName, "inline: true\n")

		cfg, err := LoadFromDir(dir)
		require.NoError(t, err)
		assert.Equal(t, DefaultDialect, cfg.Dialect)
		assert.Equal(t, DefaultContext, cfg.Context)
		assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
		assert.True(t, cfg.Inline)
	})

	t.Run("alternate name and vars", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, ConfigFileNameAlt, `
dialect: duckdb
context: window
vars:
  threshold: 3
  names: [a, b]
`)
		cfg, err := LoadFromDir(dir)
		require.NoError(t, err)
		assert.Equal(t, "duckdb", cfg.Dialect)
		assert.Equal(t, "window", cfg.Context)
		assert.EqualValues(t, 3, cfg.Vars["threshold"])
		assert.Equal(t, []any{"a", "b"}, cfg.Vars["names"])
	})

	t.Run("invalid yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, ConfigFileName, "dialect: [unclosed\n")
		_, err := LoadFromDir(dir)
		assert.Error(t, err)
	})
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, ConfigFileName, "dialect: postgresql\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Equal(t, root, FindProjectRoot(nested))
	assert.Equal(t, filepath.Join(root, ConfigFileName), FindConfigFile(root))
	assert.Empty(t, FindConfigFile(nested))
}

func TestProjectConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ProjectConfig
		wantErr bool
	}{
		{"valid", ProjectConfig{Dialect: "postgres", Context: "agg"}, false},
		{"missing dialect", ProjectConfig{Context: "scalar"}, true},
		{"unknown dialect", ProjectConfig{Dialect: "oracle", Context: "scalar"}, true},
		{"unknown context", ProjectConfig{Dialect: "postgresql", Context: "group"}, true},
		{"negative concurrency", ProjectConfig{Dialect: "postgresql", Context: "scalar", Concurrency: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}

	var unknown *dialect.UnknownDialectError
	err := (&ProjectConfig{Dialect: "oracle", Context: "scalar"}).Validate()
	require.ErrorAs(t, err, &unknown)
	assert.Contains(t, unknown.Available, "postgresql")
}

func TestProjectConfig_WalkerOptions(t *testing.T) {
	cfg := &ProjectConfig{
		Dialect:     "postgres",
		Context:     "window",
		Inline:      true,
		Concurrency: 2,
		Vars:        map[string]any{"n": 1},
	}
	opts, err := cfg.WalkerOptions(nil)
	require.NoError(t, err)
	assert.Same(t, postgres.Postgres, opts.Dialect)
	assert.Equal(t, translate.Window, opts.Context)
	assert.True(t, opts.Inline)
	assert.Equal(t, 2, opts.Concurrency)
	assert.Equal(t, cfg.Vars, opts.Vars)

	_, err = (&ProjectConfig{Dialect: "postgres", Context: "nope"}).WalkerOptions(nil)
	assert.Error(t, err)
}
