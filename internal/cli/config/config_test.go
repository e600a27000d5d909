package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alex-Monahan/siuba/pkg/dialect"

	// Import dialect packages to ensure dialects are registered via init()
	_ "github.com/Alex-Monahan/siuba/pkg/dialects/duckdb"
	_ "github.com/Alex-Monahan/siuba/pkg/dialects/postgres"
	_ "github.com/Alex-Monahan/siuba/pkg/dialects/sqlite"
)

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("dialect", "d", DefaultDialect, "")
	flags.StringP("context", "c", DefaultContext, "")
	flags.StringP("output", "o", DefaultOutput, "")
	flags.Bool("inline", false, "")
	flags.BoolP("verbose", "v", false, "")
	flags.String("log-level", DefaultLogLevel, "")
	flags.Int("concurrency", DefaultConcurrency, "")
	return flags
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "siuba.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestLoadConfig_Defaults verifies the values used when nothing is configured.
func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "postgresql", cfg.Dialect)
	assert.Equal(t, "scalar", cfg.Context)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, OutputAuto, cfg.OutputFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Inline)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

// TestLoadConfig_Precedence verifies flags > env vars > config file > defaults.
func TestLoadConfig_Precedence(t *testing.T) {
	path := writeConfig(t, `
dialect: duckdb
context: aggregate
output: json
concurrency: 2
`)

	t.Run("config file over defaults", func(t *testing.T) {
		ResetConfig()
		cfg, err := LoadConfig(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "duckdb", cfg.Dialect)
		assert.Equal(t, "aggregate", cfg.Context)
		assert.Equal(t, OutputJSON, cfg.OutputFormat)
		assert.Equal(t, 2, cfg.Concurrency)
		assert.Equal(t, path, GetConfigFileUsed())
	})

	t.Run("env over config file", func(t *testing.T) {
		t.Setenv("SIUBA_DIALECT", "sqlite")
		t.Setenv("SIUBA_CONCURRENCY", "8")
		t.Setenv("SIUBA_LOG_LEVEL", "warn")

		ResetConfig()
		cfg, err := LoadConfig(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "sqlite", cfg.Dialect)
		assert.Equal(t, 8, cfg.Concurrency)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, "aggregate", cfg.Context)
	})

	t.Run("changed flags over env", func(t *testing.T) {
		t.Setenv("SIUBA_DIALECT", "sqlite")
		flags := newFlags()
		require.NoError(t, flags.Parse([]string{"-d", "postgres", "--log-level", "debug", "--inline"}))

		ResetConfig()
		cfg, err := LoadConfig(path, flags)
		require.NoError(t, err)
		assert.Equal(t, "postgres", cfg.Dialect)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.True(t, cfg.Inline)
		// Unchanged flags do not override the file.
		assert.Equal(t, "aggregate", cfg.Context)
		assert.Equal(t, OutputJSON, cfg.OutputFormat)
	})
}

// TestLoadConfig_SearchesUpward verifies the config file is found from a subdirectory.
func TestLoadConfig_SearchesUpward(t *testing.T) {
	path := writeConfig(t, "dialect: sqlite\n")
	nested := filepath.Join(filepath.Dir(path), "queries", "daily")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)

	ResetConfig()
	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Dialect)
	assert.Equal(t, "siuba.yaml", filepath.Base(GetConfigFileUsed()))
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		errSubstr string
	}{
		{"unknown dialect", "dialect: oracle\n", "unknown dialect"},
		{"unknown context", "context: group\n", "unknown context"},
		{"unknown output", "output: html\n", "unknown output mode"},
		{"unknown log level", "log_level: loud\n", "unknown log level"},
		{"malformed yaml", "dialect: [\n", "error reading config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			_, err := LoadConfig(writeConfig(t, tt.content), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}

	ResetConfig()
	_, err := LoadConfig(writeConfig(t, "dialect: oracle\n"), nil)
	var unknown *dialect.UnknownDialectError
	require.ErrorAs(t, err, &unknown)
	assert.Contains(t, err.Error(), "siuba.yaml", "error should mention the config file")
}

func TestLoadConfig_Vars(t *testing.T) {
	t.Setenv("SIUBA_TEST_SCHEMA", "analytics")
	path := writeConfig(t, `
vars:
  schema: ${SIUBA_TEST_SCHEMA}
  threshold: 3
  tags: ["${SIUBA_TEST_SCHEMA}", "${SIUBA_TEST_UNSET}"]
`)

	ResetConfig()
	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "analytics", cfg.Vars["schema"])
	assert.EqualValues(t, 3, cfg.Vars["threshold"])
	assert.Equal(t, []any{"analytics", "${SIUBA_TEST_UNSET}"}, cfg.Vars["tags"])
}

// TestExpandEnvVars tests the expandEnvVars function.
func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_VAR_ONE", "value_one")
	t.Setenv("TEST_VAR_TWO", "value_two")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single variable", "${TEST_VAR_ONE}", "value_one"},
		{"multiple variables", "${TEST_VAR_ONE}/${TEST_VAR_TWO}", "value_one/value_two"},
		{"unset variable stays as-is", "${UNSET_VARIABLE}", "${UNSET_VARIABLE}"},
		{"no variables", "plain string", "plain string"},
		{"empty string", "", ""},
		{"mixed set and unset", "${TEST_VAR_ONE}:${UNSET_VAR}", "value_one:${UNSET_VAR}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandEnvVars(tt.input))
		})
	}
}

func TestConfig_Level(t *testing.T) {
	cfg := &Config{LogLevel: "warn"}
	assert.Equal(t, slog.LevelWarn, cfg.Level())

	cfg.Verbose = true
	assert.Equal(t, slog.LevelDebug, cfg.Level())

	_, err := ParseLogLevel("chatty")
	assert.Error(t, err)
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()), "falls back to a discard logger")

	logger := slog.New(slog.DiscardHandler)
	ctx := context.WithValue(context.Background(), LoggerKey(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}
