package config

// Default configuration values.
const (
	DefaultDialect     = "postgresql"
	DefaultContext     = "scalar"
	DefaultConcurrency = 4
)

// ApplyDefaults applies default values to a ProjectConfig.
func ApplyDefaults(c *ProjectConfig) {
	if c == nil {
		return
	}
	if c.Dialect == "" {
		c.Dialect = DefaultDialect
	}
	if c.Context == "" {
		c.Context = DefaultContext
	}
	if c.Concurrency == 0 {
		c.Concurrency = DefaultConcurrency
	}
}
