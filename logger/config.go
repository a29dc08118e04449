package logger

import (
	"fmt"
	"slices"
)

// Config is the logging section of the recs configuration.
type Config struct {
	Level     string `yaml:"level" mapstructure:"level"`
	Format    string `yaml:"format" mapstructure:"format"`
	Output    string `yaml:"output" mapstructure:"output"`
	NoColor   bool   `yaml:"no_color" mapstructure:"no_color"`
	Timestamp bool   `yaml:"timestamp" mapstructure:"timestamp"`
	Caller    bool   `yaml:"caller" mapstructure:"caller"`
}

var (
	levels  = []string{"trace", "debug", "info", "warn", "error", "fatal", "disabled"}
	formats = []string{"json", "console", "pretty"}
	outputs = []string{"stderr", "stdout"}
)

// ApplyDefaults logs warnings and above to stderr in console format.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "warn"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stderr"
	}
	c.Timestamp = true
}

// Validate rejects unknown levels, formats and outputs.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name, value string
		allowed     []string
	}{
		{"level", c.Level, levels},
		{"format", c.Format, formats},
		{"output", c.Output, outputs},
	} {
		if !slices.Contains(f.allowed, f.value) {
			return fmt.Errorf("logging.%s must be one of %v (got: %s)", f.name, f.allowed, f.value)
		}
	}
	return nil
}
