package config

import (
	"fmt"
	"time"

	"github.com/kbukum/recskit/logger"
	"github.com/kbukum/recskit/validation"
)

// Config is the recs configuration.
type Config struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
	Shell       ShellConfig   `yaml:"shell" mapstructure:"shell"`
	Metrics     MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
	Tracing     TracingConfig `yaml:"tracing" mapstructure:"tracing"`
}

// ShellConfig tunes the shell operation.
type ShellConfig struct {
	// GracePeriod is the time between SIGTERM and SIGKILL for a canceled child.
	GracePeriod time.Duration `yaml:"grace_period" mapstructure:"grace_period" validate:"gte=0"`
	// QueueCapacity bounds the entries queued for a child. Zero is unbounded.
	QueueCapacity int `yaml:"queue_capacity" mapstructure:"queue_capacity" validate:"gte=0"`
}

// MetricsConfig enables OTLP metric export.
type MetricsConfig struct {
	Enabled  bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure bool          `yaml:"insecure" mapstructure:"insecure"`
	Interval time.Duration `yaml:"interval" mapstructure:"interval" validate:"gte=0"`
}

// TracingConfig enables OTLP trace export.
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// ApplyDefaults fills unset values.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "recs"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	c.Logging.ApplyDefaults()
	if c.Shell.GracePeriod == 0 {
		c.Shell.GracePeriod = 5 * time.Second
	}
	if c.Metrics.Endpoint == "" {
		c.Metrics.Endpoint = "localhost:4318"
	}
	if c.Metrics.Interval == 0 {
		c.Metrics.Interval = 15 * time.Second
	}
	if c.Tracing.Endpoint == "" {
		c.Tracing.Endpoint = "localhost:4318"
	}
	// an unset rate samples everything; disable tracing to sample nothing
	if c.Tracing.SampleRate == 0 {
		c.Tracing.SampleRate = 1
	}
}

// Validate checks the configuration after defaults are applied.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := validation.Validate(c); err != nil {
		return err
	}
	return validation.New().
		Custom(!c.Metrics.Enabled || c.Metrics.Endpoint != "", "metrics.endpoint", "is required when metrics are enabled").
		Custom(!c.Tracing.Enabled || c.Tracing.Endpoint != "", "tracing.endpoint", "is required when tracing is enabled").
		Custom(!c.Metrics.Enabled || c.Metrics.Interval > 0, "metrics.interval", "must be positive when metrics are enabled").
		Err()
}
