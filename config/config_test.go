package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

type mockFS struct {
	files  map[string]bool
	wd     string
	loaded []string
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }

func (m *mockFS) LoadEnv(path string) error {
	m.loaded = append(m.loaded, path)
	return nil
}

func (m *mockFS) Getwd() (string, error) { return m.wd, nil }

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Name != "recs" || cfg.Environment != "development" {
		t.Errorf("unexpected identity defaults: %q %q", cfg.Name, cfg.Environment)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Output != "stderr" {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Shell.GracePeriod != 5*time.Second || cfg.Shell.QueueCapacity != 0 {
		t.Errorf("unexpected shell defaults: %+v", cfg.Shell)
	}
	if cfg.Tracing.SampleRate != 1 || cfg.Metrics.Interval != 15*time.Second {
		t.Errorf("unexpected telemetry defaults: %+v %+v", cfg.Tracing, cfg.Metrics)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"bad environment", func(c *Config) { c.Environment = "qa" }, "environment"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"negative queue", func(c *Config) { c.Shell.QueueCapacity = -1 }, "queue_capacity"},
		{"sample rate above one", func(c *Config) { c.Tracing.SampleRate = 1.5 }, "sample_rate"},
		{"metrics without endpoint", func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Endpoint = "" }, "metrics.endpoint"},
		{"tracing without endpoint", func(c *Config) { c.Tracing.Enabled = true; c.Tracing.Endpoint = "" }, "tracing.endpoint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			cfg.ApplyDefaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("expected %q in %q", tt.errMsg, err.Error())
			}
		})
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
environment: staging
logging:
  level: debug
shell:
  grace_period: 2s
  queue_capacity: 64
`)
	var cfg Config
	if err := Load("recs", &cfg, WithConfigFile(path), WithEnvFile(filepath.Join(dir, "none.env"))); err != nil {
		t.Fatal(err)
	}
	if cfg.Environment != "staging" || cfg.Logging.Level != "debug" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Shell.GracePeriod != 2*time.Second || cfg.Shell.QueueCapacity != 64 {
		t.Errorf("unexpected shell config: %+v", cfg.Shell)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "shell:\n  grace_period: 2s\n")
	t.Setenv("RECS_SHELL_GRACE_PERIOD", "750ms")
	t.Setenv("RECS_LOGGING_LEVEL", "error")
	t.Setenv("SHELL_QUEUE_CAPACITY", "9")

	var cfg Config
	if err := Load("recs", &cfg, WithConfigFile(path), WithEnvFile(filepath.Join(dir, "none.env"))); err != nil {
		t.Fatal(err)
	}
	if cfg.Shell.GracePeriod != 750*time.Millisecond {
		t.Errorf("expected env override, got %v", cfg.Shell.GracePeriod)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("expected error level, got %q", cfg.Logging.Level)
	}
	if cfg.Shell.QueueCapacity != 0 {
		t.Errorf("unprefixed variable should be ignored, got %d", cfg.Shell.QueueCapacity)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "RECS_ENVIRONMENT=production\n")
	t.Cleanup(func() { os.Unsetenv("RECS_ENVIRONMENT") })

	var cfg Config
	if err := Load("recs", &cfg, WithConfigFile(filepath.Join(dir, "none.yml")), WithEnvFile(envPath)); err != nil {
		t.Fatal(err)
	}
	if cfg.Environment != "production" {
		t.Errorf("expected production from .env, got %q", cfg.Environment)
	}
}

func TestLoad_CustomPrefix(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MYRECS_NAME", "custom")
	var cfg Config
	err := Load("recs", &cfg,
		WithConfigFile(filepath.Join(dir, "none.yml")),
		WithEnvFile(filepath.Join(dir, "none.env")),
		WithEnvPrefix("MYRECS"),
	)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "custom" {
		t.Errorf("expected custom, got %q", cfg.Name)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "shell: [unterminated\n")
	var cfg Config
	if err := Load("recs", &cfg, WithConfigFile(path)); err == nil {
		t.Error("expected error for malformed config file")
	}
}

func TestLocate_SearchOrder(t *testing.T) {
	fs := &mockFS{
		wd: "/work",
		files: map[string]bool{
			"./config/config.yml": true,
			"./.env":              true,
			"./.env.recs":         true,
		},
	}
	got := Locate("recs", Options{FileSystem: fs, EnvPrefix: "RECS"})
	if got.Config != "./config/config.yml" {
		t.Errorf("config file: got %q", got.Config)
	}
	if got.Env != "./.env.recs" {
		t.Errorf("env file: got %q", got.Env)
	}
}

func TestLocate_ExplicitAndEnvPath(t *testing.T) {
	fs := &mockFS{files: map[string]bool{"./config.yml": true}}

	got := Locate("recs", Options{FileSystem: fs, ConfigFile: "/etc/recs.yml", EnvPrefix: "RECS"})
	if got.Config != "/etc/recs.yml" {
		t.Errorf("explicit path should win, got %q", got.Config)
	}

	t.Setenv("RECS_CONFIG", "/opt/recs.yml")
	got = Locate("recs", Options{FileSystem: fs, EnvPrefix: "RECS"})
	if got.Config != "/opt/recs.yml" {
		t.Errorf("RECS_CONFIG should win, got %q", got.Config)
	}
}

func TestLoad_MockFileSystemLoadsEnvFile(t *testing.T) {
	fs := &mockFS{files: map[string]bool{"./.env": true}}
	var cfg Config
	if err := Load("recs", &cfg, WithFileSystem(fs)); err != nil {
		t.Fatal(err)
	}
	if len(fs.loaded) != 1 || fs.loaded[0] != "./.env" {
		t.Errorf("expected ./.env to be loaded, got %v", fs.loaded)
	}
}

func TestKeys(t *testing.T) {
	got := strings.Join(keys(reflect.TypeOf(&Config{}), ""), " ")
	for _, want := range []string{"name", "logging.level", "shell.grace_period", "shell.queue_capacity", "tracing.sample_rate"} {
		if !strings.Contains(" "+got+" ", " "+want+" ") {
			t.Errorf("expected key %q in %q", want, got)
		}
	}
}
