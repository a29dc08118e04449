package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func jsonLogger(buf *bytes.Buffer, level string) *Logger {
	return NewWithWriter(&Config{Level: level, Format: "json"}, "recs", buf)
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var m map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &m); err != nil {
		t.Fatalf("not a JSON log line %q: %v", buf.String(), err)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("recs")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "recs" {
		t.Errorf("expected service 'recs', got %q", l.service)
	}
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "warn")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn, got %q", buf.String())
	}
	l.Warn("shown")
	if got := lastLine(t, &buf)["message"]; got != "shown" {
		t.Errorf("message = %v", got)
	}
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "invalid-level")
	l.Debug("hidden")
	l.Info("shown")
	if got := lastLine(t, &buf)["message"]; got != "shown" {
		t.Errorf("message = %v", got)
	}
}

func TestWithComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "debug").WithComponent("shell")
	l.Debug("spawned", Fields("pid", 42, "binary", "cat"))

	m := lastLine(t, &buf)
	if m[FieldComponent] != "shell" {
		t.Errorf("component = %v", m[FieldComponent])
	}
	if m["pid"] != float64(42) || m["binary"] != "cat" {
		t.Errorf("fields missing: %v", m)
	}
}

func TestWithContext_RunID(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithRunID(context.Background(), "run-1")
	ctx = ContextWithTraceID(ctx, "abc123")
	jsonLogger(&buf, "info").WithContext(ctx).Info("started")

	m := lastLine(t, &buf)
	if m[FieldRunID] != "run-1" || m[FieldTraceID] != "abc123" {
		t.Errorf("ids missing: %v", m)
	}
}

func TestErrorFieldsOnEvent(t *testing.T) {
	var buf bytes.Buffer
	jsonLogger(&buf, "info").Error("failed", ErrorFields("close", errors.New("boom")))
	if got := lastLine(t, &buf)["error"]; got != "boom" {
		t.Errorf("error = %v", got)
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, "recs", &buf)
	l.Info("hello", Fields("op", "sort"))
	out := buf.String()
	if !strings.Contains(out, "recs INF") || !strings.Contains(out, "hello") || !strings.Contains(out, "op:") {
		t.Errorf("unexpected console output %q", out)
	}
}

func TestInitAndGlobal(t *testing.T) {
	prev := globalLogger.Load()
	defer SetGlobalLogger(prev)

	cfg := &Config{Level: "info", Format: "json"}
	Init(cfg)
	if cfg.Output != "stderr" {
		t.Errorf("expected stderr default, got %q", cfg.Output)
	}
	if GetGlobalLogger() == nil {
		t.Fatal("expected global logger to be set after Init")
	}

	globalLogger.Store(nil)
	if GetGlobalLogger() == nil {
		t.Fatal("expected default global logger to be created")
	}
}

func TestNamedLoggers(t *testing.T) {
	l := NewDefault("custom")
	Register("my-component", l)
	if Get("my-component") != l {
		t.Error("expected Get to return the registered logger")
	}
	if Get("unregistered-component") == nil {
		t.Fatal("expected non-nil logger for unregistered component")
	}

	RegisterDefaults("recs", "shell")
	for _, name := range []string{"recs", "shell"} {
		if Get(name) == nil {
			t.Errorf("expected logger for %q", name)
		}
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "warn" || cfg.Format != "console" || cfg.Output != "stderr" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json", Output: "stderr"}, false},
		{"valid console", Config{Level: "debug", Format: "console", Output: "stdout"}, false},
		{"invalid level", Config{Level: "bad", Format: "json", Output: "stderr"}, true},
		{"invalid format", Config{Level: "info", Format: "xml", Output: "stderr"}, true},
		{"invalid output", Config{Level: "info", Format: "json", Output: "file"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestFields(t *testing.T) {
	got := Fields("op", "save", "id", 42, "dangling")
	if len(got) != 2 || got["op"] != "save" || got["id"] != 42 {
		t.Errorf("got %v", got)
	}
	if got := Fields(1, "x"); len(got) != 0 {
		t.Errorf("non-string key should be skipped, got %v", got)
	}
}

func TestErrorAndDurationFields(t *testing.T) {
	ef := ErrorFields("open", errors.New("nope"))
	if ef[FieldOperation] != "open" || ef[FieldError] != "nope" {
		t.Errorf("got %v", ef)
	}
	m := MergeWithError(nil, errors.New("x"))
	if m[FieldError] != "x" {
		t.Errorf("got %v", m)
	}
}
