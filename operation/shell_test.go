package operation

import (
	"os/exec"
	"slices"
	"testing"

	"github.com/kbukum/recskit/errors"
	"github.com/kbukum/recskit/stream"
)

func requireBinary(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available", name)
	}
}

func TestShell_Cat(t *testing.T) {
	requireBinary(t, "cat")
	in := numbered(200)
	if got := run(t, []string{"shell", "cat"}, in...); !slices.Equal(got, in) {
		t.Errorf("got %d lines, want %d in order", len(got), len(in))
	}
}

func TestShell_BoundedQueue(t *testing.T) {
	requireBinary(t, "cat")
	set := DefaultSettings()
	set.ShellQueueCapacity = 1
	in := numbered(500)
	got, err := runErr(t, set, []string{"shell", "cat"}, in...)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, in) {
		t.Errorf("got %d lines, want %d in order", len(got), len(in))
	}
}

func TestShell_ChildStopsReading(t *testing.T) {
	requireBinary(t, "head")
	got := run(t, []string{"shell", "head", "-n", "1"}, numbered(1000)...)
	if !slices.Equal(got, []string{"0"}) {
		t.Errorf("got %v", got)
	}
}

func TestShell_NonZeroExit(t *testing.T) {
	requireBinary(t, "sh")
	_, err := runErr(t, DefaultSettings(), []string{"shell", "sh", "-c", "exit 3"})
	if !errors.HasCode(err, errors.ErrCodeProcessFailed) {
		t.Fatalf("expected PROCESS_FAILED, got %v", err)
	}
	appErr, _ := errors.AsAppError(err)
	if appErr.Details["exit_code"] != 3 {
		t.Errorf("exit code = %v", appErr.Details["exit_code"])
	}
}

func TestShell_DownstreamStops(t *testing.T) {
	requireBinary(t, "yes")
	p, err := Parse(DefaultSettings(), []string{"shell", "yes", "{}"})
	if err != nil {
		t.Fatal(err)
	}
	c := stream.Collector{Limit: 3}
	if err := stream.Drive(p.Factory(), nil, c.Writer()); err != nil {
		t.Fatalf("a child cut off by the pipeline is not an error: %v", err)
	}
	if len(c.Entries) != 3 {
		t.Errorf("got %d entries", len(c.Entries))
	}
}

func TestShell_MissingBinary(t *testing.T) {
	_, err := runErr(t, DefaultSettings(), []string{"shell", "recskit-no-such-binary"}, "x")
	if !errors.HasCode(err, errors.ErrCodeProcessFailed) {
		t.Errorf("expected PROCESS_FAILED, got %v", err)
	}
}

func TestShell_RequiresCommand(t *testing.T) {
	_, err := Parse(DefaultSettings(), []string{"shell"})
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}
