package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/recskit/errors"
	"github.com/kbukum/recskit/operation"
)

func testApp(stdin string) (*app, *bytes.Buffer) {
	var out bytes.Buffer
	return &app{
		ctx:    context.Background(),
		set:    operation.DefaultSettings(),
		stdin:  strings.NewReader(stdin),
		stdout: &out,
	}, &out
}

func TestRun_Stdin(t *testing.T) {
	a, out := testApp("{\"n\":3}\n{\"n\":1}\n{\"n\":2}\n")
	if err := a.run([]string{"sort", "-n", "n"}); err != nil {
		t.Fatal(err)
	}
	want := "{\"n\":1}\n{\"n\":2}\n{\"n\":3}\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

func TestRun_FilesInOrder(t *testing.T) {
	dir := t.TempDir()
	a1 := filepath.Join(dir, "a.jsonl")
	b1 := filepath.Join(dir, "b.jsonl")
	os.WriteFile(a1, []byte("{\"f\":\"a1\"}\n{\"f\":\"a2\"}\n"), 0o600)
	os.WriteFile(b1, []byte("{\"f\":\"b1\"}\n"), 0o600)

	a, out := testApp("")
	if err := a.run([]string{"tail", "-n", "2", a1, b1}); err != nil {
		t.Fatal(err)
	}
	want := "{\"f\":\"a2\"}\n{\"f\":\"b1\"}\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

func TestRun_HeadStopsReading(t *testing.T) {
	dir := t.TempDir()
	a1 := filepath.Join(dir, "a.jsonl")
	os.WriteFile(a1, []byte("{\"i\":1}\n{\"i\":2}\n"), 0o600)

	a, out := testApp("")
	// the missing second file is never opened once head is satisfied
	err := a.run([]string{"head", "-n", "1", a1, filepath.Join(dir, "missing.jsonl")})
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != "{\"i\":1}\n" {
		t.Errorf("got %q", out.String())
	}
}

func TestRun_MissingFile(t *testing.T) {
	a, _ := testApp("")
	err := a.run([]string{"head", filepath.Join(t.TempDir(), "missing.jsonl")})
	if !errors.HasCode(err, errors.ErrCodeIO) {
		t.Errorf("expected IO error, got %v", err)
	}
}

func TestRun_HelpPrintsText(t *testing.T) {
	a, out := testApp("")
	if err := a.run([]string{"head", "--help"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "head") {
		t.Errorf("expected help text, got %q", out.String())
	}
}

func TestRun_UnknownOperation(t *testing.T) {
	a, _ := testApp("")
	err := a.run([]string{"frobnicate"})
	if !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
	if exitCode(err) != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode(err))
	}
}

func TestRun_MalformedRecord(t *testing.T) {
	a, _ := testApp("not json\n")
	if err := a.run([]string{"sort", "-n", "n"}); err == nil {
		t.Error("expected parse error")
	}
}

func TestWriteCatalogs(t *testing.T) {
	var buf bytes.Buffer
	writeCatalogs(&buf, "")
	for _, title := range []string{"Operations:", "Aggregators:", "Clumpers:", "Sort keys:"} {
		if !strings.Contains(buf.String(), title) {
			t.Errorf("missing %q in %q", title, buf.String())
		}
	}

	buf.Reset()
	writeCatalogs(&buf, "operations")
	if strings.Contains(buf.String(), "Aggregators:") || !strings.Contains(buf.String(), "expand-files") {
		t.Errorf("unexpected section output %q", buf.String())
	}
}
