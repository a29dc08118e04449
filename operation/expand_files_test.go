package operation

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/kbukum/recskit/errors"
	"github.com/kbukum/recskit/record"
)

func writeFile(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func fileRecord(key, path, tag string) string {
	return record.FromMap(map[string]record.Record{
		key:   record.String(path),
		"tag": record.String(tag),
	}).Deparse()
}

func TestExpandFiles_SubOperationPerFile(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"v":1}`, `{"v":2}`)
	b := writeFile(t, dir, "b.json", `{"v":3}`)

	got := run(t, []string{"expand-files", "head", "-n", "1"},
		fileRecord("FILE", a, "a"), fileRecord("FILE", b, "b"))

	// head stopping on the first file must not stop the second
	if tags := fields(t, got, "tag"); !slices.Equal(tags, []string{"a", "b"}) {
		t.Errorf("tags = %v", tags)
	}
	if vs := fields(t, got, "v"); !slices.Equal(vs, []string{"1", "3"}) {
		t.Errorf("values = %v", vs)
	}
}

func TestExpandFiles_KeyAndPrefixes(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"v":1}`, `{"v":2}`)

	got := run(t, []string{"expand-files", "--fk", "path", "--lp", "in_", "--rp", "f_", "tail", "-n", "1"},
		fileRecord("path", a, "a"))
	if len(got) != 1 {
		t.Fatalf("got %v", got)
	}
	r, _ := record.Parse(got[0])
	if r.Get("in_tag").CoerceString() != "a" || r.Get("f_v").CoerceString() != "2" || r.Get("in_path").CoerceString() != a {
		t.Errorf("unexpected union %s", got[0])
	}
}

func TestExpandFiles_ExtraFromSubOperation(t *testing.T) {
	p, err := Parse(DefaultSettings(), []string{"expand-files", "head", "-n", "1", "list.json"})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(p.Extra, []string{"list.json"}) {
		t.Errorf("extra = %v", p.Extra)
	}
}

func TestExpandFiles_MissingFile(t *testing.T) {
	_, err := runErr(t, DefaultSettings(), []string{"expand-files", "head"},
		fileRecord("FILE", filepath.Join(t.TempDir(), "missing.json"), "x"))
	if !errors.HasCode(err, errors.ErrCodeIO) {
		t.Errorf("expected IO_ERROR, got %v", err)
	}
}

func TestExpandFiles_MalformedLine(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `not json`)
	_, err := runErr(t, DefaultSettings(), []string{"expand-files", "head"}, fileRecord("FILE", a, "a"))
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
	if got := labels(t, err); len(got) == 0 || got[0] != a {
		t.Errorf("expected the file name as label, got %v", got)
	}
}

func TestUnion_NonObjectSides(t *testing.T) {
	u := union{LeftPrefix: "l"}
	got := u.merge(record.String("x"), record.Number(1))
	if got.Deparse() != `{"l":"x"}` {
		t.Errorf("got %s", got.Deparse())
	}
	u = union{}
	left, _ := record.Parse(`{"a":1,"b":1}`)
	right, _ := record.Parse(`{"b":2}`)
	if got := u.merge(left, right).Deparse(); got != `{"a":1,"b":2}` {
		t.Errorf("right side should win, got %s", got)
	}
}
