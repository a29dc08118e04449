package aggregator

import (
	"testing"

	"github.com/kbukum/recskit/errors"
	"github.com/kbukum/recskit/record"
)

func mustParse(t *testing.T, lines ...string) []record.Record {
	t.Helper()
	out := make([]record.Record, len(lines))
	for i, l := range lines {
		r, err := record.Parse(l)
		if err != nil {
			t.Fatalf("parse %q: %v", l, err)
		}
		out[i] = r
	}
	return out
}

func run(t *testing.T, spec string, lines ...string) string {
	t.Helper()
	agg, err := Registry.Parse(spec)
	if err != nil {
		t.Fatalf("%s: %v", spec, err)
	}
	for _, r := range mustParse(t, lines...) {
		agg.Add(r)
	}
	return agg.Finish().Deparse()
}

func TestDistinctArray_FirstSeenOrder(t *testing.T) {
	got := run(t, "darray,x", `{"x":"a"}`, `{"x":"b"}`, `{"x":"a"}`, `{"x":"c"}`, `{"x":"b"}`)
	if got != `["a","b","c"]` {
		t.Errorf("got %s", got)
	}
}

func TestCatalog(t *testing.T) {
	input := []string{`{"v":3,"s":"x"}`, `{"v":1,"s":"y"}`, `{"v":2,"s":"x"}`}
	tests := []struct {
		spec string
		want string
	}{
		{"count", `3`},
		{"ct", `3`},
		{"sum,v", `6`},
		{"avg,v", `2`},
		{"min,v", `1`},
		{"max,v", `3`},
		{"first,s", `"x"`},
		{"last,v", `2`},
		{"arr,s", `["x","y","x"]`},
		{"concat,-,s", `"x-y-x"`},
		{"dcount,s", `2`},
		{"records", `[{"s":"x","v":3},{"s":"y","v":1},{"s":"x","v":2}]`},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			if got := run(t, tt.spec, input...); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEmptyInput(t *testing.T) {
	tests := map[string]string{
		"count":     `0`,
		"avg,v":     `null`,
		"min,v":     `null`,
		"first,v":   `null`,
		"darr,v":    `[]`,
		"concat,,v": `""`,
	}
	for spec, want := range tests {
		if got := run(t, spec); got != want {
			t.Errorf("%s: got %s, want %s", spec, got, want)
		}
	}
}

func TestClone_Independent(t *testing.T) {
	for _, spec := range []string{"darr,x", "arr,x", "count", "concat,+,x", "max,n"} {
		t.Run(spec, func(t *testing.T) {
			orig, err := Registry.Parse(spec)
			if err != nil {
				t.Fatal(err)
			}
			shared := mustParse(t, `{"x":"a","n":1}`, `{"x":"b","n":2}`)
			for _, r := range shared {
				orig.Add(r)
			}
			copied := orig.Clone()

			left := mustParse(t, `{"x":"c","n":5}`)
			right := mustParse(t, `{"x":"d","n":7}`, `{"x":"a","n":0}`)
			for _, r := range left {
				orig.Add(r)
			}
			for _, r := range right {
				copied.Add(r)
			}

			wantLeft, _ := Registry.Parse(spec)
			wantRight, _ := Registry.Parse(spec)
			for _, r := range append(append([]record.Record(nil), shared...), left...) {
				wantLeft.Add(r)
			}
			for _, r := range append(append([]record.Record(nil), shared...), right...) {
				wantRight.Add(r)
			}
			if got, want := orig.Finish().Deparse(), wantLeft.Finish().Deparse(); got != want {
				t.Errorf("original: got %s, want %s", got, want)
			}
			if got, want := copied.Finish().Deparse(), wantRight.Finish().Deparse(); got != want {
				t.Errorf("clone: got %s, want %s", got, want)
			}
		})
	}
}

func TestParseLabelled(t *testing.T) {
	l, err := Parse("total=sum,v")
	if err != nil || l.Label != "total" {
		t.Fatalf("unexpected %+v %v", l, err)
	}
	l, err = Parse("sum,v")
	if err != nil || l.Label != "sum_v" {
		t.Fatalf("unexpected %+v %v", l, err)
	}
	if _, err := Parse("=sum,v"); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected invalid input for empty label, got %v", err)
	}
	if _, err := Parse("median,v"); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("expected lookup failure, got %v", err)
	}
}
