package sorts

import (
	"slices"
	"testing"

	"github.com/kbukum/recskit/record"
)

func recs(t *testing.T, lines ...string) []record.Record {
	t.Helper()
	out := make([]record.Record, len(lines))
	for i, l := range lines {
		r, err := record.Parse(l)
		if err != nil {
			t.Fatal(err)
		}
		out[i] = r
	}
	return out
}

func order(rs []record.Record, k SortKey) []string {
	sorted := slices.Clone(rs)
	slices.SortStableFunc(sorted, k.Compare)
	out := make([]string, len(sorted))
	for i, r := range sorted {
		out[i] = r.Get("id").CoerceString()
	}
	return out
}

func TestLexicalVsNumeric(t *testing.T) {
	in := recs(t, `{"id":"a","v":"10"}`, `{"id":"b","v":"9"}`, `{"id":"c","v":"100"}`)
	lex, err := Registry.Parse("lex,v")
	if err != nil {
		t.Fatal(err)
	}
	num, err := Registry.Parse("n,v")
	if err != nil {
		t.Fatal(err)
	}
	if got := order(in, lex); !slices.Equal(got, []string{"a", "c", "b"}) {
		t.Errorf("lexical: got %v", got)
	}
	if got := order(in, num); !slices.Equal(got, []string{"b", "a", "c"}) {
		t.Errorf("numeric: got %v", got)
	}
}

func TestDescending(t *testing.T) {
	in := recs(t, `{"id":"a","v":1}`, `{"id":"b","v":3}`, `{"id":"c","v":2}`)
	k, err := Registry.Parse("numeric,-v")
	if err != nil {
		t.Fatal(err)
	}
	if got := order(in, k); !slices.Equal(got, []string{"b", "c", "a"}) {
		t.Errorf("got %v", got)
	}
}

func TestChainBreaksTies(t *testing.T) {
	in := recs(t,
		`{"id":"a","g":"x","v":2}`,
		`{"id":"b","g":"w","v":5}`,
		`{"id":"c","g":"x","v":1}`,
		`{"id":"d","g":"w","v":5}`,
	)
	c, err := ParseKeys("lex", "g")
	if err != nil {
		t.Fatal(err)
	}
	n, err := ParseKeys("num", "-v")
	if err != nil {
		t.Fatal(err)
	}
	if got := order(in, append(c, n...)); !slices.Equal(got, []string{"b", "d", "a", "c"}) {
		t.Errorf("got %v", got)
	}
}

func TestUnknownFamily(t *testing.T) {
	if _, err := ParseKeys("random", "x"); err == nil {
		t.Error("expected lookup error")
	}
}
