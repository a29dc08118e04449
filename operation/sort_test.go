package operation

import (
	"fmt"
	"slices"
	"testing"
)

func keyed(ks ...int) []string {
	lines := make([]string, len(ks))
	for i, k := range ks {
		lines[i] = fmt.Sprintf(`{"k":%d,"i":%d}`, k, i)
	}
	return lines
}

func TestSort_Stable(t *testing.T) {
	got := run(t, []string{"sort", "-n", "k"}, keyed(2, 1, 2, 1)...)
	if order := fields(t, got, "i"); !slices.Equal(order, []string{"1", "3", "0", "2"}) {
		t.Errorf("order = %v", order)
	}
}

func TestSort_DescendingAndSpec(t *testing.T) {
	for _, args := range [][]string{
		{"sort", "--num=-k"},
		{"sort", "-s", "numeric,-k"},
	} {
		got := run(t, args, keyed(2, 10, 1)...)
		if ks := fields(t, got, "k"); !slices.Equal(ks, []string{"10", "2", "1"}) {
			t.Errorf("%v: keys = %v", args, ks)
		}
	}
}

func TestSort_LexicalVersusNumeric(t *testing.T) {
	got := run(t, []string{"sort", "-l", "k"}, keyed(2, 10, 1)...)
	if ks := fields(t, got, "k"); !slices.Equal(ks, []string{"1", "10", "2"}) {
		t.Errorf("keys = %v", ks)
	}
}

func TestSort_KeysKeepFlagOrder(t *testing.T) {
	lines := []string{
		`{"g":"b","k":1}`,
		`{"g":"a","k":2}`,
		`{"g":"a","k":1}`,
	}
	got := run(t, []string{"sort", "-l", "g", "--num=-k"}, lines...)
	want := []string{`{"g":"a","k":2}`, `{"g":"a","k":1}`, `{"g":"b","k":1}`}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSort_Partial(t *testing.T) {
	got := run(t, []string{"sort", "--num=-k", "-p", "2"}, keyed(5, 3, 9, 1, 7, 3, 8)...)
	if ks := fields(t, got, "k"); !slices.Equal(ks, []string{"9", "8"}) {
		t.Errorf("keys = %v", ks)
	}

	got = run(t, []string{"sort", "-n", "k", "-p", "3"}, keyed(0, 0, 0, 0, 0, 0, 0, 0, 0, 0)...)
	if order := fields(t, got, "i"); !slices.Equal(order, []string{"0", "1", "2"}) {
		t.Errorf("partial sort not stable: %v", order)
	}
}

func TestSort_MalformedInput(t *testing.T) {
	_, err := runErr(t, DefaultSettings(), []string{"sort", "-n", "k"}, `{"k":1}`, `oops`)
	if err == nil {
		t.Error("expected malformed line to surface at close")
	}
}
