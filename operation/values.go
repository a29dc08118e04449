package operation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/kbukum/recskit/aggregator"
	"github.com/kbukum/recskit/clumper"
	"github.com/kbukum/recskit/sorts"
)

// count is a [+|-]N flag value as taken by UNIX head and tail.
type count struct {
	sign int // +1, -1, or 0 when unsigned
	n    int
}

var _ pflag.Value = (*count)(nil)

func (c *count) String() string {
	switch c.sign {
	case 1:
		return "+" + strconv.Itoa(c.n)
	case -1:
		return "-" + strconv.Itoa(c.n)
	}
	return strconv.Itoa(c.n)
}

func (c *count) Set(s string) error {
	sign := 0
	if rest, ok := strings.CutPrefix(s, "+"); ok {
		sign, s = 1, rest
	} else if rest, ok := strings.CutPrefix(s, "-"); ok {
		sign, s = -1, rest
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("not a count: %q", s)
	}
	c.sign, c.n = sign, n
	return nil
}

func (c *count) Type() string { return "[+|-]N" }

// positive reports whether the count keeps the front of the input, with
// def applying to an unsigned count.
func (c count) positive(def bool) bool {
	if c.sign == 0 {
		return def
	}
	return c.sign > 0
}

// list appends the values parsed from each occurrence of a flag. Several
// flags may share one list, keeping their relative order.
type list[T any] struct {
	items *[]T
	parse func(string) ([]T, error)
	typ   string
}

var _ pflag.Value = (*list[int])(nil)

func (l *list[T]) String() string { return "" }

func (l *list[T]) Set(s string) error {
	ts, err := l.parse(s)
	if err != nil {
		return err
	}
	*l.items = append(*l.items, ts...)
	return nil
}

func (l *list[T]) Type() string { return l.typ }

func one[T any](f func(string) (T, error)) func(string) ([]T, error) {
	return func(s string) ([]T, error) {
		t, err := f(s)
		if err != nil {
			return nil, err
		}
		return []T{t}, nil
	}
}

func aggregatorList(items *[]aggregator.Labelled) *list[aggregator.Labelled] {
	return &list[aggregator.Labelled]{items: items, parse: one(aggregator.Parse), typ: "[LABEL=]SPEC"}
}

func clumperList(items *[]clumper.Clumper) *list[clumper.Clumper] {
	return &list[clumper.Clumper]{items: items, parse: one(clumper.Registry.Parse), typ: "SPEC"}
}

// keyClumperList takes comma-separated keys, one key clumper each.
func keyClumperList(items *[]clumper.Clumper) *list[clumper.Clumper] {
	return &list[clumper.Clumper]{
		items: items,
		parse: func(s string) ([]clumper.Clumper, error) {
			var cs []clumper.Clumper
			for _, k := range strings.Split(s, ",") {
				c, err := clumper.Registry.Init("key", []string{k})
				if err != nil {
					return nil, err
				}
				cs = append(cs, c)
			}
			return cs, nil
		},
		typ: "KEYS",
	}
}

func sortList(items *sorts.Chain) *list[sorts.SortKey] {
	return &list[sorts.SortKey]{items: (*[]sorts.SortKey)(items), parse: one(sorts.Registry.Parse), typ: "SPEC"}
}

func sortKeysList(items *sorts.Chain, family string) *list[sorts.SortKey] {
	return &list[sorts.SortKey]{
		items: (*[]sorts.SortKey)(items),
		parse: func(s string) ([]sorts.SortKey, error) { return sorts.ParseKeys(family, s) },
		typ:   "KEYS",
	}
}

// addClumperFlags binds -c and -k to one shared clumper list.
func addClumperFlags(fs *pflag.FlagSet, cs *[]clumper.Clumper) {
	fs.VarP(clumperList(cs), "clumper", "c", "clumper to bucket records by, e.g. key,KEY or window,COUNT")
	fs.VarP(keyClumperList(cs), "key", "k", "comma-separated keys to bucket records by")
}
