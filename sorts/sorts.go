// Package sorts holds the sort key plugin family.
package sorts

import (
	"cmp"
	"strings"

	"github.com/kbukum/recskit/record"
	"github.com/kbukum/recskit/registry"
)

// SortKey orders records. Compare returns a negative number when a sorts
// before b, zero when they tie and a positive number otherwise.
type SortKey interface {
	Compare(a, b record.Record) int
}

// Registry is the sort key catalog. A key prefixed with "-" sorts
// descending.
var Registry = registry.MustNew("sort",
	registry.Register([]string{"lexical", "lex", "l"}, "lexical sort on a key",
		registry.OneKey{}, func(key string) SortKey {
			return newKey(key, func(a, b record.Record) int {
				return strings.Compare(a.CoerceString(), b.CoerceString())
			})
		}),
	registry.Register([]string{"numeric", "num", "n"}, "numerical sort on a key",
		registry.OneKey{}, func(key string) SortKey {
			return newKey(key, func(a, b record.Record) int {
				return cmp.Compare(a.CoerceNumber(), b.CoerceNumber())
			})
		}),
)

type key struct {
	path    string
	reverse bool
	cmp     func(a, b record.Record) int
}

func newKey(path string, compare func(a, b record.Record) int) key {
	k := key{path: path, cmp: compare}
	if rest, ok := strings.CutPrefix(path, "-"); ok {
		k.path, k.reverse = rest, true
	}
	return k
}

func (k key) Compare(a, b record.Record) int {
	c := k.cmp(a.Get(k.path), b.Get(k.path))
	if k.reverse {
		return -c
	}
	return c
}

// Chain compares by each key in turn until one breaks the tie.
type Chain []SortKey

// Compare implements SortKey.
func (c Chain) Compare(a, b record.Record) int {
	for _, k := range c {
		if r := k.Compare(a, b); r != 0 {
			return r
		}
	}
	return 0
}

// ParseKeys builds one key per comma-separated field using the named
// family, e.g. ParseKeys("lex", "a,-b").
func ParseKeys(family, keys string) (Chain, error) {
	var c Chain
	for _, k := range strings.Split(keys, ",") {
		sk, err := Registry.Init(family, []string{k})
		if err != nil {
			return nil, err
		}
		c = append(c, sk)
	}
	return c, nil
}
