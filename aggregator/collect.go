package aggregator

import (
	"strings"

	"github.com/kbukum/recskit/errors"
	"github.com/kbukum/recskit/record"
	"github.com/kbukum/recskit/registry"
)

type pick struct {
	v    record.Record
	seen bool
}

var first = Be[string, pick]{
	Names: []string{"first"},
	Help:  "first value of a field",
	Args:  registry.OneKey{},
	Add: func(p *pick, key string, r record.Record) {
		if !p.seen {
			p.v, p.seen = r.Get(key), true
		}
	},
	Finish: func(p pick, _ string) record.Record { return p.v },
}

var last = Be[string, pick]{
	Names:  []string{"last"},
	Help:   "last value of a field",
	Args:   registry.OneKey{},
	Add:    func(p *pick, key string, r record.Record) { p.v, p.seen = r.Get(key), true },
	Finish: func(p pick, _ string) record.Record { return p.v },
}

func cloneRecords(rs []record.Record) []record.Record {
	return append([]record.Record(nil), rs...)
}

var array = Be[string, []record.Record]{
	Names:  []string{"array", "arr"},
	Help:   "collect values into an array",
	Args:   registry.OneKey{},
	Add:    func(rs *[]record.Record, key string, r record.Record) { *rs = append(*rs, r.Get(key)) },
	Finish: func(rs []record.Record, _ string) record.Record { return record.FromSlice(rs) },
	Clone:  cloneRecords,
}

var records = Be[struct{}, []record.Record]{
	Names:  []string{"records", "recs"},
	Help:   "collect whole records into an array",
	Args:   registry.ZeroArgs{},
	Add:    func(rs *[]record.Record, _ struct{}, r record.Record) { *rs = append(*rs, r) },
	Finish: func(rs []record.Record, _ struct{}) record.Record { return record.FromSlice(rs) },
	Clone:  cloneRecords,
}

type delimKey struct {
	delim, key string
}

// delimAndKey parses "DELIM,KEY" for concatenate.
type delimAndKey struct{}

func (delimAndKey) Count() int   { return 2 }
func (delimAndKey) Meta() string { return "DELIM,KEY" }
func (delimAndKey) Parse(args []string) (delimKey, error) {
	if args[1] == "" {
		return delimKey{}, errors.InvalidInput("empty key", args...)
	}
	return delimKey{delim: args[0], key: args[1]}, nil
}

var concatenate = Be[delimKey, []string]{
	Names: []string{"concatenate", "concat"},
	Help:  "join values of a field with a delimiter",
	Args:  delimAndKey{},
	Add: func(ss *[]string, a delimKey, r record.Record) {
		*ss = append(*ss, r.Get(a.key).CoerceString())
	},
	Finish: func(ss []string, a delimKey) record.Record { return record.String(strings.Join(ss, a.delim)) },
	Clone:  func(ss []string) []string { return append([]string(nil), ss...) },
}

var distinctArray = Be[string, record.DistinctSet]{
	Names:  []string{"distinct_array", "darray", "darr"},
	Help:   "collect distinct values into an array",
	Args:   registry.OneKey{},
	Add:    func(s *record.DistinctSet, key string, r record.Record) { s.Add(r.Get(key)) },
	Finish: func(s record.DistinctSet, _ string) record.Record { return record.FromSlice(s.Items()) },
	Clone:  record.DistinctSet.Clone,
}

var distinctCount = Be[string, record.DistinctSet]{
	Names:  []string{"distinct_count", "dcount", "dct"},
	Help:   "count distinct values of a field",
	Args:   registry.OneKey{},
	Add:    func(s *record.DistinctSet, key string, r record.Record) { s.Add(r.Get(key)) },
	Finish: func(s record.DistinctSet, _ string) record.Record { return record.Number(float64(s.Len())) },
	Clone:  record.DistinctSet.Clone,
}
