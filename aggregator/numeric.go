package aggregator

import (
	"github.com/kbukum/recskit/record"
	"github.com/kbukum/recskit/registry"
)

var count = Be[struct{}, float64]{
	Names:  []string{"count", "ct"},
	Help:   "counts records",
	Args:   registry.ZeroArgs{},
	Add:    func(n *float64, _ struct{}, _ record.Record) { *n++ },
	Finish: func(n float64, _ struct{}) record.Record { return record.Number(n) },
}

var sum = Be[string, float64]{
	Names:  []string{"sum"},
	Help:   "sums a field",
	Args:   registry.OneKey{},
	Add:    func(n *float64, key string, r record.Record) { *n += r.Get(key).CoerceNumber() },
	Finish: func(n float64, _ string) record.Record { return record.Number(n) },
}

type mean struct {
	sum, n float64
}

var average = Be[string, mean]{
	Names: []string{"average", "avg"},
	Help:  "averages a field",
	Args:  registry.OneKey{},
	Add: func(m *mean, key string, r record.Record) {
		m.sum += r.Get(key).CoerceNumber()
		m.n++
	},
	Finish: func(m mean, _ string) record.Record {
		if m.n == 0 {
			return record.Null()
		}
		return record.Number(m.sum / m.n)
	},
}

type extreme struct {
	v    float64
	seen bool
}

func extremeBe(names []string, help string, better func(a, b float64) bool) Be[string, extreme] {
	return Be[string, extreme]{
		Names: names,
		Help:  help,
		Args:  registry.OneKey{},
		Add: func(e *extreme, key string, r record.Record) {
			v := r.Get(key).CoerceNumber()
			if !e.seen || better(v, e.v) {
				e.v, e.seen = v, true
			}
		},
		Finish: func(e extreme, _ string) record.Record {
			if !e.seen {
				return record.Null()
			}
			return record.Number(e.v)
		},
	}
}

var (
	minimum = extremeBe([]string{"min"}, "minimum value of a field", func(a, b float64) bool { return a < b })
	maximum = extremeBe([]string{"max"}, "maximum value of a field", func(a, b float64) bool { return a > b })
)
