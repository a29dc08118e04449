package operation

import (
	"slices"

	"github.com/spf13/pflag"

	"github.com/kbukum/recskit/record"
	"github.com/kbukum/recskit/sorts"
	"github.com/kbukum/recskit/stream"
)

type sortOptions struct {
	Keys    sorts.Chain `json:"keys" validate:"min=1"`
	Partial int         `json:"partial" validate:"gte=0"`
}

var sortBe = &Be[sortOptions]{
	Names: []string{"sort"},
	Help:  "sort records",
	Usage: "[files...]",
	Flags: func(fs *pflag.FlagSet, o *sortOptions) {
		fs.VarP(sortList(&o.Keys), "sort", "s", "sort key spec, e.g. lex,KEY or num,-KEY")
		fs.VarP(sortKeysList(&o.Keys, "lexical"), "lex", "l", "keys to sort by lexically, prefix with minus to sort descending")
		fs.VarP(sortKeysList(&o.Keys, "numeric"), "num", "n", "keys to sort by numerically, prefix with minus to sort descending")
		fs.IntVarP(&o.Partial, "partial", "p", 0, "limit output to this many [first] records, 0 for all")
	},
	Stream: func(_ *Settings, o *sortOptions) stream.Stream {
		return sortStream(o.Keys, o.Partial)
	},
}

type sortState struct {
	rs  []record.Record
	err error
}

// sortStream sorts stably. With a positive limit only the first limit
// records are kept, trimming the buffer whenever it doubles.
func sortStream(keys sorts.Chain, limit int) stream.Stream {
	trim := func(s *sortState) {
		slices.SortStableFunc(s.rs, keys.Compare)
		if limit > 0 && len(s.rs) > limit {
			clear(s.rs[limit:])
			s.rs = s.rs[:limit]
		}
	}
	return stream.Closures(sortState{},
		func(s *sortState, e stream.Entry, _ stream.Writer) bool {
			r, err := e.Parse()
			if err != nil {
				s.err = err
				return false
			}
			s.rs = append(s.rs, r)
			if limit > 0 && len(s.rs) >= 2*limit {
				trim(s)
			}
			return true
		},
		func(s *sortState, w stream.Writer) error {
			trim(s)
			for _, r := range s.rs {
				if !w(stream.RecordEntry(r)) {
					break
				}
			}
			return s.err
		},
	)
}
