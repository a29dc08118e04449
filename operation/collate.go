package operation

import (
	"github.com/spf13/pflag"

	"github.com/kbukum/recskit/aggregator"
	"github.com/kbukum/recskit/clumper"
	"github.com/kbukum/recskit/record"
	"github.com/kbukum/recskit/stream"
)

type collateOptions struct {
	Aggregators []aggregator.Labelled `json:"aggregators" validate:"min=1"`
	Clumpers    []clumper.Clumper     `json:"clumpers"`
}

var collateBe = &Be[collateOptions]{
	Names: []string{"collate"},
	Help:  "bucket records and aggregate each bucket into one record",
	Usage: "[files...]",
	Flags: func(fs *pflag.FlagSet, o *collateOptions) {
		fs.VarP(aggregatorList(&o.Aggregators), "aggregator", "a", "aggregator to run per bucket, e.g. sum,KEY or total=sum,KEY")
		addClumperFlags(fs, &o.Clumpers)
	},
	Stream: func(_ *Settings, o *collateOptions) stream.Stream {
		return clumper.Nest(o.Clumpers, func(keys []clumper.KeyValue) stream.Stream {
			return collateBucket(keys, o.Aggregators)
		})
	},
}

type collateState struct {
	aggs []aggregator.Labelled
	err  error
}

// collateBucket feeds every record to fresh clones of aggs and emits one
// record holding the bucket keys and the results.
func collateBucket(keys []clumper.KeyValue, aggs []aggregator.Labelled) stream.Stream {
	fresh := make([]aggregator.Labelled, len(aggs))
	for i, a := range aggs {
		fresh[i] = a.Clone()
	}
	return stream.Closures(collateState{aggs: fresh},
		func(s *collateState, e stream.Entry, _ stream.Writer) bool {
			r, err := e.Parse()
			if err != nil {
				s.err = err
				return false
			}
			for _, a := range s.aggs {
				a.Agg.Add(r)
			}
			return true
		},
		func(s *collateState, w stream.Writer) error {
			if s.err != nil {
				return s.err
			}
			out := record.Object()
			for _, kv := range keys {
				out.Set(kv.Key, kv.Value.Clone())
			}
			for _, a := range s.aggs {
				out.Set(a.Label, a.Agg.Finish())
			}
			w(stream.RecordEntry(out))
			return nil
		},
	)
}
