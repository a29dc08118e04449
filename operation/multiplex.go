package operation

import (
	"github.com/spf13/pflag"

	"github.com/kbukum/recskit/clumper"
	"github.com/kbukum/recskit/record"
	"github.com/kbukum/recskit/stream"
)

type multiplexOptions struct {
	Clumpers []clumper.Clumper `json:"clumpers"`
	Sub      *Parsed           `json:"operation" validate:"required"`
}

var multiplexBe = &Be[multiplexOptions]{
	Names: []string{"multiplex"},
	Help:  "bucket records and run a separate operation on each bucket",
	Usage: "OP [ARGS...]",
	Flags: func(fs *pflag.FlagSet, o *multiplexOptions) {
		addClumperFlags(fs, &o.Clumpers)
	},
	Rest: func(set *Settings, o *multiplexOptions, args []string) ([]string, error) {
		sub, err := Parse(set, args)
		if err != nil {
			return nil, err
		}
		o.Sub = sub
		return sub.Extra, nil
	},
	Stream: func(_ *Settings, o *multiplexOptions) stream.Stream {
		return clumper.Nest(o.Clumpers, func(keys []clumper.KeyValue) stream.Stream {
			if len(keys) == 0 {
				return o.Sub.Factory()
			}
			return stream.Chain(o.Sub.Factory(), annotate(keys))
		})
	},
}

// annotate writes the bucket keys into every record passing through.
func annotate(keys []clumper.KeyValue) stream.Stream {
	forward := stream.Closures(struct{}{},
		func(_ *struct{}, e stream.Entry, w stream.Writer) bool { return w(e) },
		nil,
	)
	return stream.Compound(forward, stream.TransformRecords(func(r record.Record) record.Record {
		r = r.Clone()
		for _, kv := range keys {
			r.Set(kv.Key, kv.Value.Clone())
		}
		return r
	}))
}
