package operation

import (
	"github.com/spf13/pflag"

	"github.com/kbukum/recskit/stream"
)

type tailOptions struct {
	N count
}

var tailBe = &Be[tailOptions]{
	Names: []string{"tail"},
	Help:  "keeps a suffix of inputs",
	Usage: "[files...]",
	Flags: func(fs *pflag.FlagSet, o *tailOptions) {
		o.N = count{n: 10}
		fs.VarP(&o.N, "count", "n", "count of inputs, may be +N or -N as UNIX tail")
	},
	Stream: func(_ *Settings, o *tailOptions) stream.Stream {
		if o.N.positive(false) {
			return tailSkip(o.N.n)
		}
		return tailLast(o.N.n)
	},
}

// tailSkip drops the first n entries and forwards the rest.
func tailSkip(n int) stream.Stream {
	return stream.Closures(n,
		func(skip *int, e stream.Entry, w stream.Writer) bool {
			if *skip == 0 {
				return w(e)
			}
			*skip--
			return true
		},
		nil,
	)
}

// tailLast keeps the last n entries and forwards them in order on close.
func tailLast(n int) stream.Stream {
	return stream.Closures(stream.NewDeque[stream.Entry](n),
		func(d **stream.Deque[stream.Entry], e stream.Entry, _ stream.Writer) bool {
			(*d).PushBack(e)
			return true
		},
		func(d **stream.Deque[stream.Entry], w stream.Writer) error {
			for i := 0; i < (*d).Len(); i++ {
				if !w((*d).At(i)) {
					break
				}
			}
			return nil
		},
	)
}
