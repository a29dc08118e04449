package operation

import (
	"github.com/spf13/pflag"

	"github.com/kbukum/recskit/stream"
)

type headOptions struct {
	N count
}

var headBe = &Be[headOptions]{
	Names: []string{"head"},
	Help:  "keeps a prefix of inputs",
	Usage: "[files...]",
	Flags: func(fs *pflag.FlagSet, o *headOptions) {
		o.N = count{n: 10}
		fs.VarP(&o.N, "count", "n", "count of inputs, may be +N or -N as UNIX head")
	},
	Stream: func(_ *Settings, o *headOptions) stream.Stream {
		if o.N.positive(true) {
			return headFirst(o.N.n)
		}
		return headAllBut(o.N.n)
	},
}

// headFirst forwards the first n entries and asks to stop right after the
// last of them.
func headFirst(n int) stream.Stream {
	return stream.Closures(n,
		func(left *int, e stream.Entry, w stream.Writer) bool {
			if *left == 0 {
				return false
			}
			*left--
			return w(e) && *left > 0
		},
		nil,
	)
}

// headAllBut holds every entry, then forwards all but the last n.
func headAllBut(n int) stream.Stream {
	return stream.Closures([]stream.Entry(nil),
		func(held *[]stream.Entry, e stream.Entry, _ stream.Writer) bool {
			*held = append(*held, e)
			return true
		},
		func(held *[]stream.Entry, w stream.Writer) error {
			if n >= len(*held) {
				return nil
			}
			for _, e := range (*held)[:len(*held)-n] {
				if !w(e) {
					break
				}
			}
			return nil
		},
	)
}
