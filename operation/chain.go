package operation

import (
	"slices"

	"github.com/kbukum/recskit/errors"
	"github.com/kbukum/recskit/stream"
)

// chainSeparator splits the operations of a chain.
const chainSeparator = "|"

type chainOptions struct {
	Ops []stream.Factory `json:"operations" validate:"min=1"`
}

var chainBe = &Be[chainOptions]{
	Names: []string{"chain"},
	Help:  "run several operations in sequence, separated by '|'",
	Usage: "OP [ARGS...] '|' OP [ARGS...] ...",
	Rest: func(set *Settings, o *chainOptions, args []string) ([]string, error) {
		var extra []string
		for segment := range splitChain(args) {
			if len(extra) > 0 {
				return nil, errors.InvalidInput("only the last operation of a chain may name input files", extra...)
			}
			sub, err := Parse(set, segment)
			if err != nil {
				return nil, err
			}
			o.Ops = append(o.Ops, sub.Factory)
			extra = sub.Extra
		}
		return extra, nil
	},
	Stream: func(_ *Settings, o *chainOptions) stream.Stream {
		streams := make([]stream.Stream, len(o.Ops))
		for i, f := range o.Ops {
			streams[i] = f()
		}
		return stream.Chain(streams...)
	},
}

// splitChain yields the argument runs between separators.
func splitChain(args []string) func(yield func([]string) bool) {
	return func(yield func([]string) bool) {
		for len(args) > 0 {
			i := slices.Index(args, chainSeparator)
			if i < 0 {
				yield(args)
				return
			}
			if !yield(args[:i]) {
				return
			}
			args = args[i+1:]
		}
	}
}
