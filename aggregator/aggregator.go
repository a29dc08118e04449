// Package aggregator holds the aggregator plugin family: accumulators that
// take records one at a time and produce a single summary record.
//
// Every aggregator is declared as a Be: its aliases, help, argument parser
// and three functions over a private state value. The state starts at its
// zero value and is copied on Clone, so one parsed aggregator can seed any
// number of independent group-by buckets.
package aggregator

import (
	"strings"

	"github.com/kbukum/recskit/errors"
	"github.com/kbukum/recskit/record"
	"github.com/kbukum/recskit/registry"
)

// Aggregator accumulates records into one result.
type Aggregator interface {
	// Add folds r into the accumulated state.
	Add(r record.Record)
	// Finish returns the result. The aggregator must not be used afterwards.
	Finish() record.Record
	// Clone returns an independent copy carrying the current state.
	Clone() Aggregator
}

// Be declares one aggregator. A is the parsed argument type and S the
// accumulated state.
type Be[A, S any] struct {
	Names  []string
	Help   string
	Args   registry.ArgParser[A]
	Add    func(s *S, a A, r record.Record)
	Finish func(s S, a A) record.Record
	// Clone deep-copies state holding slices or maps. Nil copies by value.
	Clone func(s S) S
}

type inbox[A, S any] struct {
	be    *Be[A, S]
	args  A
	state S
}

func (i *inbox[A, S]) Add(r record.Record) { i.be.Add(&i.state, i.args, r) }

func (i *inbox[A, S]) Finish() record.Record { return i.be.Finish(i.state, i.args) }

func (i *inbox[A, S]) Clone() Aggregator {
	s := i.state
	if i.be.Clone != nil {
		s = i.be.Clone(i.state)
	}
	return &inbox[A, S]{be: i.be, args: i.args, state: s}
}

func register[A, S any](be Be[A, S]) *registry.Entry[Aggregator] {
	return registry.Register(be.Names, be.Help, be.Args, func(a A) Aggregator {
		return &inbox[A, S]{be: &be, args: a}
	})
}

// Registry is the aggregator catalog.
var Registry = registry.MustNew("aggregator",
	register(count),
	register(sum),
	register(average),
	register(minimum),
	register(maximum),
	register(first),
	register(last),
	register(array),
	register(concatenate),
	register(distinctArray),
	register(distinctCount),
	register(records),
)

// Labelled is an aggregator with the output field it writes to.
type Labelled struct {
	Label string
	Agg   Aggregator
}

// Parse reads "[LABEL=]NAME[,ARG...]". Without an explicit label the
// output field is the name and arguments joined by "_", e.g. "sum_price".
func Parse(spec string) (Labelled, error) {
	label, rest, explicit := strings.Cut(spec, "=")
	if !explicit {
		rest = spec
		label = strings.ReplaceAll(spec, ",", "_")
	} else if label == "" {
		return Labelled{}, errors.InvalidInput("empty aggregator label", spec)
	}
	agg, err := Registry.Parse(rest)
	if err != nil {
		return Labelled{}, err
	}
	return Labelled{Label: label, Agg: agg}, nil
}

// Clone copies the aggregator, keeping the label.
func (l Labelled) Clone() Labelled {
	return Labelled{Label: l.Label, Agg: l.Agg.Clone()}
}
