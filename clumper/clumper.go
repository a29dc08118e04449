// Package clumper holds the clumper plugin family. A clumper partitions
// incoming records into buckets and feeds each bucket its own stream, built
// on demand by the caller's BucketFactory.
package clumper

import (
	"github.com/kbukum/recskit/record"
	"github.com/kbukum/recskit/registry"
	"github.com/kbukum/recskit/stream"
)

// KeyValue names one grouping field and the value shared by a bucket.
type KeyValue struct {
	Key   string
	Value record.Record
}

// BucketFactory builds the stream for a new bucket identified by keys.
type BucketFactory func(keys []KeyValue) stream.Stream

// Clumper turns a bucket factory into a partitioning stream.
type Clumper interface {
	Stream(bucket BucketFactory) stream.Stream
}

// Registry is the clumper catalog.
var Registry = registry.MustNew("clumper",
	registry.Register([]string{"key", "k"}, "bucket records by the value of a key",
		registry.OneKey{}, func(key string) Clumper { return byKey{key: key} }),
	registry.Register([]string{"window", "win"},
		"bucket records by making a bucket for each overlapping window of a specified size",
		registry.OneCount{}, func(n int) Clumper { return window{size: n} }),
	registry.Register([]string{"whole", "all"}, "bucket all records together",
		registry.ZeroArgs{}, func(struct{}) Clumper { return whole{} }),
)

// Nest stacks clumpers: each bucket of cs[0] is partitioned again by
// cs[1], and so on. Leaf buckets receive the keys of every level, outermost
// first. With no clumpers all records land in one bucket.
func Nest(cs []Clumper, bucket BucketFactory) stream.Stream {
	return nest(cs, nil, bucket)
}

func nest(cs []Clumper, prefix []KeyValue, bucket BucketFactory) stream.Stream {
	if len(cs) == 0 {
		return bucket(prefix)
	}
	return cs[0].Stream(func(keys []KeyValue) stream.Stream {
		all := make([]KeyValue, 0, len(prefix)+len(keys))
		all = append(append(all, prefix...), keys...)
		return nest(cs[1:], all, bucket)
	})
}

type whole struct{}

func (whole) Stream(bucket BucketFactory) stream.Stream {
	return bucket(nil)
}
