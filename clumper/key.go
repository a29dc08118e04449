package clumper

import "github.com/kbukum/recskit/stream"

type byKey struct {
	key string
}

type keyBucket struct {
	s       stream.Stream
	stopped bool
}

type keyState struct {
	stream.Refusals
	order   []*keyBucket
	buckets map[string]*keyBucket
	err     error
}

// Stream opens a bucket the first time a key value is seen. Buckets are
// closed in first-seen order once input ends.
func (k byKey) Stream(bucket BucketFactory) stream.Stream {
	return stream.Closures(keyState{buckets: map[string]*keyBucket{}},
		func(s *keyState, e stream.Entry, w stream.Writer) bool {
			r, err := e.Parse()
			if err != nil {
				s.err = err
				return false
			}
			v := r.Get(k.key)
			id := v.Deparse()
			b, ok := s.buckets[id]
			if !ok {
				b = &keyBucket{s: bucket([]KeyValue{{Key: k.key, Value: v}})}
				s.buckets[id] = b
				s.order = append(s.order, b)
			}
			if !b.stopped && !b.s.Write(stream.RecordEntry(r), s.Wrap(w)) {
				b.stopped = true
			}
			return !s.Refused
		},
		func(s *keyState, w stream.Writer) error {
			err := s.err
			for _, b := range s.order {
				if cerr := b.s.Close(s.Wrap(w)); cerr != nil && err == nil {
					err = cerr
				}
			}
			return err
		},
	)
}
