package clumper

import (
	"github.com/kbukum/recskit/record"
	"github.com/kbukum/recskit/stream"
)

type window struct {
	size int
}

type windowState struct {
	stream.Refusals
	recent *stream.Deque[record.Record]
	err    error
}

// Stream runs one complete bucket per window position once size records
// have arrived, over the last size records, oldest first.
func (win window) Stream(bucket BucketFactory) stream.Stream {
	return stream.Closures(windowState{recent: stream.NewDeque[record.Record](win.size)},
		func(s *windowState, e stream.Entry, w stream.Writer) bool {
			r, err := e.Parse()
			if err != nil {
				s.err = err
				return false
			}
			s.recent.PushBack(r)
			if win.size == 0 || !s.recent.Full() {
				return true
			}
			entries := make([]stream.Entry, 0, win.size)
			for _, r := range s.recent.Slice() {
				entries = append(entries, stream.RecordEntry(r))
			}
			if err := stream.Drive(bucket(nil), entries, s.Wrap(w)); err != nil {
				s.err = err
				return false
			}
			return !s.Refused
		},
		func(s *windowState, _ stream.Writer) error {
			return s.err
		},
	)
}
