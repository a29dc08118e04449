// Package bridge hands entries between a pipeline stage and background
// workers. The stage holds a Front and uses it like any other Stream; one
// worker drains the Reader and another feeds the Writer. All three handles
// share a single monitor, which is the only state touched by more than one
// goroutine.
//
//	front, in, out := bridge.New()
//	go func() { for e, ok := in.Read(); ok; e, ok = in.Read() { ... } }()
//	go func() { defer out.Close(); for ... { if !out.Write(e) { return } } }()
//	front.Write(e, downstream)
//	front.Close(downstream)
package bridge

import (
	"github.com/kbukum/recskit/monitor"
	"github.com/kbukum/recskit/stream"
)

type state struct {
	in       *stream.Deque[stream.Entry]
	capacity int
	out      *stream.Deque[stream.Entry]

	inClosed    bool // stage will send no more input
	rclosed     bool // reader wants no more input
	outClosed   bool // writer will send no more output
	outRejected bool // stage downstream refused output
}

// Option configures a bridge.
type Option func(*state)

// WithCapacity bounds the number of pending input entries. Front.Write
// blocks while the queue is full. Zero or negative means unbounded.
func WithCapacity(n int) Option {
	return func(s *state) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// New creates a connected front, reader and writer.
func New(opts ...Option) (*Front, *Reader, *Writer) {
	s := state{
		in:       stream.NewDeque[stream.Entry](stream.Unbounded),
		capacity: stream.Unbounded,
		out:      stream.NewDeque[stream.Entry](stream.Unbounded),
	}
	for _, opt := range opts {
		opt(&s)
	}
	m := monitor.New(s)
	return &Front{m: m}, &Reader{m: m}, &Writer{m: m}
}

// Front is the stage-side handle. It satisfies stream.Stream and must only
// be used from the stage's goroutine.
type Front struct {
	m *monitor.Monitor[state]
}

type frontStep struct {
	output []stream.Entry
	open   bool
}

// Write queues e for the reader and forwards any worker output that arrived
// since the last call. It returns false once the reader has called RClose
// or the downstream refused output.
func (f *Front) Write(e stream.Entry, w stream.Writer) bool {
	step := monitor.Wait(f.m, func(s *state) (frontStep, bool, bool) {
		if s.rclosed || s.outRejected {
			return frontStep{output: drain(s.out), open: false}, true, false
		}
		if s.capacity >= 0 && s.in.Len() >= s.capacity {
			return frontStep{}, false, false
		}
		s.in.PushBack(e)
		return frontStep{output: drain(s.out), open: true}, true, true
	})
	if !f.forward(step.output, w) {
		return false
	}
	return step.open
}

// Close marks the end of input and forwards worker output until the writer
// closes. Output refused by the downstream is discarded, but Close still
// waits for the writer so no worker is left blocked.
func (f *Front) Close(w stream.Writer) error {
	monitor.Write(f.m, func(s *state) struct{} {
		s.inClosed = true
		return struct{}{}
	})
	for {
		step := monitor.Wait(f.m, func(s *state) (frontStep, bool, bool) {
			if s.out.Len() > 0 {
				return frontStep{output: drain(s.out), open: true}, true, false
			}
			if s.outClosed {
				return frontStep{}, true, false
			}
			return frontStep{}, false, false
		})
		if !step.open {
			return nil
		}
		f.forward(step.output, w)
	}
}

// forward writes output to w outside the lock. The first refusal is
// recorded so the writer stops producing; the rest of the batch is dropped.
func (f *Front) forward(output []stream.Entry, w stream.Writer) bool {
	for _, e := range output {
		if !w(e) {
			monitor.Write(f.m, func(s *state) struct{} {
				s.outRejected = true
				s.out = stream.NewDeque[stream.Entry](stream.Unbounded)
				return struct{}{}
			})
			return false
		}
	}
	return true
}

func drain(d *stream.Deque[stream.Entry]) []stream.Entry {
	if d.Len() == 0 {
		return nil
	}
	out := d.Slice()
	for d.Len() > 0 {
		d.PopFront()
	}
	return out
}

// Reader is the worker-side handle consuming input.
type Reader struct {
	m *monitor.Monitor[state]
}

type readStep struct {
	entry stream.Entry
	ok    bool
}

// Read blocks until an entry is queued or input has ended. Entries come out
// in the order Front.Write queued them; ok is false once input is closed
// and drained, or after RClose.
func (r *Reader) Read() (stream.Entry, bool) {
	step := monitor.Wait(r.m, func(s *state) (readStep, bool, bool) {
		if s.rclosed {
			return readStep{}, true, false
		}
		if e, ok := s.in.PopFront(); ok {
			// wake a front blocked on a full queue
			return readStep{entry: e, ok: true}, true, s.capacity >= 0
		}
		if s.inClosed {
			return readStep{}, true, false
		}
		return readStep{}, false, false
	})
	return step.entry, step.ok
}

// RClose tells the stage that no more input is wanted. Pending input is
// dropped and later Front.Write calls return false.
func (r *Reader) RClose() {
	monitor.Write(r.m, func(s *state) struct{} {
		s.rclosed = true
		s.in = stream.NewDeque[stream.Entry](stream.Unbounded)
		return struct{}{}
	})
}

// Writer is the worker-side handle producing output.
type Writer struct {
	m *monitor.Monitor[state]
}

// Write queues e for the stage's downstream. It returns false once the
// downstream has refused output.
func (w *Writer) Write(e stream.Entry) bool {
	return monitor.Write(w.m, func(s *state) bool {
		if s.outRejected || s.outClosed {
			return false
		}
		s.out.PushBack(e)
		return true
	})
}

// Close signals that no more output will be written. Front.Close returns
// only after Close has been called.
func (w *Writer) Close() {
	monitor.Write(w.m, func(s *state) struct{} {
		s.outClosed = true
		return struct{}{}
	})
}
