package stream

import "github.com/kbukum/recskit/record"

// Writer pushes an entry further down the pipeline. It returns false when
// the downstream no longer wants input.
type Writer func(Entry) bool

// Stream is a single-use pipeline stage.
type Stream interface {
	// Write accepts one entry, possibly emitting entries to w. It returns
	// false to ask the owner to stop sending input.
	Write(e Entry, w Writer) bool
	// Close is called exactly once after the last Write. It flushes any
	// buffered entries to w and releases resources.
	Close(w Writer) error
}

// Factory builds a fresh Stream. Factories are shared and may be called many
// times, e.g. once per window or per expanded file.
type Factory func() Stream

// Handler processes one entry against stage-local state.
type Handler[S any] func(s *S, e Entry, w Writer) bool

// Finalizer flushes stage-local state once input is exhausted.
type Finalizer[S any] func(s *S, w Writer) error

type closures[S any] struct {
	state   S
	onEntry Handler[S]
	onClose Finalizer[S]
	closed  bool
}

// Closures builds a Stream from an initial state, a per-entry handler and a
// finalizer. The handler runs once per entry in arrival order; the finalizer
// runs once, after the last handler call.
func Closures[S any](init S, onEntry Handler[S], onClose Finalizer[S]) Stream {
	return &closures[S]{state: init, onEntry: onEntry, onClose: onClose}
}

func (c *closures[S]) Write(e Entry, w Writer) bool {
	if c.closed {
		return false
	}
	return c.onEntry(&c.state, e, w)
}

func (c *closures[S]) Close(w Writer) error {
	if c.closed {
		return nil
	}
	c.closed = true
	if c.onClose == nil {
		return nil
	}
	return c.onClose(&c.state, w)
}

type compound struct {
	inner     Stream
	transform func(Entry) (Entry, error)
	err       error
}

// Compound applies transform to each entry before forwarding it to inner.
// Close forwards to inner unchanged. A transform error stops the compound;
// it is returned from Close after inner has been closed.
func Compound(inner Stream, transform func(Entry) (Entry, error)) Stream {
	return &compound{inner: inner, transform: transform}
}

func (c *compound) Write(e Entry, w Writer) bool {
	if c.err != nil {
		return false
	}
	te, err := c.transform(e)
	if err != nil {
		c.err = err
		return false
	}
	return c.inner.Write(te, w)
}

func (c *compound) Close(w Writer) error {
	err := c.inner.Close(w)
	if c.err != nil {
		return c.err
	}
	return err
}

// TransformRecords adapts a record transform for use with Compound.
func TransformRecords(f func(record.Record) record.Record) func(Entry) (Entry, error) {
	return func(e Entry) (Entry, error) {
		r, err := e.Parse()
		if err != nil {
			return Entry{}, err
		}
		return RecordEntry(f(r)), nil
	}
}

type chain struct {
	streams []Stream
}

// Chain connects streams in sequence: each stream's output is written to
// the next one, and the last stream writes to the caller's Writer.
func Chain(streams ...Stream) Stream {
	if len(streams) == 1 {
		return streams[0]
	}
	return &chain{streams: streams}
}

// writerAt returns the Writer feeding streams[i+1:], ending in w.
func (c *chain) writerAt(i int, w Writer) Writer {
	if i == len(c.streams)-1 {
		return w
	}
	next := c.writerAt(i+1, w)
	s := c.streams[i+1]
	return func(e Entry) bool {
		return s.Write(e, next)
	}
}

func (c *chain) Write(e Entry, w Writer) bool {
	return c.streams[0].Write(e, c.writerAt(0, w))
}

// Close closes streams front to back so each stage's flushed output still
// passes through the stages after it.
func (c *chain) Close(w Writer) error {
	var firstErr error
	for i, s := range c.streams {
		if err := s.Close(c.writerAt(i, w)); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type failed struct {
	err error
}

// Failed returns a Stream that refuses all input and reports err from Close.
// Stages use it when the resource they wrap cannot be opened.
func Failed(err error) Stream {
	return &failed{err: err}
}

func (f *failed) Write(Entry, Writer) bool { return false }

func (f *failed) Close(Writer) error { return f.err }
