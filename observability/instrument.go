package observability

import (
	"context"
	"time"

	"github.com/kbukum/recskit/stream"
)

type instrumented struct {
	name    string
	inner   stream.Stream
	metrics *StageMetrics
}

// Instrument wraps s so that entries written to it and emitted by it are
// counted under the stage name, using instruments on the global meter.
func Instrument(name string, s stream.Stream) stream.Stream {
	m := stageMetrics()
	if m == nil {
		return s
	}
	return m.Instrument(name, s)
}

// Instrument wraps s, recording on m.
func (m *StageMetrics) Instrument(name string, s stream.Stream) stream.Stream {
	return &instrumented{name: name, inner: s, metrics: m}
}

func (i *instrumented) counting(w stream.Writer) stream.Writer {
	return func(e stream.Entry) bool {
		i.metrics.entriesOut.Add(context.Background(), 1, stageAttrs(i.name))
		return w(e)
	}
}

func (i *instrumented) Write(e stream.Entry, w stream.Writer) bool {
	i.metrics.entriesIn.Add(context.Background(), 1, stageAttrs(i.name))
	return i.inner.Write(e, i.counting(w))
}

func (i *instrumented) Close(w stream.Writer) error {
	start := time.Now()
	err := i.inner.Close(i.counting(w))
	ctx := context.Background()
	i.metrics.closeDuration.Record(ctx, time.Since(start).Seconds(), stageAttrs(i.name))
	if err != nil {
		i.metrics.errorTotal.Add(ctx, 1, stageAttrs(i.name))
	}
	return err
}
