// Package stream provides the push-based execution model shared by every
// recs stage.
//
// A Stream accepts entries one at a time through Write and is finished with
// exactly one Close. Both receive a Writer, the callback a stage uses to push
// entries further down the pipeline. Flow control is cooperative:
//
//   - Write returns false when the stage wants no more input.
//   - A Writer returns false when the downstream wants no more input.
//
// Neither signal closes anything. The owner of a Stream always calls Close,
// which flushes buffered entries and releases resources.
//
// # Building stages
//
// Closures is the single extension point: an initial state, a per-entry
// handler and a finalizer.
//
//	head := stream.Closures(10,
//	    func(n *int, e stream.Entry, w stream.Writer) bool {
//	        if *n == 0 {
//	            return false
//	        }
//	        *n--
//	        return w(e)
//	    },
//	    func(_ *int, _ stream.Writer) error { return nil },
//	)
//
// Compound reshapes entries before they reach another stream, Chain feeds
// one stream's output into the next, and Drive runs a private sub-pipeline
// to completion (used by window and expand-files style stages).
package stream
