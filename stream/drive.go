package stream

// Drive runs s to completion over entries: it writes them in order until s
// asks to stop, then closes s. Used for private sub-pipelines whose flow
// signal must not leak into the owner's.
func Drive(s Stream, entries []Entry, w Writer) error {
	for _, e := range entries {
		if !s.Write(e, w) {
			break
		}
	}
	return s.Close(w)
}

// Collector gathers entries written to it. A positive Limit makes the
// Writer return false once Limit entries have been accepted.
type Collector struct {
	Entries []Entry
	Limit   int
}

// Writer returns a Writer appending to c.
func (c *Collector) Writer() Writer {
	return func(e Entry) bool {
		if c.Limit > 0 && len(c.Entries) >= c.Limit {
			return false
		}
		c.Entries = append(c.Entries, e)
		return c.Limit <= 0 || len(c.Entries) < c.Limit
	}
}

// Lines returns the collected entries deparsed.
func (c *Collector) Lines() []string {
	out := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		out[i] = e.Deparse()
	}
	return out
}

// Lines wraps each string as a LineEntry.
func Lines(lines ...string) []Entry {
	out := make([]Entry, len(lines))
	for i, l := range lines {
		out[i] = LineEntry(l)
	}
	return out
}

// Refusals remembers whether a downstream Writer ever refused an entry.
// Stages that own private sub-streams use it to tell a sub-stream stopping
// on its own apart from the real downstream asking them to stop.
type Refusals struct {
	Refused bool
}

// Wrap returns w, recording refusals in r.
func (r *Refusals) Wrap(w Writer) Writer {
	return func(e Entry) bool {
		if !w(e) {
			r.Refused = true
			return false
		}
		return true
	}
}
