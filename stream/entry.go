package stream

import "github.com/kbukum/recskit/record"

// Entry is one unit flowing through a pipeline: either a raw line of text or
// an already-parsed record. Entries are values; copies share the record.
type Entry struct {
	line   string
	rec    record.Record
	isLine bool
}

// LineEntry wraps a raw line.
func LineEntry(line string) Entry {
	return Entry{line: line, isLine: true}
}

// RecordEntry wraps a parsed record.
func RecordEntry(r record.Record) Entry {
	return Entry{rec: r}
}

// IsLine reports whether the entry still holds raw text.
func (e Entry) IsLine() bool { return e.isLine }

// Parse returns the entry as a record, parsing a line on demand.
func (e Entry) Parse() (record.Record, error) {
	if e.isLine {
		return record.Parse(e.line)
	}
	return e.rec, nil
}

// Deparse returns the entry as text: lines verbatim, records as JSON.
func (e Entry) Deparse() string {
	if e.isLine {
		return e.line
	}
	return e.rec.Deparse()
}
