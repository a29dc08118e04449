package record

import (
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
	json "github.com/goccy/go-json"

	"github.com/kbukum/recskit/errors"
)

// Record is a JSON-shaped value. The zero Record is null.
type Record struct {
	v any
}

// Parse decodes one line of JSON into a Record.
func Parse(line string) (Record, error) {
	var v any
	if err := json.Unmarshal([]byte(line), &v); err != nil {
		return Record{}, errors.InvalidInput("malformed record").WithCause(err)
	}
	return Record{v: v}, nil
}

// Null returns the null record.
func Null() Record { return Record{} }

// String returns a string record.
func String(s string) Record { return Record{v: s} }

// Number returns a numeric record.
func Number(f float64) Record { return Record{v: f} }

// Bool returns a boolean record.
func Bool(b bool) Record { return Record{v: b} }

// Object returns an empty object record.
func Object() Record { return Record{v: map[string]any{}} }

// FromSlice builds an array record.
func FromSlice(rs []Record) Record {
	vs := make([]any, len(rs))
	for i, r := range rs {
		vs[i] = r.v
	}
	return Record{v: vs}
}

// FromMap builds an object record.
func FromMap(m map[string]Record) Record {
	o := make(map[string]any, len(m))
	for k, r := range m {
		o[k] = r.v
	}
	return Record{v: o}
}

// Value returns the underlying Go value.
func (r Record) Value() any { return r.v }

// IsNull reports whether the record is null.
func (r Record) IsNull() bool { return r.v == nil }

// IsObject reports whether the record is an object.
func (r Record) IsObject() bool {
	_, ok := r.v.(map[string]any)
	return ok
}

// Keys returns the sorted keys of an object record, or nil.
func (r Record) Keys() []string {
	o, ok := r.v.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Field returns the value of an object field by exact name, or null.
func (r Record) Field(name string) Record {
	o, ok := r.v.(map[string]any)
	if !ok {
		return Null()
	}
	return Record{v: o[name]}
}

// Elements returns the elements of an array record, or nil.
func (r Record) Elements() []Record {
	a, ok := r.v.([]any)
	if !ok {
		return nil
	}
	out := make([]Record, len(a))
	for i, v := range a {
		out[i] = Record{v: v}
	}
	return out
}

// Deparse encodes the record as canonical JSON (object keys sorted).
func (r Record) Deparse() string {
	b, err := json.Marshal(r.v)
	if err != nil {
		// only reachable for values not built by this package
		return "null"
	}
	return string(b)
}

// String implements fmt.Stringer.
func (r Record) String() string { return r.Deparse() }

// Equal reports value equality.
func (r Record) Equal(other Record) bool {
	return r.Deparse() == other.Deparse()
}

// Hash returns a 64-bit hash of the canonical encoding.
func (r Record) Hash() uint64 {
	return xxhash.Sum64String(r.Deparse())
}

// CoerceString converts the record to a string the way a user would type it.
func (r Record) CoerceString() string {
	switch v := r.v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return r.Deparse()
	}
}

// CoerceNumber converts the record to a number; unparsable values are 0.
func (r Record) CoerceNumber() float64 {
	switch v := r.v.(type) {
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	case bool:
		if v {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// Clone returns a deep copy.
func (r Record) Clone() Record {
	return Record{v: cloneValue(r.v)}
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		o := make(map[string]any, len(t))
		for k, e := range t {
			o[k] = cloneValue(e)
		}
		return o
	case []any:
		a := make([]any, len(t))
		for i, e := range t {
			a[i] = cloneValue(e)
		}
		return a
	default:
		return v
	}
}
