package record

import (
	"strconv"
	"strings"
)

type segment struct {
	key   string
	index int
	isIdx bool
}

func parsePath(path string) []segment {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, "/")
	segs := make([]segment, 0, len(parts))
	for _, p := range parts {
		if strings.HasPrefix(p, "#") {
			if n, err := strconv.Atoi(p[1:]); err == nil && n >= 0 {
				segs = append(segs, segment{index: n, isIdx: true})
				continue
			}
		}
		segs = append(segs, segment{key: p})
	}
	return segs
}

// Get looks up a slash-separated path. Missing paths yield null.
func (r Record) Get(path string) Record {
	v := r.v
	for _, s := range parsePath(path) {
		switch t := v.(type) {
		case map[string]any:
			if s.isIdx {
				return Null()
			}
			v = t[s.key]
		case []any:
			if !s.isIdx || s.index >= len(t) {
				return Null()
			}
			v = t[s.index]
		default:
			return Null()
		}
	}
	return Record{v: v}
}

// Set assigns value at path, creating intermediate objects and arrays.
// Set mutates the record in place.
func (r *Record) Set(path string, value Record) {
	r.v = setValue(r.v, parsePath(path), value.v)
}

func setValue(cur any, segs []segment, value any) any {
	if len(segs) == 0 {
		return value
	}
	s := segs[0]
	if s.isIdx {
		a, ok := cur.([]any)
		if !ok {
			a = nil
		}
		for len(a) <= s.index {
			a = append(a, nil)
		}
		a[s.index] = setValue(a[s.index], segs[1:], value)
		return a
	}
	o, ok := cur.(map[string]any)
	if !ok {
		o = map[string]any{}
	}
	o[s.key] = setValue(o[s.key], segs[1:], value)
	return o
}
