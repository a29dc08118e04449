package registry

import (
	"fmt"
	"strings"

	"github.com/kbukum/recskit/errors"
	"github.com/kbukum/recskit/logger"
)

// Entry is one catalog entry with its argument type erased.
type Entry[H any] struct {
	names    []string
	help     string
	argCount int
	meta     string
	init     func(args []string) (H, error)
}

// Register declares a catalog entry. The arguments given at Init time are
// checked against args.Count, converted by args.Parse and handed to init.
func Register[H, A any](names []string, help string, args ArgParser[A], init func(A) H) *Entry[H] {
	return &Entry[H]{
		names:    names,
		help:     help,
		argCount: args.Count(),
		meta:     args.Meta(),
		init: func(raw []string) (H, error) {
			a, err := args.Parse(raw)
			if err != nil {
				var zero H
				return zero, err
			}
			return init(a), nil
		},
	}
}

// Name returns the primary alias.
func (e *Entry[H]) Name() string { return e.names[0] }

// Names returns every alias in declaration order.
func (e *Entry[H]) Names() []string {
	return append([]string(nil), e.names...)
}

// Help returns the one-line description.
func (e *Entry[H]) Help() string { return e.help }

// ArgCount is the number of raw argument tokens the entry consumes.
func (e *Entry[H]) ArgCount() int { return e.argCount }

// Usage renders the aliases and argument placeholders, e.g. "window|win,COUNT".
func (e *Entry[H]) Usage() string {
	u := strings.Join(e.names, "|")
	if e.meta != "" {
		u += "," + e.meta
	}
	return u
}

// Init builds a handle from raw argument tokens.
func (e *Entry[H]) Init(args []string) (H, error) {
	if len(args) != e.argCount {
		var zero H
		err := errors.InvalidInput(
			fmt.Sprintf("expected %d argument(s), got %d", e.argCount, len(args)), args...,
		)
		return zero, err.WithLabel(e.Name())
	}
	h, err := e.init(args)
	if err != nil {
		var zero H
		return zero, errors.Label(err, e.Name())
	}
	return h, nil
}

// Registry is the immutable catalog of one plugin family.
type Registry[H any] struct {
	family  string
	entries []*Entry[H]
	byName  map[string]*Entry[H]
}

// New builds a registry from a catalog. It fails if an alias is declared
// more than once.
func New[H any](family string, catalog ...*Entry[H]) (*Registry[H], error) {
	r := &Registry[H]{
		family:  family,
		entries: catalog,
		byName:  make(map[string]*Entry[H]),
	}
	for _, e := range catalog {
		for _, name := range e.names {
			if _, dup := r.byName[name]; dup {
				return nil, errors.CatalogCollision(family, name)
			}
			r.byName[name] = e
		}
	}
	logger.Get("registry").Debug("catalog built", map[string]interface{}{
		"family":  family,
		"entries": len(catalog),
		"aliases": len(r.byName),
	})
	return r, nil
}

// MustNew is New for statically declared catalogs; a collision panics.
func MustNew[H any](family string, catalog ...*Entry[H]) *Registry[H] {
	r, err := New(family, catalog...)
	if err != nil {
		panic(err)
	}
	return r
}

// Family returns the family name used in messages, e.g. "aggregator".
func (r *Registry[H]) Family() string { return r.family }

// Lookup finds an entry by exact alias.
func (r *Registry[H]) Lookup(name string) (*Entry[H], error) {
	e, ok := r.byName[name]
	if !ok {
		return nil, errors.NotFound(r.family, name)
	}
	return e, nil
}

// Init looks up name and builds a handle from args.
func (r *Registry[H]) Init(name string, args []string) (H, error) {
	e, err := r.Lookup(name)
	if err != nil {
		var zero H
		return zero, err
	}
	return e.Init(args)
}

// Parse builds a handle from the comma form "name,arg1,arg2".
func (r *Registry[H]) Parse(spec string) (H, error) {
	parts := strings.Split(spec, ",")
	return r.Init(parts[0], parts[1:])
}

// Entries returns the catalog in declaration order.
func (r *Registry[H]) Entries() []*Entry[H] {
	return append([]*Entry[H](nil), r.entries...)
}

// Help renders one line per entry: usage and description.
func (r *Registry[H]) Help() []string {
	width := 0
	for _, e := range r.entries {
		if n := len(e.Usage()); n > width {
			width = n
		}
	}
	lines := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		lines = append(lines, fmt.Sprintf("%-*s  %s", width, e.Usage(), e.help))
	}
	return lines
}
