package render

import (
	"slices"

	"znkr.io/doxymd/generator/dom"
)

// LinesFunc renders a node in block mode. The returned lines must not contain line breaks, an
// empty string is a blank line.
type LinesFunc func(r *Renderer, n *dom.Node) []string

// StringFunc renders a node in inline mode. The returned string must not contain line breaks.
type StringFunc func(r *Renderer, n *dom.Node) string

// Registerer is used to register renderers for a kind. Registering a renderer for an abstract
// kind makes it the default for all kinds that descend from it.
type Registerer interface {
	Lines(kind dom.Kind, fn LinesFunc)
	String(kind dom.Kind, fn StringFunc)
}

type registrations struct {
	lines   map[dom.Kind]LinesFunc
	strings map[dom.Kind]StringFunc
	dups    []dom.Kind
}

func (rs *registrations) Lines(kind dom.Kind, fn LinesFunc) {
	if _, ok := rs.lines[kind]; ok {
		rs.dups = append(rs.dups, kind)
	}
	rs.lines[kind] = fn
}

func (rs *registrations) String(kind dom.Kind, fn StringFunc) {
	if _, ok := rs.strings[kind]; ok {
		rs.dups = append(rs.dups, kind)
	}
	rs.strings[kind] = fn
}

// Registry maps every kind of a schema to its renderers. Lookups are exact; inheritance is
// resolved once when the registry is built.
type Registry struct {
	schema  *dom.Schema
	lines   map[dom.Kind]LinesFunc
	strings map[dom.Kind]StringFunc
}

// NewRegistry collects the registrations and flattens them over the schema: every known kind gets
// the renderers of the nearest kind in its ancestor chain that has one, separately for block and
// inline mode. It fails if a renderer is registered twice for the same kind and mode, or if
// [Registry.Check] fails.
func NewRegistry(schema *dom.Schema, register ...func(Registerer)) (*Registry, error) {
	rs := &registrations{
		lines:   make(map[dom.Kind]LinesFunc),
		strings: make(map[dom.Kind]StringFunc),
	}
	for _, fn := range register {
		fn(rs)
	}
	if len(rs.dups) > 0 {
		return nil, &ConfigError{Msg: "duplicate renderer registration", Kinds: rs.dups}
	}

	reg := &Registry{
		schema:  schema,
		lines:   make(map[dom.Kind]LinesFunc),
		strings: make(map[dom.Kind]StringFunc),
	}
	for _, k := range schema.Known() {
		for _, a := range schema.Chain(k) {
			if fn, ok := rs.lines[a]; ok {
				reg.lines[k] = fn
				break
			}
		}
		for _, a := range schema.Chain(k) {
			if fn, ok := rs.strings[a]; ok {
				reg.strings[k] = fn
				break
			}
		}
	}

	if err := reg.Check(schema); err != nil {
		return nil, err
	}
	return reg, nil
}

// LinesFunc returns the block renderer for kind.
func (reg *Registry) LinesFunc(kind dom.Kind) (LinesFunc, bool) {
	fn, ok := reg.lines[kind]
	return fn, ok
}

// StringFunc returns the inline renderer for kind.
func (reg *Registry) StringFunc(kind dom.Kind) (StringFunc, bool) {
	fn, ok := reg.strings[kind]
	return fn, ok
}

// Check verifies that every concrete kind of schema can be rendered in at least one mode and has
// a paragraph flow classification. The returned error is a [*ConfigError] that lists all
// offending kinds.
func (reg *Registry) Check(schema *dom.Schema) error {
	var missing, unclassified []dom.Kind
	for _, k := range schema.Concrete() {
		_, okl := reg.lines[k]
		_, oks := reg.strings[k]
		if !okl && !oks {
			missing = append(missing, k)
		}
		if _, ok := classify(schema, k); !ok {
			unclassified = append(unclassified, k)
		}
	}
	switch {
	case len(missing) > 0:
		return &ConfigError{Msg: "no renderer for kind", Kinds: missing}
	case len(unclassified) > 0:
		return &ConfigError{Msg: "no paragraph flow for kind", Kinds: unclassified}
	}
	return nil
}

// Kinds returns all kinds the registry has a renderer for, in sorted order.
func (reg *Registry) Kinds() []dom.Kind {
	var ret []dom.Kind
	for _, k := range reg.schema.Known() {
		_, okl := reg.lines[k]
		_, oks := reg.strings[k]
		if okl || oks {
			ret = append(ret, k)
		}
	}
	return slices.Clip(ret)
}
