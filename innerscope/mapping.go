package innerscope

import (
	"maps"
	"slices"
)

// Mapping is a read-only set of named values that can supply outer names to
// a ScopedFunction.
type Mapping interface {
	Lookup(name string) (Value, bool)
	Names() []string
}

// Vars is a plain Mapping. Names are reported in sorted order.
type Vars map[string]Value

func (v Vars) Lookup(name string) (Value, bool) {
	val, ok := v[name]
	return val, ok
}

func (v Vars) Names() []string {
	return slices.Sorted(maps.Keys(v))
}

// Args are the arguments of one captured invocation.
type Args struct {
	Positional []Value
	Keywords   map[string]Value
	Block      Value
}

// orderedVars is an immutable name/value list that keeps insertion order.
type orderedVars struct {
	names  []string
	values map[string]Value
}

func newOrderedVars(names []string, values map[string]Value) orderedVars {
	return orderedVars{names: names, values: values}
}

func (o orderedVars) Len() int {
	return len(o.names)
}

func (o orderedVars) Lookup(name string) (Value, bool) {
	val, ok := o.values[name]
	return val, ok
}

func (o orderedVars) Names() []string {
	return slices.Clone(o.names)
}

func (o orderedVars) vars() Vars {
	out := make(Vars, len(o.values))
	maps.Copy(out, o.values)
	return out
}
