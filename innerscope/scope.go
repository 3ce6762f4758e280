package innerscope

import (
	"context"
	"iter"
	"maps"
	"strings"
)

// Scope is the result of a captured invocation: the outer names the
// function was given, the bindings of its frame at exit and its return
// value. A Scope never changes after it is returned.
type Scope struct {
	outer    orderedVars
	inner    orderedVars
	result   Value
	producer *ScopedFunction
}

// Get returns name from the inner scope, falling back to the outer scope.
func (s *Scope) Get(name string) Value {
	val, _ := s.Lookup(name)
	return val
}

func (s *Scope) Lookup(name string) (Value, bool) {
	if val, ok := s.inner.Lookup(name); ok {
		return val, true
	}
	return s.outer.Lookup(name)
}

func (s *Scope) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Names lists the outer names in name order followed by the inner names in
// binding order.
func (s *Scope) Names() []string {
	names := make([]string, 0, s.Len())
	for name := range s.All() {
		names = append(names, name)
	}
	return names
}

func (s *Scope) Len() int {
	n := s.inner.Len()
	for _, name := range s.outer.names {
		if _, shadowed := s.inner.values[name]; !shadowed {
			n++
		}
	}
	return n
}

// All yields every visible binding, outer names first.
func (s *Scope) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, name := range s.outer.names {
			if _, shadowed := s.inner.values[name]; shadowed {
				continue
			}
			if !yield(name, s.outer.values[name]) {
				return
			}
		}
		for _, name := range s.inner.names {
			if !yield(name, s.inner.values[name]) {
				return
			}
		}
	}
}

// Equal reports whether m holds exactly the bindings of s. The return value
// is not compared.
func (s *Scope) Equal(m Mapping) bool {
	if m == nil {
		return false
	}
	if other, ok := m.(*Scope); ok && other == nil {
		return false
	}
	names := m.Names()
	if len(names) != s.Len() {
		return false
	}
	for _, name := range names {
		mine, ok := s.Lookup(name)
		if !ok {
			return false
		}
		theirs, _ := m.Lookup(name)
		if !mine.Equal(theirs) {
			return false
		}
	}
	return true
}

// ReturnValue is what the function would have returned from a plain call.
func (s *Scope) ReturnValue() Value {
	return s.result
}

func (s *Scope) Inner() Vars {
	return s.inner.vars()
}

func (s *Scope) Outer() Vars {
	return s.outer.vars()
}

// Map returns every visible binding as a fresh map.
func (s *Scope) Map() map[string]Value {
	return maps.Collect(s.All())
}

// BindTo wraps target with s as its outer mapping. The producer's closure,
// global and strategy settings carry over unless opts change them.
func (s *Scope) BindTo(target Target, opts ...Option) (*ScopedFunction, error) {
	p := defaultPolicy()
	if s.producer != nil {
		p = s.producer.policy
	}
	var layers []Mapping
	if parent, ok := target.(*ScopedFunction); ok && parent != nil {
		layers = append(layers, parent.outer)
	}
	layers = append(layers, s)
	return newScoped(target, p, layers, opts)
}

// Call binds s to target and invokes it.
func (s *Scope) Call(ctx context.Context, target Target, args Args) (*Scope, error) {
	sf, err := s.BindTo(target)
	if err != nil {
		return nil, err
	}
	return sf.Invoke(ctx, args)
}

// CallWith returns a func that binds s to a target and invokes it with args.
func (s *Scope) CallWith(args Args, opts ...Option) func(context.Context, Target) (*Scope, error) {
	return func(ctx context.Context, target Target) (*Scope, error) {
		sf, err := s.BindTo(target, opts...)
		if err != nil {
			return nil, err
		}
		return sf.Invoke(ctx, args)
	}
}

func (s *Scope) String() string {
	var b strings.Builder
	b.WriteString("Scope\n - ")
	b.WriteString(formatMappingField("outer_scope", s.outer))
	b.WriteString("\n - ")
	b.WriteString(formatMappingField("inner_scope", s.inner))
	b.WriteString("\n - return_value:")
	b.WriteString(formatReturnValue(s.result))
	return b.String()
}

const maxReprWidth = 80

func formatNameSet(names []string) string {
	return "{" + strings.Join(names, ", ") + "}"
}

func formatMapping(m orderedVars) string {
	parts := make([]string, len(m.names))
	for i, name := range m.names {
		parts[i] = name + ": " + m.values[name].Inspect()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// formatMappingField renders label: {k: v} or, when that is too wide or
// spans lines, label.keys(): {k}.
func formatMappingField(label string, m orderedVars) string {
	rendered := formatMapping(m)
	if len(label)+2+len(rendered) > maxReprWidth || strings.Contains(rendered, "\n") {
		return label + ".keys(): " + formatNameSet(m.names)
	}
	return label + ": " + rendered
}

func formatReturnValue(v Value) string {
	if v.Kind() == KindString && strings.Contains(v.String(), "\n") {
		return "\n" + v.String()
	}
	rendered := v.Inspect()
	if len(" - return_value: ")+len(rendered) > maxReprWidth {
		return "\n" + rendered
	}
	return " " + rendered
}
