package innerscope

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Option adjusts the policy of a ScopedFunction.
type Option func(*policy)

type policy struct {
	useClosures bool
	useGlobals  bool
	strategy    Strategy
	strategySet bool
	mappings    []Mapping
}

func defaultPolicy() policy {
	return policy{useClosures: true, useGlobals: true}
}

// WithClosures controls whether closure names missing from every mapping
// are filled from the function's enclosing frames.
func WithClosures(enabled bool) Option {
	return func(p *policy) { p.useClosures = enabled }
}

// WithGlobals controls whether global names missing from every mapping are
// filled from the defining script's module env.
func WithGlobals(enabled bool) Option {
	return func(p *policy) { p.useGlobals = enabled }
}

// WithStrategy picks the capture strategy instead of the engine default.
func WithStrategy(strategy Strategy) Option {
	return func(p *policy) {
		p.strategy = strategy
		p.strategySet = true
	}
}

// WithMappings layers mappings over the outer scope, later ones winning.
func WithMappings(mappings ...Mapping) Option {
	return func(p *policy) { p.mappings = append(p.mappings, mappings...) }
}

// ScopedFunction wraps a script function so that calling it returns the
// function's inner bindings as a Scope. It is immutable; Bind returns a new
// instance.
type ScopedFunction struct {
	fn      *ScriptFunction
	desc    *Descriptor
	policy  policy
	layers  []Mapping
	outer   orderedVars
	missing []string
}

// NewScopedFunction wraps target. When target is a ScopedFunction its
// resolved outer scope is the first layer and its policy is kept unless opts
// change it.
func NewScopedFunction(target Target, opts ...Option) (*ScopedFunction, error) {
	p := defaultPolicy()
	var layers []Mapping
	if parent, ok := target.(*ScopedFunction); ok && parent != nil {
		p = parent.policy
		layers = []Mapping{parent.outer}
	}
	return newScoped(target, p, layers, opts)
}

func newScoped(target Target, p policy, layers []Mapping, opts []Option) (*ScopedFunction, error) {
	fn, err := target.scriptFunction()
	if err != nil {
		return nil, err
	}
	p.mappings = nil
	for _, opt := range opts {
		opt(&p)
	}
	if !p.strategySet {
		p.strategy = fn.script.engine.config.Strategy
	}
	if !p.strategy.valid() {
		return nil, fmt.Errorf("innerscope: unknown strategy %d", int(p.strategy))
	}
	layers = append(layers, p.mappings...)
	p.mappings = nil
	return buildScoped(fn, p, layers), nil
}

func buildScoped(fn *ScriptFunction, p policy, layers []Mapping) *ScopedFunction {
	sf := &ScopedFunction{
		fn:     fn,
		desc:   fn.script.engine.describe(fn.decl),
		policy: p,
		layers: slices.DeleteFunc(layers, func(m Mapping) bool { return m == nil }),
	}
	sf.resolveOuter()
	return sf
}

// resolveOuter fills the outer scope for every free name: the last mapping
// holding it wins, then enclosing frames for closure names, then the module
// env for globals. Builtins are never missing.
func (sf *ScopedFunction) resolveOuter() {
	closure := make(map[string]bool, len(sf.desc.Closure))
	for _, name := range sf.desc.Closure {
		closure[name] = true
	}

	var names []string
	values := make(map[string]Value)
	sf.missing = []string{}
	for _, name := range sf.desc.Free() {
		val, ok := sf.lookupLayers(name)
		if !ok {
			switch {
			case closure[name] && sf.policy.useClosures:
				val, ok = sf.fn.Env.lookupLocal(name)
			case !closure[name] && sf.policy.useGlobals:
				val, ok = sf.fn.Env.lookupGlobal(name)
			}
		}
		if ok {
			names = append(names, name)
			values[name] = val
			continue
		}
		if sf.fn.script.isBuiltin(name) {
			continue
		}
		sf.missing = append(sf.missing, name)
	}
	sf.outer = newOrderedVars(names, values)
}

func (sf *ScopedFunction) lookupLayers(name string) (Value, bool) {
	for i := len(sf.layers) - 1; i >= 0; i-- {
		if val, ok := sf.layers[i].Lookup(name); ok {
			return val, true
		}
	}
	return Value{}, false
}

// Bind returns a copy of sf with mappings layered over its outer scope.
func (sf *ScopedFunction) Bind(mappings ...Mapping) *ScopedFunction {
	layers := append(slices.Clone(sf.layers), mappings...)
	return buildScoped(sf.fn, sf.policy, layers)
}

// Invoke runs the function and returns its inner scope. The function's own
// errors are returned unchanged.
func (sf *ScopedFunction) Invoke(ctx context.Context, args Args) (*Scope, error) {
	exec := newExecution(ctx, sf.fn.script)
	return exec.invokeScoped(sf, args)
}

// Call is an alias for Invoke.
func (sf *ScopedFunction) Call(ctx context.Context, args Args) (*Scope, error) {
	return sf.Invoke(ctx, args)
}

func (exec *Execution) invokeScoped(sf *ScopedFunction, args Args) (*Scope, error) {
	if len(sf.missing) > 0 {
		return nil, &UndefinedVariableError{Names: slices.Clone(sf.missing)}
	}

	// Without globals only builtins sit above the outer scope.
	parent := sf.fn.script.root
	if sf.policy.useGlobals {
		parent = sf.fn.Env.moduleEnv()
		if parent == nil {
			parent = sf.fn.script.globals
		}
	}
	outerEnv := newEnvKind(parent, envOuter)
	for _, name := range sf.outer.names {
		outerEnv.Define(name, sf.outer.values[name])
	}
	frame := newFrameEnv(outerEnv)
	frame.Define(blockSlot, args.Block)
	if err := exec.bindFunctionArgs(sf.fn, frame, args.Positional, args.Keywords, sf.fn.Pos); err != nil {
		return nil, err
	}

	export, used, err := exec.runStrategy(sf.policy.strategy, sf.fn, frame, sf.fn.Pos)
	if err != nil {
		return nil, err
	}
	scope := &Scope{
		outer:    sf.outer,
		inner:    newOrderedVars(export.names, export.values),
		result:   export.result,
		producer: sf,
	}
	exec.engine.log.Debug("captured scope",
		"function", sf.fn.Name,
		"strategy", used,
		"inner", strings.Join(export.names, ","))
	return scope, nil
}

// capture runs fn with the default policy on exec, sharing its step budget
// and call stack.
func (exec *Execution) capture(fn *ScriptFunction, args Args) (*Scope, error) {
	sf, err := NewScopedFunction(fn)
	if err != nil {
		return nil, err
	}
	return exec.invokeScoped(sf, args)
}

// Function returns the wrapped function.
func (sf *ScopedFunction) Function() *ScriptFunction {
	return sf.fn
}

// Strategy returns the capture strategy the function runs with.
func (sf *ScopedFunction) Strategy() Strategy {
	return sf.policy.strategy
}

// Missing returns the sorted outer names no mapping or policy supplies.
func (sf *ScopedFunction) Missing() []string {
	return slices.Clone(sf.missing)
}

// Outer returns the resolved outer scope.
func (sf *ScopedFunction) Outer() Vars {
	return sf.outer.vars()
}

// InnerNames returns the sorted names the function binds itself.
func (sf *ScopedFunction) InnerNames() []string {
	return sf.desc.Locals()
}

func (sf *ScopedFunction) Descriptor() *Descriptor {
	return sf.desc.clone()
}

func (sf *ScopedFunction) scriptFunction() (*ScriptFunction, error) {
	if sf == nil {
		return nil, &UnsupportedCallableError{Name: "<nil>", Reason: "nil scoped function"}
	}
	return sf.fn, nil
}

func (sf *ScopedFunction) String() string {
	var b strings.Builder
	b.WriteString("ScopedFunction\n - func: ")
	b.WriteString(sf.fn.Signature())
	b.WriteString("\n - inner_scope: ")
	b.WriteString(formatNameSet(sf.InnerNames()))
	b.WriteString("\n - ")
	b.WriteString(formatMappingField("outer_scope", sf.outer))
	if len(sf.missing) > 0 {
		b.WriteString("\n - missing: ")
		b.WriteString(formatNameSet(sf.missing))
	}
	return b.String()
}
