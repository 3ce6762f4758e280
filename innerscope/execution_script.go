package innerscope

import (
	"context"
	"fmt"
	"slices"
)

// Script is a compiled program: its top-level functions and the module env
// holding its top-level assignments. It is immutable after Compile.
type Script struct {
	engine    *Engine
	functions map[string]*ScriptFunction
	order     []string
	root      *Env
	globals   *Env
	source    string
}

type CallOptions struct {
	// Globals shadow module-level names for this call only.
	Globals  map[string]Value
	Keywords map[string]Value
}

// Compile parses source, defines its functions and evaluates its top-level
// assignments, in order, into the module env.
func (e *Engine) Compile(source string) (*Script, error) {
	p := newParser(source)
	program, parseErrors := p.ParseProgram()
	if len(parseErrors) > 0 {
		return nil, combineErrors(parseErrors)
	}

	root := newEnvKind(nil, envBuiltins)
	for name, builtin := range e.builtins {
		root.Define(name, builtin)
	}
	script := &Script{
		engine:    e,
		functions: make(map[string]*ScriptFunction),
		root:      root,
		globals:   newEnvKind(root, envModule),
		source:    source,
	}

	var assigns []*AssignStmt
	for _, stmt := range program.Statements {
		switch s := stmt.(type) {
		case *FunctionStmt:
			if _, exists := script.functions[s.Name]; exists {
				return nil, fmt.Errorf("duplicate function %s", s.Name)
			}
			fn := &ScriptFunction{Name: s.Name, Params: s.Params, Body: s.Body, Pos: s.Pos(), Env: script.globals, decl: s, script: script}
			script.functions[s.Name] = fn
			script.order = append(script.order, s.Name)
			script.globals.Define(s.Name, NewFunction(fn))
		case *AssignStmt:
			if _, ok := s.Target.(*Identifier); !ok {
				return nil, fmt.Errorf("top-level assignment at %d:%d must target a name", s.Pos().Line, s.Pos().Column)
			}
			assigns = append(assigns, s)
		default:
			return nil, fmt.Errorf("unsupported top-level statement %T at %d:%d", stmt, stmt.Pos().Line, stmt.Pos().Column)
		}
	}

	if len(assigns) > 0 {
		exec := newExecution(context.Background(), script)
		for _, s := range assigns {
			val, err := exec.evalExpression(s.Value, script.globals)
			if err != nil {
				return nil, err
			}
			script.globals.Define(s.Target.(*Identifier).Name, val)
		}
	}

	e.log.Debug("compiled script", "functions", len(script.functions), "globals", len(assigns))
	return script, nil
}

// Function returns the named top-level function.
func (s *Script) Function(name string) (*ScriptFunction, bool) {
	fn, ok := s.functions[name]
	return fn, ok
}

// Functions returns the top-level functions in declaration order.
func (s *Script) Functions() []*ScriptFunction {
	out := make([]*ScriptFunction, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.functions[name])
	}
	return out
}

// Globals returns a copy of the module-level bindings, function values
// included.
func (s *Script) Globals() Vars {
	_, values := s.globals.snapshot()
	return Vars(values)
}

// Engine returns the engine that compiled the script.
func (s *Script) Engine() *Engine {
	return s.engine
}

func (s *Script) isBuiltin(name string) bool {
	_, ok := s.root.values[name]
	return ok
}

// Call invokes the named top-level function with a fresh Execution.
func (s *Script) Call(ctx context.Context, name string, args []Value, opts CallOptions) (Value, error) {
	fn, ok := s.functions[name]
	if !ok {
		return NewNil(), fmt.Errorf("function %s not found", name)
	}
	if len(opts.Globals) > 0 {
		if clone, ok := s.overlayGlobals(opts.Globals)[name]; ok {
			fn = clone
		}
	}

	exec := newExecution(ctx, s)
	return exec.invokeCallable(NewFunction(fn), NewNil(), args, opts.Keywords, NewNil(), fn.Pos)
}

// overlayGlobals clones the top-level functions onto an env that layers
// globals over the module env, so the overrides are visible to every
// function the call reaches.
func (s *Script) overlayGlobals(globals map[string]Value) map[string]*ScriptFunction {
	overlay := newEnvKind(s.globals, envModule)
	names := make([]string, 0, len(globals))
	for name := range globals {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		overlay.Define(name, globals[name])
	}

	clones := make(map[string]*ScriptFunction, len(s.functions))
	for _, name := range s.order {
		if _, shadowed := globals[name]; shadowed {
			continue
		}
		clone := *s.functions[name]
		clone.Env = overlay
		clones[name] = &clone
		overlay.Define(name, NewFunction(&clone))
	}
	return clones
}
