package innerscope

type envKind int

const (
	envBlock envKind = iota
	envFrame
	envOuter
	envModule
	envBuiltins
)

// Env is one link of a lexical scope chain. Values remember the order in
// which names were first defined so frame snapshots are stable.
type Env struct {
	parent *Env
	kind   envKind
	values map[string]Value
	order  []string
}

func newEnv(parent *Env) *Env {
	return newEnvKind(parent, envBlock)
}

func newFrameEnv(parent *Env) *Env {
	return newEnvKind(parent, envFrame)
}

func newEnvKind(parent *Env, kind envKind) *Env {
	return &Env{parent: parent, kind: kind, values: make(map[string]Value)}
}

func (e *Env) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if val, ok := env.values[name]; ok {
			return val, true
		}
	}
	return Value{}, false
}

func (e *Env) Define(name string, val Value) {
	if _, ok := e.values[name]; !ok {
		e.order = append(e.order, name)
	}
	e.values[name] = val
}

// Assign rebinds name in the nearest env up to and including the enclosing
// frame, or defines it in that frame. Module and builtin envs are never
// written through.
func (e *Env) Assign(name string, val Value) {
	for env := e; env != nil; env = env.parent {
		if env.kind > envFrame {
			break
		}
		if _, ok := env.values[name]; ok {
			env.values[name] = val
			return
		}
		if env.kind == envFrame {
			env.Define(name, val)
			return
		}
	}
	e.Define(name, val)
}

// frameEnv returns the frame env enclosing e, or nil outside any call.
func (e *Env) frameEnv() *Env {
	for env := e; env != nil; env = env.parent {
		switch env.kind {
		case envFrame:
			return env
		case envBlock:
			continue
		default:
			return nil
		}
	}
	return nil
}

// lookupLocal resolves name through block and frame envs only.
func (e *Env) lookupLocal(name string) (Value, bool) {
	for env := e; env != nil && env.kind <= envFrame; env = env.parent {
		if val, ok := env.values[name]; ok {
			return val, true
		}
	}
	return Value{}, false
}

// lookupGlobal resolves name in the outer and module envs above e, skipping
// locals and stopping before builtins.
func (e *Env) lookupGlobal(name string) (Value, bool) {
	for env := e; env != nil && env.kind != envBuiltins; env = env.parent {
		if env.kind <= envFrame {
			continue
		}
		if val, ok := env.values[name]; ok {
			return val, true
		}
	}
	return Value{}, false
}

// moduleEnv returns the nearest module env at or above e.
func (e *Env) moduleEnv() *Env {
	for env := e; env != nil; env = env.parent {
		if env.kind == envModule {
			return env
		}
	}
	return nil
}

// snapshot copies the env's own bindings in definition order.
func (e *Env) snapshot() ([]string, map[string]Value) {
	names := make([]string, 0, len(e.order))
	values := make(map[string]Value, len(e.order))
	for _, name := range e.order {
		if name == blockSlot {
			continue
		}
		names = append(names, name)
		values[name] = e.values[name]
	}
	return names, values
}

const blockSlot = "__block__"
