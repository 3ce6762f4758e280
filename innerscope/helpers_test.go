package innerscope

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
)

// valueComparer lets cmp diff Values through Value.Equal.
var valueComparer = cmp.Comparer(func(a, b Value) bool { return a.Equal(b) })

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Output == nil {
		cfg.Output = io.Discard
	}
	engine, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func compileScript(t *testing.T, source string) *Script {
	t.Helper()
	script, err := newTestEngine(t, Config{}).Compile(source)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	return script
}

func mustFunction(t *testing.T, script *Script, name string) *ScriptFunction {
	t.Helper()
	fn, ok := script.Function(name)
	if !ok {
		t.Fatalf("function %s not found", name)
	}
	return fn
}

func callFunc(t *testing.T, script *Script, name string, args ...Value) Value {
	t.Helper()
	result, err := script.Call(context.Background(), name, args, CallOptions{})
	if err != nil {
		t.Fatalf("call %s failed: %v", name, err)
	}
	return result
}

func captureFunc(t *testing.T, target Target, args ...Value) *Scope {
	t.Helper()
	scope, err := Call(context.Background(), target, Args{Positional: args})
	if err != nil {
		t.Fatalf("capture failed: %v", err)
	}
	return scope
}

func assertVars(t *testing.T, got Vars, want Vars) {
	t.Helper()
	if diff := cmp.Diff(want, got, valueComparer); diff != "" {
		t.Fatalf("vars mismatch (-want +got):\n%s", diff)
	}
}

func ints(pairs ...any) Vars {
	out := make(Vars, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out[pairs[i].(string)] = NewInt(int64(pairs[i+1].(int)))
	}
	return out
}
