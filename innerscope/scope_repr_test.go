package innerscope

import (
	"context"
	"strings"
	"testing"
)

func TestScopeString(t *testing.T) {
	script := compileScript(t, `x = "hello"

def f1
  x = "hi"
  nil
end

def f2
  y = "world"
  x + " " + y
end`)

	scope := captureFunc(t, mustFunction(t, script, "f1"))
	want := "Scope\n - outer_scope: {}\n - inner_scope: {x: \"hi\"}\n - return_value: nil"
	if got := scope.String(); got != want {
		t.Fatalf("unexpected repr:\n%s\nwant:\n%s", got, want)
	}

	scope = captureFunc(t, mustFunction(t, script, "f2"))
	want = "Scope\n - outer_scope: {x: \"hello\"}\n - inner_scope: {y: \"world\"}\n - return_value: \"hello world\""
	if got := scope.String(); got != want {
		t.Fatalf("unexpected repr:\n%s\nwant:\n%s", got, want)
	}
}

func TestScopeStringCollapsesLongValues(t *testing.T) {
	script := compileScript(t, `def f1
  y = 2 * x
  return "this\nhas\nnewlines"
end`)

	long := NewString(strings.Repeat("this name is too long", 10))
	sf, err := NewScopedFunction(mustFunction(t, script, "f1"), WithMappings(Vars{"x": long}))
	if err != nil {
		t.Fatalf("new scoped function: %v", err)
	}
	want := "ScopedFunction\n - func: f1()\n - inner_scope: {y}\n - outer_scope.keys(): {x}"
	if got := sf.String(); got != want {
		t.Fatalf("unexpected repr:\n%s\nwant:\n%s", got, want)
	}

	sf = sf.Bind(Vars{"x": NewInt(3)})
	scope, err := sf.Invoke(context.Background(), Args{})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	want = "Scope\n - outer_scope: {x: 3}\n - inner_scope: {y: 6}\n - return_value:\nthis\nhas\nnewlines"
	if got := scope.String(); got != want {
		t.Fatalf("unexpected repr:\n%s\nwant:\n%s", got, want)
	}
}

func TestScopedFunctionStringListsMissing(t *testing.T) {
	script := compileScript(t, `def f1(a, b)
  x = a + y
end`)

	sf, err := NewScopedFunction(mustFunction(t, script, "f1"))
	if err != nil {
		t.Fatalf("new scoped function: %v", err)
	}
	want := "ScopedFunction\n - func: f1(a, b)\n - inner_scope: {a, b, x}\n - outer_scope: {}\n - missing: {y}"
	if got := sf.String(); got != want {
		t.Fatalf("unexpected repr:\n%s\nwant:\n%s", got, want)
	}
}
