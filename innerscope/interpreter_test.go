package innerscope

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCompileAndCallAdd(t *testing.T) {
	script := compileScript(t, `def add(a, b)
  a + b
end`)

	result := callFunc(t, script, "add", NewInt(2), NewInt(3))
	if result.Kind() != KindInt || result.Int() != 5 {
		t.Fatalf("expected 5, got %s", result.Inspect())
	}
}

func TestDefaultAndKeywordArguments(t *testing.T) {
	script := compileScript(t, `def greet(name, greeting = "hello")
  greeting + ", " + name
end`)

	if got := callFunc(t, script, "greet", NewString("bob")); got.String() != "hello, bob" {
		t.Fatalf("unexpected default greeting %q", got.String())
	}

	result, err := script.Call(context.Background(), "greet", []Value{NewString("bob")}, CallOptions{
		Keywords: map[string]Value{"greeting": NewString("hi")},
	})
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if result.String() != "hi, bob" {
		t.Fatalf("unexpected keyword greeting %q", result.String())
	}

	_, err = script.Call(context.Background(), "greet", nil, CallOptions{})
	if err == nil || !strings.Contains(err.Error(), "missing argument name") {
		t.Fatalf("expected missing argument error, got %v", err)
	}

	_, err = script.Call(context.Background(), "greet", []Value{NewString("bob")}, CallOptions{
		Keywords: map[string]Value{"tone": NewString("loud")},
	})
	if err == nil || !strings.Contains(err.Error(), "unexpected keyword argument tone") {
		t.Fatalf("expected unexpected keyword error, got %v", err)
	}
}

func TestModuleGlobalsAndOverrides(t *testing.T) {
	script := compileScript(t, `rate = 3
label = "x" + rate.to_s

def scale(x)
  x * rate
end

def describe
  label + ":" + scale(2).to_s
end`)

	if got := callFunc(t, script, "scale", NewInt(4)); got.Int() != 12 {
		t.Fatalf("expected 12, got %s", got.Inspect())
	}

	result, err := script.Call(context.Background(), "describe", nil, CallOptions{
		Globals: map[string]Value{"rate": NewInt(10)},
	})
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if result.String() != "x3:20" {
		t.Fatalf("expected override to reach nested call, got %q", result.String())
	}

	globals := script.Globals()
	if globals["rate"].Int() != 3 {
		t.Fatalf("override leaked into module globals: %s", globals["rate"].Inspect())
	}
	if globals["scale"].Kind() != KindFunction {
		t.Fatalf("expected function value for scale, got %s", globals["scale"].Kind())
	}
}

func TestBlocksAndYield(t *testing.T) {
	script := compileScript(t, `def total(items)
  sum = 0
  items.each do |item|
    sum = sum + item
  end
  sum
end

def twice
  yield(1) + yield(2)
end

def run
  twice() do |x|
    x * 10
  end
end`)

	items := NewArray([]Value{NewInt(1), NewInt(2), NewInt(3)})
	if got := callFunc(t, script, "total", items); got.Int() != 6 {
		t.Fatalf("expected 6, got %s", got.Inspect())
	}
	if got := callFunc(t, script, "run"); got.Int() != 30 {
		t.Fatalf("expected 30, got %s", got.Inspect())
	}

	_, err := script.Call(context.Background(), "twice", nil, CallOptions{})
	if err == nil || !strings.Contains(err.Error(), "no block given") {
		t.Fatalf("expected missing block error, got %v", err)
	}
}

func TestLoopsAndConditionals(t *testing.T) {
	script := compileScript(t, `def odd_total
  total = 0
  for i in 1..10
    if i % 2 == 0
      next
    end
    if i > 7
      break
    end
    total = total + i
  end
  total
end

def countdown(n)
  steps = 0
  while n > 0
    n = n - 1
    steps = steps + 1
  end
  steps
end

def grade(score)
  if score >= 90
    "a"
  elsif score >= 80
    "b"
  else
    "c"
  end
end`)

	if got := callFunc(t, script, "odd_total"); got.Int() != 16 {
		t.Fatalf("expected 16, got %s", got.Inspect())
	}
	if got := callFunc(t, script, "countdown", NewInt(5)); got.Int() != 5 {
		t.Fatalf("expected 5, got %s", got.Inspect())
	}
	for score, want := range map[int64]string{95: "a", 85: "b", 10: "c"} {
		if got := callFunc(t, script, "grade", NewInt(score)); got.String() != want {
			t.Fatalf("grade(%d) = %q, want %q", score, got.String(), want)
		}
	}
}

func TestOperatorsAndCollections(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Value
	}{
		{"integer division", "7 / 2", NewInt(3)},
		{"float division", "7.0 / 2", NewFloat(3.5)},
		{"modulo", "7 % 3", NewInt(1)},
		{"mixed equality", "2 == 2.0", NewBool(true)},
		{"string concat", `"ab" + "cd"`, NewString("abcd")},
		{"negative index", "[1, 2, 3][-1]", NewInt(3)},
		{"out of range index", "[1, 2, 3][5]", NewNil()},
		{"hash member", "{name: \"x\", count: 2}.count", NewInt(2)},
		{"hash keys", "{b: 1, a: 2}.keys", NewArray([]Value{NewSymbol("a"), NewSymbol("b")})},
		{"short circuit or", "nil || 5", NewInt(5)},
		{"short circuit and", "false && missing", NewBool(false)},
		{"range to_a", "(1..3).to_a", NewArray([]Value{NewInt(1), NewInt(2), NewInt(3)})},
		{"array sum", "[1, 2, 3].sum", NewInt(6)},
		{"string upcase", `"hi".upcase`, NewString("HI")},
		{"builtin max", "max(3, 9, 4)", NewInt(9)},
		{"builtin len", `len("héllo")`, NewInt(5)},
		{"reduce", "[1, 2, 3].reduce(10) do |acc, n|\n    acc + n\n  end", NewInt(16)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := compileScript(t, "def run\n  "+tt.body+"\nend")
			got := callFunc(t, script, "run")
			if !got.Equal(tt.want) {
				t.Fatalf("expected %s, got %s", tt.want.Inspect(), got.Inspect())
			}
		})
	}
}

func TestNestedFunctionsCloseOverFrame(t *testing.T) {
	script := compileScript(t, `def outer(a)
  def inner(b)
    a + b
  end
  inner(10)
end`)

	if got := callFunc(t, script, "outer", NewInt(1)); got.Int() != 11 {
		t.Fatalf("expected 11, got %s", got.Inspect())
	}
}

func TestRuntimeErrors(t *testing.T) {
	script := compileScript(t, `def boom
  raise "boom"
end

def caller
  boom()
end

def undefined
  missing + 1
end

def check
  assert 1 == 2, "nope"
end`)

	_, err := script.Call(context.Background(), "caller", nil, CallOptions{})
	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) {
		t.Fatalf("expected RuntimeError, got %T", err)
	}
	if rtErr.Message != "boom" {
		t.Fatalf("unexpected message %q", rtErr.Message)
	}
	if len(rtErr.Frames) < 2 || rtErr.Frames[0].Function != "boom" {
		t.Fatalf("unexpected frames %+v", rtErr.Frames)
	}
	if !strings.Contains(err.Error(), "at caller") {
		t.Fatalf("expected caller frame in trace, got %q", err.Error())
	}

	_, err = script.Call(context.Background(), "undefined", nil, CallOptions{})
	if err == nil || !strings.Contains(err.Error(), "undefined variable missing") {
		t.Fatalf("expected undefined variable error, got %v", err)
	}

	_, err = script.Call(context.Background(), "check", nil, CallOptions{})
	if !errors.As(err, &rtErr) || rtErr.Type != runtimeErrorTypeAssertion {
		t.Fatalf("expected assertion error, got %v", err)
	}
	if rtErr.Message != "nope" {
		t.Fatalf("unexpected assertion message %q", rtErr.Message)
	}
}

func TestPutsWritesToConfiguredOutput(t *testing.T) {
	var out bytes.Buffer
	engine := newTestEngine(t, Config{Output: &out})
	script, err := engine.Compile(`def run
  puts("total", 3, :ok)
end`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if _, err := script.Call(context.Background(), "run", nil, CallOptions{}); err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if out.String() != "total 3 ok\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestCompileRejectsInvalidTopLevel(t *testing.T) {
	engine := newTestEngine(t, Config{})
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"duplicate function", "def a\nend\ndef a\nend", "duplicate function a"},
		{"top-level call", "puts(1)", "unsupported top-level statement"},
		{"top-level index assignment", "x = [1]\nx[0] = 2", "must target a name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Compile(tt.source)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q, got %v", tt.want, err)
			}
		})
	}
}

func TestNewEngineValidatesConfig(t *testing.T) {
	if _, err := NewEngine(Config{StepQuota: -1}); err == nil {
		t.Fatalf("expected error for negative step quota")
	}
	if _, err := NewEngine(Config{Strategy: Strategy(9)}); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
	engine := newTestEngine(t, Config{})
	if summary := engine.ConfigSummary(); summary != "steps=50000 recursion=64 strategy=auto" {
		t.Fatalf("unexpected summary %q", summary)
	}
}
