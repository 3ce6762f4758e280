package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mgomes/innerscope/innerscope"
)

// execute runs the command tree with args, isolated from any user config.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out, errOut bytes.Buffer
	root := newRootCommand(newApp())
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	writeFileAt(t, path, content)
	return path
}

func writeFileAt(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func writeScript(t *testing.T, content string) string {
	t.Helper()
	return writeFile(t, "script.is", content)
}

func TestRunPrintsScope(t *testing.T) {
	scriptPath := writeScript(t, `def run(name)
  greeting = "hello " + name
end`)

	out, err := execute(t, "run", scriptPath, "world")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	want := "Scope\n - outer_scope: {}\n - inner_scope: {name: \"world\", greeting: \"hello world\"}\n - return_value: \"hello world\"\n"
	if out != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", out, want)
	}
}

func TestRunSelectsFunction(t *testing.T) {
	scriptPath := writeScript(t, `def greet(name)
  puts("hi " + name)
  name
end`)

	out, err := execute(t, "run", "--function", "greet", "--strategy", "observe", scriptPath, "ada")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.HasPrefix(out, "hi ada\n") {
		t.Fatalf("expected puts output first, got %q", out)
	}
	if !strings.Contains(out, `inner_scope: {name: "ada"}`) {
		t.Fatalf("unexpected scope output: %q", out)
	}
}

func TestRunBindFilesLayerInOrder(t *testing.T) {
	scriptPath := writeScript(t, `def run
  total = limit * factor
end`)
	base := writeFile(t, "base.toml", "limit = 1\nfactor = 2\n")
	override := writeFile(t, "override.toml", "limit = 5\n")

	out, err := execute(t, "run", "--bind", base, "--bind", override, scriptPath)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out, "outer_scope: {factor: 2, limit: 5}") {
		t.Fatalf("unexpected outer scope: %q", out)
	}
	if !strings.Contains(out, "inner_scope: {total: 10}") {
		t.Fatalf("unexpected inner scope: %q", out)
	}
}

func TestRunReportsMissingNames(t *testing.T) {
	scriptPath := writeScript(t, `limit = 3

def run
  total = limit + extra
end`)

	_, err := execute(t, "run", scriptPath)
	var undefined *innerscope.UndefinedVariableError
	if !errors.As(err, &undefined) {
		t.Fatalf("expected UndefinedVariableError, got %v", err)
	}
	if len(undefined.Names) != 1 || undefined.Names[0] != "extra" {
		t.Fatalf("unexpected missing names: %v", undefined.Names)
	}

	_, err = execute(t, "run", "--no-globals", scriptPath)
	if !errors.As(err, &undefined) {
		t.Fatalf("expected UndefinedVariableError, got %v", err)
	}
	if strings.Join(undefined.Names, ",") != "extra,limit" {
		t.Fatalf("unexpected missing names with --no-globals: %v", undefined.Names)
	}
}

func TestRunCheckOnly(t *testing.T) {
	scriptPath := writeScript(t, `def run
  "ok"
end`)

	out, err := execute(t, "run", "--check", scriptPath)
	if err != nil {
		t.Fatalf("run --check failed: %v", err)
	}
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}
}

func TestRunErrors(t *testing.T) {
	scriptPath := writeScript(t, `def run
  1
end`)
	broken := writeScript(t, `def run(
end`)
	badBind := writeFile(t, "bad.toml", "limit = \n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing script", []string{"run"}, "requires at least 1 arg"},
		{"unknown function", []string{"run", "--function", "nope", scriptPath}, "function nope not found"},
		{"compile error", []string{"run", broken}, "compile failed"},
		{"bad bind file", []string{"run", "--bind", badBind, scriptPath}, "parsing bindings TOML"},
		{"bad strategy", []string{"--strategy", "sideways", "run", scriptPath}, "invalid configuration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestRunPropagatesScriptErrors(t *testing.T) {
	scriptPath := writeScript(t, `def run
  assert(false, "boom")
end`)

	_, err := execute(t, "run", scriptPath)
	var runtimeErr *innerscope.RuntimeError
	if !errors.As(err, &runtimeErr) {
		t.Fatalf("expected RuntimeError, got %v", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("unexpected error: %v", err)
	}
}
