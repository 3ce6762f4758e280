package main

import (
	"io"
	"strings"
	"testing"
)

func TestAnalyzeNoIssues(t *testing.T) {
	scriptPath := writeScript(t, `limit = 3

def run(step)
  value = limit + step
  value
end`)

	out, err := execute(t, "analyze", scriptPath)
	if err != nil {
		t.Fatalf("analyze failed: %v\n%s", err, out)
	}
	for _, want := range []string{
		"run(step)",
		"  params:   step",
		"  assigned: value",
		"  closure:  -",
		"  global:   limit",
		"  missing:  -",
		"No issues found",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestAnalyzeReportsIssues(t *testing.T) {
	scriptPath := writeScript(t, `def run()
  return 1
  x = 2
end

def other()
  y = z
end`)

	out, err := execute(t, "analyze", scriptPath)
	if err == nil {
		t.Fatalf("expected analysis issues error")
	}
	if !strings.Contains(err.Error(), "analysis found 2 issue(s)") {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "unreachable statement (run)") {
		t.Fatalf("expected unreachable warning, got:\n%s", out)
	}
	if !strings.Contains(out, "undefined names z (other)") {
		t.Fatalf("expected missing names warning, got:\n%s", out)
	}
}

func TestAnalyzeHonoursPolicy(t *testing.T) {
	scriptPath := writeScript(t, `limit = 3

def run
  limit
end`)
	configPath := writeFile(t, "innerscope.toml", "use_globals = false\n")

	out, err := execute(t, "--config", configPath, "analyze", scriptPath)
	if err == nil {
		t.Fatalf("expected missing global to be reported")
	}
	if !strings.Contains(out, "  missing:  limit") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestAnalyzeScriptWarningsNested(t *testing.T) {
	engine, err := defaultSettings().newEngine(io.Discard, io.Discard)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	script, err := engine.Compile(`def run(flag)
  def helper
    return 2
    dead = 3
  end
  if flag
    return 1
  else
    raise "no"
  end
  after = 1
end`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	warnings := analyzeScriptWarnings(script)
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %+v", warnings)
	}
	if warnings[0].Function != "run.helper" || warnings[0].Pos.Line != 4 {
		t.Fatalf("unexpected first warning %+v", warnings[0])
	}
	if warnings[1].Function != "run" || warnings[1].Pos.Line != 11 {
		t.Fatalf("unexpected second warning %+v", warnings[1])
	}
}
