package main

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadSettingsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	s, err := loadSettings(newViper(), "")
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if diff := cmp.Diff(defaultSettings(), s); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSettingsSources(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	userConfig := filepath.Join(configHome, appName, configFileName+"."+configFileExt)
	writeFileAt(t, userConfig, "strategy = \"observe\"\nstep_quota = 100\nuse_closures = false\n")
	t.Setenv("INNERSCOPE_RECURSION_LIMIT", "10")

	s, err := loadSettings(newViper(), "")
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	want := defaultSettings()
	want.Strategy = "observe"
	want.StepQuota = 100
	want.UseClosures = false
	want.RecursionLimit = 10
	if diff := cmp.Diff(want, s); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}

	engine, err := s.newEngine(io.Discard, io.Discard)
	if err != nil {
		t.Fatalf("newEngine: %v", err)
	}
	if got := engine.ConfigSummary(); got != "steps=100 recursion=10 strategy=observe" {
		t.Fatalf("unexpected engine config %q", got)
	}
}

func TestLoadSettingsErrors(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if _, err := loadSettings(newViper(), filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("expected error for an explicit config file that does not exist")
	}

	t.Setenv("INNERSCOPE_STRATEGY", "sideways")
	_, err := loadSettings(newViper(), "")
	if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Fatalf("expected invalid strategy error, got %v", err)
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	scriptPath := writeScript(t, `def run
  x = 1
end`)
	t.Setenv("INNERSCOPE_STRATEGY", "sideways")

	if _, err := execute(t, "--strategy", "redirect", "run", scriptPath); err != nil {
		t.Fatalf("expected flag to override env strategy: %v", err)
	}
}
