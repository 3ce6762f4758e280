package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatSource(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trailing blanks", "def run()  \n  1\t \nend", "def run()\n  1\nend\n"},
		{"tabs", "def run()\n\t1\nend\n", "def run()\n  1\nend\n"},
		{"blank runs", "\n\nx = 1\n\n\n\ndef run\n  x\nend\n\n", "x = 1\n\ndef run\n  x\nend\n"},
		{"crlf", "def run\r\n  1\r\nend\r\n", "def run\n  1\nend\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatSource(tt.in); got != tt.want {
				t.Fatalf("formatSource(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFmtCheckDetectsUnformattedFiles(t *testing.T) {
	path := writeScript(t, "def run()  \n  1\t \nend")
	_, err := execute(t, "fmt", "--check", path)
	if err == nil || !strings.Contains(err.Error(), "need formatting") {
		t.Fatalf("expected formatting check failure, got %v", err)
	}
}

func TestFmtWriteFormatsFileInPlace(t *testing.T) {
	path := writeScript(t, "def run()  \n  1\t \nend")
	if _, err := execute(t, "fmt", "-w", path); err != nil {
		t.Fatalf("fmt -w failed: %v", err)
	}

	updated, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read formatted file: %v", err)
	}
	if got := string(updated); got != "def run()\n  1\nend\n" {
		t.Fatalf("unexpected formatted output: %q", got)
	}
}

func TestFmtPrintsFormattedOutput(t *testing.T) {
	path := writeScript(t, "def run()  \n  1\t \nend")
	out, err := execute(t, "fmt", path)
	if err != nil {
		t.Fatalf("fmt failed: %v", err)
	}
	if out != "def run()\n  1\nend\n" {
		t.Fatalf("unexpected stdout output: %q", out)
	}
}

func TestFmtFormatsDirectories(t *testing.T) {
	root := t.TempDir()
	writeFileAt(t, filepath.Join(root, "a.is"), "def run()  \n  1  \nend")
	writeFileAt(t, filepath.Join(root, "nested", "b.is"), "def run()  \n  2\t\nend")
	writeFileAt(t, filepath.Join(root, "notes.txt"), "left alone  \n")

	if _, err := execute(t, "fmt", "-w", root); err != nil {
		t.Fatalf("fmt directory failed: %v", err)
	}
	if _, err := execute(t, "fmt", "--check", root); err != nil {
		t.Fatalf("expected no formatting diffs after write, got %v", err)
	}
	notes, err := os.ReadFile(filepath.Join(root, "notes.txt"))
	if err != nil {
		t.Fatalf("read notes: %v", err)
	}
	if string(notes) != "left alone  \n" {
		t.Fatalf("non-script file was modified: %q", notes)
	}
}

func TestFmtRejectsBrokenScripts(t *testing.T) {
	path := writeScript(t, "def run(\nend\n")
	if _, err := execute(t, "fmt", path); err == nil {
		t.Fatalf("expected compile error")
	}
}
