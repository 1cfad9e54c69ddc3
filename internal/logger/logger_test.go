package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"bogus", log.InfoLevel},
		{"", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.name); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestDomainMethods(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithLevel(&buf, log.DebugLevel)

	l.ParseCompleted("notes.org", 42, 3*time.Millisecond)
	l.RenderCompleted("notes.org", "html", 128)
	l.RenderFailed("notes.org", "md", errors.New("unsupported element"))
	l.InvalidTree("notes.org", errors.New("headline below paragraph"))
	l.ConfigLoaded("/tmp/config.json", 0, []string{"macros"})
	l.RoundtripChecked("notes.org", true)

	out := buf.String()
	for _, want := range []string{
		"parse completed", "nodes=42",
		"render completed", "format=html",
		"render failed", "unsupported element",
		"invalid tree",
		"config loaded",
		"roundtrip checked", "clean=true",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output is missing %q:\n%s", want, out)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.ParseCompleted("notes.org", 1, time.Millisecond)
	if buf.Len() != 0 {
		t.Errorf("debug message logged at info level: %s", buf.String())
	}

	l.FileError("notes.org", errors.New("permission denied"))
	if !strings.Contains(buf.String(), "permission denied") {
		t.Errorf("error was not logged: %s", buf.String())
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orgtree.log")
	l, cleanup, err := NewFileLogger(path, log.InfoLevel)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	l.RoundtripChecked("a.org", false)
	cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "clean=false") {
		t.Errorf("log file content = %q", data)
	}

	if _, _, err := NewFileLogger(filepath.Join(t.TempDir(), "missing", "x.log"), log.InfoLevel); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestNewFileLoggerCopies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orgtree.log")
	var term bytes.Buffer
	l, cleanup, err := NewFileLogger(path, log.DebugLevel, &term)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	l.ParseCompleted("a.org", 3, time.Millisecond)
	cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for name, out := range map[string]string{"file": string(data), "writer": term.String()} {
		if !strings.Contains(out, "parse completed") {
			t.Errorf("%s is missing the entry: %q", name, out)
		}
	}
}

func TestNewMultiLogger(t *testing.T) {
	var a, b bytes.Buffer
	l := NewMultiLogger(log.InfoLevel, &a, &b)
	l.Info("hello")
	if !strings.Contains(a.String(), "hello") || !strings.Contains(b.String(), "hello") {
		t.Errorf("outputs = %q, %q", a.String(), b.String())
	}

	Discard().Error("dropped")
}
