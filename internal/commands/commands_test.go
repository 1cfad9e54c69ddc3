package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	canonical = "#+title: Clean\n\n* TODO Task\nBody.\n"
	clocked   = `* Report
:LOGBOOK:
CLOCK: [2024-01-02 Tue 09:00]--[2024-01-02 Tue 10:30] =>  1:30
:END:
`
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// run executes the root command against a config path that does not exist,
// so the defaults apply unless the test writes one.
func run(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	stdout, _, err := runAll(t, configPath, args...)
	return stdout, err
}

// runAll is run that also returns what was written to stderr.
func runAll(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	if configPath == "" {
		configPath = filepath.Join(t.TempDir(), "config.json")
	}

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if out != "orgtree vtest\n" {
		t.Errorf("version output = %q", out)
	}
}

func TestExportCommands(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "note.org", canonical)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "tree",
			args: []string{"tree", "--plain", file},
			want: []string{"document", "headline level=1 keyword=TODO", "paragraph"},
		},
		{
			name: "org",
			args: []string{"org", file},
			want: []string{canonical},
		},
		{
			name: "html",
			args: []string{"html", file},
			want: []string{"<main>", "<p>Body.</p>", "</main>"},
		},
		{
			name: "markdown",
			args: []string{"md", file},
			want: []string{"title: Clean", "# - [ ] Task", "Body."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "", tt.args...)
			if err != nil {
				t.Fatalf("%s failed: %v", tt.name, err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output is missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestExportToFile(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "note.org", canonical)
	target := filepath.Join(dir, "note.html")

	out, err := run(t, "", "html", "-o", target, file)
	if err != nil {
		t.Fatalf("html failed: %v", err)
	}
	if out != "" {
		t.Errorf("nothing should go to stdout, got %q", out)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("output file was not written: %v", err)
	}
	if !strings.Contains(string(data), "<main>") {
		t.Errorf("output file content = %q", data)
	}
}

func TestMarkdownIDMap(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "note.org", "See [[id:abc][the plan]].\n")
	idMap := writeFile(t, dir, "ids.json", `{"abc": "Plan"}`)

	out, err := run(t, "", "--id-map", idMap, "md", file)
	if err != nil {
		t.Fatalf("md failed: %v", err)
	}
	if !strings.Contains(out, "[[Plan|the plan]]") {
		t.Errorf("id link was not resolved:\n%s", out)
	}

	if _, err := run(t, "", "--id-map", filepath.Join(dir, "missing.json"), "md", file); err == nil {
		t.Error("expected an error for a missing id map")
	}
}

func TestClockCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "", "clock", writeFile(t, dir, "clocked.org", clocked))
	if err != nil {
		t.Fatalf("clock failed: %v", err)
	}
	for _, want := range []string{"Report", "Total:", "1:30"} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, "", "clock", writeFile(t, dir, "plain.org", canonical))
	if err != nil {
		t.Fatalf("clock failed: %v", err)
	}
	if !strings.Contains(out, "No clocked time") {
		t.Errorf("output = %q", out)
	}
}

func TestDiffCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "", "diff", writeFile(t, dir, "clean.org", canonical))
	if err != nil {
		t.Fatalf("diff failed: %v", err)
	}
	if !strings.Contains(out, "No differences") {
		t.Errorf("output = %q", out)
	}

	out, err = run(t, "", "diff", "--raw", writeFile(t, dir, "messy.org", "   #+title:   Messy\n"))
	if err != nil {
		t.Fatalf("diff failed: %v", err)
	}
	if !strings.Contains(out, "+#+title: Messy") {
		t.Errorf("expected a normalization diff:\n%s", out)
	}

	orgFile := writeFile(t, dir, "task.org", "* DONE Ship\n")
	mdFile := writeFile(t, dir, "task.md", "# - [ ] Ship\n")
	out, err = run(t, "", "diff", "--raw", "--md", mdFile, orgFile)
	if err != nil {
		t.Fatalf("diff --md failed: %v", err)
	}
	if !strings.Contains(out, "+# - [x] Ship") {
		t.Errorf("expected an export diff:\n%s", out)
	}
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.org", canonical)

	out, err := run(t, "", "check", good)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.Contains(out, "✓") {
		t.Errorf("output = %q", out)
	}

	out, err = run(t, "", "check", good, filepath.Join(dir, "missing.org"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !strings.Contains(err.Error(), "1 of 2 files failed") {
		t.Errorf("error = %v", err)
	}
	if !strings.Contains(out, "missing.org") {
		t.Errorf("output does not name the failing file:\n%s", out)
	}
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orgtree", "config.json")

	if _, err := run(t, path, "config", "init"); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file was not written: %v", err)
	}

	if _, err := run(t, path, "config", "init"); err == nil {
		t.Error("init should refuse to overwrite an existing file")
	}
	if _, err := run(t, path, "config", "init", "--force"); err != nil {
		t.Errorf("init --force failed: %v", err)
	}

	out, err := run(t, path, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(out, `"todo_keywords"`) {
		t.Errorf("output = %q", out)
	}
}

func TestConfigApplies(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.json", `{"todo_keywords": ["NEXT"], "done_keywords": ["DONE"], "disabled": ["macros"]}`)
	file := writeFile(t, dir, "note.org", "* NEXT Call {{{who}}}\n")

	out, err := run(t, path, "tree", "--plain", file)
	if err != nil {
		t.Fatalf("tree failed: %v", err)
	}
	if !strings.Contains(out, "keyword=NEXT") {
		t.Errorf("custom keyword was not recognized:\n%s", out)
	}
	if strings.Contains(out, "macros") {
		t.Errorf("disabled macros were parsed:\n%s", out)
	}
}

func TestLogFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "orgtree.log")
	path := writeFile(t, dir, "config.json", `{"log_file": "`+logPath+`", "log_level": "debug"}`)
	file := writeFile(t, dir, "note.org", canonical)

	tests := []struct {
		name       string
		args       []string
		wantStderr bool
	}{
		{"file only", []string{"org", file}, false},
		{"log level flag", []string{"--log-level", "debug", "org", file}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.Remove(logPath); err != nil && !os.IsNotExist(err) {
				t.Fatal(err)
			}
			_, stderr, err := runAll(t, path, tt.args...)
			if err != nil {
				t.Fatalf("org failed: %v", err)
			}

			data, err := os.ReadFile(logPath)
			if err != nil {
				t.Fatalf("log file was not written: %v", err)
			}
			if !strings.Contains(string(data), "parse completed") {
				t.Errorf("log file = %q", data)
			}
			if got := strings.Contains(stderr, "parse completed"); got != tt.wantStderr {
				t.Errorf("stderr has entry = %v, want %v: %q", got, tt.wantStderr, stderr)
			}
		})
	}
}

func TestInvalidInvocations(t *testing.T) {
	dir := t.TempDir()
	badConfig := writeFile(t, dir, "config.json", `{"log_level": "loud"}`)

	tests := []struct {
		name   string
		config string
		args   []string
	}{
		{"missing argument", "", []string{"html"}},
		{"missing file", "", []string{"org", filepath.Join(dir, "missing.org")}},
		{"invalid config", badConfig, []string{"version"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.config, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
