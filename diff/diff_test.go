package diff

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestUnified(t *testing.T) {
	if got := Unified("a", "b", "same\n", "same\n"); got != "" {
		t.Errorf("equal inputs produced a diff: %q", got)
	}

	got := Unified("a.org", "b.org", "one\ntwo\n", "one\nthree\n")
	for _, want := range []string{"--- a.org", "+++ b.org", "-two", "+three"} {
		if !strings.Contains(got, want) {
			t.Errorf("diff is missing %q:\n%s", want, got)
		}
	}
}

func TestRoundtrip(t *testing.T) {
	dir := t.TempDir()

	clean := writeFile(t, dir, "clean.org", "#+title: Clean\n\n* TODO Task\nBody.\n")
	got, err := Roundtrip(clean, nil)
	if err != nil {
		t.Fatalf("Roundtrip failed: %v", err)
	}
	if got != "" {
		t.Errorf("canonical file produced a diff:\n%s", got)
	}

	// Indented keywords are normalized on output.
	messy := writeFile(t, dir, "messy.org", "   #+title:   Messy\n")
	got, err = Roundtrip(messy, nil)
	if err != nil {
		t.Fatalf("Roundtrip failed: %v", err)
	}
	if !strings.Contains(got, "+#+title: Messy") {
		t.Errorf("expected a normalization diff, got:\n%s", got)
	}
}

func TestRoundtripMissingFile(t *testing.T) {
	if _, err := Roundtrip(filepath.Join(t.TempDir(), "missing.org"), nil); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	orgPath := writeFile(t, dir, "note.org", "* DONE Ship [[id:1][it]]\n")
	mdPath := writeFile(t, dir, "note.md", "# - [ ] Ship [[Release|it]]\n")

	got, err := Export(orgPath, mdPath, nil, map[string]string{"1": "Release"})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	for _, want := range []string{"-# - [ ] Ship [[Release|it]]", "+# - [x] Ship [[Release|it]]"} {
		if !strings.Contains(got, want) {
			t.Errorf("diff is missing %q:\n%s", want, got)
		}
	}

	if _, err := Export(orgPath, filepath.Join(dir, "missing.md"), nil, nil); err == nil {
		t.Error("expected an error for a missing markdown file")
	}
}

func TestRender(t *testing.T) {
	out := Render(Unified("a", "b", "x\n", "y\n"))
	if !strings.Contains(out, "x") || !strings.Contains(out, "y") {
		t.Errorf("rendered diff lost its content:\n%s", out)
	}
}
