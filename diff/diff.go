// Package diff compares org files against what the tree re-emits.
package diff

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/gerunddev/orgtree/export"
	"github.com/gerunddev/orgtree/org"
	"github.com/gerunddev/orgtree/parser"
)

// Unified returns a unified diff turning from into to, or "" when the two
// are equal.
func Unified(fromName, toName, from, to string) string {
	if from == to {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(fromName), from, to)
	return fmt.Sprint(gotextdiff.ToUnified(fromName, toName, from, edits))
}

// Roundtrip parses the org file at path, writes the tree back out as org
// text and diffs the result against the file. An empty diff means the file
// survives a parse unchanged.
func Roundtrip(path string, cfg *parser.Config) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read org file: %w", err)
	}

	var out bytes.Buffer
	if err := org.ParseWithConfig(string(content), cfg).WriteOrg(&out); err != nil {
		return "", fmt.Errorf("failed to re-emit org file: %w", err)
	}

	name := filepath.Base(path)
	return Unified(name, name+" (parsed)", string(content), out.String()), nil
}

// Export diffs an existing markdown file against a fresh markdown export
// of the org file, with the markdown file as the old side.
func Export(orgPath, mdPath string, cfg *parser.Config, idMap map[string]string) (string, error) {
	orgContent, err := os.ReadFile(orgPath)
	if err != nil {
		return "", fmt.Errorf("failed to read org file: %w", err)
	}
	mdContent, err := os.ReadFile(mdPath)
	if err != nil {
		return "", fmt.Errorf("failed to read markdown file: %w", err)
	}

	h := export.NewMarkdownHandler(idMap)
	if cfg != nil {
		h.DoneKeywords = cfg.DoneKeywords
	}
	var out bytes.Buffer
	if err := org.ParseWithConfig(string(orgContent), cfg).Render(&out, h); err != nil {
		return "", fmt.Errorf("failed to convert org to markdown: %w", err)
	}

	return Unified(filepath.Base(mdPath), filepath.Base(orgPath), string(mdContent), out.String()), nil
}

// Render wraps a unified diff in a diff code fence and renders it for the
// terminal. The fenced markdown is returned as is if rendering fails.
func Render(unified string) string {
	diffMarkdown := fmt.Sprintf("```diff\n%s```\n", unified)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return diffMarkdown
	}

	rendered, err := renderer.Render(diffMarkdown)
	if err != nil {
		return diffMarkdown
	}
	return rendered
}
