package parser

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gerunddev/orgtree/elements"
)

// Config controls how a document is parsed.
type Config struct {
	// TodoKeywords and DoneKeywords are the states a headline may start with.
	TodoKeywords []string
	DoneKeywords []string
	// MaxDepth limits container nesting. A container nested deeper keeps its
	// content as a single Text node. Zero means unlimited.
	MaxDepth int
	// Disabled lists element kinds whose parsers never match. Their source
	// text falls through to paragraphs and plain text.
	Disabled []elements.Kind
}

// DefaultConfig returns the configuration used by org.Parse.
func DefaultConfig() *Config {
	return &Config{
		TodoKeywords: []string{"TODO"},
		DoneKeywords: []string{"DONE"},
	}
}

// Validate checks the configuration for values the engine cannot honor.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}

	seen := map[string]bool{}
	for _, kw := range slices.Concat(c.TodoKeywords, c.DoneKeywords) {
		if kw == "" || strings.ContainsAny(kw, " \t\n") {
			return fmt.Errorf("invalid todo keyword %q", kw)
		}
		if seen[kw] {
			return fmt.Errorf("duplicate todo keyword %q", kw)
		}
		seen[kw] = true
	}

	for _, k := range c.Disabled {
		switch k {
		case elements.KindDocument, elements.KindSection, elements.KindTitle,
			elements.KindParagraph, elements.KindText:
			return fmt.Errorf("element kind %s cannot be disabled", k)
		}
	}
	return nil
}

func (c *Config) enabled(k elements.Kind) bool {
	return !slices.Contains(c.Disabled, k)
}

// Keywords returns the TODO and done states as headline keywords.
func (c *Config) Keywords() elements.Keywords {
	return elements.Keywords{Todo: c.TodoKeywords, Done: c.DoneKeywords}
}
