// Package org is the entry point for parsing org-mode documents into a tree
// and rendering that tree through export handlers.
package org

import (
	"iter"
	"strings"

	"github.com/gerunddev/orgtree/arena"
	"github.com/gerunddev/orgtree/elements"
	"github.com/gerunddev/orgtree/parser"
)

// Org is a parsed document: an arena of elements and the id of its
// Document root.
type Org struct {
	arena    *arena.Arena[elements.Element]
	root     arena.NodeID
	keywords elements.Keywords
}

// New returns an empty document.
func New() *Org {
	a := arena.New[elements.Element]()
	kw := parser.DefaultConfig().Keywords()
	return &Org{arena: a, root: a.NewNode(elements.Document{}), keywords: kw}
}

// Parse parses text with the default configuration.
func Parse(text string) *Org {
	return ParseWithConfig(text, parser.DefaultConfig())
}

// ParseWithConfig parses text. Leading blank lines are recorded on the
// Document node; the rest is handed to the container engine.
func ParseWithConfig(text string, cfg *parser.Config) *Org {
	if cfg == nil {
		cfg = parser.DefaultConfig()
	}
	a := arena.New[elements.Element]()
	blank, off := elements.BlankLines(text)
	root := a.NewNode(elements.Document{PreBlank: blank})

	parser.Parse(a, root, text[off:], cfg)
	return &Org{arena: a, root: root, keywords: cfg.Keywords()}
}

// Keywords returns the TODO states the document was parsed with.
func (o *Org) Keywords() elements.Keywords {
	return o.keywords
}

func (o *Org) Root() arena.NodeID {
	return o.root
}

// Arena exposes the underlying arena for navigation and in-place edits.
func (o *Org) Arena() *arena.Arena[elements.Element] {
	return o.arena
}

func (o *Org) Get(id arena.NodeID) elements.Element {
	return o.arena.Get(id)
}

// Set replaces the element stored at id.
func (o *Org) Set(id arena.NodeID, e elements.Element) {
	o.arena.Set(id, e)
}

// Headlines yields every headline in document order.
func (o *Org) Headlines() iter.Seq[arena.NodeID] {
	return func(yield func(arena.NodeID) bool) {
		for id := range o.arena.Descendants(o.root) {
			if o.arena.Get(id).Kind() != elements.KindHeadline {
				continue
			}
			if !yield(id) {
				return
			}
		}
	}
}

// Keyword returns the value of the first document-level #+KEY keyword.
// Keys are compared case-insensitively.
func (o *Org) Keyword(key string) (string, bool) {
	section, ok := o.arena.FirstChild(o.root)
	if !ok || o.arena.Get(section).Kind() != elements.KindSection {
		return "", false
	}
	for id := range o.arena.Children(section) {
		if kw, ok := o.arena.Get(id).(elements.Keyword); ok && strings.EqualFold(kw.Key, key) {
			return kw.Value, true
		}
	}
	return "", false
}
