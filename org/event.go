package org

import (
	"fmt"
	"io"
	"iter"

	"github.com/gerunddev/orgtree/arena"
	"github.com/gerunddev/orgtree/elements"
	"github.com/gerunddev/orgtree/export"
)

// EventKind tells whether an event opens or closes a node.
type EventKind int

const (
	Start EventKind = iota
	End
)

func (k EventKind) String() string {
	if k == End {
		return "end"
	}
	return "start"
}

// Event is one step of a depth-first walk. Every node produces a Start
// event before its descendants and an End event after them; leaves produce
// the two back to back.
type Event struct {
	Kind    EventKind
	Node    arena.NodeID
	Element elements.Element
}

// Iter walks the whole document.
func (o *Org) Iter() iter.Seq[Event] {
	return o.IterNode(o.root)
}

// IterNode walks the subtree rooted at id. The walk is lazy and each call
// starts from the beginning.
func (o *Org) IterNode(id arena.NodeID) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for edge := range o.arena.Traverse(id) {
			ev := Event{Kind: Start, Node: edge.Node, Element: o.arena.Get(edge.Node)}
			if edge.Kind == arena.EdgeEnd {
				ev.Kind = End
			}
			if !yield(ev) {
				return
			}
		}
	}
}

// Render feeds every event of the document to h.
func (o *Org) Render(w io.Writer, h export.Handler) error {
	return o.RenderNode(w, o.root, h)
}

// RenderNode feeds the events of the subtree rooted at id to h. It stops at
// the first handler error, resetting h if it is an export.Resetter. The tree
// is left untouched and can be rendered again.
func (o *Org) RenderNode(w io.Writer, id arena.NodeID, h export.Handler) error {
	for ev := range o.IterNode(id) {
		var err error
		if ev.Kind == Start {
			err = h.Start(w, ev.Element)
		} else {
			err = h.End(w, ev.Element)
		}
		if err != nil {
			if r, ok := h.(export.Resetter); ok {
				r.Reset()
			}
			return fmt.Errorf("failed to render %s %s: %w", ev.Element.Kind(), ev.Kind, err)
		}
	}
	return nil
}

// HTML renders the document with the default HTML handler.
func (o *Org) HTML(w io.Writer) error {
	return o.Render(w, export.NewHTMLHandler())
}

// WriteOrg re-emits the document as org text.
func (o *Org) WriteOrg(w io.Writer) error {
	return o.Render(w, export.NewOrgHandler())
}

// Markdown renders the document as Obsidian-flavoured markdown. idMap maps
// org-roam ids to note names for wikilinks; it may be nil. Headlines in one
// of the document's done states become checked tasks.
func (o *Org) Markdown(w io.Writer, idMap map[string]string) error {
	h := export.NewMarkdownHandler(idMap)
	h.DoneKeywords = o.keywords.Done
	return o.Render(w, h)
}
