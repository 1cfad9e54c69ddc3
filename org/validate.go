package org

import (
	"errors"
	"fmt"

	"github.com/gerunddev/orgtree/arena"
	"github.com/gerunddev/orgtree/elements"
)

// Validate checks the structural rules every parsed tree satisfies. Trees
// built or edited by hand can break them; the returned error joins one
// error per violation.
func (o *Org) Validate() error {
	var errs []error
	report := func(id arena.NodeID, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%s %s: %s", o.arena.Get(id).Kind(), id, fmt.Sprintf(format, args...)))
	}

	if k := o.arena.Get(o.root).Kind(); k != elements.KindDocument {
		report(o.root, "root must be a document")
	}

	depth := 0
	for ev := range o.Iter() {
		if ev.Kind == End {
			depth--
			continue
		}
		depth++

		id, e := ev.Node, ev.Element
		parent, hasParent := o.arena.Parent(id)

		if e.Kind() == elements.KindDocument && hasParent {
			report(id, "document below the root")
		}
		if _, ok := o.arena.FirstChild(id); ok && !e.Kind().IsContainer() {
			report(id, "leaf element has children")
		}
		if !hasParent {
			continue
		}

		pk := o.arena.Get(parent).Kind()
		switch k := e.Kind(); {
		case k == elements.KindTitle:
			if first, _ := o.arena.FirstChild(parent); pk != elements.KindHeadline || first != id {
				report(id, "title must be the first child of a headline")
			}
		case k == elements.KindText:
			if !pk.IsContainer() {
				report(id, "text below %s", pk)
			}
		case k.IsObject():
			if pk != elements.KindParagraph && pk != elements.KindTitle {
				report(id, "inline element below %s", pk)
			}
		case k == elements.KindHeadline:
			if pk != elements.KindDocument && pk != elements.KindHeadline {
				report(id, "headline below %s", pk)
			}
			if ph, ok := o.arena.Get(parent).(elements.Headline); ok && ph.Level >= e.(elements.Headline).Level {
				report(id, "level %d below level %d", e.(elements.Headline).Level, ph.Level)
			}
		}
	}
	if depth != 0 {
		errs = append(errs, fmt.Errorf("unbalanced events: depth %d after walk", depth))
	}

	return errors.Join(errs...)
}
