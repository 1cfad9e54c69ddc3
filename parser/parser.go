// Package parser builds an element tree from org-mode text.
//
// The engine walks a span of text, tries each element parser in a fixed
// priority order at the cursor, appends the first match under the current
// parent, and queues the inner spans of container elements for the same
// treatment with the new node as parent. Text that no parser recognizes
// becomes a Paragraph (block content) or a Text node (inline content), so
// every byte of the input ends up somewhere in the tree and parsing never
// fails.
//
// Pending containers live on an explicit work stack, so deeply nested input
// does not grow the goroutine stack.
package parser

import (
	"strings"

	"github.com/gerunddev/orgtree/arena"
	"github.com/gerunddev/orgtree/elements"
)

type spanKind int

const (
	// spanOutline is a document or headline body: a leading section
	// followed by headlines.
	spanOutline spanKind = iota
	// spanSection is block content that may start with a planning line.
	spanSection
	// spanBlock is block content.
	spanBlock
	// spanInline is paragraph or title content.
	spanInline
)

type job struct {
	parent arena.NodeID
	kind   spanKind
	text   string
	depth  int
	// headline is set when an outline span is a headline body.
	headline bool
}

type engine struct {
	arena *arena.Arena[elements.Element]
	cfg   *Config
	stack []job
}

// Parse parses text as document content and attaches the resulting nodes
// under root. A nil cfg means DefaultConfig.
func Parse(a *arena.Arena[elements.Element], root arena.NodeID, text string, cfg *Config) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	e := &engine{arena: a, cfg: cfg}
	e.push(job{parent: root, kind: spanOutline, text: text})

	for len(e.stack) > 0 {
		j := e.stack[len(e.stack)-1]
		e.stack = e.stack[:len(e.stack)-1]
		e.run(j)
	}
}

func (e *engine) push(j job) {
	e.stack = append(e.stack, j)
}

func (e *engine) run(j job) {
	if e.cfg.MaxDepth > 0 && j.depth > e.cfg.MaxDepth {
		if j.text != "" {
			e.arena.AppendChild(j.parent, elements.Text{Value: j.text})
		}
		return
	}

	switch j.kind {
	case spanOutline:
		e.parseOutline(j)
	case spanSection:
		e.parseBlocks(j.parent, j.text, j.depth, true)
	case spanBlock:
		e.parseBlocks(j.parent, j.text, j.depth, false)
	case spanInline:
		e.parseObjects(j.parent, j.text)
	}
}

// parseOutline splits off the leading section and then parses headlines,
// each of which consumes its whole subtree.
func (e *engine) parseOutline(j job) {
	text := j.text
	end := len(text)
	if e.cfg.enabled(elements.KindHeadline) {
		end = firstHeadline(text)
	}

	if section := text[:end]; strings.TrimSpace(section) != "" {
		id := e.arena.AppendChild(j.parent, elements.Section{})
		kind := spanBlock
		if j.headline {
			kind = spanSection
		}
		e.push(job{parent: id, kind: kind, text: section, depth: j.depth + 1})
	}

	rest := text[end:]
	for rest != "" {
		h, parts, n, ok := elements.ParseHeadline(rest, e.cfg.Keywords())
		if !ok {
			// firstHeadline only stops at headline lines.
			break
		}
		id := e.arena.AppendChild(j.parent, h)
		title := e.arena.AppendChild(id, elements.Title{})
		if parts.Title != "" {
			e.push(job{parent: title, kind: spanInline, text: parts.Title, depth: j.depth + 2})
		}
		if parts.Body != "" {
			e.push(job{parent: id, kind: spanOutline, text: parts.Body, depth: j.depth + 1, headline: true})
		}
		rest = rest[n:]
	}
}

func firstHeadline(text string) int {
	off := 0
	for off < len(text) {
		line, n := elements.NextLine(text[off:])
		if elements.HeadlineLevel(line) > 0 {
			return off
		}
		off += n
	}
	return len(text)
}

type match struct {
	element  elements.Element
	consumed int
	inner    string
	// container reports whether inner is to be parsed as block content.
	container bool
}

// matchBlock tries the block parsers in priority order.
func (e *engine) matchBlock(text string) (match, bool) {
	if e.cfg.enabled(elements.KindClock) {
		if c, n, ok := elements.ParseClock(text); ok {
			return match{element: c, consumed: n}, true
		}
	}
	if e.cfg.enabled(elements.KindPropertyDrawer) {
		if d, n, ok := elements.ParsePropertyDrawer(text); ok {
			return match{element: d, consumed: n}, true
		}
	}
	if e.cfg.enabled(elements.KindDrawer) {
		if d, inner, n, ok := elements.ParseDrawer(text); ok {
			return match{element: d, consumed: n, inner: inner, container: true}, true
		}
	}
	if b, inner, n, ok := elements.ParseBlock(text); ok && e.cfg.enabled(b.Kind()) {
		return match{element: b, consumed: n, inner: inner, container: b.Kind().IsContainer()}, true
	}
	if e.cfg.enabled(elements.KindKeyword) {
		if k, n, ok := elements.ParseKeyword(text); ok {
			return match{element: k, consumed: n}, true
		}
	}
	if e.cfg.enabled(elements.KindRule) {
		if r, n, ok := elements.ParseRule(text); ok {
			return match{element: r, consumed: n}, true
		}
	}
	if e.cfg.enabled(elements.KindComment) {
		if c, n, ok := elements.ParseComment(text); ok {
			return match{element: c, consumed: n}, true
		}
	}
	return match{}, false
}

// parseBlocks parses block content. Blank lines after an element are
// recorded as its post-blank count; lines no parser accepts are collected
// into paragraphs.
func (e *engine) parseBlocks(parent arena.NodeID, text string, depth int, planning bool) {
	_, lead := elements.BlankLines(text)
	pos := lead

	if planning && e.cfg.enabled(elements.KindPlanning) {
		if p, n, ok := elements.ParsePlanning(text[pos:]); ok {
			blank, skip := elements.BlankLines(text[pos+n:])
			e.arena.AppendChild(parent, p.WithPostBlank(blank))
			pos += n + skip
		}
	}

	paraStart := -1
	for pos < len(text) {
		line, n := elements.NextLine(text[pos:])

		if elements.IsBlankLine(line) {
			blank, skip := elements.BlankLines(text[pos:])
			if paraStart >= 0 {
				e.paragraph(parent, text[paraStart:pos], blank, depth)
				paraStart = -1
			}
			pos += skip
			continue
		}

		if m, ok := e.matchBlock(text[pos:]); ok {
			if paraStart >= 0 {
				e.paragraph(parent, text[paraStart:pos], 0, depth)
				paraStart = -1
			}

			blank, skip := elements.BlankLines(text[pos+m.consumed:])
			el := m.element
			if pb, ok := el.(elements.PostBlanker); ok {
				el = pb.WithPostBlank(blank)
			}
			id := e.arena.AppendChild(parent, el)
			if m.container && m.inner != "" {
				e.push(job{parent: id, kind: spanBlock, text: m.inner, depth: depth + 1})
			}
			pos += m.consumed + skip
			continue
		}

		if paraStart < 0 {
			paraStart = pos
		}
		pos += n
	}

	if paraStart >= 0 {
		e.paragraph(parent, text[paraStart:], 0, depth)
	}
}

func (e *engine) paragraph(parent arena.NodeID, raw string, blank, depth int) {
	content := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
	id := e.arena.AppendChild(parent, elements.Paragraph{PostBlank: blank})
	if content != "" {
		e.push(job{parent: id, kind: spanInline, text: content, depth: depth + 1})
	}
}

// parseObjects parses inline content. Object parsers are only tried at the
// bytes that can start an object; everything else accumulates into Text.
func (e *engine) parseObjects(parent arena.NodeID, text string) {
	start, pos := 0, 0
	for pos < len(text) {
		switch text[pos] {
		case '{', '[', '<':
			if el, n, ok := e.matchObject(text[pos:]); ok {
				if start < pos {
					e.arena.AppendChild(parent, elements.Text{Value: text[start:pos]})
				}
				e.arena.AppendChild(parent, el)
				pos += n
				start = pos
				continue
			}
		}
		pos++
	}
	if start < len(text) {
		e.arena.AppendChild(parent, elements.Text{Value: text[start:]})
	}
}

func (e *engine) matchObject(text string) (elements.Element, int, bool) {
	switch text[0] {
	case '{':
		if !e.cfg.enabled(elements.KindMacros) || !strings.HasPrefix(text, "{{{") {
			return nil, 0, false
		}
		// A macro's arguments run to the last terminator in its input; stop
		// that input at the next macro call on the line.
		bound := text
		if i := strings.IndexByte(bound, '\n'); i >= 0 {
			bound = bound[:i]
		}
		if i := strings.Index(bound[3:], "{{{"); i >= 0 {
			bound = bound[:3+i]
		}
		if m, n, ok := elements.ParseMacros(bound); ok {
			return m, n, true
		}
	case '[':
		if e.cfg.enabled(elements.KindLink) {
			if l, n, ok := elements.ParseLink(text); ok {
				return l, n, true
			}
		}
		fallthrough
	case '<':
		if e.cfg.enabled(elements.KindTimestamp) {
			if ts, n, ok := elements.ParseTimestamp(text); ok {
				return ts, n, true
			}
		}
	}
	return nil, 0, false
}
