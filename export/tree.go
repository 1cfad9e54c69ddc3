package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/gerunddev/orgtree/elements"
)

// TreeHandler writes one indented line per node, for inspecting how a
// document was parsed.
type TreeHandler struct {
	// Style decorates the kind label of a line. Nil leaves it plain.
	Style func(k elements.Kind, label string) string

	depth int
}

func NewTreeHandler() *TreeHandler {
	return &TreeHandler{}
}

// Reset drops the state of an unfinished walk.
func (h *TreeHandler) Reset() {
	h.depth = 0
}

func (h *TreeHandler) Start(w io.Writer, e elements.Element) error {
	label := e.Kind().String()
	if h.Style != nil {
		label = h.Style(e.Kind(), label)
	}

	line := strings.Repeat("  ", h.depth) + label
	if d := Describe(e); d != "" {
		line += " " + d
	}
	h.depth++
	return write(w, line+"\n")
}

func (h *TreeHandler) End(io.Writer, elements.Element) error {
	h.depth--
	return nil
}

// Describe summarizes the fields of an element on one line.
func Describe(e elements.Element) string {
	var parts []string
	add := func(format string, args ...any) {
		parts = append(parts, fmt.Sprintf(format, args...))
	}

	switch e := e.(type) {
	case elements.Document:
		if e.PreBlank > 0 {
			add("pre_blank=%d", e.PreBlank)
		}
	case elements.Headline:
		add("level=%d", e.Level)
		if e.Keyword != "" {
			add("keyword=%s", e.Keyword)
		}
		if e.Priority != 0 {
			add("priority=%c", e.Priority)
		}
		if len(e.Tags) > 0 {
			add("tags=%s", strings.Join(e.Tags, ":"))
		}
	case elements.Text:
		add("%q", e.Value)
	case elements.Macros:
		add("name=%s", e.Name)
		if e.HasArguments {
			add("args=%q", e.Arguments)
		}
	case elements.Link:
		add("path=%q", e.Path)
		if e.Description != "" {
			add("desc=%q", e.Description)
		}
	case elements.Timestamp:
		add("%s %s", e.Value.Kind, e.Value)
	case elements.Clock:
		add("%s %s", e.Status, e.Value())
		if d, ok := e.DurationText(); ok {
			add("duration=%s", d)
		}
	case elements.Planning:
		if e.Scheduled != nil {
			add("scheduled=%s", e.Scheduled)
		}
		if e.Deadline != nil {
			add("deadline=%s", e.Deadline)
		}
		if e.Closed != nil {
			add("closed=%s", e.Closed)
		}
	case elements.Keyword:
		add("%s=%q", e.Key, e.Value)
	case elements.PropertyDrawer:
		for _, p := range e.Properties {
			add("%s=%q", p.Key, p.Value)
		}
	case elements.Drawer:
		add("name=%s", e.Name)
	case elements.SourceBlock:
		if e.Language != "" {
			add("lang=%s", e.Language)
		}
		add("lines=%d", strings.Count(withNewline(e.Contents), "\n"))
	case elements.VerbatimBlock:
		add("name=%s", e.Name)
		add("lines=%d", strings.Count(withNewline(e.Contents), "\n"))
	case elements.SpecialBlock:
		add("name=%s", e.Name)
	case elements.Comment:
		add("%q", e.Value)
	}

	if n := postBlank(e); n > 0 {
		add("post_blank=%d", n)
	}
	return strings.Join(parts, " ")
}
