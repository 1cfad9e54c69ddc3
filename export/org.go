package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/gerunddev/orgtree/elements"
)

// OrgHandler writes the tree back out as org text. Output is normalized:
// indentation, keyword case and spacing inside lines follow one canonical
// form, so it matches the source only for canonically written input.
type OrgHandler struct {
	headlines []elements.Headline
}

func NewOrgHandler() *OrgHandler {
	return &OrgHandler{}
}

// Reset drops the state of an unfinished walk.
func (h *OrgHandler) Reset() {
	h.headlines = h.headlines[:0]
}

func (h *OrgHandler) Start(w io.Writer, e elements.Element) error {
	switch e := e.(type) {
	case elements.Document:
		return write(w, strings.Repeat("\n", e.PreBlank))
	case elements.Headline:
		h.headlines = append(h.headlines, e)
		var b strings.Builder
		b.WriteString(strings.Repeat("*", e.Level))
		if e.Keyword != "" {
			b.WriteString(" " + e.Keyword)
		}
		if e.Priority != 0 {
			b.WriteString(" [#" + string(e.Priority) + "]")
		}
		if b.Len() == e.Level && e.Title == "" {
			b.WriteString(" ")
		}
		return write(w, b.String())
	case elements.Title:
		if len(h.headlines) > 0 && h.headlines[len(h.headlines)-1].Title != "" {
			return write(w, " ")
		}
		return nil
	case elements.Section, elements.Paragraph:
		return nil
	case elements.Text:
		return write(w, e.Value)
	case elements.Macros:
		if e.HasArguments {
			return write(w, "{{{"+e.Name+"("+e.Arguments+")}}}")
		}
		return write(w, "{{{"+e.Name+"}}}")
	case elements.Link:
		if e.Description != "" {
			return write(w, "[["+e.Path+"]["+e.Description+"]]")
		}
		return write(w, "[["+e.Path+"]]")
	case elements.Timestamp:
		return write(w, e.Value.String())
	case elements.Clock:
		line := "CLOCK: " + e.Value().String()
		if d, ok := e.DurationText(); ok {
			line += fmt.Sprintf(" => %5s", d)
		}
		return write(w, line+"\n")
	case elements.Planning:
		var parts []string
		if e.Scheduled != nil {
			parts = append(parts, "SCHEDULED: "+e.Scheduled.String())
		}
		if e.Deadline != nil {
			parts = append(parts, "DEADLINE: "+e.Deadline.String())
		}
		if e.Closed != nil {
			parts = append(parts, "CLOSED: "+e.Closed.String())
		}
		return write(w, strings.Join(parts, " ")+"\n")
	case elements.Keyword:
		return write(w, strings.TrimSpace("#+"+e.Key+": "+e.Value)+"\n")
	case elements.PropertyDrawer:
		var b strings.Builder
		b.WriteString(":PROPERTIES:\n")
		for _, p := range e.Properties {
			b.WriteString(strings.TrimSpace(":"+p.Key+": "+p.Value) + "\n")
		}
		b.WriteString(":END:\n")
		return write(w, b.String())
	case elements.Drawer:
		return write(w, ":"+e.Name+":\n")
	case elements.SourceBlock:
		return write(w, blockLine("BEGIN_SRC", e.Language, e.Arguments)+escapeLines(withNewline(e.Contents))+"#+END_SRC\n")
	case elements.VerbatimBlock:
		return write(w, blockLine("BEGIN_"+e.Name, e.Arguments)+escapeLines(withNewline(e.Contents))+"#+END_"+e.Name+"\n")
	case elements.QuoteBlock:
		return write(w, "#+BEGIN_QUOTE\n")
	case elements.SpecialBlock:
		return write(w, blockLine("BEGIN_"+e.Name, e.Arguments))
	case elements.Rule:
		return write(w, "-----\n")
	case elements.Comment:
		return write(w, strings.TrimSpace("# "+e.Value)+"\n")
	}
	return unsupported(e)
}

func (h *OrgHandler) End(w io.Writer, e elements.Element) error {
	var s string
	switch e := e.(type) {
	case elements.Headline:
		h.headlines = h.headlines[:len(h.headlines)-1]
		return nil
	case elements.Title:
		if len(h.headlines) > 0 {
			if tags := h.headlines[len(h.headlines)-1].Tags; len(tags) > 0 {
				s = " :" + strings.Join(tags, ":") + ":"
			}
		}
		return write(w, s+"\n")
	case elements.Paragraph:
		s = "\n"
	case elements.Drawer:
		s = ":END:\n"
	case elements.QuoteBlock:
		s = "#+END_QUOTE\n"
	case elements.SpecialBlock:
		s = "#+END_" + e.Name + "\n"
	}
	return write(w, s+strings.Repeat("\n", postBlank(e)))
}

func blockLine(marker string, args ...string) string {
	parts := []string{"#+" + marker}
	for _, a := range args {
		if a != "" {
			parts = append(parts, a)
		}
	}
	return strings.Join(parts, " ") + "\n"
}
