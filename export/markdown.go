package export

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gerunddev/orgtree/elements"
	"github.com/gerunddev/orgtree/timestamp"
)

// Callouts lists the special block names rendered as Obsidian callouts.
// QUOTE blocks become plain blockquotes instead.
var Callouts = map[string]bool{
	"note": true, "abstract": true, "summary": true, "tldr": true,
	"info": true, "todo": true, "tip": true, "hint": true, "important": true,
	"success": true, "check": true, "done": true,
	"question": true, "help": true, "faq": true,
	"warning": true, "caution": true, "attention": true,
	"failure": true, "fail": true, "missing": true,
	"danger": true, "error": true, "bug": true,
	"example": true,
}

// FrontMatter is the YAML header written above the markdown body. It is
// filled from the file-level #+title and #+filetags keywords and the
// file-level property drawer.
type FrontMatter struct {
	ID      string   `yaml:"id,omitempty"`
	Title   string   `yaml:"title,omitempty"`
	Aliases []string `yaml:"aliases,omitempty"`
	Tags    []string `yaml:"tags,omitempty"`
	Refs    []string `yaml:"refs,omitempty"`
}

func (f FrontMatter) empty() bool {
	return f.ID == "" && f.Title == "" && len(f.Aliases) == 0 && len(f.Tags) == 0 && len(f.Refs) == 0
}

var aliasPattern = regexp.MustCompile(`"([^"]+)"`)

// MarkdownHandler renders the tree as Obsidian-flavoured markdown:
//   - headlines become ATX headings, TODO/DONE headlines task checkboxes
//   - id: links resolve through IDMap into wikilinks
//   - file: links without a description become embeds
//   - QUOTE blocks become blockquotes, known special blocks callouts
//
// Output is buffered and written once the node the walk started at ends.
type MarkdownHandler struct {
	// IDMap maps org-roam ids to note names. Unknown ids are used as the
	// note name.
	IDMap map[string]string
	// DoneKeywords are rendered as checked tasks. Empty means DONE.
	DoneKeywords []string

	front     FrontMatter
	body      strings.Builder
	para      *strings.Builder
	headlines []elements.Headline
	priority  string
	quote     int
	callouts  []bool
	hidden    int
	depth     int
}

func NewMarkdownHandler(idMap map[string]string) *MarkdownHandler {
	return &MarkdownHandler{IDMap: idMap}
}

// Reset discards buffered output and the state of an unfinished walk.
func (h *MarkdownHandler) Reset() {
	h.front = FrontMatter{}
	h.body.Reset()
	h.para = nil
	h.headlines = h.headlines[:0]
	h.priority = ""
	h.quote = 0
	h.callouts = h.callouts[:0]
	h.hidden = 0
	h.depth = 0
}

func (h *MarkdownHandler) out() *strings.Builder {
	if h.para != nil {
		return h.para
	}
	return &h.body
}

func (h *MarkdownHandler) prefix() string {
	return strings.Repeat("> ", h.quote)
}

// line writes s prefixed for the current quote depth.
func (h *MarkdownHandler) line(s string) {
	if h.quote > 0 && s == "" {
		h.body.WriteString(strings.TrimRight(h.prefix(), " ") + "\n")
		return
	}
	h.body.WriteString(h.prefix() + s + "\n")
}

func (h *MarkdownHandler) blank(n int) {
	for range n {
		h.line("")
	}
}

func (h *MarkdownHandler) flushPriority() {
	if h.priority != "" {
		h.line("Priority: " + h.priority)
		h.priority = ""
	}
}

func (h *MarkdownHandler) Start(w io.Writer, e elements.Element) error {
	h.depth++
	if _, ok := e.(elements.Drawer); ok || h.hidden > 0 {
		if ok {
			h.hidden++
		}
		return nil
	}

	switch e.(type) {
	case elements.Section, elements.Planning, elements.Title:
	default:
		if !e.Kind().IsObject() {
			h.flushPriority()
		}
	}

	switch e := e.(type) {
	case elements.Document, elements.Section:
	case elements.Headline:
		h.headlines = append(h.headlines, e)
	case elements.Title:
		hl := h.currentHeadline()
		h.body.WriteString(strings.Repeat("#", max(hl.Level, 1)) + " ")
		if hl.Keyword != "" {
			if h.isDone(hl.Keyword) {
				h.body.WriteString("- [x] ")
			} else {
				h.body.WriteString("- [ ] ")
			}
			h.priority = priorityLevel(hl.Priority)
		}
	case elements.Paragraph:
		h.para = &strings.Builder{}
	case elements.Text:
		h.out().WriteString(e.Value)
	case elements.Macros:
		if e.HasArguments {
			h.out().WriteString("{{{" + e.Name + "(" + e.Arguments + ")}}}")
		} else {
			h.out().WriteString("{{{" + e.Name + "}}}")
		}
	case elements.Link:
		h.out().WriteString(h.link(e))
	case elements.Timestamp:
		h.out().WriteString(e.Value.String())
	case elements.Planning:
		if e.Scheduled != nil {
			h.line("⏳ " + isoDate(e.Scheduled.Start))
		}
		if e.Deadline != nil {
			h.line("📅 " + isoDate(e.Deadline.Start))
		}
		if e.Closed != nil {
			h.line("✅ " + isoDate(e.Closed.Start))
		}
		h.flushPriority()
		h.blank(e.PostBlank)
	case elements.Keyword:
		if len(h.headlines) == 0 {
			switch strings.ToLower(e.Key) {
			case "title":
				h.front.Title = e.Value
			case "filetags":
				h.front.Tags = parseTags(e.Value)
			}
		}
	case elements.PropertyDrawer:
		if len(h.headlines) == 0 {
			if id, ok := e.Get("ID"); ok {
				h.front.ID = id
			}
			if aliases, ok := e.Get("ROAM_ALIASES"); ok {
				h.front.Aliases = parseAliases(aliases)
			}
			if refs, ok := e.Get("ROAM_REFS"); ok {
				h.front.Refs = strings.Fields(refs)
			}
		}
	case elements.Clock:
	case elements.SourceBlock:
		h.line("```" + e.Language)
		for _, l := range contentLines(e.Contents) {
			h.line(l)
		}
		h.line("```")
		h.blank(e.PostBlank)
	case elements.VerbatimBlock:
		switch strings.ToUpper(e.Name) {
		case "EXAMPLE", "VERSE":
			h.line("```")
			for _, l := range contentLines(e.Contents) {
				h.line(l)
			}
			h.line("```")
		case "EXPORT":
			if a := strings.ToLower(e.Arguments); a == "markdown" || a == "md" {
				for _, l := range contentLines(e.Contents) {
					h.line(l)
				}
			}
		}
		h.blank(e.PostBlank)
	case elements.QuoteBlock:
		h.quote++
	case elements.SpecialBlock:
		name := strings.ToLower(e.Name)
		callout := Callouts[name]
		h.callouts = append(h.callouts, callout)
		if callout {
			h.quote++
			h.line("[!" + name + "]")
		}
	case elements.Rule:
		h.line("---")
		h.blank(e.PostBlank)
	case elements.Comment:
		if target, ok := strings.CutPrefix(e.Value, "EMBED:"); ok {
			h.line("![[" + strings.TrimSpace(target) + "]]")
		}
		h.blank(e.PostBlank)
	default:
		return unsupported(e)
	}
	return nil
}

func (h *MarkdownHandler) End(w io.Writer, e elements.Element) error {
	h.depth--
	if _, ok := e.(elements.Drawer); ok || h.hidden > 0 {
		if ok {
			h.hidden--
		}
		return h.finish(w)
	}

	switch e := e.(type) {
	case elements.Headline:
		h.flushPriority()
		h.headlines = h.headlines[:len(h.headlines)-1]
	case elements.Title:
		h.body.WriteString("\n")
	case elements.Paragraph:
		text := h.para.String()
		h.para = nil
		for _, l := range strings.Split(text, "\n") {
			h.line(l)
		}
		h.blank(e.PostBlank)
	case elements.QuoteBlock:
		h.quote--
		h.blank(e.PostBlank)
	case elements.SpecialBlock:
		callout := h.callouts[len(h.callouts)-1]
		h.callouts = h.callouts[:len(h.callouts)-1]
		if callout {
			h.quote--
			h.body.WriteString("\n")
		}
		h.blank(e.PostBlank)
	}
	return h.finish(w)
}

// finish writes the buffered document once the walk is back at the node
// it started from.
func (h *MarkdownHandler) finish(w io.Writer) error {
	if h.depth > 0 {
		return nil
	}

	var out bytes.Buffer
	if !h.front.empty() {
		out.WriteString("---\n")
		enc := yaml.NewEncoder(&out)
		enc.SetIndent(2)
		if err := enc.Encode(h.front); err != nil {
			return fmt.Errorf("failed to encode front matter: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode front matter: %w", err)
		}
		out.WriteString("---\n\n")
	}
	if body := strings.TrimSpace(h.body.String()); body != "" {
		out.WriteString(body + "\n")
	}

	h.body.Reset()
	h.front = FrontMatter{}
	_, err := w.Write(out.Bytes())
	return err
}

func (h *MarkdownHandler) isDone(kw string) bool {
	done := h.DoneKeywords
	if len(done) == 0 {
		done = []string{"DONE"}
	}
	return elements.Keywords{Done: done}.IsDone(kw)
}

func (h *MarkdownHandler) currentHeadline() elements.Headline {
	if len(h.headlines) == 0 {
		return elements.Headline{}
	}
	return h.headlines[len(h.headlines)-1]
}

func (h *MarkdownHandler) link(l elements.Link) string {
	target := l.Target()
	switch l.Scheme() {
	case "id":
		name, ok := h.IDMap[target]
		if !ok {
			name = target
		}
		if l.Description != "" {
			return "[[" + name + "|" + l.Description + "]]"
		}
		return "[[" + name + "]]"
	case "file":
		if l.Description != "" {
			return "[[" + target + "|" + l.Description + "]]"
		}
		return "![[" + target + "]]"
	}

	if l.Description != "" {
		return "[" + l.Description + "](" + l.Path + ")"
	}
	return "<" + l.Path + ">"
}

func priorityLevel(p byte) string {
	switch p {
	case 0:
		return ""
	case 'A':
		return "high"
	case 'C':
		return "low"
	}
	return "medium"
}

func isoDate(d timestamp.Datetime) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// parseTags parses the :tag1:tag2: format.
func parseTags(s string) []string {
	s = strings.Trim(strings.TrimSpace(s), ":")
	if s == "" {
		return nil
	}
	return strings.Split(s, ":")
}

// parseAliases parses the "alias one" "alias two" format.
func parseAliases(s string) []string {
	var aliases []string
	for _, m := range aliasPattern.FindAllStringSubmatch(s, -1) {
		aliases = append(aliases, m[1])
	}
	return aliases
}

func contentLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
