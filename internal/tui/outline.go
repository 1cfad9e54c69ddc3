package tui

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/gerunddev/orgtree/arena"
	"github.com/gerunddev/orgtree/elements"
	"github.com/gerunddev/orgtree/export"
	"github.com/gerunddev/orgtree/org"
	"github.com/gerunddev/orgtree/report"
	"github.com/gerunddev/orgtree/styles"
)

// OutlineRow is one headline in the browser table.
type OutlineRow struct {
	Node     arena.NodeID
	Level    int
	Keyword  string
	Title    string
	Tags     []string
	Priority byte
	Done     bool
	Minutes  int
}

// Outline lists every headline of o in document order.
func Outline(o *org.Org) []OutlineRow {
	kw := o.Keywords()
	var rows []OutlineRow
	for id := range o.Headlines() {
		h, ok := o.Get(id).(elements.Headline)
		if !ok {
			continue
		}
		rows = append(rows, OutlineRow{
			Node:     id,
			Level:    h.Level,
			Keyword:  h.Keyword,
			Title:    h.Title,
			Tags:     h.Tags,
			Priority: h.Priority,
			Done:     h.Keyword != "" && kw.IsDone(h.Keyword),
			Minutes:  clockedMinutes(o, id),
		})
	}
	return rows
}

func clockedMinutes(o *org.Org, id arena.NodeID) int {
	total := 0
	for ev := range o.IterNode(id) {
		if ev.Kind != org.Start {
			continue
		}
		if c, ok := ev.Element.(elements.Clock); ok {
			if m, ok := c.Minutes(); ok {
				total += m
			}
		}
	}
	return total
}

func (r OutlineRow) cells() []string {
	title := strings.Repeat("  ", r.Level-1) + r.Title
	if r.Priority != 0 {
		title = "[#" + string(r.Priority) + "] " + title
	}
	clocked := ""
	if r.Minutes > 0 {
		clocked = report.FormatMinutes(r.Minutes)
	}
	state := ""
	if r.Keyword != "" {
		state = styles.Keyword(r.Keyword, r.Done)
	}
	return []string{title, state, strings.Join(r.Tags, ":"), clocked}
}

// Preview renders the subtree at id as markdown for the terminal, with
// headlines in the document's done states as checked tasks. The plain
// markdown is returned if the terminal renderer fails.
func Preview(o *org.Org, id arena.NodeID, width int, idMap map[string]string) (string, error) {
	md, err := previewMarkdown(o, id, idMap)
	if err != nil {
		return "", err
	}

	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md, nil
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return md, nil
	}
	return rendered, nil
}

func previewMarkdown(o *org.Org, id arena.NodeID, idMap map[string]string) (string, error) {
	var buf bytes.Buffer
	h := export.NewMarkdownHandler(idMap)
	h.DoneKeywords = o.Keywords().Done
	if err := o.RenderNode(&buf, id, h); err != nil {
		return "", err
	}
	return buf.String(), nil
}
