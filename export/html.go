package export

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/gerunddev/orgtree/elements"
)

// HTMLHandler renders the tree as an HTML fragment. Headline titles get an
// anchor id from IDFunc. Drawers, planning lines and clocks are not
// rendered.
type HTMLHandler struct {
	// IDFunc returns the anchor id for the next headline title.
	IDFunc func() string

	levels []int
	hidden int
}

func NewHTMLHandler() *HTMLHandler {
	return &HTMLHandler{IDFunc: uuid.NewString}
}

// Reset drops the state of an unfinished walk.
func (h *HTMLHandler) Reset() {
	h.levels = h.levels[:0]
	h.hidden = 0
}

func (h *HTMLHandler) Start(w io.Writer, e elements.Element) error {
	if _, ok := e.(elements.Drawer); ok || h.hidden > 0 {
		if ok {
			h.hidden++
		}
		return nil
	}

	switch e := e.(type) {
	case elements.Document:
		return write(w, "<main>")
	case elements.Headline:
		h.levels = append(h.levels, min(e.Level, 6))
		return nil
	case elements.Title:
		return write(w, fmt.Sprintf(`<h%d id="%s">`, h.level(), html.EscapeString(h.IDFunc())))
	case elements.Section:
		return write(w, "<section>")
	case elements.Paragraph:
		return write(w, "<p>")
	case elements.Text:
		return write(w, html.EscapeString(e.Value))
	case elements.Link:
		desc := e.Description
		if desc == "" {
			desc = e.Path
		}
		return write(w, fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(e.Path), html.EscapeString(desc)))
	case elements.Timestamp:
		return write(w, `<span class="timestamp">`+html.EscapeString(e.Value.String())+"</span>")
	case elements.SourceBlock:
		class := ""
		if e.Language != "" {
			class = fmt.Sprintf(` class="language-%s"`, html.EscapeString(e.Language))
		}
		return write(w, "<pre><code"+class+">"+html.EscapeString(e.Contents)+"</code></pre>")
	case elements.VerbatimBlock:
		switch strings.ToUpper(e.Name) {
		case "EXAMPLE":
			return write(w, "<pre>"+html.EscapeString(e.Contents)+"</pre>")
		case "VERSE":
			return write(w, `<p class="verse">`+strings.ReplaceAll(html.EscapeString(strings.TrimSuffix(e.Contents, "\n")), "\n", "<br>\n")+"</p>")
		case "EXPORT":
			if strings.EqualFold(e.Arguments, "html") {
				return write(w, e.Contents)
			}
		}
		return nil
	case elements.QuoteBlock:
		return write(w, "<blockquote>")
	case elements.SpecialBlock:
		return write(w, fmt.Sprintf(`<div class="%s">`, html.EscapeString(strings.ToLower(e.Name))))
	case elements.Rule:
		return write(w, "<hr>")
	case elements.Macros, elements.Clock, elements.Planning, elements.Keyword,
		elements.PropertyDrawer, elements.Comment:
		return nil
	}
	return unsupported(e)
}

func (h *HTMLHandler) End(w io.Writer, e elements.Element) error {
	if _, ok := e.(elements.Drawer); ok || h.hidden > 0 {
		if ok {
			h.hidden--
		}
		return nil
	}

	switch e.(type) {
	case elements.Document:
		return write(w, "</main>")
	case elements.Headline:
		h.levels = h.levels[:len(h.levels)-1]
	case elements.Title:
		return write(w, fmt.Sprintf("</h%d>", h.level()))
	case elements.Section:
		return write(w, "</section>")
	case elements.Paragraph:
		return write(w, "</p>")
	case elements.QuoteBlock:
		return write(w, "</blockquote>")
	case elements.SpecialBlock:
		return write(w, "</div>")
	}
	return nil
}

func (h *HTMLHandler) level() int {
	if len(h.levels) == 0 {
		return 1
	}
	return h.levels[len(h.levels)-1]
}
