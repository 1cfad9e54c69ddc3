package elements

import (
	"strings"

	"github.com/gerunddev/orgtree/timestamp"
)

// Link is a bracket link: [[path]] or [[path][description]].
type Link struct {
	Path        string
	Description string
}

func (Link) Kind() Kind { return KindLink }
func (Link) element()   {}

// Scheme returns the link type before the first colon ("id", "file",
// "https", ...), or "" for a plain target.
func (l Link) Scheme() string {
	scheme, _, ok := strings.Cut(l.Path, ":")
	if !ok || strings.ContainsAny(scheme, " /") {
		return ""
	}
	return scheme
}

// Target returns the path without its scheme.
func (l Link) Target() string {
	if s := l.Scheme(); s != "" {
		return l.Path[len(s)+1:]
	}
	return l.Path
}

// ParseLink recognizes a bracket link at the start of input.
func ParseLink(input string) (Link, int, bool) {
	rest, ok := strings.CutPrefix(input, "[[")
	if !ok {
		return Link{}, 0, false
	}

	i := strings.IndexAny(rest, "[]\n")
	if i <= 0 || rest[i] != ']' {
		return Link{}, 0, false
	}
	l := Link{Path: rest[:i]}
	after := rest[i:]

	if strings.HasPrefix(after, "]]") {
		return l, 2 + i + 2, true
	}
	if !strings.HasPrefix(after, "][") {
		return Link{}, 0, false
	}

	d := strings.Index(after[2:], "]]")
	if d < 0 {
		return Link{}, 0, false
	}
	l.Description = after[2 : 2+d]
	if strings.Contains(l.Description, "[[") {
		return Link{}, 0, false
	}
	return l, 2 + i + 2 + d + 2, true
}

// Timestamp is a timestamp appearing inline in a paragraph or title.
type Timestamp struct {
	Value timestamp.Timestamp
}

func (Timestamp) Kind() Kind { return KindTimestamp }
func (Timestamp) element()   {}

// ParseTimestamp recognizes an active or inactive timestamp at the start of
// input.
func ParseTimestamp(input string) (Timestamp, int, bool) {
	ts, n, ok := timestamp.Parse(input)
	if !ok {
		return Timestamp{}, 0, false
	}
	return Timestamp{Value: ts}, n, true
}
