package elements

import (
	"strings"

	"github.com/gerunddev/orgtree/timestamp"
)

// Planning is the SCHEDULED/DEADLINE/CLOSED line directly below a headline.
type Planning struct {
	Scheduled *timestamp.Timestamp
	Deadline  *timestamp.Timestamp
	Closed    *timestamp.Timestamp
	PostBlank int
}

func (Planning) Kind() Kind                    { return KindPlanning }
func (Planning) element()                      {}
func (p Planning) BlankLines() int             { return p.PostBlank }
func (p Planning) WithPostBlank(n int) Element { p.PostBlank = n; return p }

// ParsePlanning recognizes a planning line. Every token on the line must be
// a planning keyword followed by a timestamp, and each keyword may appear
// once.
func ParsePlanning(input string) (Planning, int, bool) {
	line, off := firstLine(input)
	rest := strings.TrimSpace(line)
	if rest == "" {
		return Planning{}, 0, false
	}

	var p Planning
	for rest != "" {
		var slot **timestamp.Timestamp
		switch {
		case strings.HasPrefix(rest, "SCHEDULED:"):
			slot, rest = &p.Scheduled, rest[len("SCHEDULED:"):]
		case strings.HasPrefix(rest, "DEADLINE:"):
			slot, rest = &p.Deadline, rest[len("DEADLINE:"):]
		case strings.HasPrefix(rest, "CLOSED:"):
			slot, rest = &p.Closed, rest[len("CLOSED:"):]
		default:
			return Planning{}, 0, false
		}
		if *slot != nil {
			return Planning{}, 0, false
		}

		rest = strings.TrimLeft(rest, " \t")
		ts, n, ok := timestamp.Parse(rest)
		if !ok {
			return Planning{}, 0, false
		}
		*slot = &ts
		rest = strings.TrimLeft(rest[n:], " \t")
	}

	return p, off, true
}
