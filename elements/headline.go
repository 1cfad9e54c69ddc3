package elements

import (
	"slices"
	"strings"
)

// Headline is a heading line together with the subtree below it. Its
// children are a Title, an optional Section and nested Headlines.
type Headline struct {
	Level    int
	Keyword  string
	Priority byte
	Title    string
	Tags     []string
}

func (Headline) Kind() Kind { return KindHeadline }
func (Headline) element()   {}

// Keywords lists the TODO states a headline may start with.
type Keywords struct {
	Todo []string
	Done []string
}

// IsDone reports whether kw is one of the done states.
func (k Keywords) IsDone(kw string) bool {
	return slices.Contains(k.Done, kw)
}

func (k Keywords) contains(kw string) bool {
	return slices.Contains(k.Todo, kw) || slices.Contains(k.Done, kw)
}

// HeadlineParts are the spans of a headline's source that hold nested
// content.
type HeadlineParts struct {
	// Title is the inline title text, without keyword, priority and tags.
	Title string
	// Body is everything after the headline line up to the next headline of
	// the same or a higher level.
	Body string
}

// HeadlineLevel returns the number of leading stars if line starts a
// headline, or 0.
func HeadlineLevel(line string) int {
	n := 0
	for n < len(line) && line[n] == '*' {
		n++
	}
	if n == 0 || n == len(line) || (line[n] != ' ' && line[n] != '\t') {
		return 0
	}
	return n
}

// ParseHeadline recognizes a headline at the start of input and consumes its
// whole subtree.
func ParseHeadline(input string, kw Keywords) (Headline, HeadlineParts, int, bool) {
	line, off := firstLine(input)
	level := HeadlineLevel(line)
	if level == 0 {
		return Headline{}, HeadlineParts{}, 0, false
	}

	h := Headline{Level: level}
	rest := strings.TrimSpace(line[level:])

	if word, after, _ := strings.Cut(rest, " "); kw.contains(word) {
		h.Keyword = word
		rest = strings.TrimLeft(after, " \t")
	}

	if len(rest) >= 4 && strings.HasPrefix(rest, "[#") && rest[3] == ']' &&
		(len(rest) == 4 || rest[4] == ' ' || rest[4] == '\t') {
		h.Priority = rest[2]
		rest = strings.TrimLeft(rest[4:], " \t")
	}

	if i := strings.LastIndexAny(rest, " \t"); i >= 0 || isTagString(rest) {
		candidate := rest[i+1:]
		if isTagString(candidate) {
			h.Tags = strings.Split(strings.Trim(candidate, ":"), ":")
			rest = strings.TrimRight(rest[:i+1], " \t")
		}
	}
	h.Title = rest

	end := len(input)
	if start, _, ok := findLine(input[off:], func(l string) bool {
		n := HeadlineLevel(l)
		return n > 0 && n <= level
	}); ok {
		end = off + start
	}

	return h, HeadlineParts{Title: h.Title, Body: input[off:end]}, end, true
}

// isTagString accepts :tag1:tag2: where tags use letters, digits, _@#%.
func isTagString(s string) bool {
	if len(s) < 3 || s[0] != ':' || s[len(s)-1] != ':' {
		return false
	}
	for _, tag := range strings.Split(s[1:len(s)-1], ":") {
		if tag == "" {
			return false
		}
		for i := 0; i < len(tag); i++ {
			c := tag[i]
			if !isAlpha(c) && !isDigit(c) && !strings.ContainsRune("_@#%", rune(c)) && c < 0x80 {
				return false
			}
		}
	}
	return true
}
