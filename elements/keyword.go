package elements

import "strings"

// Keyword is an affiliated or document keyword line: #+KEY: value.
type Keyword struct {
	Key       string
	Value     string
	PostBlank int
}

func (Keyword) Kind() Kind                    { return KindKeyword }
func (Keyword) element()                      {}
func (k Keyword) BlankLines() int             { return k.PostBlank }
func (k Keyword) WithPostBlank(n int) Element { k.PostBlank = n; return k }

// ParseKeyword recognizes a #+KEY: value line.
func ParseKeyword(input string) (Keyword, int, bool) {
	line, off := firstLine(input)
	rest, ok := strings.CutPrefix(strings.TrimLeft(line, " \t"), "#+")
	if !ok {
		return Keyword{}, 0, false
	}

	key, value, ok := strings.Cut(rest, ":")
	if !ok || key == "" || strings.ContainsAny(key, " \t") {
		return Keyword{}, 0, false
	}
	return Keyword{Key: key, Value: strings.TrimSpace(value)}, off, true
}

// Rule is a horizontal rule: five or more dashes on a line of their own.
type Rule struct {
	PostBlank int
}

func (Rule) Kind() Kind                    { return KindRule }
func (Rule) element()                      {}
func (r Rule) BlankLines() int             { return r.PostBlank }
func (r Rule) WithPostBlank(n int) Element { r.PostBlank = n; return r }

func ParseRule(input string) (Rule, int, bool) {
	line, off := firstLine(input)
	line = strings.TrimSpace(line)
	if len(line) < 5 || strings.Trim(line, "-") != "" {
		return Rule{}, 0, false
	}
	return Rule{}, off, true
}

// Comment is a line starting with "# " or consisting of a lone "#".
type Comment struct {
	Value     string
	PostBlank int
}

func (Comment) Kind() Kind                    { return KindComment }
func (Comment) element()                      {}
func (c Comment) BlankLines() int             { return c.PostBlank }
func (c Comment) WithPostBlank(n int) Element { c.PostBlank = n; return c }

func ParseComment(input string) (Comment, int, bool) {
	line, off := firstLine(input)
	line = strings.TrimSpace(line)
	switch {
	case line == "#":
		return Comment{}, off, true
	case strings.HasPrefix(line, "# "):
		return Comment{Value: line[2:]}, off, true
	}
	return Comment{}, 0, false
}
