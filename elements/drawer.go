package elements

import "strings"

// Property is one :NAME: value line of a property drawer.
type Property struct {
	Key   string
	Value string
}

// PropertyDrawer is a :PROPERTIES: ... :END: drawer.
type PropertyDrawer struct {
	Properties []Property
	PostBlank  int
}

func (PropertyDrawer) Kind() Kind                    { return KindPropertyDrawer }
func (PropertyDrawer) element()                      {}
func (d PropertyDrawer) BlankLines() int             { return d.PostBlank }
func (d PropertyDrawer) WithPostBlank(n int) Element { d.PostBlank = n; return d }

// Get returns the value of the first property named key, compared
// case-insensitively.
func (d PropertyDrawer) Get(key string) (string, bool) {
	for _, p := range d.Properties {
		if strings.EqualFold(p.Key, key) {
			return p.Value, true
		}
	}
	return "", false
}

// Drawer is any other :NAME: ... :END: drawer. Its contents are parsed as
// block content.
type Drawer struct {
	Name      string
	PostBlank int
}

func (Drawer) Kind() Kind                    { return KindDrawer }
func (Drawer) element()                      {}
func (d Drawer) BlankLines() int             { return d.PostBlank }
func (d Drawer) WithPostBlank(n int) Element { d.PostBlank = n; return d }

func isEndLine(line string) bool {
	return strings.EqualFold(strings.TrimSpace(line), ":END:")
}

// drawerName returns NAME if line is :NAME: with NAME made of word
// characters and dashes.
func drawerName(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if len(line) < 3 || line[0] != ':' || line[len(line)-1] != ':' {
		return "", false
	}
	name := line[1 : len(line)-1]
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !isAlpha(c) && !isDigit(c) && c != '_' && c != '-' {
			return "", false
		}
	}
	if strings.EqualFold(name, "END") {
		return "", false
	}
	return name, true
}

// ParsePropertyDrawer recognizes a property drawer. Every line between
// :PROPERTIES: and :END: must be a property line.
func ParsePropertyDrawer(input string) (PropertyDrawer, int, bool) {
	line, off := firstLine(input)
	if name, ok := drawerName(line); !ok || !strings.EqualFold(name, "PROPERTIES") {
		return PropertyDrawer{}, 0, false
	}

	start, end, ok := findLine(input[off:], isEndLine)
	if !ok {
		return PropertyDrawer{}, 0, false
	}

	var d PropertyDrawer
	body := input[off : off+start]
	for body != "" {
		l, n := firstLine(body)
		body = body[n:]
		p, ok := parseProperty(l)
		if !ok {
			return PropertyDrawer{}, 0, false
		}
		d.Properties = append(d.Properties, p)
	}
	return d, off + end, true
}

func parseProperty(line string) (Property, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), ":")
	if !ok {
		return Property{}, false
	}
	key, value, ok := strings.Cut(rest, ":")
	if !ok || key == "" || strings.ContainsAny(key, " \t") {
		return Property{}, false
	}
	return Property{Key: key, Value: strings.TrimSpace(value)}, true
}

// ParseDrawer recognizes a generic drawer and returns its contents.
func ParseDrawer(input string) (Drawer, string, int, bool) {
	line, off := firstLine(input)
	name, ok := drawerName(line)
	if !ok {
		return Drawer{}, "", 0, false
	}

	start, end, ok := findLine(input[off:], isEndLine)
	if !ok {
		return Drawer{}, "", 0, false
	}
	return Drawer{Name: name}, input[off : off+start], off + end, true
}
