package elements

import (
	"slices"
	"strings"
)

// SourceBlock is #+BEGIN_SRC language arguments ... #+END_SRC.
type SourceBlock struct {
	Language  string
	Arguments string
	Contents  string
	PostBlank int
}

func (SourceBlock) Kind() Kind                    { return KindSourceBlock }
func (SourceBlock) element()                      {}
func (b SourceBlock) BlankLines() int             { return b.PostBlank }
func (b SourceBlock) WithPostBlank(n int) Element { b.PostBlank = n; return b }

// VerbatimBlock is an EXAMPLE, EXPORT, COMMENT or VERSE block whose contents
// are kept as text.
type VerbatimBlock struct {
	Name      string
	Arguments string
	Contents  string
	PostBlank int
}

func (VerbatimBlock) Kind() Kind                    { return KindVerbatimBlock }
func (VerbatimBlock) element()                      {}
func (b VerbatimBlock) BlankLines() int             { return b.PostBlank }
func (b VerbatimBlock) WithPostBlank(n int) Element { b.PostBlank = n; return b }

// QuoteBlock is #+BEGIN_QUOTE ... #+END_QUOTE; its contents are child nodes.
type QuoteBlock struct {
	PostBlank int
}

func (QuoteBlock) Kind() Kind                    { return KindQuoteBlock }
func (QuoteBlock) element()                      {}
func (b QuoteBlock) BlankLines() int             { return b.PostBlank }
func (b QuoteBlock) WithPostBlank(n int) Element { b.PostBlank = n; return b }

// SpecialBlock is any other named block (CENTER, NOTE, WARNING, ...); its
// contents are child nodes.
type SpecialBlock struct {
	Name      string
	Arguments string
	PostBlank int
}

func (SpecialBlock) Kind() Kind                    { return KindSpecialBlock }
func (SpecialBlock) element()                      {}
func (b SpecialBlock) BlankLines() int             { return b.PostBlank }
func (b SpecialBlock) WithPostBlank(n int) Element { b.PostBlank = n; return b }

var verbatimBlocks = []string{"EXAMPLE", "EXPORT", "COMMENT", "VERSE"}

// ParseBlock recognizes a #+BEGIN_NAME ... #+END_NAME block. For container
// blocks (QuoteBlock, SpecialBlock) the returned contents are the span to
// parse as child content; for the others they are already stored in the
// element.
func ParseBlock(input string) (Element, string, int, bool) {
	line, off := firstLine(input)
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < len("#+BEGIN_") || !strings.EqualFold(trimmed[:len("#+BEGIN_")], "#+BEGIN_") {
		return nil, "", 0, false
	}

	name, args, _ := strings.Cut(trimmed[len("#+BEGIN_"):], " ")
	if name == "" {
		return nil, "", 0, false
	}
	args = strings.TrimSpace(args)

	endMarker := "#+END_" + name
	start, end, ok := findLine(input[off:], func(l string) bool {
		return strings.EqualFold(strings.TrimSpace(l), endMarker)
	})
	if !ok {
		return nil, "", 0, false
	}

	contents := input[off : off+start]
	consumed := off + end
	upper := strings.ToUpper(name)

	switch {
	case upper == "SRC":
		lang, rest, _ := strings.Cut(args, " ")
		return SourceBlock{
			Language:  lang,
			Arguments: strings.TrimSpace(rest),
			Contents:  unescapeLines(contents),
		}, "", consumed, true
	case upper == "QUOTE":
		return QuoteBlock{}, contents, consumed, true
	case slices.Contains(verbatimBlocks, upper):
		return VerbatimBlock{
			Name:      name,
			Arguments: args,
			Contents:  unescapeLines(contents),
		}, "", consumed, true
	default:
		return SpecialBlock{Name: name, Arguments: args}, contents, consumed, true
	}
}
