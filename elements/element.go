// Package elements defines the closed set of org-mode element types stored
// in a parsed tree, and the parsers that recognize them.
//
// Every parser follows the same protocol: given the text at the current
// cursor it either recognizes a prefix and reports the element together with
// the number of bytes consumed, or it reports ok == false and consumes
// nothing. Parsers are pure functions with no shared state, so trying one
// after another at the same position needs no rollback.
//
// String fields cut from the input share its backing array. Fields whose
// text has to be transformed (unescaped block contents, macro arguments) only
// allocate when the transformed text differs from the source.
package elements

import "fmt"

// Kind enumerates the element types.
type Kind int

const (
	KindDocument Kind = iota
	KindHeadline
	KindTitle
	KindSection
	KindParagraph
	KindText
	KindClock
	KindMacros
	KindLink
	KindTimestamp
	KindPlanning
	KindKeyword
	KindPropertyDrawer
	KindDrawer
	KindSourceBlock
	KindVerbatimBlock
	KindQuoteBlock
	KindSpecialBlock
	KindRule
	KindComment
)

var kindNames = [...]string{
	KindDocument:       "document",
	KindHeadline:       "headline",
	KindTitle:          "title",
	KindSection:        "section",
	KindParagraph:      "paragraph",
	KindText:           "text",
	KindClock:          "clock",
	KindMacros:         "macros",
	KindLink:           "link",
	KindTimestamp:      "timestamp",
	KindPlanning:       "planning",
	KindKeyword:        "keyword",
	KindPropertyDrawer: "property-drawer",
	KindDrawer:         "drawer",
	KindSourceBlock:    "source-block",
	KindVerbatimBlock:  "verbatim-block",
	KindQuoteBlock:     "quote-block",
	KindSpecialBlock:   "special-block",
	KindRule:           "rule",
	KindComment:        "comment",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a kind name as returned by Kind.String back to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown element kind %q", name)
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	ks := make([]Kind, len(kindNames))
	for i := range ks {
		ks[i] = Kind(i)
	}
	return ks
}

// IsContainer reports whether elements of this kind hold their content as
// child nodes.
func (k Kind) IsContainer() bool {
	switch k {
	case KindDocument, KindHeadline, KindTitle, KindSection, KindParagraph,
		KindDrawer, KindQuoteBlock, KindSpecialBlock:
		return true
	}
	return false
}

// IsObject reports whether the kind appears inside paragraphs and titles.
func (k Kind) IsObject() bool {
	switch k {
	case KindText, KindMacros, KindLink, KindTimestamp:
		return true
	}
	return false
}

// Element is the payload stored at a tree node. The set of implementations
// is closed: only types in this package satisfy it.
type Element interface {
	Kind() Kind
	element()
}

// PostBlanker is implemented by block-level elements that remember how many
// blank lines followed them in the source.
type PostBlanker interface {
	Element
	BlankLines() int
	WithPostBlank(n int) Element
}

// Document is the root of every tree.
type Document struct {
	PreBlank int
}

func (Document) Kind() Kind { return KindDocument }
func (Document) element()   {}

// Section holds the block content of the document preamble or of a
// headline body.
type Section struct{}

func (Section) Kind() Kind { return KindSection }
func (Section) element()   {}

// Title holds the inline content of a headline's title.
type Title struct{}

func (Title) Kind() Kind { return KindTitle }
func (Title) element()   {}

// Paragraph is the fallback block: lines no other parser recognized.
type Paragraph struct {
	PostBlank int
}

func (Paragraph) Kind() Kind                    { return KindParagraph }
func (Paragraph) element()                      {}
func (p Paragraph) BlankLines() int             { return p.PostBlank }
func (p Paragraph) WithPostBlank(n int) Element { p.PostBlank = n; return p }

// Text is plain inline text.
type Text struct {
	Value string
}

func (Text) Kind() Kind { return KindText }
func (Text) element()   {}
