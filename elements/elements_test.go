package elements

import (
	"reflect"
	"slices"
	"strings"
	"testing"
)

var defaultKeywords = Keywords{Todo: []string{"TODO"}, Done: []string{"DONE"}}

func TestParseHeadline(t *testing.T) {
	input := "** TODO [#A] Write report :work:urgent:\nbody\n*** child\nmore\n** sibling\n"

	h, parts, n, ok := ParseHeadline(input, defaultKeywords)
	if !ok {
		t.Fatal("expected headline to match")
	}

	want := Headline{Level: 2, Keyword: "TODO", Priority: 'A', Title: "Write report", Tags: []string{"work", "urgent"}}
	if !reflect.DeepEqual(h, want) {
		t.Errorf("headline = %+v, want %+v", h, want)
	}
	if parts.Title != "Write report" {
		t.Errorf("title span = %q", parts.Title)
	}
	if parts.Body != "body\n*** child\nmore\n" {
		t.Errorf("body span = %q", parts.Body)
	}
	if input[n:] != "** sibling\n" {
		t.Errorf("remainder = %q", input[n:])
	}
}

func TestParseHeadlineVariants(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Headline
	}{
		{"plain", "* Hello", Headline{Level: 1, Title: "Hello"}},
		{"done", "* DONE Ship it", Headline{Level: 1, Keyword: "DONE", Title: "Ship it"}},
		{"unknown keyword is title", "* WAIT Later", Headline{Level: 1, Title: "WAIT Later"}},
		{"keyword only", "* TODO", Headline{Level: 1, Keyword: "TODO"}},
		{"tags only", "* :a:b:", Headline{Level: 1, Tags: []string{"a", "b"}}},
		{"colon in title is not a tag", "* Time: 10:30", Headline{Level: 1, Title: "Time: 10:30"}},
		{"priority without keyword", "*** [#C] Low", Headline{Level: 3, Priority: 'C', Title: "Low"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, n, ok := ParseHeadline(tt.input, defaultKeywords)
			if !ok {
				t.Fatalf("ParseHeadline(%q) did not match", tt.input)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseHeadline(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
			if n != len(tt.input) {
				t.Errorf("consumed = %d, want %d", n, len(tt.input))
			}
		})
	}

	for _, in := range []string{"*bold*", "text", "", " * indented", "*"} {
		if _, _, n, ok := ParseHeadline(in, defaultKeywords); ok || n != 0 {
			t.Errorf("ParseHeadline(%q) matched", in)
		}
	}
}

func TestParsePlanning(t *testing.T) {
	p, n, ok := ParsePlanning("  SCHEDULED: <2024-01-15 Mon> DEADLINE: <2024-01-20 Sat>\nbody")
	if !ok {
		t.Fatal("expected planning to match")
	}
	if p.Scheduled == nil || p.Scheduled.Start.Day != 15 {
		t.Errorf("Scheduled = %+v", p.Scheduled)
	}
	if p.Deadline == nil || p.Deadline.Start.Day != 20 {
		t.Errorf("Deadline = %+v", p.Deadline)
	}
	if p.Closed != nil {
		t.Errorf("Closed = %+v", p.Closed)
	}
	if n != len("  SCHEDULED: <2024-01-15 Mon> DEADLINE: <2024-01-20 Sat>\n") {
		t.Errorf("consumed = %d", n)
	}

	for _, in := range []string{
		"SCHEDULED:",
		"SCHEDULED: soon",
		"SCHEDULED: <2024-01-15 Mon> SCHEDULED: <2024-01-16 Tue>",
		"Some text SCHEDULED: <2024-01-15 Mon>",
	} {
		if _, n, ok := ParsePlanning(in); ok || n != 0 {
			t.Errorf("ParsePlanning(%q) matched", in)
		}
	}
}

func TestParseKeywordRuleComment(t *testing.T) {
	k, n, ok := ParseKeyword("#+title: My Note\nrest")
	if !ok || k.Key != "title" || k.Value != "My Note" || n != len("#+title: My Note\n") {
		t.Errorf("ParseKeyword = %+v, %d, %v", k, n, ok)
	}
	for _, in := range []string{"#+BEGIN_SRC go", "# comment", "#+ key: v", "text"} {
		if _, _, ok := ParseKeyword(in); ok {
			t.Errorf("ParseKeyword(%q) matched", in)
		}
	}

	if _, n, ok := ParseRule("-----\n"); !ok || n != 6 {
		t.Errorf("ParseRule = %d, %v", n, ok)
	}
	if _, _, ok := ParseRule("----"); ok {
		t.Error("four dashes is not a rule")
	}

	c, _, ok := ParseComment("# a note")
	if !ok || c.Value != "a note" {
		t.Errorf("ParseComment = %+v, %v", c, ok)
	}
	if _, _, ok := ParseComment("#+title: x"); ok {
		t.Error("keyword is not a comment")
	}
}

func TestParseDrawers(t *testing.T) {
	input := ":PROPERTIES:\n:ID: 123e4567\n:ROAM_ALIASES: \"One\" \"Two\"\n:END:\nafter"
	d, n, ok := ParsePropertyDrawer(input)
	if !ok {
		t.Fatal("expected property drawer to match")
	}
	want := []Property{{Key: "ID", Value: "123e4567"}, {Key: "ROAM_ALIASES", Value: `"One" "Two"`}}
	if !slices.Equal(d.Properties, want) {
		t.Errorf("Properties = %+v", d.Properties)
	}
	if v, ok := d.Get("id"); !ok || v != "123e4567" {
		t.Errorf("Get(id) = %q, %v", v, ok)
	}
	if input[n:] != "after" {
		t.Errorf("remainder = %q", input[n:])
	}

	if _, _, ok := ParsePropertyDrawer(":PROPERTIES:\nnot a property\n:END:\n"); ok {
		t.Error("property drawer with a non-property line matched")
	}
	if _, _, ok := ParsePropertyDrawer(":PROPERTIES:\n:ID: x\n"); ok {
		t.Error("unterminated property drawer matched")
	}

	dr, contents, n, ok := ParseDrawer(":LOGBOOK:\nCLOCK: [2003-09-16 Tue 09:39]\n:end:\ntail")
	if !ok || dr.Name != "LOGBOOK" || contents != "CLOCK: [2003-09-16 Tue 09:39]\n" {
		t.Errorf("ParseDrawer = %+v, %q, %v", dr, contents, ok)
	}
	if n != len(":LOGBOOK:\nCLOCK: [2003-09-16 Tue 09:39]\n:end:\n") {
		t.Errorf("consumed = %d", n)
	}
	if _, _, _, ok := ParseDrawer(":END:\n"); ok {
		t.Error(":END: is not a drawer start")
	}
}

func TestParseBlock(t *testing.T) {
	e, inner, n, ok := ParseBlock("#+BEGIN_SRC go :tangle yes\nfunc main() {}\n,* not a headline\n#+END_SRC\nafter")
	if !ok {
		t.Fatal("expected source block to match")
	}
	src, isSrc := e.(SourceBlock)
	if !isSrc {
		t.Fatalf("element = %T, want SourceBlock", e)
	}
	if src.Language != "go" || src.Arguments != ":tangle yes" {
		t.Errorf("SourceBlock = %+v", src)
	}
	if src.Contents != "func main() {}\n* not a headline\n" {
		t.Errorf("Contents = %q", src.Contents)
	}
	if inner != "" || n != len("#+BEGIN_SRC go :tangle yes\nfunc main() {}\n,* not a headline\n#+END_SRC\n") {
		t.Errorf("inner = %q, consumed = %d", inner, n)
	}

	e, inner, _, ok = ParseBlock("#+begin_quote\nQuoted.\n#+end_quote")
	if _, isQuote := e.(QuoteBlock); !ok || !isQuote || inner != "Quoted.\n" {
		t.Errorf("quote block = %T, %q, %v", e, inner, ok)
	}

	e, inner, _, ok = ParseBlock("#+BEGIN_NOTE\nRemember.\n#+END_NOTE\n")
	if sb, isSpecial := e.(SpecialBlock); !ok || !isSpecial || sb.Name != "NOTE" || inner != "Remember.\n" {
		t.Errorf("special block = %+v, %q, %v", e, inner, ok)
	}

	e, _, _, ok = ParseBlock("#+BEGIN_EXAMPLE\nx\n#+END_EXAMPLE\n")
	if vb, isVerbatim := e.(VerbatimBlock); !ok || !isVerbatim || vb.Contents != "x\n" {
		t.Errorf("example block = %+v, %v", e, ok)
	}

	if _, _, n, ok := ParseBlock("#+BEGIN_SRC go\nno end\n"); ok || n != 0 {
		t.Error("unterminated block matched")
	}
	if _, _, _, ok := ParseBlock("#+BEGIN_QUOTE\nx\n#+END_NOTE\n"); ok {
		t.Error("mismatched end marker matched")
	}
}

func TestParseLink(t *testing.T) {
	tests := []struct {
		input    string
		want     Link
		consumed int
	}{
		{"[[https://orgmode.org]]", Link{Path: "https://orgmode.org"}, 23},
		{"[[id:123][Related Note]] rest", Link{Path: "id:123", Description: "Related Note"}, 24},
		{"[[file:image.png]]", Link{Path: "file:image.png"}, 18},
	}

	for _, tt := range tests {
		got, n, ok := ParseLink(tt.input)
		if !ok || got != tt.want || n != tt.consumed {
			t.Errorf("ParseLink(%q) = %+v, %d, %v", tt.input, got, n, ok)
		}
	}

	l := Link{Path: "id:123"}
	if l.Scheme() != "id" || l.Target() != "123" {
		t.Errorf("Scheme/Target = %q/%q", l.Scheme(), l.Target())
	}
	if (Link{Path: "Some Heading"}).Scheme() != "" {
		t.Error("plain target should have no scheme")
	}

	for _, in := range []string{"[[]]", "[[a]", "[[a][b]", "[a]", "[[a\nb]]"} {
		if _, _, ok := ParseLink(in); ok {
			t.Errorf("ParseLink(%q) matched", in)
		}
	}
}

// TestProtocol checks the parser contract on a shared corpus: a non-match
// consumes nothing, and a match re-parsed on exactly its consumed prefix
// yields the same element.
func TestProtocol(t *testing.T) {
	type parseFunc func(string) (Element, int, bool)

	parsers := map[string]parseFunc{
		"clock":    func(s string) (Element, int, bool) { return ParseClock(s) },
		"macros":   func(s string) (Element, int, bool) { return ParseMacros(s) },
		"keyword":  func(s string) (Element, int, bool) { return ParseKeyword(s) },
		"planning": func(s string) (Element, int, bool) { return ParsePlanning(s) },
		"rule":     func(s string) (Element, int, bool) { return ParseRule(s) },
		"comment":  func(s string) (Element, int, bool) { return ParseComment(s) },
		"link":     func(s string) (Element, int, bool) { return ParseLink(s) },
		"drawer": func(s string) (Element, int, bool) {
			return ParsePropertyDrawer(s)
		},
		"timestamp": func(s string) (Element, int, bool) { return ParseTimestamp(s) },
		"block": func(s string) (Element, int, bool) {
			e, _, n, ok := ParseBlock(s)
			return e, n, ok
		},
	}

	corpus := []string{
		"CLOCK: [2003-09-16 Tue 09:39]",
		"CLOCK: [2003-09-16 Tue 09:39]--[2003-09-16 Tue 10:39] =>  1:00\nnext",
		"{{{poem())}}}",
		"{{{author}}",
		"#+title: x\n",
		"SCHEDULED: <2024-01-15 Mon>\n",
		"------\n",
		"# c\n",
		"[[id:1][x]]",
		":PROPERTIES:\n:ID: 1\n:END:\n",
		"<2024-01-15 Mon>",
		"#+BEGIN_SRC\nx\n#+END_SRC\n",
		"plain text",
		"",
	}

	for name, parse := range parsers {
		for _, in := range corpus {
			e, n, ok := parse(in)
			if !ok {
				if n != 0 {
					t.Errorf("%s(%q): non-match consumed %d bytes", name, in, n)
				}
				continue
			}
			if n <= 0 || n > len(in) {
				t.Errorf("%s(%q): consumed %d out of range", name, in, n)
				continue
			}
			again, m, ok := parse(in[:n])
			if !ok || m != n || !reflect.DeepEqual(again, e) {
				t.Errorf("%s(%q): reparse of consumed prefix differs: %+v vs %+v", name, in, again, e)
			}
			// Determinism.
			if third, _, _ := parse(in); !reflect.DeepEqual(third, e) {
				t.Errorf("%s(%q): parse is not deterministic", name, in)
			}
		}
	}
}

func TestBlankLines(t *testing.T) {
	n, off := BlankLines("\n  \n\t\ntext\n")
	if n != 3 || off != len("\n  \n\t\n") {
		t.Errorf("BlankLines = %d, %d", n, off)
	}
	if n, off := BlankLines("text"); n != 0 || off != 0 {
		t.Errorf("BlankLines(text) = %d, %d", n, off)
	}
	if !strings.HasPrefix(KindPropertyDrawer.String(), "property") {
		t.Errorf("KindPropertyDrawer.String() = %q", KindPropertyDrawer.String())
	}
	if k, err := ParseKind("macros"); err != nil || k != KindMacros {
		t.Errorf("ParseKind(macros) = %v, %v", k, err)
	}
	if _, err := ParseKind("nope"); err == nil {
		t.Error("ParseKind(nope) should fail")
	}
}
