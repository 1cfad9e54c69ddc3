// Package export turns a stream of tree events into output formats.
//
// A Handler receives a Start call when the walk enters a node and an End
// call when it leaves it. Handlers keep whatever state they need between
// calls; the tree itself is never modified.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gerunddev/orgtree/elements"
)

// Handler consumes the events of a tree walk.
type Handler interface {
	Start(w io.Writer, e elements.Element) error
	End(w io.Writer, e elements.Element) error
}

// Resetter is implemented by handlers that keep state across calls. A walk
// that stops on an error calls Reset so the handler can be used again.
type Resetter interface {
	Reset()
}

// ErrUnsupported is returned by a handler for an element type it has no
// output for.
var ErrUnsupported = errors.New("unsupported element")

func unsupported(e elements.Element) error {
	return fmt.Errorf("%w: %T", ErrUnsupported, e)
}

func write(w io.Writer, s string) error {
	if s == "" {
		return nil
	}
	_, err := io.WriteString(w, s)
	return err
}

func postBlank(e elements.Element) int {
	if pb, ok := e.(elements.PostBlanker); ok {
		return pb.BlankLines()
	}
	return 0
}

// escapeLines protects lines inside a verbatim block that would otherwise
// be read as a headline or a keyword.
func escapeLines(text string) string {
	if !strings.Contains(text, "*") && !strings.Contains(text, "#+") {
		return text
	}

	lines := strings.SplitAfter(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "*") || strings.HasPrefix(trimmed, "#+") {
			indent := len(line) - len(trimmed)
			lines[i] = line[:indent] + "," + trimmed
		}
	}
	return strings.Join(lines, "")
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
