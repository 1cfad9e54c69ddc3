package elements

import "strings"

// firstLine splits off the first line of text. It returns the line without
// its terminator and the length including the terminator.
func firstLine(text string) (string, int) {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return strings.TrimSuffix(text[:i], "\r"), i + 1
	}
	return text, len(text)
}

// IsBlankLine reports whether line contains only whitespace.
func IsBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

// BlankLines counts the leading blank lines of text and returns the count
// together with the number of bytes they occupy.
func BlankLines(text string) (int, int) {
	count, off := 0, 0
	for off < len(text) {
		line, n := firstLine(text[off:])
		if !IsBlankLine(line) {
			break
		}
		count++
		off += n
	}
	return count, off
}

// NextLine returns the first line of text and the number of bytes including
// its terminator.
func NextLine(text string) (string, int) {
	return firstLine(text)
}

// findLine returns the offset of the first line in text, starting at a line
// boundary, for which match returns true, and the offset just past it.
func findLine(text string, match func(string) bool) (int, int, bool) {
	off := 0
	for off < len(text) {
		line, n := firstLine(text[off:])
		if match(line) {
			return off, off + n, true
		}
		off += n
	}
	return 0, 0, false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// unescapeLines removes the comma that protects lines starting with "*" or
// "#+" inside verbatim blocks. The input is returned unchanged when nothing
// needs unescaping.
func unescapeLines(text string) string {
	if !strings.Contains(text, ",*") && !strings.Contains(text, ",#+") {
		return text
	}

	lines := strings.SplitAfter(text, "\n")
	changed := false
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, ",*") || strings.HasPrefix(trimmed, ",#+") {
			indent := line[:len(line)-len(trimmed)]
			lines[i] = indent + trimmed[1:]
			changed = true
		}
	}
	if !changed {
		return text
	}
	return strings.Join(lines, "")
}
