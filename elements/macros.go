package elements

import "strings"

const macroTerminator = ")}}}"

// Macros is a macro call: {{{name}}} or {{{name(arguments)}}}.
type Macros struct {
	Name string
	// Arguments is the raw text between the parentheses, sharing the
	// input's memory. Escaped commas stay escaped here; Args splits and
	// unescapes on demand.
	Arguments    string
	HasArguments bool
}

func (Macros) Kind() Kind { return KindMacros }
func (Macros) element()   {}

// ParseMacros recognizes a macro call at the start of input.
//
// The argument list runs to the last ")}}}" in input, so arguments may
// contain unescaped closing parentheses. Callers that scan a longer text
// bound input so it does not reach into the next macro call.
func ParseMacros(input string) (Macros, int, bool) {
	rest, ok := strings.CutPrefix(input, "{{{")
	if !ok {
		return Macros{}, 0, false
	}

	n := 0
	for n < len(rest) && isNameByte(rest[n]) {
		n++
	}
	if n == 0 || !isAlpha(rest[0]) {
		return Macros{}, 0, false
	}

	m := Macros{Name: rest[:n]}
	pos := 3 + n

	if pos < len(input) && input[pos] == '(' {
		end := strings.LastIndex(input[pos+1:], macroTerminator)
		if end < 0 {
			return Macros{}, 0, false
		}
		m.Arguments = input[pos+1 : pos+1+end]
		m.HasArguments = true
		pos += 1 + end + 1
	}

	if !strings.HasPrefix(input[pos:], "}}}") {
		return Macros{}, 0, false
	}
	return m, pos + 3, true
}

func isNameByte(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '-' || c == '_'
}

// Args splits the arguments on unescaped commas. Each argument is trimmed
// and "\," is unescaped to ",".
func (m Macros) Args() []string {
	if !m.HasArguments {
		return nil
	}

	var args []string
	s, start := m.Arguments, 0
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == ',':
			i++
		case s[i] == ',':
			args = append(args, unescapeArg(s[start:i]))
			start = i + 1
		}
	}
	return append(args, unescapeArg(s[start:]))
}

func unescapeArg(a string) string {
	return strings.ReplaceAll(strings.TrimSpace(a), `\,`, ",")
}
