package timestamp

import "strings"

// ParseInactive recognizes [date time?] or [date time?]--[date time?] at
// the start of text, each optionally carrying a repeater and/or delay.
// The returned offset is the number of bytes consumed.
func ParseInactive(text string) (Timestamp, int, bool) {
	return parseKind(text, '[', ']', Inactive, InactiveRange)
}

// ParseActive is ParseInactive for <...> timestamps.
func ParseActive(text string) (Timestamp, int, bool) {
	return parseKind(text, '<', '>', Active, ActiveRange)
}

// Parse recognizes either an active or an inactive timestamp.
func Parse(text string) (Timestamp, int, bool) {
	if strings.HasPrefix(text, "<") {
		return ParseActive(text)
	}
	return ParseInactive(text)
}

func parseKind(text string, open, close byte, point, rng Kind) (Timestamp, int, bool) {
	first, n, ok := parseBracket(text, open, close)
	if !ok {
		return Timestamp{}, 0, false
	}

	ts := Timestamp{
		Kind:     point,
		Start:    first.start,
		Repeater: first.repeater,
		Delay:    first.delay,
	}

	if first.end != nil {
		ts.Kind = rng
		ts.End = first.end
		return ts, n, true
	}

	rest := text[n:]
	if strings.HasPrefix(rest, "--") {
		second, m, ok := parseBracket(rest[2:], open, close)
		if ok && second.end == nil {
			end := second.start
			ts.Kind = rng
			ts.End = &end
			return ts, n + 2 + m, true
		}
	}

	return ts, n, true
}

type bracket struct {
	start    Datetime
	end      *Datetime
	repeater *Repeater
	delay    *Delay
}

// parseBracket parses a single bracketed timestamp. A time range inside one
// bracket (09:00-10:30) is reported through end.
func parseBracket(text string, open, close byte) (bracket, int, bool) {
	var b bracket
	s := scanner{text: text}

	if !s.eat(open) {
		return b, 0, false
	}

	year, ok := s.digits(4, 4)
	if !ok || !s.eat('-') {
		return b, 0, false
	}
	month, ok := s.digits(2, 2)
	if !ok || !s.eat('-') {
		return b, 0, false
	}
	day, ok := s.digits(2, 2)
	if !ok || month < 1 || month > 12 || day < 1 || day > 31 {
		return b, 0, false
	}
	b.start = Datetime{Year: year, Month: month, Day: day}

	if s.spaces() {
		b.start.Dayname = s.dayname(close)
		s.spaces()
	}

	if h, m, ok := s.clock(); ok {
		b.start = b.start.At(h, m)
		save := s.pos
		if s.eat('-') {
			if h2, m2, ok := s.clock(); ok {
				end := b.start.At(h2, m2)
				b.end = &end
			} else {
				s.pos = save
			}
		}
	}

	for {
		s.spaces()
		if b.repeater == nil {
			if mark := s.prefix("++", ".+", "+"); mark != "" {
				v, u, ok := s.interval()
				if !ok {
					return bracket{}, 0, false
				}
				b.repeater = &Repeater{Mark: mark, Value: v, Unit: u}
				continue
			}
		}
		if b.delay == nil {
			if mark := s.prefix("--", "-"); mark != "" {
				v, u, ok := s.interval()
				if !ok {
					return bracket{}, 0, false
				}
				b.delay = &Delay{Mark: mark, Value: v, Unit: u}
				continue
			}
		}
		break
	}

	if !s.eat(close) {
		return bracket{}, 0, false
	}
	return b, s.pos, true
}

type scanner struct {
	text string
	pos  int
}

func (s *scanner) peek() (byte, bool) {
	if s.pos >= len(s.text) {
		return 0, false
	}
	return s.text[s.pos], true
}

func (s *scanner) eat(c byte) bool {
	if b, ok := s.peek(); ok && b == c {
		s.pos++
		return true
	}
	return false
}

func (s *scanner) prefix(options ...string) string {
	for _, p := range options {
		if strings.HasPrefix(s.text[s.pos:], p) {
			s.pos += len(p)
			return p
		}
	}
	return ""
}

func (s *scanner) spaces() bool {
	start := s.pos
	for s.pos < len(s.text) && (s.text[s.pos] == ' ' || s.text[s.pos] == '\t') {
		s.pos++
	}
	return s.pos > start
}

// digits reads between min and max ASCII digits.
func (s *scanner) digits(min, max int) (int, bool) {
	start, v := s.pos, 0
	for s.pos < len(s.text) && s.pos-start < max && isDigit(s.text[s.pos]) {
		v = v*10 + int(s.text[s.pos]-'0')
		s.pos++
	}
	if s.pos-start < min {
		s.pos = start
		return 0, false
	}
	return v, true
}

// dayname reads a run of characters that cannot start a time, a modifier
// or the closing bracket.
func (s *scanner) dayname(close byte) string {
	start := s.pos
	for s.pos < len(s.text) {
		c := s.text[s.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == close || c == '+' || c == '-' || c == '.' || isDigit(c) {
			break
		}
		s.pos++
	}
	return s.text[start:s.pos]
}

// clock reads H:MM or HH:MM.
func (s *scanner) clock() (int, int, bool) {
	start := s.pos
	h, ok := s.digits(1, 2)
	if !ok || !s.eat(':') {
		s.pos = start
		return 0, 0, false
	}
	m, ok := s.digits(2, 2)
	if !ok || h > 24 || m > 59 {
		s.pos = start
		return 0, 0, false
	}
	return h, m, true
}

func (s *scanner) interval() (int, Unit, bool) {
	v, ok := s.digits(1, 9)
	if !ok {
		return 0, 0, false
	}
	c, ok := s.peek()
	if !ok || !isUnit(c) {
		return 0, 0, false
	}
	s.pos++
	return v, Unit(c), true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
