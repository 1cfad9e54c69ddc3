package elements

import (
	"strconv"
	"strings"

	"github.com/gerunddev/orgtree/timestamp"
)

// ClockStatus distinguishes an open clock from a closed one.
type ClockStatus int

const (
	ClockRunning ClockStatus = iota
	ClockClosed
)

func (s ClockStatus) String() string {
	if s == ClockClosed {
		return "closed"
	}
	return "running"
}

// Clock is a time-tracking line:
//
//	CLOCK: [2003-09-16 Tue 09:39]
//	CLOCK: [2003-09-16 Tue 09:39]--[2003-09-16 Tue 10:39] =>  1:00
//
// End and Duration are only meaningful for closed clocks. Duration is the
// literal token after "=>"; it is never checked against End minus Start.
type Clock struct {
	Status    ClockStatus
	Start     timestamp.Datetime
	End       timestamp.Datetime
	Repeater  *timestamp.Repeater
	Delay     *timestamp.Delay
	Duration  string
	PostBlank int
}

func (Clock) Kind() Kind                    { return KindClock }
func (Clock) element()                      {}
func (c Clock) BlankLines() int             { return c.PostBlank }
func (c Clock) WithPostBlank(n int) Element { c.PostBlank = n; return c }

// ParseClock recognizes a clock line at the start of input. It consumes the
// whole first line including its newline, or nothing.
func ParseClock(input string) (Clock, int, bool) {
	line, off := firstLine(input)
	line = strings.TrimSpace(line)

	rest, ok := strings.CutPrefix(line, "CLOCK:")
	if !ok || !strings.HasPrefix(rest, " ") {
		return Clock{}, 0, false
	}

	tail := strings.TrimLeft(rest, " \t")
	if !strings.HasPrefix(tail, "[") {
		return Clock{}, 0, false
	}

	ts, n, ok := timestamp.ParseInactive(tail)
	if !ok {
		return Clock{}, 0, false
	}
	trailing := strings.TrimLeft(tail[n:], " \t")

	switch ts.Kind {
	case timestamp.InactiveRange:
		after, ok := strings.CutPrefix(trailing, "=>")
		if !ok {
			return Clock{}, 0, false
		}
		duration := strings.TrimSpace(after)
		if !validDuration(duration) {
			return Clock{}, 0, false
		}
		return Clock{
			Status:   ClockClosed,
			Start:    ts.Start,
			End:      *ts.End,
			Repeater: ts.Repeater,
			Delay:    ts.Delay,
			Duration: duration,
		}, off, true

	case timestamp.Inactive:
		if strings.TrimSpace(trailing) != "" {
			return Clock{}, 0, false
		}
		return Clock{
			Status:   ClockRunning,
			Start:    ts.Start,
			Repeater: ts.Repeater,
			Delay:    ts.Delay,
		}, off, true
	}

	return Clock{}, 0, false
}

// validDuration accepts H+:MM.
func validDuration(d string) bool {
	colon := strings.IndexByte(d, ':')
	if colon < 1 || colon != len(d)-3 {
		return false
	}
	for i := 0; i < colon; i++ {
		if !isDigit(d[i]) {
			return false
		}
	}
	return isDigit(d[colon+1]) && isDigit(d[colon+2])
}

func (c Clock) IsRunning() bool { return c.Status == ClockRunning }
func (c Clock) IsClosed() bool  { return c.Status == ClockClosed }

// DurationText returns the literal duration token of a closed clock.
func (c Clock) DurationText() (string, bool) {
	if c.Status != ClockClosed {
		return "", false
	}
	return c.Duration, true
}

// Minutes converts the duration token of a closed clock into minutes.
func (c Clock) Minutes() (int, bool) {
	d, ok := c.DurationText()
	if !ok {
		return 0, false
	}
	colon := strings.IndexByte(d, ':')
	h, err := strconv.Atoi(d[:colon])
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(d[colon+1:])
	if err != nil {
		return 0, false
	}
	return h*60 + m, true
}

// Value returns the clock as the timestamp it was written with: an inactive
// point for a running clock, an inactive range for a closed one.
func (c Clock) Value() timestamp.Timestamp {
	if c.Status == ClockClosed {
		end := c.End
		return timestamp.Timestamp{
			Kind:     timestamp.InactiveRange,
			Start:    c.Start,
			End:      &end,
			Repeater: c.Repeater,
			Delay:    c.Delay,
		}
	}
	return timestamp.Timestamp{
		Kind:     timestamp.Inactive,
		Start:    c.Start,
		Repeater: c.Repeater,
		Delay:    c.Delay,
	}
}
