// Package timestamp parses org-mode timestamps such as
// <2024-01-15 Mon 09:00 +1w> and [2003-09-16 Tue 09:39]--[2003-09-16 Tue 10:39].
//
// All values are plain structs. Parsing is pure: the same input always
// yields the same value, and a failed parse reports ok == false without
// consuming anything.
package timestamp

import (
	"fmt"
	"strings"
)

// Kind distinguishes active/inactive points and ranges.
type Kind int

const (
	Active Kind = iota
	Inactive
	ActiveRange
	InactiveRange
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Active:
		return "active"
	case Inactive:
		return "inactive"
	case ActiveRange:
		return "active-range"
	case InactiveRange:
		return "inactive-range"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// IsRange reports whether the kind carries an end datetime.
func (k Kind) IsRange() bool {
	return k == ActiveRange || k == InactiveRange
}

// IsActive reports whether the kind uses angle brackets.
func (k Kind) IsActive() bool {
	return k == Active || k == ActiveRange
}

// Datetime is a calendar date with an optional time of day.
type Datetime struct {
	Year    int
	Month   int
	Day     int
	Dayname string
	Hour    int
	Minute  int
	HasTime bool
}

// Date builds a Datetime without a time of day.
func Date(year, month, day int, dayname string) Datetime {
	return Datetime{Year: year, Month: month, Day: day, Dayname: dayname}
}

// At returns a copy of d with the time of day set.
func (d Datetime) At(hour, minute int) Datetime {
	d.Hour, d.Minute, d.HasTime = hour, minute, true
	return d
}

// String formats d the way it appears inside timestamp brackets.
func (d Datetime) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%04d-%02d-%02d", d.Year, d.Month, d.Day)
	if d.Dayname != "" {
		b.WriteByte(' ')
		b.WriteString(d.Dayname)
	}
	if d.HasTime {
		fmt.Fprintf(&b, " %02d:%02d", d.Hour, d.Minute)
	}
	return b.String()
}

// Unit is the interval unit of a repeater or delay: h, d, w, m or y.
type Unit byte

const (
	Hour  Unit = 'h'
	Day   Unit = 'd'
	Week  Unit = 'w'
	Month Unit = 'm'
	Year  Unit = 'y'
)

func isUnit(c byte) bool {
	switch Unit(c) {
	case Hour, Day, Week, Month, Year:
		return true
	}
	return false
}

// Repeater marks a recurring timestamp. Mark is one of "+", "++" or ".+".
type Repeater struct {
	Mark  string
	Value int
	Unit  Unit
}

func (r Repeater) String() string {
	return fmt.Sprintf("%s%d%c", r.Mark, r.Value, r.Unit)
}

// Delay postpones a warning period. Mark is "-" or "--".
type Delay struct {
	Mark  string
	Value int
	Unit  Unit
}

func (d Delay) String() string {
	return fmt.Sprintf("%s%d%c", d.Mark, d.Value, d.Unit)
}

// Timestamp is a parsed timestamp. End is set only for range kinds.
type Timestamp struct {
	Kind     Kind
	Start    Datetime
	End      *Datetime
	Repeater *Repeater
	Delay    *Delay
}

// String re-emits the timestamp in org syntax. Ranges always use the
// two-bracket form.
func (t Timestamp) String() string {
	open, close := "[", "]"
	if t.Kind.IsActive() {
		open, close = "<", ">"
	}

	var b strings.Builder
	b.WriteString(open)
	b.WriteString(t.Start.String())
	if t.Repeater != nil {
		b.WriteByte(' ')
		b.WriteString(t.Repeater.String())
	}
	if t.Delay != nil {
		b.WriteByte(' ')
		b.WriteString(t.Delay.String())
	}
	b.WriteString(close)

	if t.Kind.IsRange() && t.End != nil {
		b.WriteString("--")
		b.WriteString(open)
		b.WriteString(t.End.String())
		b.WriteString(close)
	}
	return b.String()
}
