package timestamp

import (
	"reflect"
	"testing"
)

func TestParseInactive(t *testing.T) {
	start := Date(2003, 9, 16, "Tue").At(9, 39)
	end := Date(2003, 9, 16, "Tue").At(10, 39)

	tests := []struct {
		name     string
		input    string
		want     Timestamp
		consumed int
	}{
		{
			name:     "single",
			input:    "[2003-09-16 Tue 09:39]",
			want:     Timestamp{Kind: Inactive, Start: start},
			consumed: 22,
		},
		{
			name:     "range",
			input:    "[2003-09-16 Tue 09:39]--[2003-09-16 Tue 10:39] => 1:00",
			want:     Timestamp{Kind: InactiveRange, Start: start, End: &end},
			consumed: 46,
		},
		{
			name:     "time range in one bracket",
			input:    "[2003-09-16 Tue 09:39-10:39]",
			want:     Timestamp{Kind: InactiveRange, Start: start, End: &end},
			consumed: 28,
		},
		{
			name:     "date only",
			input:    "[2024-01-15]",
			want:     Timestamp{Kind: Inactive, Start: Date(2024, 1, 15, "")},
			consumed: 12,
		},
		{
			name:  "repeater and delay",
			input: "[2024-01-15 Mon +1w -2d] tail",
			want: Timestamp{
				Kind:     Inactive,
				Start:    Date(2024, 1, 15, "Mon"),
				Repeater: &Repeater{Mark: "+", Value: 1, Unit: Week},
				Delay:    &Delay{Mark: "-", Value: 2, Unit: Day},
			},
			consumed: 24,
		},
		{
			name:  "catch-up repeater",
			input: "[2024-01-15 Mon 08:00 .+1d]",
			want: Timestamp{
				Kind:     Inactive,
				Start:    Date(2024, 1, 15, "Mon").At(8, 0),
				Repeater: &Repeater{Mark: ".+", Value: 1, Unit: Day},
			},
			consumed: 27,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n, ok := ParseInactive(tt.input)
			if !ok {
				t.Fatalf("ParseInactive(%q) did not match", tt.input)
			}
			if n != tt.consumed {
				t.Errorf("consumed = %d, want %d", n, tt.consumed)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseInactive(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseInactiveRejects(t *testing.T) {
	inputs := []string{
		"",
		"<2003-09-16 Tue>",
		"[2003-9-16]",
		"[2003-13-01]",
		"[2003-09-16 Tue 09:39",
		"[2003-09-16 Tue 09:39 +w]",
		"[not a date]",
	}

	for _, in := range inputs {
		if _, n, ok := ParseInactive(in); ok || n != 0 {
			t.Errorf("ParseInactive(%q) = (%d, %v), want no match", in, n, ok)
		}
	}
}

func TestParseActive(t *testing.T) {
	got, n, ok := Parse("<2024-01-15 Mon 10:00>--<2024-01-16 Tue 12:00>")
	if !ok {
		t.Fatal("expected active range to match")
	}
	if got.Kind != ActiveRange {
		t.Errorf("Kind = %v, want %v", got.Kind, ActiveRange)
	}
	if n != 46 {
		t.Errorf("consumed = %d, want 46", n)
	}
	if got.End == nil || got.End.Day != 16 || got.End.Hour != 12 {
		t.Errorf("unexpected end: %+v", got.End)
	}

	// A mismatched second bracket is left unconsumed.
	got, n, ok = Parse("<2024-01-15 Mon>--[2024-01-16 Tue]")
	if !ok || got.Kind != Active || n != 16 {
		t.Errorf("Parse mixed range = (%v, %d, %v), want (active, 16, true)", got.Kind, n, ok)
	}
}

func TestString(t *testing.T) {
	tests := []string{
		"[2003-09-16 Tue 09:39]",
		"[2003-09-16 Tue 09:39]--[2003-09-16 Tue 10:39]",
		"<2024-01-15 Mon +1w -2d>",
		"<2024-01-15>",
	}

	for _, in := range tests {
		ts, _, ok := Parse(in)
		if !ok {
			t.Fatalf("Parse(%q) did not match", in)
		}
		if got := ts.String(); got != in {
			t.Errorf("String() = %q, want %q", got, in)
		}
	}
}
