// Package report summarizes clocked time per headline.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gerunddev/orgtree/elements"
	"github.com/gerunddev/orgtree/org"
	"github.com/gerunddev/orgtree/styles"
)

// Entry is the clock summary of one headline. Clocks above the first
// headline are reported under an entry with an empty Path.
type Entry struct {
	Path  []string
	Level int
	// Own counts the closed clocks filed directly under this headline,
	// Total adds those of all descendants. Both are in minutes.
	Own     int
	Total   int
	Clocks  int
	Running bool
}

// Title is the last element of the path.
func (e Entry) Title() string {
	if len(e.Path) == 0 {
		return ""
	}
	return e.Path[len(e.Path)-1]
}

// Clocks walks the document and returns one entry per headline that has
// clock lines in its subtree, in document order.
func Clocks(o *org.Org) []Entry {
	var (
		entries []Entry
		open    []int
		path    []string
	)
	file := -1

	for ev := range o.Iter() {
		switch e := ev.Element.(type) {
		case elements.Headline:
			if ev.Kind == org.Start {
				path = append(path, e.Title)
				entries = append(entries, Entry{Path: append([]string(nil), path...), Level: e.Level})
				open = append(open, len(entries)-1)
				continue
			}

			i := open[len(open)-1]
			open = open[:len(open)-1]
			path = path[:len(path)-1]
			entries[i].Total += entries[i].Own
			if len(open) > 0 {
				p := open[len(open)-1]
				entries[p].Total += entries[i].Total
				entries[p].Running = entries[p].Running || entries[i].Running
			}

		case elements.Clock:
			if ev.Kind != org.Start {
				continue
			}
			i := file
			if len(open) > 0 {
				i = open[len(open)-1]
			} else if file < 0 {
				entries = append(entries, Entry{})
				file = len(entries) - 1
				i = file
			}

			entries[i].Clocks++
			if m, ok := e.Minutes(); ok {
				entries[i].Own += m
			}
			if e.IsRunning() {
				entries[i].Running = true
			}
		}
	}
	if file >= 0 {
		entries[file].Total = entries[file].Own
	}

	var kept []Entry
	for _, e := range entries {
		if e.Total > 0 || e.Clocks > 0 || e.Running {
			kept = append(kept, e)
		}
	}
	return kept
}

// Sum returns the total minutes of all entries at the top of the tree.
func Sum(entries []Entry) int {
	total := 0
	for _, e := range entries {
		if len(e.Path) <= 1 {
			total += e.Total
		}
	}
	return total
}

// FormatMinutes renders minutes as H:MM.
func FormatMinutes(m int) string {
	return fmt.Sprintf("%d:%02d", m/60, m%60)
}

// Table renders the entries as a clocktable.
func Table(entries []Entry) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(styles.Border))).
		Headers("Headline", "Time", "Total").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.HeaderStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, e := range entries {
		title := e.Title()
		if len(e.Path) == 0 {
			title = "(file)"
		}
		if len(e.Path) > 1 {
			title = strings.Repeat("  ", len(e.Path)-1) + title
		}
		if e.Running {
			title += " " + styles.WarningStyle.Render("(running)")
		}
		t.Row(title, FormatMinutes(e.Own), FormatMinutes(e.Total))
	}
	t.Row(styles.HighlightStyle.Render("Total"), "", FormatMinutes(Sum(entries)))

	return t.Render()
}
