package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/orgtree/elements"
)

// Monokai Pro color palette
const (
	// Base colors
	Background = "#2D2A2E"
	Foreground = "#FCFCFA"

	// Accent colors
	Red     = "#FF6188" // Errors, danger
	Orange  = "#FC9867" // Warnings, running clocks
	Yellow  = "#FFD866" // Highlights
	Green   = "#A9DC76" // Success, done
	Cyan    = "#78DCE8" // Info, timestamps
	Blue    = "#AB9DF2" // Links
	Magenta = "#FF6188" // Titles, emphasis

	// UI colors
	Comment = "#727072" // Dim text, help
	Border  = "#5B595C" // Borders, separators
)

// Common styles
var (
	SuccessStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Green))
	ErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Red))
	WarningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Orange))
	DimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
	TitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Magenta))
	HighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Yellow)).Bold(true)
	HelpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))

	// Table/list styles
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(Magenta))

	TableStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(Border))

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Background)).
			Background(lipgloss.Color(Yellow))

	NormalTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Foreground))
)

// kindStyles colors the element kinds in tree dumps. Kinds not listed use
// NormalTextStyle.
var kindStyles = map[elements.Kind]lipgloss.Style{
	elements.KindDocument:       TitleStyle,
	elements.KindHeadline:       HighlightStyle,
	elements.KindTitle:          DimStyle,
	elements.KindSection:        DimStyle,
	elements.KindText:           NormalTextStyle,
	elements.KindClock:          WarningStyle,
	elements.KindPlanning:       WarningStyle,
	elements.KindTimestamp:      lipgloss.NewStyle().Foreground(lipgloss.Color(Cyan)),
	elements.KindLink:           lipgloss.NewStyle().Foreground(lipgloss.Color(Blue)),
	elements.KindMacros:         lipgloss.NewStyle().Foreground(lipgloss.Color(Green)),
	elements.KindKeyword:        HeaderStyle,
	elements.KindPropertyDrawer: DimStyle,
	elements.KindDrawer:         DimStyle,
	elements.KindComment:        DimStyle,
}

// KindStyle returns the style used for elements of kind k.
func KindStyle(k elements.Kind) lipgloss.Style {
	if s, ok := kindStyles[k]; ok {
		return s
	}
	return NormalTextStyle
}

// Kind renders label in the style of kind k. It matches the signature of
// export.TreeHandler.Style.
func Kind(k elements.Kind, label string) string {
	return KindStyle(k).Render(label)
}

// Keyword colors a TODO keyword: done states green, the rest red.
func Keyword(kw string, done bool) string {
	if done {
		return SuccessStyle.Bold(true).Render(kw)
	}
	return ErrorStyle.Bold(true).Render(kw)
}
