package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/orgtree/styles"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	tableStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	errorStyle = styles.ErrorStyle
	helpStyle  = styles.HelpStyle
)
