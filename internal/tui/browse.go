package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/orgtree/arena"
)

// BrowseData holds the outline of one parsed file
type BrowseData struct {
	File string
	Rows []OutlineRow
}

// BrowseMsg is sent when browse data is ready
type BrowseMsg struct {
	Data *BrowseData
	Err  error
}

// PreviewMsg is sent when a subtree preview is ready
type PreviewMsg struct {
	Title   string
	Content string
	Err     error
}

// PreviewFunc renders the subtree rooted at a headline for a given width.
type PreviewFunc func(id arena.NodeID, width int) (string, error)

type browseModel struct {
	table          table.Model
	viewport       viewport.Model
	data           *BrowseData
	err            error
	ready          bool
	showingPreview bool
	previewTitle   string
	width          int
	height         int
	previewFunc    PreviewFunc
}

// InitBrowseModel creates a new outline browser model
func InitBrowseModel(previewFunc PreviewFunc) browseModel {
	columns := []table.Column{
		{Title: "Headline", Width: 50},
		{Title: "State", Width: 8},
		{Title: "Tags", Width: 20},
		{Title: "Clocked", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(ts)

	vp := viewport.New(100, 20)
	vp.Style = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1)

	return browseModel{
		table:       t,
		viewport:    vp,
		previewFunc: previewFunc,
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(msg.Height - 10)
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 6

	case tea.KeyMsg:
		if m.showingPreview {
			switch msg.String() {
			case "q", "esc":
				m.showingPreview = false
				return m, nil
			case "up", "k", "down", "j", "pgup", "pgdown":
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k", "down", "j":
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		case "enter", "p":
			if row, ok := m.selected(); ok {
				return m, m.loadPreview(row)
			}
			return m, nil
		}

	case BrowseMsg:
		m.ready = true
		m.data = msg.Data
		m.err = msg.Err

		if m.data != nil {
			rows := make([]table.Row, 0, len(m.data.Rows))
			for _, r := range m.data.Rows {
				rows = append(rows, table.Row(r.cells()))
			}
			m.table.SetRows(rows)
		}
		return m, nil

	case PreviewMsg:
		m.showingPreview = true
		m.previewTitle = msg.Title
		if msg.Err != nil {
			m.viewport.SetContent(errorStyle.Render("✗ " + msg.Err.Error()))
		} else {
			m.viewport.SetContent(msg.Content)
		}
		m.viewport.GotoTop()
		return m, nil
	}

	return m, nil
}

func (m browseModel) selected() (OutlineRow, bool) {
	if m.data == nil {
		return OutlineRow{}, false
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(m.data.Rows) {
		return OutlineRow{}, false
	}
	return m.data.Rows[i], true
}

func (m browseModel) loadPreview(row OutlineRow) tea.Cmd {
	width := m.viewport.Width - 4
	return func() tea.Msg {
		if m.previewFunc == nil {
			return PreviewMsg{Title: row.Title, Err: fmt.Errorf("no preview available")}
		}
		content, err := m.previewFunc(row.Node, width)
		return PreviewMsg{Title: row.Title, Content: content, Err: err}
	}
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Outline"))
	b.WriteString("\n\n")

	if m.err != nil {
		return errorStyle.Render("✗ Error: "+m.err.Error()) + "\n"
	}

	if !m.ready || m.data == nil {
		return b.String()
	}

	if m.showingPreview {
		b.WriteString(labelStyle.Render(fmt.Sprintf("Preview: %s", m.previewTitle)))
		b.WriteString("\n\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("↑/k up • ↓/j down • esc/q back"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(labelStyle.Render(fmt.Sprintf("%s: %d headlines", m.data.File, len(m.data.Rows))))
	b.WriteString("\n\n")
	b.WriteString(tableStyle.Render(m.table.View()))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("↑/k up • ↓/j down • enter/p preview • q quit"))
	b.WriteString("\n")

	return b.String()
}
