package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/pcbforge/pcbforge/pkg/drc"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ViolationListModel - Interactive DRC violation browser
// =============================================================================

// ViolationListModel is the bubbletea model for browsing DRC violations.
type ViolationListModel struct {
	Report *drc.Report
	Cursor int
	Height int
	Offset int
}

// newViolationListModel creates a violation browser over a failed report.
func newViolationListModel(report *drc.Report) ViolationListModel {
	return ViolationListModel{
		Report: report,
		Height: 15,
	}
}

func (m ViolationListModel) Init() tea.Cmd {
	return nil
}

func (m ViolationListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Report.Violations)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ViolationListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Design Rule Violations"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Report.Violations) {
		end = len(m.Report.Violations)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		v := m.Report.Violations[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		pos := "—"
		if v.Position != nil {
			pos = fmt.Sprintf("(%.1f, %.1f)", v.Position.X, v.Position.Y)
		}

		rows = append(rows, []string{cursor, string(v.Code), pos, v.Message})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Code", "Position", "Message").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 1 {
				return StyleWarning
			}
			return StyleValue
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Report.Violations))))

	return b.String()
}
