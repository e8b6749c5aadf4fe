package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pcbforge/pcbforge/pkg/board"
	"github.com/pcbforge/pcbforge/pkg/drc"
)

func testReport() *drc.Report {
	return &drc.Report{
		Total: 3,
		Violations: []drc.Violation{
			{Code: drc.CodeTrackWidthTooSmall, Message: "track on net SIG too narrow", Position: &board.Point{X: 1, Y: 2}},
			{Code: drc.CodeClearanceViolation, Message: "VCC too close to GND", Position: &board.Point{X: 3, Y: 4}},
			{Code: drc.CodeNoBoardOutline, Message: "no board outline defined"},
		},
	}
}

func keyMsg(s string) tea.KeyMsg {
	if s == "down" {
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	if s == "up" {
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViolationListNavigation(t *testing.T) {
	m := newViolationListModel(testReport())

	next, _ := m.Update(keyMsg("down"))
	m = next.(ViolationListModel)
	if m.Cursor != 1 {
		t.Errorf("cursor = %d after down, want 1", m.Cursor)
	}

	next, _ = m.Update(keyMsg("down"))
	m = next.(ViolationListModel)
	next, _ = m.Update(keyMsg("down"))
	m = next.(ViolationListModel)
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, should stop at the last violation", m.Cursor)
	}

	next, _ = m.Update(keyMsg("up"))
	m = next.(ViolationListModel)
	if m.Cursor != 1 {
		t.Errorf("cursor = %d after up, want 1", m.Cursor)
	}
}

func TestViolationListQuit(t *testing.T) {
	m := newViolationListModel(testReport())
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
}

func TestViolationListView(t *testing.T) {
	m := newViolationListModel(testReport())
	view := m.View()

	if !strings.Contains(view, "Design Rule Violations") {
		t.Error("view missing title")
	}
	if !strings.Contains(view, string(drc.CodeTrackWidthTooSmall)) {
		t.Error("view missing violation code")
	}
	if !strings.Contains(view, "[1/3]") {
		t.Error("view missing position indicator")
	}
	// Board-level violations have no position.
	if !strings.Contains(view, "—") {
		t.Error("positionless violations should show a placeholder")
	}
}

func TestViolationListWindowResize(t *testing.T) {
	m := newViolationListModel(testReport())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	m = next.(ViolationListModel)
	if m.Height < 5 {
		t.Errorf("height = %d, should be clamped to at least 5", m.Height)
	}
}
