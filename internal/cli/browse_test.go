package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stevenrrose/Shim-Index/pkg/piece"
	"github.com/stevenrrose/Shim-Index/pkg/serial"
)

func testBrowseModel(t *testing.T) BrowseModel {
	t.Helper()
	sp := serial.Space{X: 2, Y: 2}
	size, err := sp.Size()
	if err != nil {
		t.Fatal(err)
	}
	return NewBrowseModel(sp, piece.Options{}, size)
}

// press runs one key through Update and returns the typed model.
func press(t *testing.T, m BrowseModel, key tea.KeyMsg) (BrowseModel, tea.Cmd) {
	t.Helper()
	model, cmd := m.Update(key)
	bm, ok := model.(BrowseModel)
	if !ok {
		t.Fatalf("Update returned %T, want BrowseModel", model)
	}
	return bm, cmd
}

func TestBrowseNavigation(t *testing.T) {
	m := testBrowseModel(t)
	down := tea.KeyMsg{Type: tea.KeyDown}
	up := tea.KeyMsg{Type: tea.KeyUp}

	for i := 0; i < 3; i++ {
		m, _ = press(t, m, down)
	}
	if m.Cursor != 3 {
		t.Errorf("cursor = %d, want 3", m.Cursor)
	}

	m, _ = press(t, m, up)
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.Cursor)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	if m.Cursor != m.Size-1 {
		t.Errorf("cursor = %d, want last index %d", m.Cursor, m.Size-1)
	}

	// Down at the last entry stays put.
	m, _ = press(t, m, down)
	if m.Cursor != m.Size-1 {
		t.Errorf("cursor = %d, want to stay at %d", m.Cursor, m.Size-1)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.Cursor)
	}

	// Up at the first entry stays put.
	m, _ = press(t, m, up)
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want to stay at 0", m.Cursor)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	if m.Cursor != m.Size-1 {
		t.Errorf("pgdown cursor = %d, want %d", m.Cursor, m.Size-1)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyPgUp})
	if m.Cursor != 0 {
		t.Errorf("pgup cursor = %d, want 0", m.Cursor)
	}
}

func TestBrowseWindowing(t *testing.T) {
	m := testBrowseModel(t)
	m.Height = 3
	down := tea.KeyMsg{Type: tea.KeyDown}

	for i := 0; i < 4; i++ {
		m, _ = press(t, m, down)
	}
	if m.Cursor != 4 {
		t.Fatalf("cursor = %d, want 4", m.Cursor)
	}
	if m.Offset != 2 {
		t.Errorf("offset = %d, want 2", m.Offset)
	}

	up := tea.KeyMsg{Type: tea.KeyUp}
	for i := 0; i < 3; i++ {
		m, _ = press(t, m, up)
	}
	if m.Offset != 1 {
		t.Errorf("offset = %d, want 1", m.Offset)
	}
}

func TestBrowseDetailToggle(t *testing.T) {
	m := testBrowseModel(t)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Detail {
		t.Fatal("enter should open the detail pane")
	}

	// Escape closes the detail pane without quitting.
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.Detail {
		t.Error("esc should close the detail pane")
	}
	if cmd != nil {
		t.Error("closing the detail pane should not quit")
	}

	// A second escape quits.
	_, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc without detail pane should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should return tea.Quit")
	}
}

func TestBrowseQuit(t *testing.T) {
	m := testBrowseModel(t)

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}

func TestBrowseView(t *testing.T) {
	m := testBrowseModel(t)

	first, err := m.Space.At(0)
	if err != nil {
		t.Fatal(err)
	}
	view := m.View()
	if !strings.Contains(view, string(first)) {
		t.Errorf("view should list the first serial %q", first)
	}

	m.Detail = true
	view = m.View()
	if !strings.Contains(view, "bounds") {
		t.Errorf("detail view should show bounds, got %q", view)
	}
}
