package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/elemvis/elemvis/pkg/table"
)

func elementsTestTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New("atomic_number", "symbol", "name", "atomic_weight")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rows := [][]any{
		{1, "H", "Hydrogen", 1.008},
		{2, "He", "Helium", 4.0026},
		{3, "Li", "Lithium", 6.94},
	}
	for _, row := range rows {
		if err := tbl.AppendRow(row...); err != nil {
			t.Fatalf("AppendRow: %v", err)
		}
	}
	return tbl
}

func keyMsg(key string) tea.Msg {
	if key == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func TestElementListNavigation(t *testing.T) {
	m := NewElementListModel(elementsTestTable(t), "atomic_weight")

	next, _ := m.Update(keyMsg("j"))
	m = next.(ElementListModel)
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1 after j", m.Cursor)
	}

	next, _ = m.Update(keyMsg("k"))
	m = next.(ElementListModel)
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0 after k", m.Cursor)
	}

	// Cursor clamps at the top.
	next, _ = m.Update(keyMsg("k"))
	m = next.(ElementListModel)
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0 at top", m.Cursor)
	}
}

func TestElementListSelect(t *testing.T) {
	m := NewElementListModel(elementsTestTable(t), "")

	next, _ := m.Update(keyMsg("j"))
	m = next.(ElementListModel)
	next, cmd := m.Update(keyMsg("enter"))
	m = next.(ElementListModel)

	if m.Selected != 1 {
		t.Errorf("Selected = %d, want 1", m.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestElementListEnterOnEmptyTable(t *testing.T) {
	tbl, err := table.New("symbol", "name")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	m := NewElementListModel(tbl, "")
	next, cmd := m.Update(keyMsg("enter"))
	m = next.(ElementListModel)

	if m.Selected != -1 {
		t.Errorf("Selected = %d, want -1 for empty table", m.Selected)
	}
	if cmd != nil {
		t.Error("enter on an empty table should not quit")
	}

	// Must not panic either way.
	printElementDetail(tbl, m.Selected)
	printElementDetail(tbl, 0)
}

func TestElementListViewUnknownAttribute(t *testing.T) {
	m := NewElementListModel(elementsTestTable(t), "no_such_column")
	if m.Attribute != "" {
		t.Errorf("Attribute = %q, want it cleared when absent", m.Attribute)
	}
	if out := m.View(); !strings.Contains(out, "Hydrogen") {
		t.Error("view should list elements")
	}
}
