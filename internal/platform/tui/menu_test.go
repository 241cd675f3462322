package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

func newTestMenu() *MenuModel {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	m.modes = []registry.GameInfo{
		{ID: "tetris", Title: "Tetris"},
		{ID: "tetris_sprint", Title: "Tetris (Sprint)"},
	}
	return m
}

func TestMenuSelectsModeAndDifficulty(t *testing.T) {
	m := newTestMenu()

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() != nil {
		t.Fatal("selection should wait for difficulty")
	}
	if !strings.Contains(m.View(), "Select difficulty") {
		t.Error("expected difficulty step")
	}

	// Cursor starts on normal; move down to hard
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("final selection should quit the menu program")
	}

	sel := m.Selected()
	if sel == nil {
		t.Fatal("expected a selection")
	}
	if sel.GameID != "tetris_sprint" || sel.Difficulty != config.DifficultyHard {
		t.Errorf("got %+v", *sel)
	}
}

func TestMenuBackReturnsToModes(t *testing.T) {
	m := newTestMenu()

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if m.step != stepMode || m.cursor != 1 {
		t.Errorf("back should restore the mode cursor, step=%d cursor=%d", m.step, m.cursor)
	}
	if !strings.Contains(m.View(), "Select a mode") {
		t.Error("expected mode step")
	}
}

func TestMenuCursorBounds(t *testing.T) {
	m := newTestMenu()

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor went above the first option: %d", m.cursor)
	}
	for range 5 {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != 1 {
		t.Errorf("cursor went past the last option: %d", m.cursor)
	}
}

func TestMenuQuit(t *testing.T) {
	m := newTestMenu()

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !m.IsQuitting() || m.Selected() != nil {
		t.Error("quit should leave without a selection")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}
