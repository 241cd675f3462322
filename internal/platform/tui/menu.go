package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// presetNotes describes each difficulty preset in the menu.
var presetNotes = map[config.DifficultyPreset]string{
	config.DifficultyEasy:   "long lock delay, more resets",
	config.DifficultyNormal: "guideline timing",
	config.DifficultyHard:   "faster start, locks at the reset cap",
	config.DifficultyFixed:  "no speed progression",
}

// MenuKeyMap defines the keybindings for the start menu.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns the default menu keybindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type menuStep int

const (
	stepMode menuStep = iota
	stepDifficulty
)

// MenuSelection holds the user's choices from the start menu.
type MenuSelection struct {
	GameID     string
	Difficulty config.DifficultyPreset
}

// MenuModel lets users choose a mode and a difficulty preset.
type MenuModel struct {
	modes     []registry.GameInfo
	presets   []config.DifficultyPreset
	cursor    int
	step      menuStep
	selection MenuSelection
	keys      MenuKeyMap
	help      help.Model
	width     int
	height    int
	done      bool
	quitting  bool
}

// NewMenuModel creates a menu over the registered modes.
func NewMenuModel(cfg core.RuntimeConfig) *MenuModel {
	return &MenuModel{
		modes:   registry.List(),
		presets: config.Presets,
		keys:    DefaultMenuKeyMap(),
		help:    help.New(),
		width:   cfg.ScreenW,
		height:  cfg.ScreenH,
	}
}

// Init initializes the menu model.
func (m *MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m *MenuModel) optionCount() int {
	if m.step == stepDifficulty {
		return len(m.presets)
	}
	return len(m.modes)
}

// handleKey processes keyboard input for menu navigation.
func (m *MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.optionCount()-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Back):
		if m.step == stepDifficulty {
			m.step = stepMode
			m.cursor = m.modeIndex(m.selection.GameID)
		}

	case key.Matches(msg, m.keys.Select):
		if m.optionCount() == 0 {
			return m, nil
		}
		if m.step == stepMode {
			m.selection.GameID = m.modes[m.cursor].ID
			m.step = stepDifficulty
			m.cursor = m.presetIndex(config.DifficultyNormal)
			return m, nil
		}
		m.selection.Difficulty = m.presets[m.cursor]
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *MenuModel) modeIndex(id string) int {
	for i, g := range m.modes {
		if g.ID == id {
			return i
		}
	}
	return 0
}

func (m *MenuModel) presetIndex(p config.DifficultyPreset) int {
	for i, q := range m.presets {
		if q == p {
			return i
		}
	}
	return 0
}

// View renders the menu.
func (m *MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.center(menuTitleStyle.Render("T E T R I S")))
	b.WriteString("\n\n")

	var (
		subtitle string
		options  []string
	)
	if m.step == stepMode {
		subtitle = "Select a mode"
		for _, g := range m.modes {
			options = append(options, g.Title)
		}
	} else {
		subtitle = "Select difficulty"
		for _, p := range m.presets {
			options = append(options, fmt.Sprintf("%-7s %s", p, menuDimStyle.Render(presetNotes[p])))
		}
	}

	b.WriteString(m.center(subtitle))
	b.WriteString("\n\n")
	for i, opt := range options {
		line := "  " + opt
		if i == m.cursor {
			line = menuCursorStyle.Render("> ") + opt
		}
		b.WriteString(m.center(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.center(m.help.View(m.keys)))
	b.WriteString("\n")
	return b.String()
}

func (m *MenuModel) center(s string) string {
	if m.width <= 0 {
		return s
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
}

// Selected returns the selection, or nil if the user has not finished.
func (m *MenuModel) Selected() *MenuSelection {
	if !m.done {
		return nil
	}
	sel := m.selection
	return &sel
}

// IsQuitting returns true if user requested to quit.
func (m *MenuModel) IsQuitting() bool {
	return m.quitting
}

// RunMenu runs the start menu. It returns nil when the user quits.
func RunMenu(cfg core.RuntimeConfig) (*MenuSelection, error) {
	model := NewMenuModel(cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(*MenuModel)
	if !ok || m.IsQuitting() {
		return nil, nil
	}
	return m.Selected(), nil
}
