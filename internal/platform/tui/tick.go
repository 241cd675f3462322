// Package tui runs a registered mode inside Bubble Tea: the fixed-rate tick
// loop, key mapping, held-key emulation and the start menu.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg carries the wall-clock time of a simulation tick.
type TickMsg time.Time

// tickCmd schedules the next simulation tick after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
