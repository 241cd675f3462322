package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

// fakeGame records the frames it is stepped with.
type fakeGame struct {
	resets int
	frames []core.InputFrame
	state  core.GameState
}

func (f *fakeGame) ID() string { return "fake" }
func (f *fakeGame) Title() string { return "Fake" }
func (f *fakeGame) Reset(core.RuntimeConfig) { f.resets++ }
func (f *fakeGame) State() core.GameState { return f.state }
func (f *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (f *fakeGame) Step(in core.InputFrame) core.StepResult {
	f.frames = append(f.frames, in.Clone())
	return core.StepResult{State: f.state}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) (*Model, *fakeGame, *time.Time) {
	t.Helper()
	g := &fakeGame{}
	m := NewModel(g, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}, nil)
	clock := time.Unix(100, 0)
	m.now = func() time.Time { return clock }
	m.Init()
	return m, g, &clock
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap())

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
		quit bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"h", runes("h"), core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.ActionSoftDrop, false},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionHardDrop, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionHardDrop, false},
		{"x", runes("x"), core.ActionRotateCW, false},
		{"w", runes("w"), core.ActionRotateCCW, false},
		{"z", runes("z"), core.ActionRotateCCW, false},
		{"c", runes("c"), core.ActionHold, false},
		{"p", runes("p"), core.ActionPause, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{"r", runes("r"), core.ActionRestart, false},
		{"d", runes("d"), core.ActionDebug, false},
		{"q", runes("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runes("k"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, quit := km.MapKey(tt.msg)
			if got != tt.want || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), got, quit, tt.want, tt.quit)
			}
		})
	}
}

func TestKeyIsQueuedUntilTick(t *testing.T) {
	m, g, clock := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(runes("x"))
	if len(g.frames) != 0 {
		t.Fatal("key handling must not step the game")
	}

	m.Update(TickMsg(*clock))
	if len(g.frames) != 1 {
		t.Fatalf("expected 1 step, got %d", len(g.frames))
	}
	f := g.frames[0]
	if len(f.Pressed) != 2 || f.Pressed[0] != core.ActionLeft || f.Pressed[1] != core.ActionRotateCW {
		t.Errorf("unexpected presses %v", f.Pressed)
	}
	if !f.IsHeld(core.ActionLeft) {
		t.Error("left should be held on the tick after its press")
	}

	m.Update(TickMsg(*clock))
	if len(g.frames[1].Pressed) != 0 {
		t.Errorf("presses should be consumed once, got %v", g.frames[1].Pressed)
	}
}

func TestKeyRepeatKeepsHold(t *testing.T) {
	m, g, clock := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	*clock = clock.Add(40 * time.Millisecond)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})

	m.Update(TickMsg(*clock))
	if got := len(g.frames[0].Pressed); got != 1 {
		t.Errorf("terminal repeat should not add presses, got %d", got)
	}
	if !g.frames[0].IsHeld(core.ActionSoftDrop) {
		t.Error("soft drop should be held")
	}

	m.Update(TickMsg(clock.Add(DefaultHoldTimeout + time.Millisecond)))
	if g.frames[1].IsHeld(core.ActionSoftDrop) {
		t.Error("soft drop should be released after the timeout")
	}
}

func TestDoubleTapQueuesTwoPresses(t *testing.T) {
	m, g, clock := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(TickMsg(*clock))
	*clock = clock.Add(100 * time.Millisecond)
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(TickMsg(*clock))

	for i, f := range g.frames {
		if !f.Has(core.ActionLeft) {
			t.Errorf("tap %d was not queued", i+1)
		}
	}
}

func TestDoubleTapMovesTwoColumns(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	g := tetris.New()
	m := NewModel(g, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}, nil)
	clock := time.Unix(100, 0)
	m.now = func() time.Time { return clock }
	m.Init()

	startX := g.Snapshot().Active[1]
	tick := func(n int) {
		for range n {
			clock = clock.Add(16 * time.Millisecond)
			m.Update(TickMsg(clock))
		}
	}

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	tick(6)
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	tick(30)

	if got := g.Snapshot().Active[1]; got != startX-2 {
		t.Errorf("two taps moved from x=%d to x=%d, want x=%d", startX, got, startX-2)
	}
}

func TestBlurPauses(t *testing.T) {
	m, g, clock := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(tea.BlurMsg{})
	m.Update(TickMsg(*clock))

	f := g.frames[0]
	if !f.Has(core.ActionPause) {
		t.Error("focus loss should queue a pause")
	}
	if f.IsHeld(core.ActionLeft) {
		t.Error("focus loss should release held keys")
	}
}

func TestBlurWhilePausedKeepsPause(t *testing.T) {
	m, g, clock := newTestModel(t)
	g.state.Paused = true
	m.Update(TickMsg(*clock))

	m.Update(tea.BlurMsg{})
	m.Update(TickMsg(*clock))
	if g.frames[1].Has(core.ActionPause) {
		t.Error("blur must not toggle an already paused game")
	}
}

func TestResizeKeepsSession(t *testing.T) {
	m, g, _ := newTestModel(t)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	if g.resets != 1 {
		t.Errorf("resize should not reset the game, resets=%d", g.resets)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 39 {
		t.Errorf("screen is %dx%d, want 100x39", m.screen.Width(), m.screen.Height())
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestViewShowsGameAndHelp(t *testing.T) {
	m, _, _ := newTestModel(t)

	out := m.View()
	if !strings.Contains(out, "fake") {
		t.Error("view should contain the game render")
	}
	if !strings.Contains(out, "quit") {
		t.Error("view should contain the help line")
	}
}
