package tetris

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var testRuntime = core.RuntimeConfig{
	ScreenW:  80,
	ScreenH:  24,
	TickRate: 60,
	Seed:     12345,
}

// newTestGame resets g with user config lookups pointed at an empty home.
func newTestGame(t *testing.T, g *Game) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	g.Reset(testRuntime)
	return g
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestGameDeterminism(t *testing.T) {
	// Same seed and inputs must produce identical snapshots
	inputs := make([]core.InputFrame, 1200)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i%40 == 39:
			inputs[i].Set(core.ActionHardDrop)
		case i%13 == 0:
			inputs[i].Set(core.ActionRotateCW)
		case i%9 == 0:
			inputs[i].Set(core.ActionLeft)
		case i%11 == 0:
			inputs[i].Set(core.ActionRight)
		case i%97 == 0:
			inputs[i].Set(core.ActionHold)
		}
		if i%50 < 10 {
			inputs[i].SetHeld(core.ActionSoftDrop, true)
		}
	}

	g1 := newTestGame(t, New())
	g2 := newTestGame(t, New())
	for _, in := range inputs {
		g1.Step(in)
		g2.Step(in)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("Determinism failed: snapshots differ.\nRun1=%+v\nRun2=%+v", s1, s2)
	}
	if s1.Pieces == 0 {
		t.Error("expected pieces to lock during the run")
	}
}

func TestGameIDs(t *testing.T) {
	tests := []struct {
		game  *Game
		id    string
		title string
	}{
		{New(), "tetris", "Tetris"},
		{NewSprint(), "tetris_sprint", "Tetris (Sprint)"},
	}
	for _, tt := range tests {
		if tt.game.ID() != tt.id || tt.game.Title() != tt.title {
			t.Errorf("got %q/%q, want %q/%q", tt.game.ID(), tt.game.Title(), tt.id, tt.title)
		}
		if !registry.Exists(tt.id) {
			t.Errorf("game %q is not registered", tt.id)
		}
	}
}

func TestStateBeforeReset(t *testing.T) {
	g := New()
	if g.State() != (core.GameState{}) {
		t.Errorf("expected zero state, got %+v", g.State())
	}
	if res := g.Step(press(core.ActionHardDrop)); res.State != (core.GameState{}) {
		t.Errorf("expected zero step result, got %+v", res.State)
	}
}

func TestHardDropScores(t *testing.T) {
	g := newTestGame(t, New())
	res := g.Step(press(core.ActionHardDrop))

	if res.State.Score == 0 {
		t.Error("hard drop should award drop points")
	}
	if g.Snapshot().Pieces != 1 {
		t.Errorf("expected 1 locked piece, got %d", g.Snapshot().Pieces)
	}
}

func TestCommandsKeepArrivalOrder(t *testing.T) {
	in := press(core.ActionRotateCW, core.ActionQuit, core.ActionLeft, core.ActionHardDrop)
	got := commandsFor(in)
	want := []engine.Command{engine.CmdRotateCW, engine.CmdLeft, engine.CmdHardDrop}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("commandsFor = %v, want %v", got, want)
	}
}

func TestHeldIncludesPresses(t *testing.T) {
	in := press(core.ActionLeft)
	in.SetHeld(core.ActionSoftDrop, true)

	got := heldFor(in)
	if !got.Left || got.Right || !got.SoftDrop {
		t.Errorf("heldFor = %+v", got)
	}
}

func TestPauseStopsClock(t *testing.T) {
	g := newTestGame(t, New())
	g.Step(press(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused state")
	}

	before := g.Snapshot().ElapsedMS
	for range 60 {
		g.Step(core.NewInputFrame())
	}
	if after := g.Snapshot().ElapsedMS; after != before {
		t.Errorf("clock advanced while paused: %d -> %d", before, after)
	}

	g.Step(press(core.ActionPause))
	if g.State().Paused {
		t.Error("expected resumed state")
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := newTestGame(t, New())

	// Dropping everything in the middle tops out without clearing lines
	for i := 0; i < 500 && !g.State().GameOver; i++ {
		g.Step(press(core.ActionHardDrop))
	}
	if !g.State().GameOver {
		t.Fatal("expected game over from stacking in the middle")
	}
	if g.Completed() {
		t.Error("marathon top-out must not count as completed")
	}

	res := g.Step(press(core.ActionRestart))
	if res.State.GameOver || res.State.Score != 0 || res.State.Lines != 0 {
		t.Errorf("restart should start a fresh session, got %+v", res.State)
	}
}

func TestSprintCompletesAtLineGoal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tetris.yaml")
	if err := os.WriteFile(path, []byte("rules:\n  sprint_lines: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	g := newTestGame(t, NewSprint())

	// Fill the floor row except where the active piece will land
	landing := map[int]bool{}
	for _, c := range g.session.Ghost().Cells(g.session.Catalog()) {
		if c.Y == engine.Rows-1 {
			landing[c.X] = true
		}
	}
	for x := range engine.Width {
		if !landing[x] {
			g.session.Board().Set(x, engine.Rows-1, 1)
		}
	}

	res := g.Step(press(core.ActionHardDrop))
	if !res.State.GameOver || !res.State.Completed || !g.Completed() {
		t.Fatalf("expected sprint to complete, state %+v", res.State)
	}
	if res.State.Lines != 1 {
		t.Errorf("expected 1 line, got %d", res.State.Lines)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "SPRINT CLEAR") {
		t.Error("expected sprint clear message")
	}
}

func TestDifficultyPresetApplies(t *testing.T) {
	SetDifficultyPreset("hard")
	t.Cleanup(func() { SetDifficultyPreset("") })

	g := newTestGame(t, New())
	if g.cfg.Rules.LockResetPolicy != config.LockResetForce {
		t.Errorf("hard preset should force lock, got %q", g.cfg.Rules.LockResetPolicy)
	}
	if g.Speed() <= 1 {
		t.Errorf("hard preset should start faster, speed %v", g.Speed())
	}

	SetDifficultyPreset("bogus")
	if difficultyPreset != "" {
		t.Errorf("unknown preset should clear, got %q", difficultyPreset)
	}
}

func TestRenderLayout(t *testing.T) {
	g := newTestGame(t, New())
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"HOLD", "NEXT", "SCORE", "LINES", "TIME", "SPEED", BlockGlyph} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
	if strings.Contains(out, "DEBUG") {
		t.Error("debug overlay should be off by default")
	}

	g.Step(press(core.ActionDebug))
	g.Render(screen)
	if !strings.Contains(screen.String(), "DEBUG") {
		t.Error("expected debug overlay after toggle")
	}
	if !strings.Contains(screen.String(), "stack  0") {
		t.Error("debug overlay should show the empty stack height")
	}

	g.Step(press(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("expected pause overlay")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, New())
	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Terminal too small") {
		t.Error("expected size warning")
	}
}

func TestAwardBanner(t *testing.T) {
	g := newTestGame(t, New())
	g.banner, g.bannerTicks = "TETRIS", 2

	g.Step(core.NewInputFrame())
	if g.banner == "" {
		t.Fatal("banner cleared too early")
	}
	g.Step(core.NewInputFrame())
	if g.banner != "" {
		t.Errorf("banner should expire, got %q", g.banner)
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0'00\"000"},
		{83*time.Second + 456*time.Millisecond, "1'23\"456"},
		{-time.Second, "0'00\"000"},
	}
	for _, tt := range tests {
		if got := FormatElapsed(tt.d); got != tt.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
