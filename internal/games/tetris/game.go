package tetris

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/catalog"
	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// GameMode represents the game mode.
type GameMode int

const (
	ModeMarathon GameMode = iota // Play until the stack tops out
	ModeSprint                   // Clear sprint_lines lines as fast as possible
)

// bannerSeconds is how long an award label stays under the board.
const bannerSeconds = 2

// configPath stores the custom config path set via CLI
var configPath string

// catalogPath stores the custom catalog path set via CLI
var catalogPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetCatalogPath sets the custom piece catalog path for loading.
func SetCatalogPath(path string) {
	catalogPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLogger sets the logger used for session events. Nil discards them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func init() {
	registry.Register("tetris", func() registry.Game { return New() })
	registry.Register("tetris_sprint", func() registry.Game { return NewSprint() })
}

// Game adapts an engine.Session to the platform's Game interface.
type Game struct {
	mode GameMode

	runtime    core.RuntimeConfig
	cfg        config.TetrisConfig
	difficulty *config.DifficultyManager
	session    *engine.Session

	tickCount   uint64
	speedStep   int    // Integer part of the gravity speed, for level-up logging
	banner      string // Label of the latest award
	bannerTicks int
}

// New creates a new marathon game instance.
func New() *Game {
	return &Game{mode: ModeMarathon}
}

// NewSprint creates a new sprint game instance.
func NewSprint() *Game {
	return &Game{mode: ModeSprint}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeSprint {
		return "tetris_sprint"
	}
	return "tetris"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeSprint {
		return "Tetris (Sprint)"
	}
	return "Tetris"
}

// Reset loads config and catalog and starts a fresh session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.tickCount = 0
	g.banner, g.bannerTicks = "", 0

	cfg, err := config.LoadTetris(configPath)
	if err != nil {
		logger.Warn("falling back to default config", "error", err)
		cfg = config.DefaultTetrisConfig()
	}
	if difficultyPreset != "" {
		config.ApplyTetrisPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	cat, err := catalog.Load(catalogPath)
	if err != nil {
		logger.Warn("falling back to default catalog", "error", err)
		cat = catalog.Default()
	}

	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.session = engine.NewSession(g.options(cat))
	g.session.DrainEvents()
	g.speedStep = g.currentSpeedStep()

	logger.Info("session started",
		"mode", g.ID(),
		"seed", runtime.Seed,
		"preset", string(difficultyPreset),
		"gravity", g.session.GravityInterval(),
	)
}

// options translates the loaded config into engine options.
func (g *Game) options(cat *catalog.Catalog) engine.Options {
	t, r := g.cfg.Timing, g.cfg.Rules

	policy := engine.LockResetCap
	if r.LockResetPolicy == config.LockResetForce {
		policy = engine.LockResetForce
	}

	opts := engine.Options{
		Catalog:         cat,
		Seed:            g.runtime.Seed,
		Gravity:         t.Gravity(),
		SoftDrop:        t.SoftDrop(),
		LockDelay:       t.LockDelay(),
		DAS:             t.DAS(),
		ARR:             t.ARR(),
		MaxLockResets:   r.MaxLockResets,
		LockResetPolicy: policy,
		Preview:         r.Preview,
		SpawnX:          r.SpawnX,
		SpawnY:          r.SpawnY,
		Curve:           g.difficulty,
	}
	if g.mode == ModeSprint {
		opts.LineGoal = r.SprintLines
	}
	return opts
}

// Step advances the session by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{}
	}
	g.tickCount++

	g.session.Update(g.runtime.TickDuration(), commandsFor(in), heldFor(in))
	g.handleEvents(g.session.DrainEvents())

	if g.bannerTicks > 0 && !g.session.Paused() {
		g.bannerTicks--
		if g.bannerTicks == 0 {
			g.banner = ""
		}
	}

	return core.StepResult{State: g.State()}
}

var actionCommands = map[core.Action]engine.Command{
	core.ActionLeft:      engine.CmdLeft,
	core.ActionRight:     engine.CmdRight,
	core.ActionSoftDrop:  engine.CmdSoftDrop,
	core.ActionHardDrop:  engine.CmdHardDrop,
	core.ActionRotateCW:  engine.CmdRotateCW,
	core.ActionRotateCCW: engine.CmdRotateCCW,
	core.ActionHold:      engine.CmdHold,
	core.ActionPause:     engine.CmdPause,
	core.ActionRestart:   engine.CmdRestart,
	core.ActionDebug:     engine.CmdDebug,
}

// commandsFor converts the frame's presses to engine commands in arrival order.
func commandsFor(in core.InputFrame) []engine.Command {
	var cmds []engine.Command
	for _, a := range in.Pressed {
		if c, ok := actionCommands[a]; ok {
			cmds = append(cmds, c)
		}
	}
	return cmds
}

// heldFor reads the repeatable inputs. A press in this frame counts as held.
func heldFor(in core.InputFrame) engine.Held {
	return engine.Held{
		Left:     in.IsHeld(core.ActionLeft) || in.Has(core.ActionLeft),
		Right:    in.IsHeld(core.ActionRight) || in.Has(core.ActionRight),
		SoftDrop: in.IsHeld(core.ActionSoftDrop) || in.Has(core.ActionSoftDrop),
	}
}

func (g *Game) handleEvents(events []engine.Event) {
	for _, e := range events {
		switch e.Kind {
		case engine.EventLock:
			if e.Award.Zero() {
				continue
			}
			g.banner = e.Award.Label()
			g.bannerTicks = bannerSeconds * max(g.runtime.TickRate, 1)
			logger.Debug("award", "label", g.banner, "points", e.Award.Points)
		case engine.EventGameOver:
			st := g.session.Stats()
			logger.Info("game over", "score", st.Score, "lines", st.Lines, "time", FormatElapsed(st.Elapsed))
		case engine.EventComplete:
			st := g.session.Stats()
			logger.Info("sprint complete", "time", FormatElapsed(st.Elapsed), "score", st.Score, "pieces", st.Pieces)
		case engine.EventRestart:
			g.banner, g.bannerTicks = "", 0
			g.speedStep = g.currentSpeedStep()
			logger.Info("session restarted", "mode", g.ID())
		case engine.EventPause, engine.EventResume:
			logger.Debug(e.Kind.String())
		}
	}

	if step := g.currentSpeedStep(); step > g.speedStep {
		g.speedStep = step
		logger.Info("speed up", "speed", fmt.Sprintf("%.1fx", g.Speed()), "gravity", g.session.GravityInterval())
	}
}

// Speed returns the current gravity speed factor.
func (g *Game) Speed() float64 {
	if g.session == nil || g.difficulty == nil {
		return 1
	}
	st := g.session.Stats()
	return g.difficulty.Speed(st.Lines, st.Elapsed)
}

func (g *Game) currentSpeedStep() int {
	return int(g.Speed())
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	st := g.session.Stats()
	return core.GameState{
		Score:     st.Score,
		Lines:     st.Lines,
		Elapsed:   st.Elapsed,
		GameOver:  g.session.GameOver(),
		Completed: st.Completed,
		Paused:    g.session.Paused(),
	}
}

// Completed reports whether a sprint ended by reaching its line goal.
func (g *Game) Completed() bool {
	return g.session != nil && g.session.Stats().Completed
}

// FormatElapsed formats a duration as m'ss"mmm.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := d.Milliseconds()
	return fmt.Sprintf("%d'%02d\"%03d", total/60000, total/1000%60, total%1000)
}
