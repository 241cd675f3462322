package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/catalog"
	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (default: tetris).

Controls:
  Left/Right or H/L  - Move
  Down or J          - Soft drop (hold)
  Up or Space        - Hard drop
  X                  - Rotate clockwise
  W/Z                - Rotate counterclockwise
  C                  - Hold
  P/Esc              - Pause
  R                  - Restart
  D                  - Debug overlay
  Ctrl+S             - Screenshot to ~/.tetris/screenshots
  Q/Ctrl+C           - Quit

Difficulty options:
  easy   - Base speed, long lock delay and more lock resets
  normal - Base speed, guideline lock delay
  hard   - Faster start, short lock delay, locks at the reset cap
  fixed  - No speed progression

Examples:
  tetris play
  tetris play tetris_sprint
  tetris play --difficulty hard
  tetris play --config ./my-tetris.yaml --catalog ./my-catalog.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

// terminalSize returns the terminal size, or 80x24 when unknown.
func terminalSize() (width, height int) {
	width, height = 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

// runMenu shows the start menu and plays the chosen mode.
func runMenu(cmd *cobra.Command, args []string) {
	width, height := terminalSize()
	sel, err := tui.RunMenu(core.RuntimeConfig{ScreenW: width, ScreenH: height})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// User quit from the menu
	if sel == nil {
		return
	}

	flagDifficulty = string(sel.Difficulty)
	runPlay(cmd, []string{sel.GameID})
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "tetris"
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if mode exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available modes.")
		os.Exit(1)
	}

	if _, ok := config.ParsePreset(flagDifficulty); !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q (want easy, normal, hard or fixed)\n", flagDifficulty)
		os.Exit(1)
	}

	// Reject bad data before the terminal is taken over
	if _, err := config.LoadTetris(flagConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if _, err := catalog.Load(flagCatalog); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tetris.SetConfigPath(flagConfig)
	tetris.SetCatalogPath(flagCatalog)
	tetris.SetDifficultyPreset(flagDifficulty)
	tetris.SetLogger(logger)

	// Leave the last line for help
	width, height := terminalSize()

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  max(height-1, 1),
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Run the game
	runErr := tui.Run(game, cfg, logger)

	// Close log before potential exit
	closeLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
