package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List modes and difficulty presets",
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	modes := registry.List()
	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("MODE", "TITLE")
	for _, m := range modes {
		t.Row(m.ID, m.Title)
	}
	fmt.Println(t.Render())

	fmt.Println()
	fmt.Print("Difficulty presets:")
	for _, p := range config.Presets {
		fmt.Printf(" %s", p)
	}
	fmt.Println()
	fmt.Println()
	fmt.Println("Run 'tetris play <mode> --difficulty <preset>' to start.")
}
