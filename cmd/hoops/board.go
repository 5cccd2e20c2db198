package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hoops/internal/platform/tui"
)

var flagLive bool

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse the high scores interactively",
	Long: `Open the high score table in a full-screen terminal view.

Controls:
  Up/Down/j/k  - Scroll
  R            - Reload from the store
  Q/Esc        - Quit

Examples:
  hoops board
  hoops board --live`,
	Args: cobra.NoArgs,
	Run:  runBoard,
}

func init() {
	boardCmd.Flags().BoolVar(&flagLive, "live", false, "Reload the table every few seconds")
}

func runBoard(_ *cobra.Command, _ []string) {
	h := mustOpenHost()
	defer h.Close()

	// Get terminal size
	width, height := 80, 24
	if w, ht, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = ht
	}

	model := tui.NewScoreboardModel(h.keeper, width, height)
	if flagLive {
		model = model.Live()
	}

	if err := tui.RunScoreboard(model); err != nil {
		fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
		h.Close()
		os.Exit(1)
	}
}
