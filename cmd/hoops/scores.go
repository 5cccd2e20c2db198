package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hoops/internal/leaderboard"
	"github.com/vovakirdan/hoops/internal/platform/tui"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high score table",
	Long: `Display the top 10 shootout scores with the day each was set.

Examples:
  hoops scores
  hoops scores --store ./high_scores.yaml`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func runScores(_ *cobra.Command, _ []string) {
	h := mustOpenHost()
	defer h.Close()

	board, err := h.keeper.Board()
	if err != nil {
		reportLoadError(err)
		h.Close()
		os.Exit(1)
	}

	fmt.Print(tui.RenderBoard(board, 0))

	if board.IsEmpty() {
		fmt.Println()
		fmt.Println("Finish a round to set the first high score!")
		return
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", board.Best())
}

// reportLoadError prints a load failure with a hint for corrupt stores.
func reportLoadError(err error) {
	fmt.Fprintf(os.Stderr, "Error reading high scores: %v\n", err)
	if errors.Is(err, leaderboard.ErrCorruptStore) {
		fmt.Fprintln(os.Stderr, "Run with --reset-corrupt to start a fresh table.")
	}
}
