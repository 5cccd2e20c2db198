package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hoops/internal/platform/tui"
	"github.com/vovakirdan/hoops/internal/shootout"
)

var flagLength int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a shootout round",
	Long: `How many baskets can you make before the buzzer?

A meter sweeps back and forth. Shoot when the marker is in the green zone.
A ball still in the air at the buzzer can score. When the round ends the
final score is recorded and the game over screen shows the table.

Controls:
  Space/Enter  - Shoot
  Q/Esc        - Quit

Examples:
  hoops play
  hoops play --length 30`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLength, "length", int(shootout.DefaultLength/time.Second), "Round length in seconds")
}

func runPlay(_ *cobra.Command, _ []string) {
	if flagLength <= 0 {
		fmt.Fprintf(os.Stderr, "Error: round length must be positive, got %d\n", flagLength)
		os.Exit(1)
	}

	h := mustOpenHost()
	defer h.Close()

	// Get terminal size
	width, height := 80, 24
	if w, ht, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = ht
	}

	model := tui.NewShootoutModel(h.keeper, time.Duration(flagLength)*time.Second, width, height)
	final, err := tui.RunShootout(model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running shootout: %v\n", err)
		h.Close()
		os.Exit(1)
	}

	res, done := final.Result()
	if !done {
		return
	}
	fmt.Printf("Final score: %d\n", res.Score)
	if res.Rank > 0 {
		fmt.Printf("New high score! Rank #%d\n", res.Rank)
	}
	if res.SaveErr != nil {
		fmt.Fprintf(os.Stderr, "Error: score not saved: %v\n", res.SaveErr)
		h.Close()
		os.Exit(1)
	}
}
