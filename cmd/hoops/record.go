package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hoops/internal/leaderboard"
	"github.com/vovakirdan/hoops/internal/platform/tui"
)

var (
	flagDate string
	flagShow bool
)

var recordCmd = &cobra.Command{
	Use:   "record <score>",
	Short: "Record a finished game's score",
	Long: `Record the final score of a shootout round and save the table.

The score must be a whole number of baskets, zero or more. The entry is
dated today unless --date is given, either as YYYY-MM-DD or as a phrase
such as "yesterday". Scores that do not make the top 10
are not kept.

Examples:
  hoops record 42
  hoops record 17 --date 2024-01-02
  hoops record 31 --date yesterday
  hoops record 23 --show`,
	Args: cobra.ExactArgs(1),
	Run:  runRecord,
}

func init() {
	recordCmd.Flags().StringVar(&flagDate, "date", "", "Date of the game (YYYY-MM-DD or e.g. \"yesterday\", default today)")
	recordCmd.Flags().BoolVar(&flagShow, "show", false, "Show the game over screen instead of printing the table")
}

// parseScore accepts only non-negative whole numbers.
func parseScore(arg string) (int, error) {
	score, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", leaderboard.ErrInvalidScore, arg)
	}
	if score < 0 {
		return 0, fmt.Errorf("%w: %d is negative", leaderboard.ErrInvalidScore, score)
	}
	return score, nil
}

func runRecord(_ *cobra.Command, args []string) {
	score, err := parseScore(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	when := leaderboard.Today()
	if flagDate != "" {
		when, err = parseDateFlag(flagDate, time.Now())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	h := mustOpenHost()
	defer h.Close()

	out, err := h.keeper.Submit(score, when)
	if err != nil && !errors.Is(err, leaderboard.ErrStoreWrite) {
		reportLoadError(err)
		h.Close()
		os.Exit(1)
	}
	// A failed save still leaves a valid board to show
	saveErr := err

	if flagShow {
		width, height := 80, 24 // Defaults
		if w, ht, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = ht
		}
		model := tui.NewGameOverModel(out.Board, tui.Result{Score: score, Rank: out.Rank, SaveErr: saveErr}, width, height)
		if runErr := tui.RunScoreboard(model); runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", runErr)
			h.Close()
			os.Exit(1)
		}
	} else {
		fmt.Printf("Score: %d\n", score)
		if out.Rank > 0 {
			fmt.Printf("New high score! Rank #%d\n", out.Rank)
		}
		fmt.Println()
		fmt.Print(tui.RenderBoard(out.Board, out.Rank))
	}

	if saveErr != nil {
		fmt.Fprintf(os.Stderr, "Error: score not saved: %v\n", saveErr)
		h.Close()
		os.Exit(1)
	}
}
