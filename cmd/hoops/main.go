// hoops is the host for the Basketball Shootout Challenge high score table.
//
// Usage:
//
//	hoops play               - Play a timed shootout round
//	hoops scores             - Show the top 10 high scores
//	hoops record <score>     - Record a finished game's score
//	hoops board              - Browse the high scores interactively
//	hoops serve              - Serve the high scores over SSH
//	hoops clear              - Empty the high score table
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.hoops/config.yaml, ./configs/hoops.yaml)
//	--store <path>      - Leaderboard store path (default: ~/.hoops/high_scores.json)
//	--backend <name>    - Store backend: file or sqlite
//	--log-level <lvl>   - debug, info, warn, error
//	--reset-corrupt     - Start empty when the store cannot be read
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig       string
	flagStorePath    string
	flagBackend      string
	flagLogLevel     string
	flagResetCorrupt bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hoops",
	Short: "Basketball Shootout Challenge - high score keeper",
	Long: `How many points can you score in 60 seconds?

hoops keeps the top 10 shootout scores, each with the day it was set.

Available commands:
  play     - Play a timed shootout round
  scores   - Show the high score table
  record   - Record a finished game's score
  board    - Interactive high score browser
  serve    - Serve the high scores over SSH
  clear    - Empty the high score table

Examples:
  hoops play
  hoops scores
  hoops record 42
  hoops record 17 --date 2024-01-02
  hoops --backend sqlite --store ~/.hoops/scores.db scores
  hoops serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagStorePath, "store", "", "Path to the leaderboard store (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Store backend: file or sqlite (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagResetCorrupt, "reset-corrupt", false, "Start with an empty table if the store is corrupt")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(clearCmd)
}
