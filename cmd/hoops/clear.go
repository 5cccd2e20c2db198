package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the high score table",
	Long: `Remove every entry from the high score table.

Requires --yes so a stray invocation cannot wipe the table.

Examples:
  hoops clear --yes`,
	Args: cobra.NoArgs,
	Run:  runClear,
}

func init() {
	clearCmd.Flags().BoolVar(&flagYes, "yes", false, "Confirm clearing the table")
}

func runClear(_ *cobra.Command, _ []string) {
	if !flagYes {
		fmt.Fprintln(os.Stderr, "Refusing to clear the high score table without --yes")
		os.Exit(1)
	}

	h := mustOpenHost()
	defer h.Close()

	if err := h.keeper.Clear(); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing high scores: %v\n", err)
		h.Close()
		os.Exit(1)
	}
	fmt.Println("High score table cleared.")
}
