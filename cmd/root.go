// Package cmd holds the crossword command line: the HTTP server and the
// offline puzzle checker.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "crossword",
	Short: "Crossword playout server and puzzle tools",
	Long: `Crossword builds grids from clue lists and serves timed playthroughs
over HTTP, with hints, narration and a results leaderboard.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
