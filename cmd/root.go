// Package cmd wires the chessbook CLI together.
package cmd

import (
	"github.com/abhisek/chessbook/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "chessbook",
	Short:         "Memorize chess opening lines",
	Long:          "Chessbook stores opening lines, schedules spaced-repetition reviews, and evaluates positions with Stockfish.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CHESSBOOK_DB env var)")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(evalAllCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using the --db flag (highest
// priority), then CHESSBOOK_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens (and migrates) the database for a command run.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	path, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	return store.Open(path)
}
