package cmd

import (
	"github.com/joho/godotenv"
	"github.com/ritwikg/ctutor/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ctutor",
	Short: "AI tutor for C programming",
	Long:  "ctutor — AI-native terminal app that walks you through the C language topic by topic.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Optional .env in the working directory. Missing file is fine.
		_ = godotenv.Load()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CTUTOR_DB env var)")
	rootCmd.PersistentFlags().String("data", "", "Directory for progress files and the learning log (overrides CTUTOR_DATA env var)")

	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then CTUTOR_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveDataDir returns the progress/transcript directory using --data
// flag (highest priority), then CTUTOR_DATA env var, then the default
// XDG path.
func resolveDataDir(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("data"); p != "" {
		return p, nil
	}
	return store.DefaultDataDir()
}
