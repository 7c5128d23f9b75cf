package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ritwikg/ctutor/internal/curriculum"
	"github.com/ritwikg/ctutor/internal/progress"
	"github.com/ritwikg/ctutor/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning progress and LLM usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		if err := progress.ValidateUser(user); err != nil {
			return err
		}

		dataDir, err := resolveDataDir(cmd)
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}
		prog := progress.NewStore(dataDir)

		catalog := curriculum.NewCatalog()
		if dir := os.Getenv("CTUTOR_TRACKS_DIR"); dir != "" {
			if err := catalog.LoadCustomTracks(dir); err != nil {
				fmt.Fprintln(os.Stderr, "Custom tracks not loaded:", err)
			}
		}

		fmt.Printf("Progress for %s\n", user)
		fmt.Println(strings.Repeat("─", 56))
		fmt.Printf("%-36s  %9s  %6s\n", "Track", "Done", "Pct")
		fmt.Println(strings.Repeat("─", 56))

		for _, name := range catalog.TrackNames() {
			tops := catalog.TopicsFor(name)
			rec, err := prog.Load(tops, user)
			if err != nil {
				fmt.Printf("%-36s  %9s  %6s\n", truncate(name, 36), "?", "?")
				continue
			}
			fmt.Printf("%-36s  %4d / %-4d  %5d%%\n",
				truncate(name, 36), rec.Completed(), len(tops), rec.Percent())
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		usage, err := s.EventRepo().LLMUsageByPurpose(context.Background())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(usage) == 0 {
			fmt.Println("\nNo LLM usage recorded yet.")
			return nil
		}

		fmt.Println("\nLLM Usage")
		fmt.Println(strings.Repeat("─", 56))
		fmt.Printf("%-16s  %6s  %10s  %10s\n", "Purpose", "Calls", "Input", "Output")
		fmt.Println(strings.Repeat("─", 56))
		for _, u := range usage {
			fmt.Printf("%-16s  %6d  %10d  %10d\n",
				u.Purpose, u.Calls, u.InputTokens, u.OutputTokens)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringP("user", "u", "", "Username to report on (required)")
	_ = statsCmd.MarkFlagRequired("user")
}
