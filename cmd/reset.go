package cmd

import (
	"fmt"
	"os"

	"github.com/ritwikg/ctutor/internal/curriculum"
	"github.com/ritwikg/ctutor/internal/progress"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset a user's progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		track, _ := cmd.Flags().GetString("track")

		if err := progress.ValidateUser(user); err != nil {
			return err
		}

		dataDir, err := resolveDataDir(cmd)
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}
		store := progress.NewStore(dataDir)

		catalog := curriculum.NewCatalog()
		if dir := os.Getenv("CTUTOR_TRACKS_DIR"); dir != "" {
			if err := catalog.LoadCustomTracks(dir); err != nil {
				fmt.Fprintln(os.Stderr, "Custom tracks not loaded:", err)
			}
		}

		tracks := catalog.TrackNames()
		if track != "" {
			if !catalog.Has(track) {
				return fmt.Errorf("unknown track %q", track)
			}
			tracks = []string{track}
		}

		for _, name := range tracks {
			if err := store.Reset(catalog.TopicsFor(name), user); err != nil {
				return fmt.Errorf("reset %s: %w", name, err)
			}
		}

		if track != "" {
			fmt.Printf("Progress for %s reset on track %q.\n", user, track)
		} else {
			fmt.Printf("All progress for %s reset.\n", user)
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().StringP("user", "u", "", "Username whose progress to reset (required)")
	resetCmd.Flags().StringP("track", "t", "", "Reset only this track")
	_ = resetCmd.MarkFlagRequired("user")
}
