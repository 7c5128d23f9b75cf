package cmd

import (
	"fmt"
	"os"

	"github.com/ritwikg/ctutor/internal/app"
	"github.com/ritwikg/ctutor/internal/curriculum"
	"github.com/ritwikg/ctutor/internal/llm"
	"github.com/ritwikg/ctutor/internal/progress"
	"github.com/ritwikg/ctutor/internal/store"
	"github.com/ritwikg/ctutor/internal/transcript"
	"github.com/ritwikg/ctutor/internal/tutor"
	"github.com/spf13/cobra"
)

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Start a learning session (same as running ctutor with no arguments)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the stores, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	dataDir, err := resolveDataDir(cmd)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	catalog := curriculum.NewCatalog()
	if dir := os.Getenv("CTUTOR_TRACKS_DIR"); dir != "" {
		if err := catalog.LoadCustomTracks(dir); err != nil {
			fmt.Fprintln(os.Stderr, "Custom tracks not loaded:", err)
		}
	}

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Content requests will fail until an API key is set.")
		provider = llm.NewUnavailableProvider(err)
	}
	cfg := llm.ConfigFromEnv()

	return app.Run(app.Deps{
		Catalog:    catalog,
		Progress:   progress.NewStore(dataDir),
		Tutor:      tutor.NewService(provider, cfg.Timeout),
		Transcript: transcript.NewLog(dataDir),
	})
}
