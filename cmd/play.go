package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/linedrill/internal/app"
	"github.com/abhisek/linedrill/internal/coach"
	"github.com/abhisek/linedrill/internal/llm"
	"github.com/abhisek/linedrill/internal/questions"
	"github.com/abhisek/linedrill/internal/screens/practice"
	"github.com/abhisek/linedrill/internal/store"
)

var playCmd = &cobra.Command{
	Use:         "play",
	Short:       "Start a practice session",
	Long:        "Start the terminal UI. With --type the session opens straight away on those question types.",
	Annotations: map[string]string{tuiAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		names, _ := cmd.Flags().GetStringSlice("type")
		types, err := parseTypes(names)
		if err != nil {
			return err
		}
		if len(types) == 0 {
			// Without a filter play goes straight to a mixed session.
			types = questions.RegisteredTypes()
		}
		return runApp(cmd, types)
	},
}

func init() {
	playCmd.Flags().StringSliceP("type", "t", nil, "Question type id (repeatable); see 'linedrill types'")
}

func parseTypes(names []string) ([]questions.TypeID, error) {
	types := make([]questions.TypeID, 0, len(names))
	for _, n := range names {
		id, err := questions.ParseType(n)
		if err != nil {
			return nil, err
		}
		types = append(types, id)
	}
	return types, nil
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, startTypes []questions.TypeID) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	opts := app.Options{
		Practice: practice.Config{
			Repo:   eventRepo,
			Coach:  buildCoach(cmd.Context(), eventRepo),
			Logger: logger,
		},
		StartTypes: startTypes,
	}
	return app.Run(opts)
}

// buildCoach returns nil when no LLM provider is configured. The app works
// without it.
func buildCoach(ctx context.Context, repo store.EventRepo) *coach.Coach {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := llm.ConfigFromEnv()
	if !cfg.Enabled() {
		logger.Info("no LLM provider configured, coach disabled")
		return nil
	}
	provider, err := llm.NewProvider(ctx, cfg, repo, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI hints will be unavailable.")
		return nil
	}
	return coach.New(provider, coach.DefaultConfig())
}
