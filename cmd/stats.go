package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/linedrill/internal/questions"
	"github.com/abhisek/linedrill/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show accuracy per question type and recent attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.EventRepo()
		stats, err := repo.TypeStats(ctx)
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(stats) == 0 {
			fmt.Fprintln(out, "No attempts recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %8s  %8s  %8s\n", "Type", "Attempts", "Correct", "Accuracy")
		rule(out, 66)
		var total store.TypeStats
		for _, st := range stats {
			name := questions.DisplayName(questions.TypeID(st.QuestionType))
			fmt.Fprintf(out, "%-36s  %8d  %8d  %7.0f%%\n", truncate(name, 36), st.Attempts, st.Correct, st.Accuracy()*100)
			total.Attempts += st.Attempts
			total.Correct += st.Correct
		}
		rule(out, 66)
		fmt.Fprintf(out, "%-36s  %8d  %8d  %7.0f%%\n", "TOTAL", total.Attempts, total.Correct, total.Accuracy()*100)

		if limit <= 0 {
			return nil
		}
		attempts, err := repo.QueryAttempts(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Recent Attempts")
		rule(out, 66)
		for _, a := range attempts {
			mark := "✓"
			if !a.Correct {
				mark = "✗"
			}
			fmt.Fprintf(out, "%s  %s  %s\n", a.Timestamp.Local().Format(timeLayout), mark, a.Prompt)
			for _, code := range a.MistakeCodes {
				fmt.Fprintf(out, "      %s\n", code)
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 10, "Number of recent attempts to show (0 hides them)")
}
