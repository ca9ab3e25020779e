package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/linedrill/internal/questions"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List question types",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, id := range questions.RegisteredTypes() {
			fmt.Fprintf(out, "%-24s  %s\n", id, questions.DisplayName(id))
		}
	},
}
