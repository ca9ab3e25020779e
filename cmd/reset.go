package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete recorded attempts and hints",
	Long:  "Delete every recorded attempt and hint. LLM request events are kept for cost tracking.",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		out := cmd.OutOrStdout()

		if !force {
			fmt.Fprint(out, "Delete all practice history? [y/N] ")
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			switch strings.ToLower(strings.TrimSpace(answer)) {
			case "y", "yes":
			default:
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.EventRepo().ClearHistory(cmd.Context()); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		fmt.Fprintln(out, "History cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("force", "f", false, "Do not ask for confirmation")
}
