package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/linedrill/internal/questions"
)

var questionCmd = &cobra.Command{
	Use:   "question",
	Short: "Generate a question and print it as JSON",
	Long: `Generate a question and print it, with its answer, as JSON.

The same --type and --seed always produce the same question, so the output
can be fed back to 'linedrill grade'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("type")
		seed, _ := cmd.Flags().GetUint64("seed")
		if !cmd.Flags().Changed("seed") {
			seed = uint64(time.Now().UnixNano())
		}

		q, err := generate(name, seed)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), struct {
			Seed uint64 `json:"seed"`
			questions.Summary
		}{seed, questions.Summarize(q)})
	},
}

func init() {
	questionCmd.Flags().StringP("type", "t", "", "Question type id (random when empty)")
	questionCmd.Flags().Uint64P("seed", "s", 0, "Random seed (time based when unset)")
}

// generate rebuilds the question for (type, seed). An empty type picks one
// at random from the same seed.
func generate(typeName string, seed uint64) (questions.Question, error) {
	rng := questions.SeededRand(seed)
	if typeName == "" {
		return questions.CreateRandom(rng)
	}
	id, err := questions.ParseType(typeName)
	if err != nil {
		return nil, err
	}
	q, err := questions.Create(id, rng)
	if err != nil {
		return nil, fmt.Errorf("generate question: %w", err)
	}
	return q, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
