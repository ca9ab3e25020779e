package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/linedrill/internal/coach"
	"github.com/abhisek/linedrill/internal/drawing"
	"github.com/abhisek/linedrill/internal/feedback"
	"github.com/abhisek/linedrill/internal/geometry"
	"github.com/abhisek/linedrill/internal/grading"
	"github.com/abhisek/linedrill/internal/questions"
)

type gradeReport struct {
	Question  questions.Summary `json:"question"`
	Result    grading.Result    `json:"result"`
	Hints     []string          `json:"hints"`
	CoachHint string            `json:"coachHint,omitempty"`
}

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Grade a JSON drawing against a generated question",
	Long: `Regenerate the question for --type and --seed, grade the drawing read from
--file (stdin by default) and print the result as JSON.

A drawing looks like:

  {"lines": [{"p1": {"x": 0, "y": 1}, "p2": {"x": 1, "y": 3}}]}

The command exits 0 whether or not the answer is correct.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("type")
		seed, _ := cmd.Flags().GetUint64("seed")
		path, _ := cmd.Flags().GetString("file")
		askCoach, _ := cmd.Flags().GetBool("coach")

		q, err := generate(name, seed)
		if err != nil {
			return err
		}

		data, err := readDrawing(cmd, path)
		if err != nil {
			return err
		}

		result := q.Grade(data)
		report := gradeReport{
			Question: questions.Summarize(q),
			Result:   result,
			Hints:    feedback.NewBuilder(questions.SeededRand(seed)).Build(result, q.Type()),
		}
		logger.Debug("graded drawing", "type", q.Type(), "correct", result.IsCorrect, "lines", len(data.Lines))

		if askCoach && !result.IsCorrect {
			report.CoachHint = coachHint(cmd, q, data.Lines, result, report.Hints)
		}
		return writeJSON(cmd.OutOrStdout(), report)
	},
}

func init() {
	gradeCmd.Flags().StringP("type", "t", "", "Question type id")
	gradeCmd.Flags().Uint64P("seed", "s", 0, "Seed the question was generated with")
	gradeCmd.Flags().StringP("file", "f", "-", "Drawing JSON file, - for stdin")
	gradeCmd.Flags().Bool("coach", false, "Ask the AI coach for a hint when the answer is wrong")
	_ = gradeCmd.MarkFlagRequired("type")
	_ = gradeCmd.MarkFlagRequired("seed")
}

func readDrawing(cmd *cobra.Command, path string) (geometry.DrawingData, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return geometry.DrawingData{}, fmt.Errorf("open drawing: %w", err)
		}
		defer f.Close()
		r = f
	}
	return drawing.Decode(r)
}

// coachHint returns the coach's question, or "" when the coach is not
// configured or fails. Failures are logged, not returned.
func coachHint(cmd *cobra.Command, q questions.Question, lines []geometry.Segment, result grading.Result, hints []string) string {
	s, err := openStore(cmd)
	if err != nil {
		logger.Warn("coach skipped", "error", err)
		return ""
	}
	defer s.Close()

	c := buildCoach(cmd.Context(), s.EventRepo())
	if c == nil {
		return ""
	}
	hint, err := c.Hint(cmd.Context(), &coach.HintRequest{
		QuestionType: q.Type(),
		Prompt:       q.Prompt(),
		Lines:        lines,
		Mistakes:     result.Mistakes,
		PoolHints:    hints,
	})
	if err != nil {
		logger.Warn("coach hint failed", "error", err)
		return ""
	}
	return hint.Question
}
