package questions

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/linedrill/internal/geometry"
	"github.com/abhisek/linedrill/internal/grading"
)

// parallelFree asks for y = m·x + b plus any line parallel to it.
type parallelFree struct {
	id   string
	m, b int
}

func newParallelFree(rng *rand.Rand) (Question, error) {
	m, b, err := generateEquation(rng, zeroSlopeProb)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", TypeParallelFree, err)
	}
	return &parallelFree{id: newID(rng), m: m, b: b}, nil
}

func (q *parallelFree) ID() string   { return q.id }
func (q *parallelFree) Type() TypeID { return TypeParallelFree }

func (q *parallelFree) Prompt() string {
	return fmt.Sprintf("Draw the line %s. Then draw any line parallel to it.", FormatEquation(q.m, q.b))
}

func (q *parallelFree) Answer() Answer {
	return ParallelFreeAnswer{M: q.m, B: q.b, Line: equationSegment(q.m, q.b)}
}

func (q *parallelFree) Grade(data geometry.DrawingData) grading.Result {
	switch len(data.Lines) {
	case 0:
		return noLine()
	case 1:
		return needTwoLines()
	}

	expected := equationSegment(q.m, q.b)
	original, other := splitPair(data.Lines, expected)

	var mistakes []grading.Mistake
	if r := grading.GradeLine(original, expected); !r.IsCorrect {
		mistakes = append(mistakes, tagged(r.Mistakes, whichOriginal)...)
	}

	switch {
	case other.Degenerate():
		mistakes = append(mistakes, degenerateParallel())
	case grading.SameLine(original, other):
		mistakes = append(mistakes, grading.Mistake{Code: grading.LinesIdentical})
	case !grading.Parallel(original, other):
		mistakes = append(mistakes, grading.Mistake{Code: grading.NotParallel})
	}
	return grading.Fail(mistakes...)
}
