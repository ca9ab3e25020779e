package questions

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/linedrill/internal/geometry"
	"github.com/abhisek/linedrill/internal/grading"
)

// parallelThroughPoint asks for y = m·x + b plus the parallel line through a
// point off it.
type parallelThroughPoint struct {
	id    string
	m, b  int
	point geometry.Point
}

func newParallelThroughPoint(rng *rand.Rand) (Question, error) {
	m, b, err := generateEquation(rng, zeroSlopeProb)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", TypeParallelThroughPoint, err)
	}
	for range maxGenerateAttempts {
		p := geometry.Point{X: randInt(rng, coordMin, coordMax), Y: randInt(rng, coordMin, coordMax)}
		if p.Y == m*p.X+b || !visible(m, p.Y-m*p.X) {
			continue
		}
		return &parallelThroughPoint{id: newID(rng), m: m, b: b, point: p}, nil
	}
	return nil, fmt.Errorf("generate %s: %w", TypeParallelThroughPoint, ErrGenerationExhausted)
}

func (q *parallelThroughPoint) ID() string   { return q.id }
func (q *parallelThroughPoint) Type() TypeID { return TypeParallelThroughPoint }

func (q *parallelThroughPoint) Prompt() string {
	return fmt.Sprintf("Draw the line %s. Then draw the parallel line that passes through %s.",
		FormatEquation(q.m, q.b), FormatPoint(q.point))
}

func (q *parallelThroughPoint) Answer() Answer {
	return ParallelThroughPointAnswer{
		M:        q.m,
		B:        q.b,
		Line:     equationSegment(q.m, q.b),
		Point:    q.point,
		Parallel: slopePointSegment(q.m, q.point),
	}
}

func (q *parallelThroughPoint) Grade(data geometry.DrawingData) grading.Result {
	switch len(data.Lines) {
	case 0:
		return noLine()
	case 1:
		return needTwoLines()
	}

	expected := equationSegment(q.m, q.b)
	expectedParallel := slopePointSegment(q.m, q.point)
	original, other := splitPair(data.Lines, expected)

	var mistakes []grading.Mistake
	if r := grading.GradeLine(original, expected); !r.IsCorrect {
		mistakes = append(mistakes, tagged(r.Mistakes, whichOriginal)...)
	}

	otherLine, ok := other.Canonical()
	switch {
	case !ok:
		mistakes = append(mistakes, degenerateParallel())
	case grading.GradeLine(other, expectedParallel).IsCorrect:
		// accepted
	case !grading.Parallel(other, expectedParallel):
		mistakes = append(mistakes, grading.Mistake{Code: grading.NotParallel})
	case otherLine.DistanceToPoint(q.point) > grading.DistanceTolerance:
		mistakes = append(mistakes, grading.Mistake{
			Code: grading.ParallelMissingPoint,
			Meta: map[string]any{"px": q.point.X, "py": q.point.Y},
		})
	}
	return grading.Fail(mistakes...)
}
