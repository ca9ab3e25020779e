package questions

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/linedrill/internal/geometry"
	"github.com/abhisek/linedrill/internal/grading"
)

// twoPointsLine asks for the line through two given points.
type twoPointsLine struct {
	id     string
	p1, p2 geometry.Point
}

func newTwoPointsLine(rng *rand.Rand) (Question, error) {
	for range maxGenerateAttempts {
		p1 := geometry.Point{X: randInt(rng, coordMin, coordMax), Y: randInt(rng, coordMin, coordMax)}
		p2 := geometry.Point{X: randInt(rng, coordMin, coordMax), Y: randInt(rng, coordMin, coordMax)}
		dx, dy := p2.X-p1.X, p2.Y-p1.Y
		// dx == 0 covers both identical and vertical pairs.
		if dx == 0 || abs(dy) > maxSlope*abs(dx) {
			continue
		}
		return &twoPointsLine{id: newID(rng), p1: p1, p2: p2}, nil
	}
	return nil, fmt.Errorf("generate %s: %w", TypeTwoPointsLine, ErrGenerationExhausted)
}

func (q *twoPointsLine) ID() string   { return q.id }
func (q *twoPointsLine) Type() TypeID { return TypeTwoPointsLine }

func (q *twoPointsLine) Prompt() string {
	return fmt.Sprintf("Draw the line that passes through %s and %s.", FormatPoint(q.p1), FormatPoint(q.p2))
}

func (q *twoPointsLine) Answer() Answer {
	return TwoPointsAnswer{P1: q.p1, P2: q.p2}
}

// Grade flags WRONG_POINTS alongside a shifted line, since the student has
// the right steepness but misses the given points.
func (q *twoPointsLine) Grade(data geometry.DrawingData) grading.Result {
	result := gradeSingle(data, geometry.Segment{P1: q.p1, P2: q.p2})
	if result.Has(grading.WrongIntercept) && !result.Has(grading.WrongSlope) {
		result.Mistakes = append(result.Mistakes, grading.Mistake{
			Code: grading.WrongPoints,
			Meta: map[string]any{"p1": q.p1, "p2": q.p2},
		})
	}
	return result
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
