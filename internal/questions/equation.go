package questions

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/linedrill/internal/geometry"
	"github.com/abhisek/linedrill/internal/grading"
)

// equationLine asks for the line y = m·x + b.
type equationLine struct {
	id   string
	m, b int
}

func newEquationLine(rng *rand.Rand) (Question, error) {
	m, b, err := generateEquation(rng, equationZeroSlopeProb)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", TypeEquationLine, err)
	}
	return &equationLine{id: newID(rng), m: m, b: b}, nil
}

func (q *equationLine) ID() string   { return q.id }
func (q *equationLine) Type() TypeID { return TypeEquationLine }

func (q *equationLine) Prompt() string {
	return "Draw the line: " + FormatEquation(q.m, q.b)
}

func (q *equationLine) Answer() Answer {
	return EquationAnswer{M: q.m, B: q.b, Line: equationSegment(q.m, q.b)}
}

func (q *equationLine) Grade(data geometry.DrawingData) grading.Result {
	return gradeSingle(data, equationSegment(q.m, q.b))
}
