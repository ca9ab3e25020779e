package questions

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/linedrill/internal/geometry"
	"github.com/abhisek/linedrill/internal/grading"
)

// slopePointLine asks for the line with slope m through a point.
type slopePointLine struct {
	id    string
	m     int
	point geometry.Point
}

func newSlopePointLine(rng *rand.Rand) (Question, error) {
	for range maxGenerateAttempts {
		m := randomSlope(rng, zeroSlopeProb)
		p := geometry.Point{X: randInt(rng, coordMin, coordMax), Y: randInt(rng, coordMin, coordMax)}
		if visible(m, p.Y-m*p.X) {
			return &slopePointLine{id: newID(rng), m: m, point: p}, nil
		}
	}
	return nil, fmt.Errorf("generate %s: %w", TypeSlopePointLine, ErrGenerationExhausted)
}

func (q *slopePointLine) ID() string   { return q.id }
func (q *slopePointLine) Type() TypeID { return TypeSlopePointLine }

func (q *slopePointLine) Prompt() string {
	return fmt.Sprintf("Draw the line with slope %d that passes through %s.", q.m, FormatPoint(q.point))
}

func (q *slopePointLine) Answer() Answer {
	return SlopePointAnswer{M: q.m, Point: q.point, Line: slopePointSegment(q.m, q.point)}
}

func (q *slopePointLine) Grade(data geometry.DrawingData) grading.Result {
	return gradeSingle(data, slopePointSegment(q.m, q.point))
}
