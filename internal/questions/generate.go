package questions

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"

	"github.com/abhisek/linedrill/internal/geometry"
)

// ErrGenerationExhausted is returned when rejection sampling fails to find a
// valid question within maxGenerateAttempts draws.
var ErrGenerationExhausted = errors.New("question generation exhausted")

const (
	maxGenerateAttempts = 1000

	maxSlope = 5
	coordMin = -8
	coordMax = 8

	// visibleX is the |x| at which a generated line must be on screen.
	visibleX = 5

	// Probability of a horizontal line for equation-line questions, and for
	// every other type that draws a slope.
	equationZeroSlopeProb = 0.2
	zeroSlopeProb         = 0.15
)

// SeededRand returns a deterministic random source for seed.
func SeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func randInt(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}

// randomSlope returns 0 with probability zeroProb, otherwise a uniformly
// chosen non-zero integer in [-maxSlope, maxSlope].
func randomSlope(rng *rand.Rand, zeroProb float64) int {
	if rng.Float64() < zeroProb {
		return 0
	}
	m := rng.IntN(2*maxSlope) - maxSlope
	if m >= 0 {
		m++
	}
	return m
}

// visible reports whether y = m·x + b is inside the domain at x = -5 or x = 5.
func visible(m, b int) bool {
	d := geometry.DefaultDomain
	inRange := func(y int) bool { return y >= d.Min && y <= d.Max }
	return inRange(-visibleX*m+b) || inRange(visibleX*m+b)
}

// generateEquation draws a visible line y = m·x + b.
func generateEquation(rng *rand.Rand, zeroProb float64) (m, b int, err error) {
	for range maxGenerateAttempts {
		m = randomSlope(rng, zeroProb)
		b = randInt(rng, coordMin, coordMax)
		if visible(m, b) {
			return m, b, nil
		}
	}
	return 0, 0, ErrGenerationExhausted
}

// equationSegment returns two points on y = m·x + b: (0, b) and one step to
// the right, or five steps when the line is horizontal.
func equationSegment(m, b int) geometry.Segment {
	return slopePointSegment(m, geometry.Point{X: 0, Y: b})
}

// slopePointSegment returns p and a second point on the line of slope m
// through it.
func slopePointSegment(m int, p geometry.Point) geometry.Segment {
	dx := 1
	if m == 0 {
		dx = 5
	}
	return geometry.Segment{P1: p, P2: geometry.Point{X: p.X + dx, Y: p.Y + m*dx}}
}

// FormatEquation renders y = m·x + b the way a student writes it, for
// example "y = 2x + 3", "y = -x - 4", "y = x" or "y = 5".
func FormatEquation(m, b int) string {
	if m == 0 {
		return "y = " + strconv.Itoa(b)
	}

	var slope string
	switch m {
	case 1:
		slope = "x"
	case -1:
		slope = "-x"
	default:
		slope = strconv.Itoa(m) + "x"
	}

	switch {
	case b == 0:
		return "y = " + slope
	case b > 0:
		return fmt.Sprintf("y = %s + %d", slope, b)
	default:
		return fmt.Sprintf("y = %s - %d", slope, -b)
	}
}

// FormatPoint renders a point as "(x, y)".
func FormatPoint(p geometry.Point) string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// newID derives a question id from rng so a seeded source reproduces it.
func newID(rng *rand.Rand) string {
	id, err := uuid.NewRandomFromReader(rngReader{rng})
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

type rngReader struct{ rng *rand.Rand }

func (r rngReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.Uint32())
	}
	return len(p), nil
}
