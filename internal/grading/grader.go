package grading

import (
	"math"

	"github.com/abhisek/linedrill/internal/geometry"
)

// GradeLine compares a single student line with the expected line. Both are
// treated as infinite lines through their endpoints.
//
// The distance check samples a vertical student line at its first endpoint's
// y (see AverageDistance). The one exception is a vertical line graded
// against a vertical line: sampling would reject the line even against
// itself, so the horizontal gap between the two is used.
func GradeLine(student, expected geometry.Segment) Result {
	expectedLine, ok := expected.Canonical()
	if !ok {
		return Fail(Mistake{Code: DegenerateLine})
	}
	if _, ok := student.Canonical(); !ok {
		return Fail(Mistake{Code: DegenerateLine})
	}

	slopeOK := geometry.AngleBetween(student, expected) <= AngleTolerance
	distanceOK := AverageDistance(student, expectedLine) <= DistanceTolerance

	if slopeOK && distanceOK {
		return Correct()
	}

	var mistakes []Mistake
	if !slopeOK {
		mistakes = append(mistakes, Mistake{
			Code: WrongSlope,
			Meta: map[string]any{
				"expectedSlope": expected.Slope(),
				"studentSlope":  student.Slope(),
			},
		})
	}
	if slopeOK && !distanceOK {
		mistakes = append(mistakes, Mistake{
			Code: WrongIntercept,
			Meta: map[string]any{
				"expectedIntercept": interceptValue(expected),
				"studentIntercept":  interceptValue(student),
			},
		})
	}
	return Fail(mistakes...)
}

// AverageDistance samples the student line at each sample x and returns the
// mean perpendicular distance of those points to the expected line.
//
// A vertical student line samples as P1.Y at every x. When the expected line
// is vertical as well, the exact gap between the two lines is used instead.
func AverageDistance(student geometry.Segment, expected geometry.Line) float64 {
	if student.Slope().Vertical() && math.Abs(expected.B) < verticalEpsilon {
		return expected.DistanceToPoint(student.P1)
	}
	var sum float64
	for _, x := range sampleXs {
		sum += expected.Distance(x, student.YAt(x))
	}
	return sum / float64(len(sampleXs))
}

// ClosestLine returns the candidate with the smallest average distance to the
// expected line, together with its index. Ties keep the earliest candidate.
// A degenerate expected line selects the first candidate. An empty candidate
// list returns index -1.
func ClosestLine(candidates []geometry.Segment, expected geometry.Segment) (geometry.Segment, int) {
	if len(candidates) == 0 {
		return geometry.Segment{}, -1
	}
	line, ok := expected.Canonical()
	if !ok || len(candidates) == 1 {
		return candidates[0], 0
	}

	best := 0
	bestScore := math.Inf(1)
	for i, c := range candidates {
		if score := AverageDistance(c, line); score < bestScore {
			best, bestScore = i, score
		}
	}
	return candidates[best], best
}

// Parallel reports whether two segments have the same direction within
// AngleTolerance.
func Parallel(a, b geometry.Segment) bool {
	return geometry.AngleBetween(a, b) <= AngleTolerance
}

// SameLine reports whether both endpoints of b lie within DistanceTolerance
// of the line through a. It is false when a is degenerate.
func SameLine(a, b geometry.Segment) bool {
	line, ok := a.Canonical()
	if !ok {
		return false
	}
	return line.DistanceToPoint(b.P1) <= DistanceTolerance &&
		line.DistanceToPoint(b.P2) <= DistanceTolerance
}

// verticalEpsilon bounds |B| of a canonical vertical line.
const verticalEpsilon = 1e-12

// interceptValue returns the y-intercept, or nil for vertical segments so it
// encodes as JSON null.
func interceptValue(s geometry.Segment) any {
	if b, ok := s.YIntercept(); ok {
		return b
	}
	return nil
}
