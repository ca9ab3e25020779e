package geometry

import (
	"encoding/json"
	"math"
)

// epsilon is the threshold below which a normal vector or a run is treated as zero.
const epsilon = 1e-12

// Point is an integer grid point.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Segment is an ordered pair of grid points. Lines are graded as the infinite
// line through P1 and P2, so the order only matters for YAt on vertical segments.
type Segment struct {
	P1 Point `json:"p1"`
	P2 Point `json:"p2"`
}

// Line is the canonical implicit form A·x + B·y + C = 0 with A²+B² = 1,
// A >= 0, and B > 0 when A is zero.
type Line struct {
	A, B, C float64
}

// Degenerate reports whether both endpoints coincide.
func (s Segment) Degenerate() bool {
	return s.P1 == s.P2
}

// Canonical returns the normalized line through the segment. The second return
// value is false for degenerate segments.
func (s Segment) Canonical() (Line, bool) {
	dx := float64(s.P2.X - s.P1.X)
	dy := float64(s.P2.Y - s.P1.Y)

	// Normal to the direction vector.
	a := dy
	b := -dx
	c := -(a*float64(s.P1.X) + b*float64(s.P1.Y))

	norm := math.Hypot(a, b)
	if norm < epsilon {
		return Line{}, false
	}
	a /= norm
	b /= norm
	c /= norm

	if a < -epsilon || (math.Abs(a) < epsilon && b < 0) {
		a, b, c = -a, -b, -c
	}
	return Line{A: a, B: b, C: c}, true
}

// Angle returns the undirected direction angle of the segment in [0, π).
func (s Segment) Angle() float64 {
	dx := float64(s.P2.X - s.P1.X)
	dy := float64(s.P2.Y - s.P1.Y)
	angle := math.Atan2(dy, dx)
	if angle < 0 {
		angle += math.Pi
	}
	if angle >= math.Pi {
		angle -= math.Pi
	}
	return angle
}

// Slope returns rise over run, or +Inf for vertical segments.
func (s Segment) Slope() Slope {
	dx := float64(s.P2.X - s.P1.X)
	if math.Abs(dx) < epsilon {
		return Slope(math.Inf(1))
	}
	return Slope(float64(s.P2.Y-s.P1.Y) / dx)
}

// YIntercept returns the y-intercept of the line through the segment.
// ok is false for vertical segments.
func (s Segment) YIntercept() (b float64, ok bool) {
	dx := float64(s.P2.X - s.P1.X)
	if math.Abs(dx) < epsilon {
		return 0, false
	}
	m := float64(s.P2.Y-s.P1.Y) / dx
	return float64(s.P1.Y) - m*float64(s.P1.X), true
}

// YAt evaluates the infinite line through the segment at x. Vertical
// segments have no single y, so P1.Y is returned for every x.
func (s Segment) YAt(x float64) float64 {
	dx := float64(s.P2.X - s.P1.X)
	if math.Abs(dx) < epsilon {
		return float64(s.P1.Y)
	}
	t := (x - float64(s.P1.X)) / dx
	return float64(s.P1.Y) + t*float64(s.P2.Y-s.P1.Y)
}

// Reversed returns the segment with its endpoints swapped.
func (s Segment) Reversed() Segment {
	return Segment{P1: s.P2, P2: s.P1}
}

// Distance returns the perpendicular distance from (x, y) to the line.
func (l Line) Distance(x, y float64) float64 {
	return math.Abs(l.A*x + l.B*y + l.C)
}

// DistanceToPoint is Distance for a grid point.
func (l Line) DistanceToPoint(p Point) float64 {
	return l.Distance(float64(p.X), float64(p.Y))
}

// AngleBetween returns the undirected angle between two segments, folded to
// [0, π/2] since a line and its reverse are the same line.
func AngleBetween(a, b Segment) float64 {
	diff := math.Abs(a.Angle() - b.Angle())
	if diff > math.Pi/2 {
		diff = math.Pi - diff
	}
	return diff
}

// Slope is a line slope where +Inf marks a vertical line.
type Slope float64

// Vertical reports whether the slope is the vertical sentinel.
func (m Slope) Vertical() bool {
	return math.IsInf(float64(m), 0)
}

// MarshalJSON encodes the vertical sentinel as the string "vertical", since
// JSON has no infinity.
func (m Slope) MarshalJSON() ([]byte, error) {
	if m.Vertical() {
		return []byte(`"vertical"`), nil
	}
	return json.Marshal(float64(m))
}
