package geometry

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func seg(x1, y1, x2, y2 int) Segment {
	return Segment{P1: Point{X: x1, Y: y1}, P2: Point{X: x2, Y: y2}}
}

func assertSameLine(t *testing.T, want, got Line) {
	t.Helper()
	assert.InDelta(t, want.A, got.A, tol, "A")
	assert.InDelta(t, want.B, got.B, tol, "B")
	assert.InDelta(t, want.C, got.C, tol, "C")
}

func TestCanonical_Degenerate(t *testing.T) {
	_, ok := seg(3, -2, 3, -2).Canonical()
	assert.False(t, ok)
	assert.True(t, seg(3, -2, 3, -2).Degenerate())
}

func TestCanonical_UnitNormalAndSign(t *testing.T) {
	segments := []Segment{
		seg(0, 0, 1, 2),
		seg(1, 2, 0, 0),
		seg(-3, 4, 5, 4), // horizontal
		seg(2, -7, 2, 9), // vertical
		seg(2, 9, 2, -7), // vertical, reversed
		seg(-10, 10, 10, -10),
		seg(4, 1, -6, 3),
	}
	for _, s := range segments {
		l, ok := s.Canonical()
		require.True(t, ok, "segment %+v", s)
		assert.InDelta(t, 1.0, l.A*l.A+l.B*l.B, tol, "unit normal for %+v", s)
		assert.GreaterOrEqual(t, l.A, -1e-12, "A sign for %+v", s)
		if math.Abs(l.A) < 1e-12 {
			assert.Greater(t, l.B, 0.0, "B sign for horizontal %+v", s)
		}
		// Both endpoints satisfy the equation.
		assert.InDelta(t, 0, l.DistanceToPoint(s.P1), tol)
		assert.InDelta(t, 0, l.DistanceToPoint(s.P2), tol)
	}
}

func TestCanonical_InvariantUnderReversal(t *testing.T) {
	for x1 := -3; x1 <= 3; x1++ {
		for y2 := -3; y2 <= 3; y2++ {
			s := seg(x1, 1, 2, y2)
			if s.Degenerate() {
				continue
			}
			a, _ := s.Canonical()
			b, _ := s.Reversed().Canonical()
			assertSameLine(t, a, b)
		}
	}
}

func TestCanonical_InvariantUnderCollinearReparametrization(t *testing.T) {
	// (0,0)-(1,2), (-2,-4)-(3,6) and (5,10)-(-1,-2) all lie on y = 2x.
	base, _ := seg(0, 0, 1, 2).Canonical()
	for _, s := range []Segment{seg(-2, -4, 3, 6), seg(5, 10, -1, -2), seg(1, 2, 4, 8)} {
		l, ok := s.Canonical()
		require.True(t, ok)
		assertSameLine(t, base, l)
	}
}

func TestAngle_Range(t *testing.T) {
	tests := []struct {
		s    Segment
		want float64
	}{
		{seg(0, 0, 1, 0), 0},
		{seg(1, 0, 0, 0), 0},
		{seg(0, 0, 0, 1), math.Pi / 2},
		{seg(0, 1, 0, 0), math.Pi / 2},
		{seg(0, 0, 1, 1), math.Pi / 4},
		{seg(1, 1, 0, 0), math.Pi / 4},
		{seg(0, 0, -1, 1), 3 * math.Pi / 4},
	}
	for _, tt := range tests {
		got := tt.s.Angle()
		if math.Abs(got-tt.want) > tol {
			t.Errorf("Angle(%+v) = %f, want %f", tt.s, got, tt.want)
		}
		if got < 0 || got >= math.Pi {
			t.Errorf("Angle(%+v) = %f out of [0, π)", tt.s, got)
		}
	}
}

func TestAngleBetween_Folds(t *testing.T) {
	// 10° and 170° are 20° apart as undirected lines.
	a := seg(0, 0, 10, 0)
	b := seg(0, 0, -10, 1)
	got := AngleBetween(a, b)
	assert.LessOrEqual(t, got, math.Pi/2)
	assert.InDelta(t, math.Atan(0.1), got, tol)
	assert.InDelta(t, 0, AngleBetween(a, a.Reversed()), tol)
}

func TestDistance(t *testing.T) {
	l, _ := seg(0, 0, 1, 0).Canonical() // y = 0
	assert.InDelta(t, 3, l.Distance(5, 3), tol)
	assert.InDelta(t, 3, l.Distance(-5, -3), tol)

	d, _ := seg(0, 0, 1, 1).Canonical() // y = x
	assert.InDelta(t, math.Sqrt2, d.Distance(0, 2), tol)
}

func TestSlopeAndIntercept(t *testing.T) {
	s := seg(1, 5, 3, 9)
	assert.InDelta(t, 2, float64(s.Slope()), tol)
	b, ok := s.YIntercept()
	require.True(t, ok)
	assert.InDelta(t, 3, b, tol)

	v := seg(4, 1, 4, 7)
	assert.True(t, v.Slope().Vertical())
	_, ok = v.YIntercept()
	assert.False(t, ok)
}

func TestYAt(t *testing.T) {
	s := seg(0, 1, 2, 5) // y = 2x + 1
	assert.InDelta(t, -7, s.YAt(-4), tol)
	assert.InDelta(t, 9, s.YAt(4), tol)

	// Vertical segments evaluate to P1.Y everywhere.
	v := seg(3, -2, 3, 6)
	for _, x := range []float64{-4, 0, 4} {
		assert.InDelta(t, -2, v.YAt(x), tol)
	}
}

func TestSlope_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(map[string]Slope{"m": Slope(math.Inf(1)), "n": 2.5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"m":"vertical","n":2.5}`, string(b))
}

func TestDomain_Snap(t *testing.T) {
	d := DefaultDomain
	tests := []struct {
		x, y float64
		want Point
	}{
		{0.4, -0.4, Point{0, 0}},
		{2.5, -2.5, Point{3, -2}},
		{9.7, -9.6, Point{10, -10}},
		{14, -30, Point{10, -10}},
		{math.NaN(), 1.2, Point{0, 1}},
	}
	for _, tt := range tests {
		if got := d.Snap(tt.x, tt.y); got != tt.want {
			t.Errorf("Snap(%v, %v) = %+v, want %+v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDomain_ContainsAndClamp(t *testing.T) {
	d := DefaultDomain
	assert.True(t, d.Contains(Point{-10, 10}))
	assert.False(t, d.Contains(Point{11, 0}))
	assert.Equal(t, Point{10, -10}, d.Clamp(Point{12, -40}))
	assert.Equal(t, 21, d.Size())
}

func TestNewDrawingData_Copies(t *testing.T) {
	lines := []Segment{seg(0, 0, 1, 1)}
	dd := NewDrawingData(lines...)
	lines[0] = seg(5, 5, 6, 6)
	assert.Equal(t, seg(0, 0, 1, 1), dd.Lines[0])
	assert.Equal(t, DefaultDomain, dd.Domain)
}
