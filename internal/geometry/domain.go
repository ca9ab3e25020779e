package geometry

import "math"

const (
	// DomainMin and DomainMax bound both axes of the drawing grid.
	DomainMin = -10
	DomainMax = 10
)

// Domain is the inclusive integer range shared by both axes.
type Domain struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DefaultDomain is the fixed [-10, 10] grid.
var DefaultDomain = Domain{Min: DomainMin, Max: DomainMax}

// Contains reports whether p lies inside the domain on both axes.
func (d Domain) Contains(p Point) bool {
	return p.X >= d.Min && p.X <= d.Max && p.Y >= d.Min && p.Y <= d.Max
}

// Clamp moves p onto the nearest point inside the domain.
func (d Domain) Clamp(p Point) Point {
	return Point{X: clampInt(p.X, d.Min, d.Max), Y: clampInt(p.Y, d.Min, d.Max)}
}

// Snap clamps a continuous position to the domain and rounds it to the
// nearest grid point.
func (d Domain) Snap(x, y float64) Point {
	return Point{X: d.snapAxis(x), Y: d.snapAxis(y)}
}

// Size is the number of grid points along one axis.
func (d Domain) Size() int {
	return d.Max - d.Min + 1
}

func (d Domain) snapAxis(v float64) int {
	if math.IsNaN(v) {
		return clampInt(0, d.Min, d.Max)
	}
	v = math.Max(float64(d.Min), math.Min(float64(d.Max), v))
	// Halves round toward +Inf so -2.5 snaps to -2 and 2.5 to 3.
	return int(math.Floor(v + 0.5))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DrawingData is the snapshot a capture device hands to a question's grader.
type DrawingData struct {
	Lines  []Segment `json:"lines"`
	Domain Domain    `json:"domain"`
}

// NewDrawingData copies lines into a snapshot on the default domain.
func NewDrawingData(lines ...Segment) DrawingData {
	cp := make([]Segment, len(lines))
	copy(cp, lines)
	return DrawingData{Lines: cp, Domain: DefaultDomain}
}
