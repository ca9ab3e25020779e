package grading

// Tolerances for comparing a student line against an expected line.
//
// Every generated line has an integer slope in [-5, 5]. The nearest distinct
// slope a student can draw between grid points differs by more than 0.0106
// rad, and a one-unit shift of such a line moves it at least 1/√26 ≈ 0.196
// grid units.
const (
	// AngleTolerance is the largest undirected angle difference, in radians,
	// for two lines to count as having the same slope.
	AngleTolerance = 0.01

	// DistanceTolerance is the largest average perpendicular distance, in
	// grid units, for two lines with the same slope to count as the same line.
	DistanceTolerance = 0.15
)

// sampleXs are the x-values at which a student line is compared against the
// expected line.
var sampleXs = [...]float64{-4, 0, 4}
