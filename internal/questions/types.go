package questions

import (
	"github.com/abhisek/linedrill/internal/geometry"
	"github.com/abhisek/linedrill/internal/grading"
)

// TypeID identifies a question type.
type TypeID string

const (
	TypeTwoPointsLine        TypeID = "two-points-line"
	TypeEquationLine         TypeID = "equation-line"
	TypeSlopePointLine       TypeID = "slope-point-line"
	TypeParallelFree         TypeID = "parallel-free"
	TypeParallelThroughPoint TypeID = "parallel-through-point"
)

// Question is one generated exercise. Questions are immutable once created.
type Question interface {
	ID() string
	Type() TypeID
	Prompt() string
	// Answer returns the structured truth the question grades against.
	Answer() Answer
	Grade(data geometry.DrawingData) grading.Result
}

// Answer is the type-specific correct answer of a question.
type Answer interface {
	answer()
}

// TwoPointsAnswer is the truth for a two-points-line question.
type TwoPointsAnswer struct {
	P1 geometry.Point `json:"p1"`
	P2 geometry.Point `json:"p2"`
}

// EquationAnswer is the truth for an equation-line question. Line holds two
// points on y = M·x + B.
type EquationAnswer struct {
	M    int              `json:"m"`
	B    int              `json:"b"`
	Line geometry.Segment `json:"line"`
}

// SlopePointAnswer is the truth for a slope-point-line question.
type SlopePointAnswer struct {
	M     int              `json:"m"`
	Point geometry.Point   `json:"point"`
	Line  geometry.Segment `json:"line"`
}

// ParallelFreeAnswer is the truth for a parallel-free question. Any line
// parallel to Line and distinct from it is accepted as the second line.
type ParallelFreeAnswer struct {
	M    int              `json:"m"`
	B    int              `json:"b"`
	Line geometry.Segment `json:"line"`
}

// ParallelThroughPointAnswer is the truth for a parallel-through-point
// question. Parallel passes through Point with the same slope as Line.
type ParallelThroughPointAnswer struct {
	M        int              `json:"m"`
	B        int              `json:"b"`
	Line     geometry.Segment `json:"line"`
	Point    geometry.Point   `json:"point"`
	Parallel geometry.Segment `json:"parallel"`
}

func (TwoPointsAnswer) answer()            {}
func (EquationAnswer) answer()             {}
func (SlopePointAnswer) answer()           {}
func (ParallelFreeAnswer) answer()         {}
func (ParallelThroughPointAnswer) answer() {}

// Summary is a serializable view of a question.
type Summary struct {
	ID     string `json:"id"`
	Type   TypeID `json:"type"`
	Prompt string `json:"prompt"`
	Answer Answer `json:"answer"`
}

// Summarize returns the serializable view of q.
func Summarize(q Question) Summary {
	return Summary{ID: q.ID(), Type: q.Type(), Prompt: q.Prompt(), Answer: q.Answer()}
}
