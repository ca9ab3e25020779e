package questions

import (
	"github.com/abhisek/linedrill/internal/geometry"
	"github.com/abhisek/linedrill/internal/grading"
)

const (
	whichOriginal = "original"
	whichParallel = "parallel"
)

func noLine() grading.Result {
	return grading.Fail(grading.Mistake{Code: grading.NoLineDrawn})
}

func needTwoLines() grading.Result {
	return grading.Fail(grading.Mistake{Code: grading.NeedTwoLines})
}

// gradeSingle grades the student line closest to expected.
func gradeSingle(data geometry.DrawingData, expected geometry.Segment) grading.Result {
	if len(data.Lines) == 0 {
		return noLine()
	}
	chosen, _ := grading.ClosestLine(data.Lines, expected)
	return grading.GradeLine(chosen, expected)
}

// splitPair picks the student line closest to the original and the first
// other line drawn. lines must hold at least two segments.
func splitPair(lines []geometry.Segment, original geometry.Segment) (match, other geometry.Segment) {
	match, idx := grading.ClosestLine(lines, original)
	for i, l := range lines {
		if i != idx {
			return match, l
		}
	}
	return match, lines[1]
}

// tagged copies mistakes with meta which set to which.
func tagged(mistakes []grading.Mistake, which string) []grading.Mistake {
	out := make([]grading.Mistake, 0, len(mistakes))
	for _, m := range mistakes {
		out = append(out, m.With("which", which))
	}
	return out
}

func degenerateParallel() grading.Mistake {
	return grading.Mistake{Code: grading.DegenerateLine, Meta: map[string]any{"which": whichParallel}}
}
