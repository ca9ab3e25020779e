package feedback

import (
	"github.com/abhisek/linedrill/internal/grading"
	"github.com/abhisek/linedrill/internal/questions"
)

// GenericHint is returned when no pool covers a mistake.
const GenericHint = "Take another look at the problem and try again."

// shared holds hints that read the same for every question type.
var shared = map[grading.MistakeCode][]string{
	grading.NoLineDrawn: {
		"Have you placed two points yet?",
		"What two points could define your line?",
	},
	grading.DegenerateLine: {
		"Make sure your two points are not in the same location.",
		"A line needs two distinct points — try placing them further apart.",
	},
	grading.NeedTwoLines: {
		"This question requires two lines. Have you drawn both?",
		"You need to draw a second line — click two more points on the grid.",
	},
	grading.NotParallel: {
		"Parallel lines have the same slope. Do both of your lines have the same steepness?",
		"If one line goes up 2 for every 1 to the right, the parallel line should too.",
		"Check that your second line tilts at exactly the same angle as the first.",
	},
	grading.LinesIdentical: {
		"Your two lines look the same. A parallel line must be shifted up or down.",
		"Parallel means same slope but a different position — try moving your second line.",
	},
	grading.ParallelMissingPoint: {
		"Your second line is parallel, but it doesn't pass through the required point.",
		"Check: does your parallel line go through the specific point given in the problem?",
		"Try shifting your parallel line so it crosses the given point.",
	},
}

// byType overrides shared hints for a question type.
var byType = map[questions.TypeID]map[grading.MistakeCode][]string{
	questions.TypeTwoPointsLine: {
		grading.WrongSlope: {
			"Does your line pass through both given points?",
			"Try computing the slope: (y₂ − y₁) / (x₂ − x₁). Does your line match?",
			"Check that the steepness of your line matches what the two points require.",
		},
		grading.WrongIntercept: {
			"Your line has the right steepness, but it looks shifted. Does it pass through both points?",
			"Try substituting one of the given points into your line — does it fit?",
		},
		grading.WrongPoints: {
			"Does your line pass exactly through both given points?",
			"What happens if you substitute the x-values of the given points into your line?",
			"Try verifying each point lies on your drawn line.",
		},
	},
	questions.TypeEquationLine: {
		grading.WrongSlope: {
			"What is the coefficient of x in the equation? That is your slope.",
			"If x increases by 1, how much should y change according to the equation?",
			"Check the steepness of your line — does it match the equation?",
		},
		grading.WrongIntercept: {
			"Where should the line cross the y-axis? Look at the constant in the equation.",
			"What value does the equation give when x = 0?",
			"Your slope looks right, but the line is shifted up or down.",
		},
		grading.WrongPoints: {
			"Pick an easy x-value (like 0 or 1) and compute y from the equation. Does your line pass through that point?",
			"Try checking two points on your line against the equation.",
		},
	},
	questions.TypeSlopePointLine: {
		grading.WrongSlope: {
			"The slope is given directly in the problem. If x increases by 1, y should change by exactly that amount.",
			"Check the steepness of your line — does it match the given slope?",
			"Try counting grid squares: for each 1 unit right, how many units does your line go up or down?",
		},
		grading.WrongIntercept: {
			"Your line has the right steepness but doesn't pass through the given point.",
			"Try substituting the given point's coordinates — does your line actually go through it?",
			"Slide your line (without changing its tilt) so it passes through the required point.",
		},
		grading.WrongPoints: {
			"Does your line pass through the specific point given in the problem?",
			"Check: if you plug the given x-value into your line, do you get the given y-value?",
		},
	},
	questions.TypeParallelFree: {
		grading.WrongSlope: {
			"Look at the equation — what is the coefficient of x? That determines the slope of your first line.",
			"Does your first line match the given equation?",
		},
		grading.WrongIntercept: {
			"Your first line has the right slope but is shifted. Where should it cross the y-axis?",
			"What value does the equation give when x = 0?",
		},
	},
	questions.TypeParallelThroughPoint: {
		grading.WrongSlope: {
			"Does your first line match the given equation? Check the slope.",
			"What is the coefficient of x in the equation?",
		},
		grading.WrongIntercept: {
			"Your first line has the right slope but is shifted. Check where it crosses the y-axis.",
		},
	},
}

// fallbackType supplies pools for codes that neither the question type nor
// the shared table cover.
const fallbackType = questions.TypeEquationLine

// Pool returns the hint pool for a mistake on a question type. The lookup
// tries the type's own pool, then the shared pool, then the equation-line
// pool. The returned slice must not be modified.
func Pool(code grading.MistakeCode, typeID questions.TypeID) []string {
	if pool := byType[typeID][code]; len(pool) > 0 {
		return pool
	}
	if pool := shared[code]; len(pool) > 0 {
		return pool
	}
	return byType[fallbackType][code]
}
