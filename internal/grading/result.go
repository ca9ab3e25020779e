package grading

// MistakeCode identifies a detected misconception in a student drawing.
type MistakeCode string

const (
	NoLineDrawn          MistakeCode = "NO_LINE_DRAWN"
	DegenerateLine       MistakeCode = "DEGENERATE_LINE"
	NeedTwoLines         MistakeCode = "NEED_TWO_LINES"
	WrongSlope           MistakeCode = "WRONG_SLOPE"
	WrongIntercept       MistakeCode = "WRONG_INTERCEPT"
	WrongPoints          MistakeCode = "WRONG_POINTS"
	NotParallel          MistakeCode = "NOT_PARALLEL"
	LinesIdentical       MistakeCode = "LINES_IDENTICAL"
	ParallelMissingPoint MistakeCode = "PARALLEL_MISSING_POINT"
)

// AllMistakeCodes lists every mistake code in declaration order.
var AllMistakeCodes = []MistakeCode{
	NoLineDrawn,
	DegenerateLine,
	NeedTwoLines,
	WrongSlope,
	WrongIntercept,
	WrongPoints,
	NotParallel,
	LinesIdentical,
	ParallelMissingPoint,
}

// Mistake is one detected problem with optional diagnostic metadata.
type Mistake struct {
	Code MistakeCode    `json:"code"`
	Meta map[string]any `json:"meta,omitempty"`
}

// With returns a copy of the mistake with key set in its metadata.
func (m Mistake) With(key string, value any) Mistake {
	meta := make(map[string]any, len(m.Meta)+1)
	for k, v := range m.Meta {
		meta[k] = v
	}
	meta[key] = value
	return Mistake{Code: m.Code, Meta: meta}
}

// Result is the outcome of grading a drawing. Mistakes is empty exactly when
// IsCorrect is true.
type Result struct {
	IsCorrect bool      `json:"isCorrect"`
	Mistakes  []Mistake `json:"mistakes"`
}

// Correct returns a passing result.
func Correct() Result {
	return Result{IsCorrect: true, Mistakes: []Mistake{}}
}

// Fail returns a result carrying the given mistakes. With no mistakes the
// result is correct.
func Fail(mistakes ...Mistake) Result {
	if len(mistakes) == 0 {
		return Correct()
	}
	return Result{IsCorrect: false, Mistakes: mistakes}
}

// Has reports whether the result contains a mistake with the given code.
func (r Result) Has(code MistakeCode) bool {
	for _, m := range r.Mistakes {
		if m.Code == code {
			return true
		}
	}
	return false
}

// Codes returns the mistake codes in order.
func (r Result) Codes() []MistakeCode {
	codes := make([]MistakeCode, len(r.Mistakes))
	for i, m := range r.Mistakes {
		codes[i] = m.Code
	}
	return codes
}
