package exercise

import (
	"time"

	"github.com/abhisek/linedrill/internal/questions"
)

// TypeResult counts submissions for one question type.
type TypeResult struct {
	Type     questions.TypeID
	Attempts int
	Correct  int
}

// Summary is the in-session scoreboard.
type Summary struct {
	Duration time.Duration
	Attempts int
	Correct  int
	Accuracy float64
	ByType   []TypeResult // in first-attempt order
}

type tally struct {
	order  []questions.TypeID
	byType map[questions.TypeID]*TypeResult
}

func newTally() tally {
	return tally{byType: make(map[questions.TypeID]*TypeResult)}
}

func (t *tally) add(typ questions.TypeID, correct bool) {
	r, ok := t.byType[typ]
	if !ok {
		r = &TypeResult{Type: typ}
		t.byType[typ] = r
		t.order = append(t.order, typ)
	}
	r.Attempts++
	if correct {
		r.Correct++
	}
}

// Summary reports every submission made so far, including repeated
// submissions of the same question.
func (s *Session) Summary() Summary {
	sum := Summary{Duration: time.Since(s.started)}
	for _, typ := range s.tally.order {
		r := *s.tally.byType[typ]
		sum.Attempts += r.Attempts
		sum.Correct += r.Correct
		sum.ByType = append(sum.ByType, r)
	}
	if sum.Attempts > 0 {
		sum.Accuracy = float64(sum.Correct) / float64(sum.Attempts)
	}
	return sum
}
