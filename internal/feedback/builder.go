package feedback

import (
	"math/rand/v2"

	"github.com/abhisek/linedrill/internal/grading"
	"github.com/abhisek/linedrill/internal/questions"
)

// MaxHints caps the number of hints returned for one result.
const MaxHints = 3

// Builder turns grading results into Socratic hint questions. Hint selection
// is random; a Builder is not safe for concurrent use because it owns its
// random source.
type Builder struct {
	rng *rand.Rand
}

// NewBuilder creates a builder drawing from rng.
func NewBuilder(rng *rand.Rand) *Builder {
	return &Builder{rng: rng}
}

// Build returns up to MaxHints distinct hints for result. A correct result
// yields an empty slice; an incorrect one always yields at least one hint.
func (b *Builder) Build(result grading.Result, typeID questions.TypeID) []string {
	if result.IsCorrect {
		return []string{}
	}

	var all []string
	for _, m := range result.Mistakes {
		all = append(all, b.QuestionsForMistake(m.Code, typeID)...)
	}

	hints := make([]string, 0, MaxHints)
	seen := make(map[string]bool, len(all))
	for _, h := range all {
		if seen[h] {
			continue
		}
		seen[h] = true
		hints = append(hints, h)
		if len(hints) == MaxHints {
			break
		}
	}
	if len(hints) == 0 {
		hints = append(hints, GenericHint)
	}
	return hints
}

// QuestionsForMistake returns two or three hints drawn at random from the
// pool for code, or the generic hint when there is no pool.
func (b *Builder) QuestionsForMistake(code grading.MistakeCode, typeID questions.TypeID) []string {
	pool := Pool(code, typeID)
	if len(pool) == 0 {
		return []string{GenericHint}
	}

	count := min(len(pool), 2+b.rng.IntN(2))
	shuffled := make([]string, len(pool))
	copy(shuffled, pool)
	b.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:count]
}
