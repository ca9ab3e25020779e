package questions

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

// ErrUnknownType matches any UnknownTypeError.
var ErrUnknownType = errors.New("unknown question type")

// UnknownTypeError reports a type id that is not registered.
type UnknownTypeError struct {
	ID string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown question type: %s", e.ID)
}

func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownType
}

// Factory creates a question of one type from a random source.
type Factory func(rng *rand.Rand) (Question, error)

type registration struct {
	id      TypeID
	name    string
	factory Factory
}

// registry holds the question types in registration order.
var registry []registration

// byID indexes registry by type id.
var byID map[TypeID]*registration

func init() {
	registry = []registration{
		{TypeTwoPointsLine, "Line through two points", newTwoPointsLine},
		{TypeEquationLine, "Line from an equation", newEquationLine},
		{TypeSlopePointLine, "Line from slope and point", newSlopePointLine},
		{TypeParallelFree, "Any parallel line", newParallelFree},
		{TypeParallelThroughPoint, "Parallel through a point", newParallelThroughPoint},
	}
	byID = make(map[TypeID]*registration, len(registry))
	for i := range registry {
		byID[registry[i].id] = &registry[i]
	}
}

// Create generates a question of the given type.
func Create(id TypeID, rng *rand.Rand) (Question, error) {
	reg, ok := byID[id]
	if !ok {
		return nil, &UnknownTypeError{ID: string(id)}
	}
	return reg.factory(rng)
}

// CreateRandom generates a question of a uniformly chosen registered type.
func CreateRandom(rng *rand.Rand) (Question, error) {
	reg := registry[rng.IntN(len(registry))]
	return reg.factory(rng)
}

// RegisteredTypes returns every registered type id in registration order.
func RegisteredTypes() []TypeID {
	ids := make([]TypeID, len(registry))
	for i, reg := range registry {
		ids[i] = reg.id
	}
	return ids
}

// ParseType resolves a user-supplied type id.
func ParseType(s string) (TypeID, error) {
	id := TypeID(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := byID[id]; !ok {
		return "", &UnknownTypeError{ID: s}
	}
	return id, nil
}

// DisplayName returns a human-readable name for a type, or the id itself
// when the type is not registered.
func DisplayName(id TypeID) string {
	if reg, ok := byID[id]; ok {
		return reg.name
	}
	return string(id)
}
