package curriculum

import (
	"errors"
	"fmt"

	"github.com/abhisek/afrolingo/internal/seeded"
)

// ErrInvalidTarget is the panic value cause when Normalize is asked for a
// non-positive number of exercises.
var ErrInvalidTarget = errors.New("normalize: target count must be positive")

const (
	reviewSuffix   = " (Review)"
	reviewSuffixFr = " (Révision)"
)

// Normalize returns exactly target exercises derived from exercises.
//
// When there are at least target exercises, a seeded shuffle picks target of
// them without replacement. Otherwise all exercises are kept in their
// authored order and padded with review clones cycled from the start of the
// list. An empty list is replaced by a single generic fallback question.
// The same arguments always produce the same result, and the input slice is
// never modified.
//
// Normalize panics if target <= 0.
func Normalize(exercises []Exercise, target int, seedKey string) []Exercise {
	if target <= 0 {
		panic(fmt.Errorf("%w: got %d", ErrInvalidTarget, target))
	}

	base := exercises
	if len(base) == 0 {
		base = []Exercise{fallbackExercise(seedKey)}
	}

	if len(base) >= target {
		picked := make([]Exercise, len(base))
		for i, ex := range base {
			picked[i] = ex.Clone()
		}
		seeded.New(seedKey).Shuffle(len(picked), func(i, j int) {
			picked[i], picked[j] = picked[j], picked[i]
		})
		return picked[:target:target]
	}

	out := make([]Exercise, 0, target)
	for _, ex := range base {
		out = append(out, ex.Clone())
	}
	for len(out) < target {
		pad := base[len(out)%len(base)].Clone()
		pad.ID = fmt.Sprintf("%s-p%d", seedKey, len(out)+1)
		if pad.Question != "" {
			pad.Question += reviewSuffix
		}
		if pad.QuestionFr != "" {
			pad.QuestionFr += reviewSuffixFr
		}
		out = append(out, pad)
	}
	return out
}

// fallbackExercise is the placeholder used when a lesson has no content.
func fallbackExercise(seedKey string) Exercise {
	return Exercise{
		ID:            seedKey + "-fallback-1",
		Type:          ExerciseMultipleChoice,
		Question:      "Select the correct answer",
		QuestionFr:    "Sélectionnez la bonne réponse",
		CorrectAnswer: "A",
		Options:       []string{"A", "B", "C", "D"},
	}
}
