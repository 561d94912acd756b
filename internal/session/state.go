package session

import (
	"errors"
	"time"

	"github.com/abhisek/afrolingo/internal/curriculum"
)

var (
	// ErrEmptyLesson is returned when a session is started for a lesson
	// that has no exercises.
	ErrEmptyLesson = errors.New("lesson has no exercises")

	// ErrWrongPhase is returned when a transition is attempted from a phase
	// that does not allow it.
	ErrWrongPhase = errors.New("operation not allowed in current phase")
)

const (
	// MaxHearts is the heart cap for non-subscribers.
	MaxHearts = 5.0

	// RedemptionHeal is the heart fraction restored by a successful redemption.
	RedemptionHeal = 0.5

	// MinXP is the reward for finishing a lesson regardless of score.
	MinXP = 5
)

// Phase represents the current phase of a session.
type Phase int

const (
	PhaseAwaitingAnswer  Phase = iota // Current exercise shown, waiting for input
	PhaseShowingFeedback              // Answer judged, waiting for Advance
	PhaseComplete                     // Queue drained, report available
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingAnswer:
		return "awaiting_answer"
	case PhaseShowingFeedback:
		return "showing_feedback"
	case PhaseComplete:
		return "complete"
	}
	return "unknown"
}

// Entry is one queued appearance of an exercise.
type Entry struct {
	Exercise curriculum.Exercise

	// WasWrong is set on the copy requeued after a first miss.
	WasWrong bool

	// HasRetried is set once the requeued copy has been answered wrong again.
	HasRetried bool
}

// IsRedemption reports whether answering e correctly restores a half heart.
func (e Entry) IsRedemption() bool {
	return e.WasWrong && !e.HasRetried
}

// Checker decides whether a learner's answer matches the expected one.
type Checker interface {
	Match(user, correct string) bool
}

// Options configures a session.
type Options struct {
	// UserID and LanguageID are carried into the Summary only.
	UserID     string
	LanguageID string

	// Locale selects which answer and option fields are expected.
	Locale curriculum.Locale

	// Subscriber disables heart accounting.
	Subscriber bool

	// Hearts is the starting heart count, clamped to [0, MaxHearts].
	Hearts float64

	// QuestionCount re-normalizes the lesson to this many exercises when
	// positive. Zero plays the lesson's exercises as they are.
	QuestionCount int

	// Checker compares answers. Defaults to the matcher for LanguageID.
	Checker Checker

	// Rand returns a uniform int in [0, n). Defaults to math/rand/v2.
	Rand func(n int) int

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// OnHeartsExhausted is called when a non-subscriber's hearts drop to zero.
	OnHeartsExhausted func()

	// OnComplete receives the summary once the queue drains.
	OnComplete func(Summary)
}

// DefaultOptions returns options for a full-hearts, English session.
func DefaultOptions() Options {
	return Options{
		Locale: curriculum.LocaleEN,
		Hearts: MaxHearts,
	}
}

// Result describes the outcome of a SubmitAnswer call.
type Result struct {
	Correct bool

	// Expected is the answer the learner should have given, in the session
	// locale.
	Expected string

	// Redemption is true when the judged entry was a requeued copy.
	Redemption bool

	HeartLost   float64
	HeartGained float64

	// Requeued is true when a copy of the exercise was put back in the queue.
	Requeued bool

	// HeartsExhausted is true when this answer took the last heart.
	HeartsExhausted bool

	Phase Phase
}

// Report is the outcome handed to progress persistence on completion.
type Report struct {
	XPEarned     int     `json:"xpEarned"`
	HeartsLost   float64 `json:"heartsLost"`
	HeartsGained float64 `json:"heartsGained"`
}
