// Package session runs a single lesson attempt: an exercise queue with
// requeue-on-miss, redemption and heart/XP accounting.
package session

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/afrolingo/internal/answer"
	"github.com/abhisek/afrolingo/internal/curriculum"
)

// Session is a single attempt at a lesson. It is not safe for concurrent
// use; callers sharing one across goroutines must serialize access.
type Session struct {
	id     string
	lesson curriculum.Lesson
	opts   Options

	queue []Entry
	phase Phase

	hearts       float64
	total        int
	correct      int
	attempts     int
	heartsLost   float64
	heartsGained float64

	last      *Result
	report    *Report
	startedAt time.Time
}

// New starts a session for lesson.
func New(lesson curriculum.Lesson, opts Options) (*Session, error) {
	if len(lesson.Exercises) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyLesson, lesson.ID)
	}
	if opts.Checker == nil {
		opts.Checker = answer.ForLanguage(opts.LanguageID)
	}
	if opts.Rand == nil {
		opts.Rand = rand.IntN
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	exercises := lesson.Exercises
	if opts.QuestionCount > 0 {
		exercises = curriculum.Normalize(exercises, opts.QuestionCount, lesson.ID)
	}

	queue := make([]Entry, len(exercises))
	for i, ex := range exercises {
		queue[i] = Entry{Exercise: ex.Clone()}
	}

	return &Session{
		id:        uuid.New().String(),
		lesson:    lesson,
		opts:      opts,
		queue:     queue,
		phase:     PhaseAwaitingAnswer,
		hearts:    min(max(opts.Hearts, 0), MaxHearts),
		total:     len(queue),
		startedAt: opts.Now(),
	}, nil
}

// ID returns the session's unique id.
func (s *Session) ID() string { return s.id }

// Lesson returns the lesson being played.
func (s *Session) Lesson() curriculum.Lesson { return s.lesson }

// Options returns the options the session was started with.
func (s *Session) Options() Options { return s.opts }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Current returns the entry at the head of the queue. ok is false once the
// session is complete.
func (s *Session) Current() (e Entry, ok bool) {
	if len(s.queue) == 0 {
		return Entry{}, false
	}
	return s.queue[0], true
}

// Hearts returns the remaining hearts. Subscribers keep their starting count.
func (s *Session) Hearts() float64 { return s.hearts }

// Total returns the number of distinct questions in the attempt.
func (s *Session) Total() int { return s.total }

// Correct returns the number of correct answers so far.
func (s *Session) Correct() int { return s.correct }

// Remaining returns the number of queued entries, including the current one.
func (s *Session) Remaining() int { return len(s.queue) }

// Answered returns how many exercises have been judged at least once.
// Requeued copies do not count.
func (s *Session) Answered() int {
	pending := 0
	for i, e := range s.queue {
		if e.WasWrong || (i == 0 && s.phase == PhaseShowingFeedback) {
			continue
		}
		pending++
	}
	return s.total - pending
}

// LastResult returns the outcome of the most recent answer.
func (s *Session) LastResult() (Result, bool) {
	if s.last == nil {
		return Result{}, false
	}
	return *s.last, true
}

// Report returns the final report once the session is complete.
func (s *Session) Report() (Report, bool) {
	if s.report == nil {
		return Report{}, false
	}
	return *s.report, true
}

// SubmitAnswer judges input against the current exercise and moves the
// session to PhaseShowingFeedback.
func (s *Session) SubmitAnswer(input string) (Result, error) {
	if s.phase != PhaseAwaitingAnswer {
		return Result{}, fmt.Errorf("submit answer: %w (phase %s)", ErrWrongPhase, s.phase)
	}

	head := s.queue[0]
	ex := head.Exercise
	expected := ex.AnswerIn(s.opts.Locale)

	res := Result{
		Correct:    s.judge(ex, input, expected),
		Expected:   expected,
		Redemption: head.IsRedemption(),
	}
	s.attempts++

	if res.Correct {
		s.correct++
		if res.Redemption && !s.opts.Subscriber {
			gained := min(s.hearts+RedemptionHeal, MaxHearts) - s.hearts
			s.hearts += gained
			s.heartsGained += gained
			res.HeartGained = gained
		}
	} else {
		if !s.opts.Subscriber {
			lost := min(1, s.hearts)
			s.hearts -= lost
			s.heartsLost += lost
			res.HeartLost = lost
			if lost > 0 && s.hearts == 0 {
				res.HeartsExhausted = true
				if s.opts.OnHeartsExhausted != nil {
					s.opts.OnHeartsExhausted()
				}
			}
		}

		if head.WasWrong {
			s.queue[0].HasRetried = true
		} else {
			s.requeue(Entry{Exercise: ex.Clone(), WasWrong: true})
			res.Requeued = true
		}
	}

	s.phase = PhaseShowingFeedback
	res.Phase = s.phase
	s.last = &res
	return res, nil
}

// judge matches input as typed. A multiple-choice answer that names no
// option is then read as a 1-based option number.
func (s *Session) judge(ex curriculum.Exercise, input, expected string) bool {
	if s.opts.Checker.Match(input, expected) {
		return true
	}
	if ex.Type != curriculum.ExerciseMultipleChoice {
		return false
	}
	options := ex.OptionsIn(s.opts.Locale)
	if answer.IsOption(input, options) {
		return false
	}
	return s.opts.Checker.Match(answer.ResolveChoice(input, options), expected)
}

// requeue inserts e into the queue behind the head, at least two places
// after it when the rest of the queue is long enough.
func (s *Session) requeue(e Entry) {
	rest := len(s.queue) - 1
	if rest <= 2 {
		s.queue = append(s.queue, e)
		return
	}
	pos := 1 + 2 + s.opts.Rand(rest-2)
	s.queue = append(s.queue, Entry{})
	copy(s.queue[pos+1:], s.queue[pos:])
	s.queue[pos] = e
}

// Advance moves past the current exercise. When the queue drains the session
// completes and OnComplete is called with the summary.
func (s *Session) Advance() (Phase, error) {
	if s.phase != PhaseShowingFeedback {
		return s.phase, fmt.Errorf("advance: %w (phase %s)", ErrWrongPhase, s.phase)
	}

	s.queue = s.queue[1:]
	if len(s.queue) > 0 {
		s.phase = PhaseAwaitingAnswer
		return s.phase, nil
	}

	s.phase = PhaseComplete
	s.report = &Report{
		XPEarned:     ComputeXP(s.correct, s.lesson.XPReward, s.total),
		HeartsLost:   s.heartsLost,
		HeartsGained: s.heartsGained,
	}
	if s.opts.OnComplete != nil {
		s.opts.OnComplete(s.Summary())
	}
	return s.phase, nil
}

// ComputeXP is the completion reward: an equal share of xpReward per correct
// answer, never less than MinXP.
func ComputeXP(correct, xpReward, total int) int {
	if total <= 0 {
		return MinXP
	}
	return max(correct*(xpReward/total), MinXP)
}
