package api

import (
	"github.com/abhisek/afrolingo/internal/curriculum"
	"github.com/abhisek/afrolingo/internal/session"
)

type (
	// ExerciseView is an exercise as shown to a learner. It never carries
	// the correct answer.
	ExerciseView struct {
		ID       string                  `json:"id"`
		Type     curriculum.ExerciseType `json:"type"`
		Question string                  `json:"question"`
		Options  []string                `json:"options,omitempty"`
		Hint     string                  `json:"hint,omitempty"`
	}

	ResultView struct {
		Correct         bool    `json:"correct"`
		Expected        string  `json:"expected"`
		Redemption      bool    `json:"redemption"`
		HeartLost       float64 `json:"heart_lost"`
		HeartGained     float64 `json:"heart_gained"`
		Requeued        bool    `json:"requeued"`
		HeartsExhausted bool    `json:"hearts_exhausted"`
	}

	SessionView struct {
		ID         string          `json:"id"`
		LanguageID string          `json:"language"`
		LessonID   string          `json:"lesson_id"`
		Title      string          `json:"title"`
		Phase      string          `json:"phase"`
		Subscriber bool            `json:"subscriber"`
		Hearts     *float64        `json:"hearts"`
		Correct    int             `json:"correct"`
		Total      int             `json:"total"`
		Remaining  int             `json:"remaining"`
		Current    *ExerciseView   `json:"current,omitempty"`
		Redemption bool            `json:"redemption"`
		LastResult *ResultView     `json:"last_result,omitempty"`
		Report     *session.Report `json:"report,omitempty"`
	}

	LessonSummary struct {
		ID           string                `json:"id"`
		LessonNumber int                   `json:"lesson_number"`
		Type         curriculum.LessonType `json:"type"`
		Title        string                `json:"title"`
		XPReward     int                   `json:"xp_reward"`
		Exercises    int                   `json:"exercises"`
	}

	StageView struct {
		ID          string          `json:"id"`
		StageNumber int             `json:"stage_number"`
		Title       string          `json:"title"`
		Color       string          `json:"color"`
		Lessons     []LessonSummary `json:"lessons"`
	}

	LessonView struct {
		LessonSummary
		StageID   string         `json:"stage_id"`
		Exercises []ExerciseView `json:"exercise_list"`
	}
)

func newExerciseView(ex curriculum.Exercise, loc curriculum.Locale) ExerciseView {
	return ExerciseView{
		ID:       ex.ID,
		Type:     ex.Type,
		Question: ex.QuestionIn(loc),
		Options:  ex.OptionsIn(loc),
		Hint:     ex.HintIn(loc),
	}
}

func newLessonSummary(l curriculum.Lesson, loc curriculum.Locale) LessonSummary {
	return LessonSummary{
		ID:           l.ID,
		LessonNumber: l.LessonNumber,
		Type:         l.Type,
		Title:        l.TitleIn(loc),
		XPReward:     l.XPReward,
		Exercises:    len(l.Exercises),
	}
}

func newStageView(st curriculum.Stage, loc curriculum.Locale) StageView {
	v := StageView{
		ID:          st.ID,
		StageNumber: st.StageNumber,
		Title:       st.TitleIn(loc),
		Color:       st.Color,
		Lessons:     make([]LessonSummary, len(st.Lessons)),
	}
	for i, l := range st.Lessons {
		v.Lessons[i] = newLessonSummary(l, loc)
	}
	return v
}

func newLessonView(l curriculum.Lesson, loc curriculum.Locale) LessonView {
	v := LessonView{
		LessonSummary: newLessonSummary(l, loc),
		StageID:       l.StageID,
		Exercises:     make([]ExerciseView, len(l.Exercises)),
	}
	for i, ex := range l.Exercises {
		v.Exercises[i] = newExerciseView(ex, loc)
	}
	return v
}

func newSessionView(s *session.Session) SessionView {
	opts := s.Options()
	v := SessionView{
		ID:         s.ID(),
		LanguageID: opts.LanguageID,
		LessonID:   s.Lesson().ID,
		Title:      s.Lesson().TitleIn(opts.Locale),
		Phase:      s.Phase().String(),
		Subscriber: opts.Subscriber,
		Correct:    s.Correct(),
		Total:      s.Total(),
		Remaining:  s.Remaining(),
	}
	if !opts.Subscriber {
		hearts := s.Hearts()
		v.Hearts = &hearts
	}
	if e, ok := s.Current(); ok {
		ev := newExerciseView(e.Exercise, opts.Locale)
		v.Current = &ev
		v.Redemption = e.IsRedemption()
	}
	if s.Phase() == session.PhaseShowingFeedback {
		if r, ok := s.LastResult(); ok {
			v.LastResult = newResultView(r)
		}
	}
	if r, ok := s.Report(); ok {
		v.Report = &r
	}
	return v
}

func newResultView(r session.Result) *ResultView {
	return &ResultView{
		Correct:         r.Correct,
		Expected:        r.Expected,
		Redemption:      r.Redemption,
		HeartLost:       r.HeartLost,
		HeartGained:     r.HeartGained,
		Requeued:        r.Requeued,
		HeartsExhausted: r.HeartsExhausted,
	}
}
