package session

import "time"

// Summary is the record of a finished (or abandoned) attempt.
type Summary struct {
	SessionID  string    `json:"sessionId"`
	UserID     string    `json:"userId"`
	LanguageID string    `json:"languageId"`
	LessonID   string    `json:"lessonId"`
	Report     Report    `json:"report"`
	Correct    int       `json:"correct"`
	Total      int       `json:"total"`
	Attempts   int       `json:"attempts"`
	Complete   bool      `json:"complete"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Accuracy returns the share of first-pass questions answered correctly.
func (s Summary) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total)
}

// Summary builds a summary of the attempt so far. Before completion the
// report carries the heart changes only; XP is earned on completion.
func (s *Session) Summary() Summary {
	sum := Summary{
		SessionID:  s.id,
		UserID:     s.opts.UserID,
		LanguageID: s.opts.LanguageID,
		LessonID:   s.lesson.ID,
		Correct:    s.correct,
		Total:      s.total,
		Attempts:   s.attempts,
		Complete:   s.phase == PhaseComplete,
		StartedAt:  s.startedAt,
		FinishedAt: s.opts.Now(),
	}
	if s.report != nil {
		sum.Report = *s.report
	} else {
		sum.Report = Report{HeartsLost: s.heartsLost, HeartsGained: s.heartsGained}
	}
	return sum
}
