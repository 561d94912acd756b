package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhisek/afrolingo/internal/session"
)

// persistTimeout bounds how long a finished session may take to save.
const persistTimeout = 5 * time.Second

// SessionReporter returns a session.Options.OnComplete callback that saves
// finished sessions. Failures are logged and never reach the session.
func (s *Store) SessionReporter(log *slog.Logger) func(session.Summary) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return func(sum session.Summary) {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		p, err := s.ApplySession(ctx, sum, sum.FinishedAt)
		if err != nil {
			log.Error("failed to save session",
				"session_id", sum.SessionID,
				"user_id", sum.UserID,
				"lesson_id", sum.LessonID,
				"error", err,
			)
			return
		}
		log.Info("session saved",
			"session_id", sum.SessionID,
			"user_id", sum.UserID,
			"language", sum.LanguageID,
			"xp_earned", sum.Report.XPEarned,
			"xp_total", p.XP,
			"hearts", p.Hearts,
			"streak", p.Streak,
		)
	}
}
