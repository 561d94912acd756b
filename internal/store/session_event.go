package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/abhisek/afrolingo/internal/session"
)

type sessionEventRepo struct {
	db *sql.DB
}

func appendSessionEvent(ctx context.Context, db runner, sum session.Summary) error {
	query, args, err := builder.Insert("session_events").
		Columns("id", "user_id", "language_id", "lesson_id",
			"xp_earned", "hearts_lost", "hearts_gained",
			"correct", "total", "attempts", "started_at", "finished_at").
		Values(sum.SessionID, sum.UserID, sum.LanguageID, sum.LessonID,
			sum.Report.XPEarned, sum.Report.HeartsLost, sum.Report.HeartsGained,
			sum.Correct, sum.Total, sum.Attempts,
			sum.StartedAt.UnixMilli(), sum.FinishedAt.UnixMilli()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *sessionEventRepo) Recent(ctx context.Context, userID string, limit int) ([]session.Summary, error) {
	q := builder.Select("id", "user_id", "language_id", "lesson_id",
		"xp_earned", "hearts_lost", "hearts_gained",
		"correct", "total", "attempts", "started_at", "finished_at").
		From("session_events").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("finished_at DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []session.Summary
	for rows.Next() {
		var (
			s                 session.Summary
			started, finished int64
		)
		err := rows.Scan(&s.SessionID, &s.UserID, &s.LanguageID, &s.LessonID,
			&s.Report.XPEarned, &s.Report.HeartsLost, &s.Report.HeartsGained,
			&s.Correct, &s.Total, &s.Attempts, &started, &finished)
		if err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		s.StartedAt = time.UnixMilli(started)
		s.FinishedAt = time.UnixMilli(finished)
		s.Complete = true
		out = append(out, s)
	}
	return out, rows.Err()
}
