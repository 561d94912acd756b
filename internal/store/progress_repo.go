package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/abhisek/afrolingo/internal/session"
)

var progressColumns = []string{
	"user_id", "language_id", "xp", "hearts", "hearts_reset_at",
	"streak", "longest_streak", "last_active_date", "updated_at",
}

type progressRepo struct {
	s *Store
}

func (r *progressRepo) Get(ctx context.Context, userID, languageID string, now time.Time) (Progress, error) {
	p, err := getProgress(ctx, r.s.db, userID, languageID, r.s.policy)
	if err != nil {
		return Progress{}, err
	}
	p.Refill(now, r.s.policy)
	return p, nil
}

func (r *progressRepo) List(ctx context.Context, userID string, now time.Time) ([]Progress, error) {
	query, args, err := builder.Select(progressColumns...).
		From("progress").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("language_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	var out []Progress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}

	for i := range out {
		out[i].CompletedLessons, err = completedLessons(ctx, r.s.db, userID, out[i].LanguageID)
		if err != nil {
			return nil, err
		}
		out[i].Refill(now, r.s.policy)
	}
	return out, nil
}

func (r *progressRepo) Reset(ctx context.Context, userID, languageID string) error {
	where := sq.Eq{"user_id": userID}
	if languageID != "" {
		where["language_id"] = languageID
	}

	return r.s.transact(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"completed_lessons", "session_events", "progress"} {
			query, args, err := builder.Delete(table).Where(where).ToSql()
			if err != nil {
				return fmt.Errorf("build query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("reset %s: %w", table, err)
			}
		}
		return nil
	})
}

// ApplySession folds a finished session into the learner's progress and
// records it, atomically. It returns the updated progress.
func (s *Store) ApplySession(ctx context.Context, sum session.Summary, now time.Time) (Progress, error) {
	var out Progress
	err := s.transact(ctx, func(tx *sql.Tx) error {
		p, err := getProgress(ctx, tx, sum.UserID, sum.LanguageID, s.policy)
		if err != nil {
			return err
		}
		p.Apply(sum, now, s.policy)

		if err := putProgress(ctx, tx, p); err != nil {
			return err
		}
		if sum.Complete {
			if err := addCompletedLesson(ctx, tx, p, sum.LessonID, now); err != nil {
				return err
			}
		}
		if err := appendSessionEvent(ctx, tx, sum); err != nil {
			return err
		}
		out = p
		return nil
	})
	return out, err
}

func getProgress(ctx context.Context, db runner, userID, languageID string, policy HeartPolicy) (Progress, error) {
	query, args, err := builder.Select(progressColumns...).
		From("progress").
		Where(sq.Eq{"user_id": userID, "language_id": languageID}).
		ToSql()
	if err != nil {
		return Progress{}, fmt.Errorf("build query: %w", err)
	}

	p, err := scanProgress(db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return NewProgress(userID, languageID, policy), nil
	}
	if err != nil {
		return Progress{}, err
	}

	p.CompletedLessons, err = completedLessons(ctx, db, userID, languageID)
	if err != nil {
		return Progress{}, err
	}
	return p, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProgress(row scanner) (Progress, error) {
	var (
		p         Progress
		resetAt   sql.NullInt64
		updatedAt int64
	)
	err := row.Scan(
		&p.UserID,
		&p.LanguageID,
		&p.XP,
		&p.Hearts,
		&resetAt,
		&p.Streak,
		&p.LongestStreak,
		&p.LastActiveDate,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Progress{}, err
		}
		return Progress{}, fmt.Errorf("scan progress: %w", err)
	}
	if resetAt.Valid {
		at := time.UnixMilli(resetAt.Int64)
		p.HeartsResetAt = &at
	}
	p.UpdatedAt = time.UnixMilli(updatedAt)
	return p, nil
}

func putProgress(ctx context.Context, db runner, p Progress) error {
	var resetAt any
	if p.HeartsResetAt != nil {
		resetAt = p.HeartsResetAt.UnixMilli()
	}

	query, args, err := builder.Insert("progress").
		Columns(progressColumns...).
		Values(p.UserID, p.LanguageID, p.XP, p.Hearts, resetAt,
			p.Streak, p.LongestStreak, p.LastActiveDate, p.UpdatedAt.UnixMilli()).
		Suffix(`ON CONFLICT (user_id, language_id) DO UPDATE SET
			xp = excluded.xp,
			hearts = excluded.hearts,
			hearts_reset_at = excluded.hearts_reset_at,
			streak = excluded.streak,
			longest_streak = excluded.longest_streak,
			last_active_date = excluded.last_active_date,
			updated_at = excluded.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func addCompletedLesson(ctx context.Context, db runner, p Progress, lessonID string, now time.Time) error {
	query, args, err := builder.Insert("completed_lessons").
		Columns("user_id", "language_id", "lesson_id", "completed_at").
		Values(p.UserID, p.LanguageID, lessonID, now.UnixMilli()).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save completed lesson: %w", err)
	}
	return nil
}

func completedLessons(ctx context.Context, db runner, userID, languageID string) ([]string, error) {
	query, args, err := builder.Select("lesson_id").
		From("completed_lessons").
		Where(sq.Eq{"user_id": userID, "language_id": languageID}).
		OrderBy("completed_at", "lesson_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query completed lessons: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan completed lesson: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
