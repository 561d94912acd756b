package store

import (
	"context"
	"time"

	"github.com/abhisek/afrolingo/internal/session"
)

// ProgressRepo manages learner progress per language.
type ProgressRepo interface {
	// Get returns the progress of userID in languageID as of now. A learner
	// with no stored progress gets NewProgress.
	Get(ctx context.Context, userID, languageID string, now time.Time) (Progress, error)

	// List returns the stored progress of userID in every language.
	List(ctx context.Context, userID string, now time.Time) ([]Progress, error)

	// Reset deletes the progress and session history of userID. An empty
	// languageID resets every language.
	Reset(ctx context.Context, userID, languageID string) error
}

// SessionEventRepo records finished sessions.
type SessionEventRepo interface {
	// Recent returns the latest sessions of userID, newest first.
	Recent(ctx context.Context, userID string, limit int) ([]session.Summary, error)
}
