package screen

import (
	"context"
	"time"

	"github.com/abhisek/afrolingo/internal/curriculum"
	"github.com/abhisek/afrolingo/internal/session"
	"github.com/abhisek/afrolingo/internal/store"
)

// Env carries what screens need to load curricula and progress.
type Env struct {
	Catalog *curriculum.Catalog

	// Progress and History are optional; without them the app runs with
	// full hearts and no history.
	Progress store.ProgressRepo
	History  store.SessionEventRepo

	// OnSessionEnd receives finished and abandoned sessions. Optional.
	OnSessionEnd func(session.Summary)

	UserID     string
	Locale     curriculum.Locale
	Subscriber bool
	Questions  int
	MaxHearts  float64
	Now        func() time.Time
}

// LoadProgress returns the learner's progress in languageID, or the zero
// progress with full hearts when no repo is configured.
func (e *Env) LoadProgress(ctx context.Context, languageID string) (store.Progress, error) {
	if e.Progress == nil {
		p := store.NewProgress(e.UserID, languageID, store.DefaultHeartPolicy())
		p.Hearts = e.MaxHearts
		return p, nil
	}
	return e.Progress.Get(ctx, e.UserID, languageID, e.Now())
}
