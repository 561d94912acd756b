package curriculum

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

var (
	ErrUnknownLanguage = errors.New("unknown language")
	ErrLessonNotFound  = errors.New("lesson not found")
)

// LessonSource supplies the authored lessons of a language. A language with
// no authored content returns an empty slice and no error.
type LessonSource interface {
	RawLessons(ctx context.Context, languageID string) ([]RawLesson, error)
}

// Catalog lazily builds and caches one curriculum per supported language.
// Built curricula are shared between callers and must not be modified.
type Catalog struct {
	src   LessonSource
	log   *slog.Logger
	group singleflight.Group

	mu    sync.RWMutex
	built map[string][]Stage
}

// NewCatalog creates a catalog over src.
func NewCatalog(src LessonSource, log *slog.Logger) *Catalog {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Catalog{
		src:   src,
		log:   log,
		built: make(map[string][]Stage, len(supportedLanguages)),
	}
}

// Languages returns the languages the catalog serves.
func (c *Catalog) Languages() []Language {
	return SupportedLanguages()
}

// Stages returns the curriculum of languageID, building it on first use.
// Concurrent first calls for the same language share a single build.
func (c *Catalog) Stages(ctx context.Context, languageID string) ([]Stage, error) {
	if _, ok := LookupLanguage(languageID); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, languageID)
	}

	c.mu.RLock()
	stages, ok := c.built[languageID]
	c.mu.RUnlock()
	if ok {
		return stages, nil
	}

	v, err, _ := c.group.Do(languageID, func() (any, error) {
		c.mu.RLock()
		cached, ok := c.built[languageID]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		raw, err := c.src.RawLessons(ctx, languageID)
		if err != nil {
			return nil, fmt.Errorf("load lessons for %s: %w", languageID, err)
		}
		built := Build(languageID, raw)
		c.log.DebugContext(ctx, "curriculum built",
			"language", languageID,
			"authored_lessons", len(raw),
		)

		c.mu.Lock()
		c.built[languageID] = built
		c.mu.Unlock()
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Stage), nil
}

// Lesson returns a lesson of languageID by id.
func (c *Catalog) Lesson(ctx context.Context, languageID, lessonID string) (Lesson, error) {
	stages, err := c.Stages(ctx, languageID)
	if err != nil {
		return Lesson{}, err
	}
	l, ok := FindLesson(stages, lessonID)
	if !ok {
		return Lesson{}, fmt.Errorf("%w: %s/%s", ErrLessonNotFound, languageID, lessonID)
	}
	return l, nil
}

// Warm builds every supported language concurrently.
func (c *Catalog) Warm(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, lang := range supportedLanguages {
		eg.Go(func() error {
			_, err := c.Stages(ctx, lang.ID)
			return err
		})
	}
	return eg.Wait()
}
