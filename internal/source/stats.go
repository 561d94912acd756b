package source

import (
	"context"

	"github.com/abhisek/afrolingo/internal/curriculum"
)

// LanguageStats summarizes the authored content of one language.
type LanguageStats struct {
	LanguageID string `json:"languageId"`
	Lessons    int    `json:"lessons"`
	Exercises  int    `json:"exercises"`
}

// Average returns the mean number of exercises per authored lesson.
func (s LanguageStats) Average() float64 {
	if s.Lessons == 0 {
		return 0
	}
	return float64(s.Exercises) / float64(s.Lessons)
}

// Coverage returns the percentage of curriculum slots filled by authored
// lessons, rounded and capped at 100.
func (s LanguageStats) Coverage() int {
	slots := curriculum.StageCount * curriculum.LessonsPerStage
	pct := (s.Lessons*200 + slots) / (2 * slots)
	return min(pct, 100)
}

// Stats counts the authored lessons and exercises of each language.
func Stats(ctx context.Context, src curriculum.LessonSource, langs []curriculum.Language) ([]LanguageStats, error) {
	out := make([]LanguageStats, 0, len(langs))
	for _, lang := range langs {
		raw, err := src.RawLessons(ctx, lang.ID)
		if err != nil {
			return nil, err
		}
		st := LanguageStats{LanguageID: lang.ID, Lessons: len(raw)}
		for _, rl := range raw {
			st.Exercises += len(rl.Exercises)
		}
		out = append(out, st)
	}
	return out, nil
}
