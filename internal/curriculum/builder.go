package curriculum

import (
	"fmt"
	"strings"
)

const (
	// StageCount is the number of stages in every curriculum.
	StageCount = 7
	// LessonsPerStage is the number of lessons in every stage.
	LessonsPerStage = 7
	// ExercisesPerLesson is the number of exercises in every built lesson.
	ExercisesPerLesson = 20
	// DefaultXPReward is used when an authored lesson has no usable reward.
	DefaultXPReward = 10
)

// Build reshapes the authored lessons of a language into a curriculum of
// StageCount stages, each holding LessonsPerStage lessons of
// ExercisesPerLesson exercises.
//
// Authored lesson g fills slot g in stage-major order. Slots without an
// authored lesson become review lessons sampled from everything introduced
// up to the end of that stage. Build is a pure function of its arguments.
func Build(languageID string, raw []RawLesson) []Stage {
	var all []Exercise
	for _, rl := range raw {
		all = append(all, rl.Exercises...)
	}

	stages := make([]Stage, 0, StageCount)
	for s := 0; s < StageCount; s++ {
		title, titleFr, color := StageTheme(s)
		stageID := fmt.Sprintf("%s-stage-%d", languageID, s+1)

		pool := reviewPool(raw, s)
		if len(pool) == 0 {
			pool = all
		}

		lessons := make([]Lesson, 0, LessonsPerStage)
		for i := 0; i < LessonsPerStage; i++ {
			g := s*LessonsPerStage + i
			if g < len(raw) {
				lessons = append(lessons, toLesson(raw[g], languageID, stageID, i, g))
				continue
			}
			lessons = append(lessons, reviewLesson(languageID, stageID, s, i, pool))
		}

		stages = append(stages, Stage{
			ID:          stageID,
			StageNumber: s + 1,
			Title:       title,
			TitleFr:     titleFr,
			Color:       color,
			Lessons:     lessons,
		})
	}
	return stages
}

// reviewPool collects the exercises of authored lessons introduced up to and
// including stage s. At least the first authored lesson is always included.
func reviewPool(raw []RawLesson, s int) []Exercise {
	cutoff := max(1, min(len(raw), (s+1)*LessonsPerStage))
	cutoff = min(cutoff, len(raw))

	var pool []Exercise
	for _, rl := range raw[:cutoff] {
		pool = append(pool, rl.Exercises...)
	}
	return pool
}

// toLesson wraps an authored lesson, filling any missing field.
func toLesson(rl RawLesson, languageID, stageID string, slot, global int) Lesson {
	id := strings.TrimSpace(rl.ID)
	if id == "" {
		id = fmt.Sprintf("%s-lesson-%d", stageID, slot+1)
	}

	typ := rl.Type
	if !typ.Valid() {
		typ = LessonVocabulary
	}

	title := rl.Title
	if strings.TrimSpace(title) == "" {
		title = fmt.Sprintf("Lesson %d", slot+1)
	}
	titleFr := rl.TitleFr
	if strings.TrimSpace(titleFr) == "" {
		titleFr = fmt.Sprintf("Leçon %d", slot+1)
	}

	xp := DefaultXPReward
	if rl.XPReward != nil && *rl.XPReward > 0 {
		xp = *rl.XPReward
	}

	seed := fmt.Sprintf("%s:%s:%d", id, languageID, global)
	return Lesson{
		ID:           id,
		StageID:      stageID,
		LessonNumber: slot + 1,
		Type:         typ,
		Title:        title,
		TitleFr:      titleFr,
		XPReward:     xp,
		Exercises:    Normalize(rl.Exercises, ExercisesPerLesson, seed),
	}
}

// reviewLesson synthesizes a lesson for a slot with no authored content.
func reviewLesson(languageID, stageID string, s, slot int, pool []Exercise) Lesson {
	title, titleFr, _ := StageTheme(s)
	seed := fmt.Sprintf("%s-review-%d-%d", languageID, s, slot)
	return Lesson{
		ID:           fmt.Sprintf("%s-review-%d-%d", languageID, s+1, slot+1),
		StageID:      stageID,
		LessonNumber: slot + 1,
		Type:         LessonVocabulary,
		Title:        "Review: " + title,
		TitleFr:      "Révision : " + titleFr,
		XPReward:     DefaultXPReward,
		Exercises:    Normalize(pool, ExercisesPerLesson, seed),
	}
}

// FindLesson returns the lesson with the given id.
func FindLesson(stages []Stage, lessonID string) (Lesson, bool) {
	for _, st := range stages {
		for _, l := range st.Lessons {
			if l.ID == lessonID {
				return l, true
			}
		}
	}
	return Lesson{}, false
}
