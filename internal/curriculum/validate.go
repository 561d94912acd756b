package curriculum

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Issue is one consistency problem found by Validate.
type Issue struct {
	LanguageID string `json:"languageId"`
	Where      string `json:"where"`
	Message    string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Where, i.Message)
}

// Validate audits a built curriculum and returns every problem it finds.
// An empty result means the curriculum passed. Validate never modifies
// stages.
func Validate(languageID string, stages []Stage) []Issue {
	v := validator{languageID: languageID}
	v.stages(stages)
	return v.issues
}

type validator struct {
	languageID string
	issues     []Issue
}

func (v *validator) add(where, format string, args ...any) {
	v.issues = append(v.issues, Issue{
		LanguageID: v.languageID,
		Where:      where,
		Message:    fmt.Sprintf(format, args...),
	})
}

func (v *validator) stages(stages []Stage) {
	if len(stages) == 0 {
		v.add(v.languageID, "No stages found for language")
		return
	}

	stageIDs := make(map[string]bool, len(stages))
	lessonIDs := make(map[string]bool)

	for _, st := range stages {
		if isBlank(st.ID) {
			v.add(v.languageID, "Stage has missing/empty id")
			continue
		}
		if stageIDs[st.ID] {
			v.add(st.ID, "Duplicate stage id")
		}
		stageIDs[st.ID] = true

		if st.Lessons == nil {
			v.add(st.ID, "Stage lessons is not an array")
			continue
		}

		for _, l := range st.Lessons {
			where := st.ID + " / " + l.ID
			if lessonIDs[l.ID] {
				v.add(where, "Duplicate lesson id across language stages")
			}
			if !isBlank(l.ID) {
				lessonIDs[l.ID] = true
			}
			v.lesson(where, l)
		}
	}
}

func (v *validator) lesson(where string, l Lesson) {
	if isBlank(l.ID) {
		v.add(where, "Lesson has missing/empty id")
	}
	if len(l.Exercises) == 0 {
		v.add(where, "Lesson has no exercises")
		return
	}

	seen := make(map[string]bool, len(l.Exercises))
	for _, ex := range l.Exercises {
		if seen[ex.ID] {
			v.add(where, "Duplicate exercise id within lesson: %s", ex.ID)
		}
		if !isBlank(ex.ID) {
			seen[ex.ID] = true
		}
		v.exercise(where, ex)
	}
}

func (v *validator) exercise(where string, ex Exercise) {
	if isBlank(ex.ID) {
		v.add(where, "Exercise has missing/empty id")
	}
	if !ex.Type.Valid() {
		v.add(where, "Exercise has unsupported type: %s", ex.Type)
	}
	if isBlank(ex.Question) {
		v.add(where, "Exercise has missing/empty question")
	}
	if isBlank(ex.CorrectAnswer) {
		v.add(where, "Exercise has missing/empty correctAnswer")
	}

	if ex.Type != ExerciseMultipleChoice {
		return
	}
	if len(ex.Options) < 2 {
		v.add(where, "Multiple-choice exercise has missing/too-short options[]")
		return
	}
	if !slices.Contains(ex.Options, ex.CorrectAnswer) {
		v.add(where, "Multiple-choice options[] does not include correctAnswer")
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateAll builds and validates every language served by catalog.
func ValidateAll(ctx context.Context, catalog *Catalog) ([]Issue, error) {
	var issues []Issue
	for _, lang := range catalog.Languages() {
		stages, err := catalog.Stages(ctx, lang.ID)
		if err != nil {
			return nil, err
		}
		issues = append(issues, Validate(lang.ID, stages)...)
	}
	return issues, nil
}

// IssueGroup holds the issues of one language.
type IssueGroup struct {
	LanguageID string
	Issues     []Issue
}

// GroupByLanguage groups issues by language, preserving first-seen order.
func GroupByLanguage(issues []Issue) []IssueGroup {
	var groups []IssueGroup
	index := make(map[string]int)
	for _, is := range issues {
		i, ok := index[is.LanguageID]
		if !ok {
			i = len(groups)
			index[is.LanguageID] = i
			groups = append(groups, IssueGroup{LanguageID: is.LanguageID})
		}
		groups[i].Issues = append(groups[i].Issues, is)
	}
	return groups
}
