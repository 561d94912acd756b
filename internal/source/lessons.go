package source

import (
	"fmt"
	"math"
	"strconv"

	"github.com/abhisek/afrolingo/internal/curriculum"
)

// lessonsFrom maps a decoded lesson file onto raw lessons field by field.
// A field of the wrong shape is left empty for the builder to default, so
// one bad value never shifts the lessons after it. It reports false only
// when the document has no lesson list at all.
func lessonsFrom(doc any) ([]curriculum.RawLesson, bool) {
	m, ok := mapping(doc)
	if !ok {
		return nil, false
	}
	v, present := m["lessons"]
	if !present || v == nil {
		return nil, true
	}
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}

	lessons := make([]curriculum.RawLesson, len(items))
	for i, item := range items {
		lessons[i] = rawLesson(item)
	}
	return lessons, true
}

func rawLesson(v any) curriculum.RawLesson {
	m, ok := mapping(v)
	if !ok {
		return curriculum.RawLesson{}
	}
	l := curriculum.RawLesson{
		ID:       text(m["id"]),
		Type:     curriculum.LessonType(text(m["type"])),
		Title:    text(m["title"]),
		TitleFr:  text(m["titleFr"]),
		XPReward: number(m["xpReward"]),
	}
	if items, ok := m["exercises"].([]any); ok {
		l.Exercises = make([]curriculum.Exercise, len(items))
		for i, item := range items {
			l.Exercises[i] = exercise(item)
		}
	}
	return l
}

func exercise(v any) curriculum.Exercise {
	m, ok := mapping(v)
	if !ok {
		return curriculum.Exercise{}
	}
	return curriculum.Exercise{
		ID:              text(m["id"]),
		Type:            curriculum.ExerciseType(text(m["type"])),
		Question:        text(m["question"]),
		QuestionFr:      text(m["questionFr"]),
		CorrectAnswer:   text(m["correctAnswer"]),
		CorrectAnswerFr: text(m["correctAnswerFr"]),
		Options:         list(m["options"]),
		OptionsFr:       list(m["optionsFr"]),
		Hint:            text(m["hint"]),
		HintFr:          text(m["hintFr"]),
	}
}

// mapping accepts both map shapes yaml.v3 produces.
func mapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

// text returns scalars as authored text. YAML and JSON numbers are common
// answers ("1", "2.5") and are formatted back without exponent.
func text(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

// number returns v when it is numeric, else nil.
func number(v any) *int {
	var n int
	switch v := v.(type) {
	case int:
		n = v
	case int64:
		n = int(v)
	case uint64:
		n = int(min(v, math.MaxInt32))
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		n = int(v)
	default:
		return nil
	}
	return &n
}

// list returns the scalar items of a sequence. A non-sequence yields nil.
func list(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = text(item)
	}
	return out
}
