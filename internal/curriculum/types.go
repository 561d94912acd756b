package curriculum

import "slices"

// ExerciseType is the kind of question an exercise asks.
type ExerciseType string

const (
	ExerciseMultipleChoice ExerciseType = "multiple-choice"
	ExerciseFillBlank      ExerciseType = "fill-blank"
	ExerciseMatch          ExerciseType = "match"
	ExerciseTranslate      ExerciseType = "translate"
	ExerciseTypeAnswer     ExerciseType = "type-answer"
)

// AllExerciseTypes returns every supported exercise type.
func AllExerciseTypes() []ExerciseType {
	return []ExerciseType{
		ExerciseMultipleChoice,
		ExerciseFillBlank,
		ExerciseMatch,
		ExerciseTranslate,
		ExerciseTypeAnswer,
	}
}

// Valid reports whether t is one of the supported exercise types.
func (t ExerciseType) Valid() bool {
	return slices.Contains(AllExerciseTypes(), t)
}

// LessonType tags a lesson for iconography and copy. It does not affect
// exercise content.
type LessonType string

const (
	LessonVocabulary LessonType = "vocabulary"
	LessonGrammar    LessonType = "grammar"
	LessonWriting    LessonType = "writing"
	LessonCulture    LessonType = "culture"
)

// Valid reports whether t is a known lesson type.
func (t LessonType) Valid() bool {
	switch t {
	case LessonVocabulary, LessonGrammar, LessonWriting, LessonCulture:
		return true
	}
	return false
}

// Exercise is a single question. Every text field has a primary (English)
// form and an optional French form.
type Exercise struct {
	ID              string       `json:"id" yaml:"id"`
	Type            ExerciseType `json:"type" yaml:"type"`
	Question        string       `json:"question" yaml:"question"`
	QuestionFr      string       `json:"questionFr,omitempty" yaml:"questionFr,omitempty"`
	CorrectAnswer   string       `json:"correctAnswer" yaml:"correctAnswer"`
	CorrectAnswerFr string       `json:"correctAnswerFr,omitempty" yaml:"correctAnswerFr,omitempty"`
	Options         []string     `json:"options,omitempty" yaml:"options,omitempty"`
	OptionsFr       []string     `json:"optionsFr,omitempty" yaml:"optionsFr,omitempty"`
	Hint            string       `json:"hint,omitempty" yaml:"hint,omitempty"`
	HintFr          string       `json:"hintFr,omitempty" yaml:"hintFr,omitempty"`
}

// Clone returns a deep copy of e.
func (e Exercise) Clone() Exercise {
	e.Options = slices.Clone(e.Options)
	e.OptionsFr = slices.Clone(e.OptionsFr)
	return e
}

// Lesson is an ordered unit of exercises inside a stage.
type Lesson struct {
	ID           string     `json:"id"`
	StageID      string     `json:"stageId"`
	LessonNumber int        `json:"lessonNumber"`
	Type         LessonType `json:"type"`
	Title        string     `json:"title"`
	TitleFr      string     `json:"titleFr,omitempty"`
	XPReward     int        `json:"xpReward"`
	Exercises    []Exercise `json:"exercises"`
}

// Stage is a themed group of lessons.
type Stage struct {
	ID          string   `json:"id"`
	StageNumber int      `json:"stageNumber"`
	Title       string   `json:"title"`
	TitleFr     string   `json:"titleFr,omitempty"`
	Color       string   `json:"color"`
	Lessons     []Lesson `json:"lessons"`
}

// RawLesson is an authored lesson as it comes out of a lesson source. Any
// field may be missing; the builder substitutes defaults.
type RawLesson struct {
	ID        string     `json:"id,omitempty" yaml:"id,omitempty"`
	Type      LessonType `json:"type,omitempty" yaml:"type,omitempty"`
	Title     string     `json:"title,omitempty" yaml:"title,omitempty"`
	TitleFr   string     `json:"titleFr,omitempty" yaml:"titleFr,omitempty"`
	XPReward  *int       `json:"xpReward,omitempty" yaml:"xpReward,omitempty"`
	Exercises []Exercise `json:"exercises,omitempty" yaml:"exercises,omitempty"`
}
