package curriculum

import (
	"context"
	"strings"
	"testing"
)

func hasIssue(issues []Issue, substr string) bool {
	for _, is := range issues {
		if strings.Contains(is.Message, substr) {
			return true
		}
	}
	return false
}

func TestValidate_BuiltCurriculumPasses(t *testing.T) {
	stages := Build("swahili", rawLessons(11, 6))
	if issues := Validate("swahili", stages); len(issues) != 0 {
		t.Fatalf("built curriculum has issues: %v", issues)
	}
}

func TestValidate_NoStages(t *testing.T) {
	issues := Validate("amharic", nil)
	if len(issues) != 1 || issues[0].Message != "No stages found for language" {
		t.Fatalf("issues = %v", issues)
	}
	if issues[0].LanguageID != "amharic" {
		t.Errorf("LanguageID = %q", issues[0].LanguageID)
	}
}

func TestValidate_DuplicateLessonAcrossStages(t *testing.T) {
	stages := Build("swahili", rawLessons(3, 4))
	stages[4].Lessons[2].ID = stages[0].Lessons[1].ID

	issues := Validate("swahili", stages)
	if !hasIssue(issues, "Duplicate lesson id") {
		t.Fatalf("issues = %v, want duplicate lesson id", issues)
	}
}

func TestValidate_StageProblems(t *testing.T) {
	stages := []Stage{
		{ID: "s1", Lessons: []Lesson{}},
		{ID: "s1", Lessons: []Lesson{}},
		{ID: " "},
		{ID: "s3"},
	}
	issues := Validate("x", stages)

	for _, want := range []string{
		"Duplicate stage id",
		"Stage has missing/empty id",
		"Stage lessons is not an array",
	} {
		if !hasIssue(issues, want) {
			t.Errorf("missing issue %q in %v", want, issues)
		}
	}
}

func TestValidate_ExerciseProblems(t *testing.T) {
	lesson := Lesson{
		ID: "l1",
		Exercises: []Exercise{
			{ID: "e1", Type: ExerciseMultipleChoice, Question: "q", CorrectAnswer: "a", Options: []string{"a"}},
			{ID: "e1", Type: ExerciseMultipleChoice, Question: "q", CorrectAnswer: "z", Options: []string{"a", "b"}},
			{ID: "", Type: "dictation", Question: " ", CorrectAnswer: ""},
		},
	}
	issues := Validate("x", []Stage{{ID: "s1", Lessons: []Lesson{lesson, {ID: "l2"}, {ID: ""}}}})

	for _, want := range []string{
		"Multiple-choice exercise has missing/too-short options[]",
		"Multiple-choice options[] does not include correctAnswer",
		"Duplicate exercise id within lesson: e1",
		"Exercise has missing/empty id",
		"Exercise has unsupported type: dictation",
		"Exercise has missing/empty question",
		"Exercise has missing/empty correctAnswer",
		"Lesson has no exercises",
		"Lesson has missing/empty id",
	} {
		if !hasIssue(issues, want) {
			t.Errorf("missing issue %q", want)
		}
	}
	for _, is := range issues {
		if strings.HasPrefix(is.Message, "Lesson has no exercises") && is.Where != "s1 / l2" && is.Where != "s1 / " {
			t.Errorf("Where = %q", is.Where)
		}
	}
}

func TestValidate_DoesNotModify(t *testing.T) {
	stages := Build("lingala", rawLessons(1, 1))
	firstID := stages[0].Lessons[0].Exercises[0].ID
	Validate("lingala", stages)
	if stages[0].Lessons[0].Exercises[0].ID != firstID {
		t.Error("Validate modified its input")
	}
}

func TestValidateAll(t *testing.T) {
	src := staticSource{"swahili": rawLessons(4, 3)}
	issues, err := ValidateAll(context.Background(), NewCatalog(src, nil))
	if err != nil {
		t.Fatalf("ValidateAll: %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("issues = %v", issues)
	}
}

func TestGroupByLanguage(t *testing.T) {
	issues := []Issue{
		{LanguageID: "b", Message: "1"},
		{LanguageID: "a", Message: "2"},
		{LanguageID: "b", Message: "3"},
	}
	groups := GroupByLanguage(issues)
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if groups[0].LanguageID != "b" || len(groups[0].Issues) != 2 {
		t.Errorf("groups[0] = %+v", groups[0])
	}
	if groups[1].LanguageID != "a" || len(groups[1].Issues) != 1 {
		t.Errorf("groups[1] = %+v", groups[1])
	}
}
