package curriculum

import "testing"

func TestParseLocale(t *testing.T) {
	tests := []struct {
		in      string
		want    Locale
		wantErr bool
	}{
		{"", LocaleEN, false},
		{"en", LocaleEN, false},
		{" FR ", LocaleFR, false},
		{"de", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLocale(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLocale(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLocale(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExercise_LocalizedFields(t *testing.T) {
	ex := Exercise{
		Question:        "How do you say hello?",
		QuestionFr:      "Comment dit-on bonjour ?",
		CorrectAnswer:   "Jambo",
		Options:         []string{"Jambo", "Kwaheri"},
		OptionsFr:       nil,
		Hint:            "Greeting",
		HintFr:          "   ",
		CorrectAnswerFr: "",
	}

	if got := ex.QuestionIn(LocaleFR); got != ex.QuestionFr {
		t.Errorf("QuestionIn(fr) = %q", got)
	}
	if got := ex.AnswerIn(LocaleFR); got != "Jambo" {
		t.Errorf("AnswerIn(fr) = %q, want fallback Jambo", got)
	}
	if got := ex.HintIn(LocaleFR); got != "Greeting" {
		t.Errorf("HintIn(fr) = %q, want fallback Greeting", got)
	}
	if got := ex.OptionsIn(LocaleFR); len(got) != 2 || got[0] != "Jambo" {
		t.Errorf("OptionsIn(fr) = %v", got)
	}
	if got := ex.QuestionIn(LocaleEN); got != ex.Question {
		t.Errorf("QuestionIn(en) = %q", got)
	}
}

func TestLookupLanguage(t *testing.T) {
	if len(SupportedLanguages()) != 15 {
		t.Errorf("languages = %d, want 15", len(SupportedLanguages()))
	}
	lang, ok := LookupLanguage("yoruba")
	if !ok || lang.Name == "" {
		t.Errorf("LookupLanguage(yoruba) = %+v, %v", lang, ok)
	}
	if _, ok := LookupLanguage("esperanto"); ok {
		t.Error("esperanto should not be supported")
	}
}
