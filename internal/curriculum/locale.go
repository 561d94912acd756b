package curriculum

import (
	"fmt"
	"strings"
)

// Locale selects which interface language text fields resolve to.
type Locale string

const (
	// LocaleEN is the primary locale. Every text field has an English form.
	LocaleEN Locale = "en"
	// LocaleFR is the secondary locale. French fields are optional.
	LocaleFR Locale = "fr"
)

// ParseLocale parses a locale tag. An empty string yields LocaleEN.
func ParseLocale(s string) (Locale, error) {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case "", LocaleEN:
		return LocaleEN, nil
	case LocaleFR:
		return LocaleFR, nil
	}
	return "", fmt.Errorf("unsupported locale %q", s)
}

// Localize returns secondary when loc asks for the secondary locale and
// secondary is not blank, otherwise primary.
func Localize(primary, secondary string, loc Locale) string {
	if loc == LocaleFR && strings.TrimSpace(secondary) != "" {
		return secondary
	}
	return primary
}

// LocalizeList is Localize for option lists. An empty secondary list falls
// back to primary.
func LocalizeList(primary, secondary []string, loc Locale) []string {
	if loc == LocaleFR && len(secondary) > 0 {
		return secondary
	}
	return primary
}

// QuestionIn returns the question text for loc.
func (e Exercise) QuestionIn(loc Locale) string {
	return Localize(e.Question, e.QuestionFr, loc)
}

// AnswerIn returns the expected answer for loc.
func (e Exercise) AnswerIn(loc Locale) string {
	return Localize(e.CorrectAnswer, e.CorrectAnswerFr, loc)
}

// OptionsIn returns the answer choices for loc.
func (e Exercise) OptionsIn(loc Locale) []string {
	return LocalizeList(e.Options, e.OptionsFr, loc)
}

// HintIn returns the hint for loc, which may be empty.
func (e Exercise) HintIn(loc Locale) string {
	return Localize(e.Hint, e.HintFr, loc)
}

// TitleIn returns the lesson title for loc.
func (l Lesson) TitleIn(loc Locale) string {
	return Localize(l.Title, l.TitleFr, loc)
}

// TitleIn returns the stage title for loc.
func (s Stage) TitleIn(loc Locale) string {
	return Localize(s.Title, s.TitleFr, loc)
}
