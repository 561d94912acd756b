// Package answer decides whether a learner's typed or chosen answer matches
// the expected one, tolerating case, missing diacritics and known spelling
// variants.
package answer

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Table maps a canonical spelling to the variants learners may type for it.
type Table map[string][]string

// Matcher compares answers. The zero value matches on case and diacritics
// only. A Matcher is safe for concurrent use once built.
type Matcher struct {
	// groups maps a case-folded spelling to the ids of the variant groups
	// it belongs to.
	groups map[string][]int
}

// NewMatcher builds a matcher that also accepts the variants in tables.
// A canonical spelling and all of its variants form one group; two answers
// match when they share a group.
func NewMatcher(tables ...Table) *Matcher {
	m := &Matcher{groups: make(map[string][]int)}
	id := 0
	for _, t := range tables {
		for canonical, variants := range t {
			m.add(canonical, id)
			for _, v := range variants {
				m.add(v, id)
			}
			id++
		}
	}
	return m
}

func (m *Matcher) add(spelling string, id int) {
	key := fold(spelling)
	if key == "" {
		return
	}
	for _, existing := range m.groups[key] {
		if existing == id {
			return
		}
	}
	m.groups[key] = append(m.groups[key], id)
}

// Match reports whether user is an acceptable answer for correct. Checks,
// in order: case-insensitive equality, equality once diacritics are
// stripped, then membership of both answers in one variant group.
func (m *Matcher) Match(user, correct string) bool {
	u, c := fold(user), fold(correct)
	if u == "" {
		return false
	}
	if u == c {
		return true
	}
	if StripDiacritics(u) == StripDiacritics(c) {
		return true
	}
	if m == nil {
		return false
	}
	for _, a := range m.groups[u] {
		for _, b := range m.groups[c] {
			if a == b {
				return true
			}
		}
	}
	return false
}

// IsOption reports whether input names one of options, ignoring case and
// surrounding whitespace.
func IsOption(input string, options []string) bool {
	in := fold(input)
	for _, o := range options {
		if fold(o) == in {
			return true
		}
	}
	return false
}

// ResolveChoice maps a 1-based option number to the option text, so learners
// can answer multiple-choice questions by index. Any other input is returned
// trimmed. Callers holding free text should check IsOption first: an option
// may itself be a number.
func ResolveChoice(input string, options []string) string {
	input = strings.TrimSpace(input)
	if idx, err := strconv.Atoi(input); err == nil && idx >= 1 && idx <= len(options) {
		return options[idx-1]
	}
	return input
}

// StripDiacritics removes combining marks, turning "ụtọ" into "uto".
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// fold trims, collapses inner whitespace and case-folds s.
func fold(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return cases.Fold().String(norm.NFC.String(s))
}
