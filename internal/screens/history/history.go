package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/afrolingo/internal/curriculum"
	"github.com/abhisek/afrolingo/internal/router"
	"github.com/abhisek/afrolingo/internal/screen"
	"github.com/abhisek/afrolingo/internal/session"
	"github.com/abhisek/afrolingo/internal/ui/layout"
	"github.com/abhisek/afrolingo/internal/ui/theme"
)

const historyLimit = 50

type historyLoadedMsg struct {
	Sessions []session.Summary
	Err      error
}

// HistoryScreen lists the learner's recent lessons.
type HistoryScreen struct {
	env      *screen.Env
	sessions []session.Summary
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(env *screen.Env) *HistoryScreen {
	return &HistoryScreen{env: env}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		sessions, err := s.env.History.Recent(context.Background(), s.env.UserID, historyLimit)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Centered(fmt.Sprintf("\n\nError: %s", s.errMsg), width, lipgloss.NewStyle().Foreground(theme.Error))
	}
	if !s.loaded {
		return layout.Centered("\n\n  Loading history...", width, lipgloss.NewStyle().Foreground(theme.TextDim))
	}
	if len(s.sessions) == 0 {
		return layout.Centered("\n\n  No lessons yet. Pick a language and start!", width,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true))
	}

	lines := make([]string, len(s.sessions))
	for i, sum := range s.sessions {
		lang := sum.LanguageID
		if l, ok := curriculum.LookupLanguage(sum.LanguageID); ok {
			lang = curriculum.Localize(l.Name, l.NameFr, s.env.Locale)
		}

		status := fmt.Sprintf("%3d XP", sum.Report.XPEarned)
		if !sum.Complete {
			status = "  left"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %-10s %-16s %2d/%-2d  %s",
			prefix, sum.FinishedAt.Local().Format("Jan 02 15:04"), lang, sum.LessonID, sum.Correct, sum.Total, status)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		lines[i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line))
	}

	visible := max(height-2, 1)
	if len(lines) > visible {
		start := min(max(s.selected-visible/2, 0), len(lines)-visible)
		lines = lines[start : start+visible]
	}
	return "\n" + strings.Join(lines, "\n")
}
