package summary

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/afrolingo/internal/router"
	"github.com/abhisek/afrolingo/internal/screen"
	"github.com/abhisek/afrolingo/internal/session"
	"github.com/abhisek/afrolingo/internal/store"
	"github.com/abhisek/afrolingo/internal/ui/components"
	"github.com/abhisek/afrolingo/internal/ui/layout"
	"github.com/abhisek/afrolingo/internal/ui/theme"
)

type progressLoadedMsg struct {
	Progress store.Progress
	Err      error
}

// SummaryScreen shows the outcome of a finished lesson.
type SummaryScreen struct {
	env      *screen.Env
	summary  session.Summary
	title    string
	progress *store.Progress
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(env *screen.Env, summary session.Summary, title string) *SummaryScreen {
	return &SummaryScreen{env: env, summary: summary, title: title}
}

func (s *SummaryScreen) Init() tea.Cmd {
	if s.env == nil || s.env.Progress == nil {
		return nil
	}
	return func() tea.Msg {
		p, err := s.env.LoadProgress(context.Background(), s.summary.LanguageID)
		return progressLoadedMsg{Progress: p, Err: err}
	}
}

func (s *SummaryScreen) Title() string {
	return "Lesson complete"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case progressLoadedMsg:
		if msg.Err == nil {
			s.progress = &msg.Progress
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Centered(s.title, width, theme.Title))
	b.WriteString("\n\n")

	b.WriteString(layout.Centered(components.XP(sum.Report.XPEarned), width, lipgloss.NewStyle()))
	b.WriteString("\n\n")

	duration := sum.FinishedAt.Sub(sum.StartedAt)
	rows := []string{
		fmt.Sprintf("Correct     %d / %d", sum.Correct, sum.Total),
		fmt.Sprintf("Accuracy    %.0f%%", min(sum.Accuracy(), 1)*100),
		fmt.Sprintf("Time        %d:%02d", int(duration.Minutes()), int(duration.Seconds())%60),
	}
	if !s.envSubscriber() {
		rows = append(rows, fmt.Sprintf("Hearts      -%g  +%g", sum.Report.HeartsLost, sum.Report.HeartsGained))
	}
	if s.progress != nil {
		streak := s.progress.CurrentStreak(s.summary.FinishedAt)
		rows = append(rows,
			fmt.Sprintf("Total XP    %d", s.progress.XP),
			fmt.Sprintf("Streak      %d days (next goal: %d)", streak, store.NextStreakMilestone(streak)),
		)
	}

	card := theme.Card.Render(lipgloss.NewStyle().Foreground(theme.Text).Render(strings.Join(rows, "\n")))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	return b.String()
}

func (s *SummaryScreen) envSubscriber() bool {
	return s.env != nil && s.env.Subscriber
}
