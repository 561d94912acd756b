package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/afrolingo/internal/session"
	"github.com/abhisek/afrolingo/internal/ui/components"
	"github.com/abhisek/afrolingo/internal/ui/layout"
	"github.com/abhisek/afrolingo/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return layout.Centered("\n\nError: "+s.errMsg, width, lipgloss.NewStyle().Foreground(theme.Error))
	case s.state == nil:
		return layout.Centered("\n\n  Preparing lesson...", width, lipgloss.NewStyle().Foreground(theme.TextDim))
	case s.confirmQuit:
		return layout.Centered("\n\nLeave this lesson?\n\nHearts lost so far are kept.", width,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true))
	case s.outOfHearts:
		return layout.Centered("\n\nOut of hearts!\n\nCome back when they refill.", width,
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true))
	}
	return s.renderQuestion(width)
}

func (s *SessionScreen) renderQuestion(width int) string {
	e, ok := s.state.Current()
	if !ok {
		return ""
	}
	ex := e.Exercise
	inner := max(width-4, 10)

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(components.NewProgressBar("", s.state.Answered(), s.state.Total(), inner).View())
	b.WriteString("\n\n")

	if e.IsRedemption() {
		b.WriteString(layout.Centered("Second chance! Get it right to win back half a heart.", width,
			lipgloss.NewStyle().Foreground(theme.Gold).Italic(true)))
		b.WriteString("\n\n")
	}

	b.WriteString(layout.Centered(ex.QuestionIn(s.env.Locale), width,
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true)))
	b.WriteString("\n\n")

	if s.mcActive {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View()))
	} else {
		b.WriteString(layout.Centered("Answer: "+s.input.View(), width, lipgloss.NewStyle()))
	}

	if hint := ex.HintIn(s.env.Locale); hint != "" && s.state.Phase() == sess.PhaseAwaitingAnswer {
		b.WriteString("\n\n")
		b.WriteString(layout.Centered("Hint: "+hint, width, theme.Hint))
	}

	if s.state.Phase() == sess.PhaseShowingFeedback {
		b.WriteString("\n\n")
		b.WriteString(s.renderFeedback(width))
	}
	return b.String()
}

func (s *SessionScreen) renderFeedback(width int) string {
	res, ok := s.state.LastResult()
	if !ok {
		return ""
	}

	var lines []string
	if res.Correct {
		msg := "Correct!"
		if res.HeartGained > 0 {
			msg += fmt.Sprintf("  +%g ♥", res.HeartGained)
		}
		lines = append(lines, theme.Correct.Render(msg))
	} else {
		msg := "Not quite."
		if res.HeartLost > 0 {
			msg += fmt.Sprintf("  -%g ♥", res.HeartLost)
		}
		lines = append(lines, theme.Incorrect.Render(msg))
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Render("Answer: "+res.Expected))
		if res.Requeued {
			lines = append(lines, theme.Hint.Render("You'll see this one again."))
		}
	}
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(strings.Join(lines, "\n"))
}

