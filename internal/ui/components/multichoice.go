package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/afrolingo/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. It does not know the correct
// answer; Reveal colors the options once the session has judged one.
type MultiChoice struct {
	Options  []string
	Selected int

	revealed bool
	expected string
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options}
}

// Update handles keyboard navigation. Digit keys jump to an option. It
// returns true when the learner confirmed a choice.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, bool) {
	if m.revealed {
		return m, false
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		return m, len(m.Options) > 0
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Options) {
			m.Selected = n - 1
			return m, true
		}
	}
	return m, false
}

// Choice returns the text of the selected option.
func (m MultiChoice) Choice() string {
	if m.Selected < 0 || m.Selected >= len(m.Options) {
		return ""
	}
	return m.Options[m.Selected]
}

// Reveal marks expected as the correct option.
func (m *MultiChoice) Reveal(expected string) {
	m.revealed = true
	m.expected = expected
}

// View renders the options.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.revealed {
			prefix = "▸ "
		}
		line := prefix + strconv.Itoa(i+1) + ")  " + opt

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.revealed && strings.EqualFold(strings.TrimSpace(opt), strings.TrimSpace(m.expected)):
			style = style.Foreground(theme.Success).Bold(true)
		case m.revealed && i == m.Selected:
			style = style.Foreground(theme.Error).Bold(true)
		case m.revealed:
			style = style.Foreground(theme.TextDim)
		case i == m.Selected:
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
