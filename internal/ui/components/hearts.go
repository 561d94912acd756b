package components

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/afrolingo/internal/ui/theme"
)

// Hearts renders a heart meter. Half hearts are drawn as an outlined heart.
// Subscribers get an infinity sign instead.
func Hearts(hearts, maxHearts float64, subscriber bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Accent)
	if subscriber {
		return style.Render("♥ ∞")
	}

	full := int(math.Floor(hearts))
	half := hearts-float64(full) >= 0.5
	empty := max(int(math.Ceil(maxHearts))-full, 0)
	if half {
		empty = max(empty-1, 0)
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("♥", full))
	if half {
		b.WriteString("♡")
	}
	out := style.Render(b.String())
	out += lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("♥", empty))
	return out + lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(" %g", hearts))
}

// XP renders an XP badge.
func XP(xp int) string {
	return lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).Render(fmt.Sprintf("★ %d XP", xp))
}
