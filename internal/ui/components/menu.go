package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/afrolingo/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu. Items without an
// Action are rendered as section headings and skipped by the cursor.
type MenuItem struct {
	Label  string
	Detail string
	Action func() tea.Cmd
	Color  lipgloss.Style
}

func (i MenuItem) selectable() bool { return i.Action != nil }

// Menu is a vertical navigation menu.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with the first selectable item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	for i, item := range items {
		if item.selectable() {
			m.Selected = i
			break
		}
	}
	return m
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if m.Items[i].selectable() {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if m.Items[i].selectable() {
				m.Selected = i
				break
			}
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) && m.Items[m.Selected].selectable() {
			return m, m.Items[m.Selected].Action()
		}
	}

	return m, nil
}

// View renders at most height lines, scrolled to keep the selection visible.
func (m Menu) View(height int) string {
	lines := make([]string, len(m.Items))
	for i, item := range m.Items {
		switch {
		case !item.selectable():
			lines[i] = item.Color.Bold(true).Render(item.Label)
		case i == m.Selected:
			lines[i] = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  ▸ "+item.Label) +
				lipgloss.NewStyle().Foreground(theme.TextDim).Render("  "+item.Detail)
		default:
			lines[i] = lipgloss.NewStyle().Foreground(theme.Text).Render("    " + item.Label)
		}
	}

	if height > 0 && len(lines) > height {
		start := min(max(m.Selected-height/2, 0), len(lines)-height)
		lines = lines[start : start+height]
	}
	return strings.Join(lines, "\n")
}
