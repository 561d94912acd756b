package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/afrolingo/internal/curriculum"
	"github.com/abhisek/afrolingo/internal/router"
	"github.com/abhisek/afrolingo/internal/screen"
	"github.com/abhisek/afrolingo/internal/screens/history"
	"github.com/abhisek/afrolingo/internal/screens/lessonmap"
	"github.com/abhisek/afrolingo/internal/store"
	"github.com/abhisek/afrolingo/internal/ui/components"
	"github.com/abhisek/afrolingo/internal/ui/layout"
	"github.com/abhisek/afrolingo/internal/ui/theme"
)

type progressLoadedMsg struct {
	Progress []store.Progress
	Err      error
}

// HomeScreen lists the languages to learn.
type HomeScreen struct {
	env      *screen.Env
	menu     components.Menu
	progress map[string]store.Progress
	errMsg   string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env *screen.Env) *HomeScreen {
	h := &HomeScreen{env: env, progress: map[string]store.Progress{}}
	h.menu = components.NewMenu(h.items())
	return h
}

func (h *HomeScreen) items() []components.MenuItem {
	langs := h.env.Catalog.Languages()
	items := make([]components.MenuItem, 0, len(langs)+2)
	for _, l := range langs {
		detail := ""
		if p, ok := h.progress[l.ID]; ok {
			detail = fmt.Sprintf("%d XP  %d lessons  %d day streak", p.XP, len(p.CompletedLessons), p.CurrentStreak(h.env.Now()))
		}
		items = append(items, components.MenuItem{
			Label:  curriculum.Localize(l.Name, l.NameFr, h.env.Locale),
			Detail: detail,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: lessonmap.New(h.env, l)}
				}
			},
		})
	}
	if h.env.History != nil {
		items = append(items, components.MenuItem{
			Label: "History",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(h.env)}
				}
			},
		})
	}
	items = append(items, components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }})
	return items
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadProgress()
}

func (h *HomeScreen) loadProgress() tea.Cmd {
	if h.env.Progress == nil {
		return nil
	}
	return func() tea.Msg {
		list, err := h.env.Progress.List(context.Background(), h.env.UserID, h.env.Now())
		return progressLoadedMsg{Progress: list, Err: err}
	}
}

func (h *HomeScreen) Title() string {
	return "Choose a language"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case progressLoadedMsg:
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.errMsg = ""
		for _, p := range msg.Progress {
			h.progress[p.LanguageID] = p
		}
		selected := h.menu.Selected
		h.menu = components.NewMenu(h.items())
		h.menu.Selected = selected
		return h, nil

	case router.RefreshMsg:
		return h, h.loadProgress()

	case tea.KeyMsg:
		var cmd tea.Cmd
		h.menu, cmd = h.menu.Update(msg)
		return h, cmd
	}
	return h, nil
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Centered("Karibu! Ẹ kú àbọ̀! Sannu!", width, theme.Title))
	b.WriteString("\n\n")
	if h.errMsg != "" {
		b.WriteString(layout.Centered("Could not load progress: "+h.errMsg, width, lipgloss.NewStyle().Foreground(theme.Error)))
		b.WriteString("\n\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View(max(height-5, 3))))
	return b.String()
}
