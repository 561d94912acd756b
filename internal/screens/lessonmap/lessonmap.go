// Package lessonmap shows a language's stages and lessons.
package lessonmap

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/afrolingo/internal/curriculum"
	"github.com/abhisek/afrolingo/internal/router"
	"github.com/abhisek/afrolingo/internal/screen"
	sessionscreen "github.com/abhisek/afrolingo/internal/screens/session"
	"github.com/abhisek/afrolingo/internal/store"
	"github.com/abhisek/afrolingo/internal/ui/components"
	"github.com/abhisek/afrolingo/internal/ui/layout"
	"github.com/abhisek/afrolingo/internal/ui/theme"
)

type loadedMsg struct {
	Stages   []curriculum.Stage
	Progress store.Progress
	Err      error
}

// LessonMapScreen lists every lesson of a language grouped by stage.
type LessonMapScreen struct {
	env      *screen.Env
	language curriculum.Language
	stages   []curriculum.Stage
	progress store.Progress
	menu     components.Menu
	loaded   bool
	errMsg   string
	notice   string
}

var _ screen.Screen = (*LessonMapScreen)(nil)
var _ screen.KeyHintProvider = (*LessonMapScreen)(nil)
var _ screen.StatusProvider = (*LessonMapScreen)(nil)

// New creates a lesson map for language.
func New(env *screen.Env, language curriculum.Language) *LessonMapScreen {
	return &LessonMapScreen{env: env, language: language}
}

func (s *LessonMapScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		stages, err := s.env.Catalog.Stages(ctx, s.language.ID)
		if err != nil {
			return loadedMsg{Err: err}
		}
		p, err := s.env.LoadProgress(ctx, s.language.ID)
		return loadedMsg{Stages: stages, Progress: p, Err: err}
	}
}

func (s *LessonMapScreen) Title() string {
	return curriculum.Localize(s.language.Name, s.language.NameFr, s.env.Locale)
}

func (s *LessonMapScreen) Status() string {
	if !s.loaded {
		return ""
	}
	return components.Hearts(s.progress.Hearts, s.env.MaxHearts, s.env.Subscriber) + "   " + components.XP(s.progress.XP)
}

func (s *LessonMapScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start lesson"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LessonMapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		selected := s.menu.Selected
		s.stages = msg.Stages
		s.progress = msg.Progress
		s.menu = components.NewMenu(s.items())
		if selected > 0 {
			s.menu.Selected = selected
		}
		s.loaded = true
		return s, nil

	case router.RefreshMsg:
		s.notice = ""
		return s, s.Init()

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		s.notice = ""
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *LessonMapScreen) items() []components.MenuItem {
	var items []components.MenuItem
	for _, st := range s.stages {
		items = append(items, components.MenuItem{
			Label: fmt.Sprintf("Stage %d · %s", st.StageNumber, st.TitleIn(s.env.Locale)),
			Color: lipgloss.NewStyle().Foreground(theme.StageColor(st.Color)),
		})
		for _, l := range st.Lessons {
			mark := "○"
			if slices.Contains(s.progress.CompletedLessons, l.ID) {
				mark = "●"
			}
			items = append(items, components.MenuItem{
				Label:  fmt.Sprintf("%s %2d. %s", mark, l.LessonNumber, l.TitleIn(s.env.Locale)),
				Detail: fmt.Sprintf("%s · %d XP", l.Type, l.XPReward),
				Action: func() tea.Cmd { return s.start(l) },
			})
		}
	}
	return items
}

func (s *LessonMapScreen) start(l curriculum.Lesson) tea.Cmd {
	if !s.env.Subscriber && s.progress.Hearts <= 0 {
		s.notice = "Out of hearts."
		if s.progress.HeartsResetAt != nil {
			s.notice += " Refill at " + s.progress.HeartsResetAt.Local().Format("15:04") + "."
		}
		return nil
	}
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: sessionscreen.New(s.env, s.language.ID, l, s.progress.Hearts)}
	}
}

func (s *LessonMapScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Centered("\n\nError: "+s.errMsg, width, lipgloss.NewStyle().Foreground(theme.Error))
	}
	if !s.loaded {
		return layout.Centered("\n\n  Loading lessons...", width, lipgloss.NewStyle().Foreground(theme.TextDim))
	}

	var b strings.Builder
	b.WriteString("\n")
	if s.notice != "" {
		b.WriteString(layout.Centered(s.notice, width, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)))
		b.WriteString("\n\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View(max(height-4, 3))))
	return b.String()
}
