package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/afrolingo/internal/router"
	"github.com/abhisek/afrolingo/internal/screen"
	"github.com/abhisek/afrolingo/internal/screens/home"
	"github.com/abhisek/afrolingo/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	init   []tea.Cmd
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen at the bottom of
// the stack and start pushed on top of it.
func newAppModel(env *screen.Env, start ...screen.Screen) AppModel {
	root := home.New(env)
	m := AppModel{
		router: router.New(root),
		init:   []tea.Cmd{root.Init()},
	}
	for _, s := range start {
		m.init = append(m.init, m.router.Push(s))
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.init...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = m.router.Breadcrumb()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}
	header := layout.RenderHeader(title, status, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program. Screens in start are opened on top of
// the language list.
func Run(env *screen.Env, start ...screen.Screen) error {
	p := tea.NewProgram(newAppModel(env, start...))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
