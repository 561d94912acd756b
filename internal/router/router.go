// Package router keeps the stack of screens the learner walks through:
// the language list at the root, then a lesson map, then a lesson, which is
// replaced by its summary when it ends. Popping back to a list refreshes it
// so newly earned XP and completed lessons show up.
package router

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/afrolingo/internal/screen"
)

// PushScreenMsg requests the router to push a new screen onto the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg requests the router to pop the current screen off the stack.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the current screen for another, e.g. a finished
// lesson for its summary.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// RefreshMsg is delivered to the screen uncovered by a pop so it can reload
// data the popped screen may have changed.
type RefreshMsg struct{}

// crumbSeparator joins screen titles in Breadcrumb.
const crumbSeparator = " › "

// Router manages a stack of screens.
type Router struct {
	stack []screen.Screen
}

// New creates a new Router with the given initial screen.
func New(initial screen.Screen) *Router {
	return &Router{
		stack: []screen.Screen{initial},
	}
}

// Push adds a screen on top of the stack and calls its Init().
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes the top screen and refreshes the one below. No-op at the root.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	return func() tea.Msg { return RefreshMsg{} }
}

// Replace swaps the top screen for s.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Active returns the top screen on the stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Breadcrumb joins the titles of the screens above the root, e.g.
// "Swahili › Greetings". At the root it is the root's title.
func (r *Router) Breadcrumb() string {
	if len(r.stack) == 0 {
		return ""
	}
	if len(r.stack) == 1 {
		return r.stack[0].Title()
	}
	titles := make([]string, 0, len(r.stack)-1)
	for _, s := range r.stack[1:] {
		if t := s.Title(); t != "" {
			titles = append(titles, t)
		}
	}
	return strings.Join(titles, crumbSeparator)
}

// Update handles navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	active := r.Active()
	if active == nil {
		return nil
	}

	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
