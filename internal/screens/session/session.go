// Package session is the screen that plays one lesson.
package session

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/afrolingo/internal/curriculum"
	"github.com/abhisek/afrolingo/internal/router"
	"github.com/abhisek/afrolingo/internal/screen"
	"github.com/abhisek/afrolingo/internal/screens/summary"
	sess "github.com/abhisek/afrolingo/internal/session"
	"github.com/abhisek/afrolingo/internal/ui/components"
	"github.com/abhisek/afrolingo/internal/ui/layout"
)

// SessionScreen implements screen.Screen for a lesson in progress.
type SessionScreen struct {
	env        *screen.Env
	languageID string
	lesson     curriculum.Lesson
	hearts     float64

	state    *sess.Session
	input    components.TextInput
	mc       components.MultiChoice
	mcActive bool

	exhausted   bool
	outOfHearts bool
	confirmQuit bool
	errMsg      string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.StatusProvider = (*SessionScreen)(nil)

// New creates a screen for lesson starting with the given hearts.
func New(env *screen.Env, languageID string, lesson curriculum.Lesson, hearts float64) *SessionScreen {
	return &SessionScreen{
		env:        env,
		languageID: languageID,
		lesson:     lesson,
		hearts:     hearts,
		input:      components.NewTextInput("Type your answer...", 120),
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	return tea.Batch(s.initSession(), s.input.Init())
}

func (s *SessionScreen) initSession() tea.Cmd {
	return func() tea.Msg {
		opts := sess.DefaultOptions()
		opts.UserID = s.env.UserID
		opts.LanguageID = s.languageID
		opts.Locale = s.env.Locale
		opts.Subscriber = s.env.Subscriber
		opts.Hearts = s.hearts
		opts.QuestionCount = s.env.Questions
		opts.Now = s.env.Now
		opts.OnComplete = s.env.OnSessionEnd

		st, err := sess.New(s.lesson, opts)
		return sessionReadyMsg{Session: st, Err: err}
	}
}

func (s *SessionScreen) Title() string {
	return s.lesson.TitleIn(s.env.Locale)
}

func (s *SessionScreen) Status() string {
	if s.state == nil {
		return ""
	}
	return components.Hearts(s.state.Hearts(), s.env.MaxHearts, s.env.Subscriber)
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.state == nil:
		return nil
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave lesson"},
			{Key: "N", Description: "Keep going"},
		}
	case s.outOfHearts:
		return []layout.KeyHint{{Key: "any key", Description: "Back to lessons"}}
	case s.state.Phase() == sess.PhaseShowingFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case s.mcActive:
		return []layout.KeyHint{
			{Key: "↑↓/1-9", Description: "Choose"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionReadyMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.state = msg.Session
		s.prepareQuestion()
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.state != nil && s.state.Phase() == sess.PhaseAwaitingAnswer && !s.mcActive && !s.confirmQuit {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	if s.errMsg != "" || s.state == nil {
		if key == "esc" || key == "enter" {
			return s, s.leave()
		}
		return s, nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			return s, s.leave()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if s.outOfHearts {
		return s, s.leave()
	}

	switch s.state.Phase() {
	case sess.PhaseShowingFeedback:
		return s, s.advance()

	case sess.PhaseAwaitingAnswer:
		if key == "esc" {
			s.confirmQuit = true
			return s, nil
		}
		if s.mcActive {
			var done bool
			s.mc, done = s.mc.Update(msg)
			if done {
				return s, s.submit(s.mc.Choice())
			}
			return s, nil
		}
		if key == "enter" {
			if strings.TrimSpace(s.input.Value()) == "" {
				return s, nil
			}
			return s, s.submit(s.input.Value())
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) submit(input string) tea.Cmd {
	res, err := s.state.SubmitAnswer(input)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if s.mcActive {
		s.mc.Reveal(res.Expected)
	} else {
		s.input.Submit(res.Correct)
	}
	if res.HeartsExhausted {
		s.exhausted = true
	}
	return nil
}

func (s *SessionScreen) advance() tea.Cmd {
	phase, err := s.state.Advance()
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if phase == sess.PhaseComplete {
		sum := s.state.Summary()
		return func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: summary.New(s.env, sum, s.lesson.TitleIn(s.env.Locale))}
		}
	}
	if s.exhausted && !s.env.Subscriber && s.state.Hearts() <= 0 {
		s.outOfHearts = true
		return nil
	}
	s.prepareQuestion()
	return nil
}

// leave abandons the lesson, reporting heart changes so far.
func (s *SessionScreen) leave() tea.Cmd {
	if s.state != nil && s.state.Phase() != sess.PhaseComplete && s.state.Summary().Attempts > 0 && s.env.OnSessionEnd != nil {
		s.env.OnSessionEnd(s.state.Summary())
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *SessionScreen) prepareQuestion() {
	e, ok := s.state.Current()
	if !ok {
		return
	}
	options := e.Exercise.OptionsIn(s.env.Locale)
	s.mcActive = e.Exercise.Type == curriculum.ExerciseMultipleChoice && len(options) > 0
	if s.mcActive {
		s.mc = components.NewMultiChoice(options)
	}
	s.input.Reset()
}
