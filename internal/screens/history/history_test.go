package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/afrolingo/internal/router"
	"github.com/abhisek/afrolingo/internal/screen"
	"github.com/abhisek/afrolingo/internal/session"
)

type fakeHistory struct {
	sessions []session.Summary
	err      error
	user     string
}

func (f *fakeHistory) Recent(_ context.Context, userID string, _ int) ([]session.Summary, error) {
	f.user = userID
	return f.sessions, f.err
}

func TestHistoryScreen_Loads(t *testing.T) {
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	repo := &fakeHistory{sessions: []session.Summary{
		{LanguageID: "zulu", LessonID: "zu-1", Correct: 18, Total: 20, Complete: true, Report: session.Report{XPEarned: 9}, FinishedAt: at},
		{LanguageID: "swahili", LessonID: "sw-3", Correct: 2, Total: 20, FinishedAt: at},
	}}
	s := New(&screen.Env{History: repo, UserID: "u1"})

	s.Update(s.Init()())
	if repo.user != "u1" {
		t.Errorf("queried user %q, want u1", repo.user)
	}

	view := s.View(100, 24)
	for _, want := range []string{"Zulu", "zu-1", "18/20", "9 XP", "left"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHistoryScreen_Error(t *testing.T) {
	s := New(&screen.Env{History: &fakeHistory{err: errors.New("boom")}})
	s.Update(s.Init()())
	if !strings.Contains(s.View(80, 24), "boom") {
		t.Error("error not shown")
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := New(&screen.Env{History: &fakeHistory{}})
	s.Update(s.Init()())
	if !strings.Contains(s.View(80, 24), "No lessons yet") {
		t.Error("empty state not shown")
	}
}

func TestHistoryScreen_EscPops(t *testing.T) {
	s := New(&screen.Env{History: &fakeHistory{}})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
