package app

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/afrolingo/internal/curriculum"
	"github.com/abhisek/afrolingo/internal/screen"
	"github.com/abhisek/afrolingo/internal/screens/lessonmap"
)

type emptySource struct{}

func (emptySource) RawLessons(context.Context, string) ([]curriculum.RawLesson, error) {
	return nil, nil
}

func testModel() AppModel {
	return newAppModel(&screen.Env{
		Catalog:   curriculum.NewCatalog(emptySource{}, nil),
		Locale:    curriculum.LocaleEN,
		MaxHearts: 5,
		Now:       time.Now,
	})
}

func TestAppModel_WindowSize(t *testing.T) {
	m, _ := testModel().Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	am := m.(AppModel)
	if am.width != 100 || am.height != 40 {
		t.Errorf("size = %dx%d, want 100x40", am.width, am.height)
	}
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	_, cmd := testModel().Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestAppModel_StartsOnHome(t *testing.T) {
	m := testModel()
	if got := m.router.Active().Title(); got != "Choose a language" {
		t.Errorf("active = %q", got)
	}
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}
}

func TestAppModel_StartScreens(t *testing.T) {
	env := &screen.Env{
		Catalog: curriculum.NewCatalog(emptySource{}, nil),
		Now:     time.Now,
	}
	lang, _ := curriculum.LookupLanguage("zulu")
	m := newAppModel(env, lessonmap.New(env, lang))
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}
	if got := m.router.Active().Title(); got != "Zulu" {
		t.Errorf("active = %q, want Zulu", got)
	}
}
