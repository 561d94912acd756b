package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestMultiChoice_Navigation(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b", "c"})

	m, done := m.Update(key("down"))
	if done || m.Selected != 1 {
		t.Fatalf("selected = %d, done = %v", m.Selected, done)
	}
	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("down"))
	if m.Selected != 2 {
		t.Errorf("selected = %d, want 2 (clamped)", m.Selected)
	}
	m, done = m.Update(key("enter"))
	if !done {
		t.Fatal("enter did not confirm")
	}
	if m.Choice() != "c" {
		t.Errorf("choice = %q, want c", m.Choice())
	}
}

func TestMultiChoice_NumericOptions(t *testing.T) {
	m := NewMultiChoice([]string{"3", "1", "2"})
	m, done := m.Update(key("2"))
	if !done || m.Choice() != "1" {
		t.Errorf("choice = %q done = %v, want 1 true", m.Choice(), done)
	}
}

func TestMultiChoice_DigitConfirms(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b"})
	m, done := m.Update(key("2"))
	if !done || m.Choice() != "b" {
		t.Errorf("choice = %q done = %v, want b true", m.Choice(), done)
	}
	m, done = NewMultiChoice([]string{"a", "b"}).Update(key("9"))
	if done {
		t.Error("out-of-range digit confirmed")
	}
	_ = m
}

func TestMultiChoice_FrozenAfterReveal(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b"})
	m.Reveal("b")
	m, done := m.Update(key("down"))
	if done || m.Selected != 0 {
		t.Error("revealed choice accepted input")
	}
	if !strings.Contains(m.View(), "2)  b") {
		t.Errorf("view missing option: %q", m.View())
	}
}

func TestMenu_SkipsHeadings(t *testing.T) {
	picked := ""
	pick := func(s string) func() tea.Cmd {
		return func() tea.Cmd { picked = s; return nil }
	}
	m := NewMenu([]MenuItem{
		{Label: "Stage 1"},
		{Label: "one", Action: pick("one")},
		{Label: "Stage 2"},
		{Label: "two", Action: pick("two")},
	})
	if m.Selected != 1 {
		t.Fatalf("selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(key("down"))
	if m.Selected != 3 {
		t.Fatalf("selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(key("up"))
	m, _ = m.Update(key("up"))
	if m.Selected != 1 {
		t.Errorf("selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(key("enter"))
	if picked != "one" {
		t.Errorf("picked = %q, want one", picked)
	}
}

func TestMenu_ViewScrolls(t *testing.T) {
	items := make([]MenuItem, 10)
	for i := range items {
		items[i] = MenuItem{Label: string(rune('a' + i)), Action: func() tea.Cmd { return nil }}
	}
	m := NewMenu(items)
	m.Selected = 9
	view := m.View(4)
	if got := strings.Count(view, "\n") + 1; got != 4 {
		t.Errorf("lines = %d, want 4", got)
	}
	if !strings.Contains(view, "▸ j") {
		t.Errorf("selection not visible: %q", view)
	}
}

func TestProgressBar_Percent(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 0, 0},
		{5, 20, 0.25},
		{30, 20, 1},
	}
	for _, tt := range tests {
		if got := NewProgressBar("", tt.done, tt.total, 30).Percent(); got != tt.want {
			t.Errorf("Percent(%d/%d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}
}

func TestHearts(t *testing.T) {
	if got := Hearts(0, 5, true); !strings.Contains(got, "∞") {
		t.Errorf("subscriber hearts = %q", got)
	}
	if got := Hearts(3.5, 5, false); !strings.Contains(got, "♡") || !strings.Contains(got, "3.5") {
		t.Errorf("hearts = %q, want half heart and 3.5", got)
	}
}
