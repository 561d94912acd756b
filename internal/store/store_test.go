package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/afrolingo/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testSummary(id, lesson string, report session.Report, finished time.Time) session.Summary {
	return session.Summary{
		SessionID:  id,
		UserID:     "u1",
		LanguageID: "swahili",
		LessonID:   lesson,
		Report:     report,
		Correct:    18,
		Total:      20,
		Attempts:   22,
		Complete:   true,
		StartedAt:  finished.Add(-5 * time.Minute),
		FinishedAt: finished,
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpen_FileReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "afrolingo.db")
	if err := EnsureDir(path); err != nil {
		t.Fatal(err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	if _, err := s.ApplySession(context.Background(), testSummary("s1", "l1", session.Report{XPEarned: 10}, now), now); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	p, err := s.ProgressRepo().Get(context.Background(), "u1", "swahili", now)
	if err != nil {
		t.Fatal(err)
	}
	if p.XP != 10 {
		t.Errorf("XP after reopen = %d, want 10", p.XP)
	}
}

func TestProgress_DefaultForNewLearner(t *testing.T) {
	s := openTestStore(t)
	p, err := s.ProgressRepo().Get(context.Background(), "nobody", "hausa", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if p.Hearts != session.MaxHearts || p.XP != 0 || len(p.CompletedLessons) != 0 {
		t.Errorf("default progress = %+v", p)
	}
}

func TestApplySession(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	day1 := time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)

	p, err := s.ApplySession(ctx, testSummary("s1", "l1", session.Report{XPEarned: 18, HeartsLost: 2, HeartsGained: 0.5}, day1), day1)
	if err != nil {
		t.Fatal(err)
	}
	if p.XP != 18 || p.Hearts != 3.5 || p.Streak != 1 {
		t.Errorf("after first session = %+v", p)
	}
	if p.HeartsResetAt == nil || !p.HeartsResetAt.Equal(day1.Add(30*time.Minute)) {
		t.Errorf("HeartsResetAt = %v", p.HeartsResetAt)
	}

	// Same lesson again the next day: no duplicate completion, streak grows.
	day2 := day1.Add(20 * time.Hour)
	p, err = s.ApplySession(ctx, testSummary("s2", "l1", session.Report{XPEarned: 5}, day2), day2)
	if err != nil {
		t.Fatal(err)
	}
	if p.XP != 23 || p.Streak != 2 || p.LongestStreak != 2 {
		t.Errorf("after second session = %+v", p)
	}
	if p.Hearts != session.MaxHearts || p.HeartsResetAt != nil {
		t.Errorf("hearts should have refilled: %+v", p)
	}

	got, err := s.ProgressRepo().Get(ctx, "u1", "swahili", day2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.CompletedLessons) != 1 || got.CompletedLessons[0] != "l1" {
		t.Errorf("CompletedLessons = %v", got.CompletedLessons)
	}

	events, err := s.SessionEventRepo().Recent(ctx, "u1", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 || events[0].SessionID != "s2" {
		t.Fatalf("events = %+v", events)
	}
	if events[1].Report.HeartsGained != 0.5 || events[1].Attempts != 22 {
		t.Errorf("event = %+v", events[1])
	}
	if !events[1].FinishedAt.Equal(day1) {
		t.Errorf("FinishedAt = %v, want %v", events[1].FinishedAt, day1)
	}
}

func TestApplySession_DuplicateSessionRollsBack(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	sum := testSummary("dup", "l1", session.Report{XPEarned: 10}, now)
	if _, err := s.ApplySession(ctx, sum, now); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ApplySession(ctx, sum, now); err == nil {
		t.Fatal("expected error saving the same session twice")
	}

	p, err := s.ProgressRepo().Get(ctx, "u1", "swahili", now)
	if err != nil {
		t.Fatal(err)
	}
	if p.XP != 10 {
		t.Errorf("XP = %d, want 10 (second apply rolled back)", p.XP)
	}
}

func TestProgressRepo_GetRefills(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	if _, err := s.ApplySession(ctx, testSummary("s1", "l1", session.Report{XPEarned: 5, HeartsLost: 5}, now), now); err != nil {
		t.Fatal(err)
	}

	repo := s.ProgressRepo()
	p, err := repo.Get(ctx, "u1", "swahili", now.Add(10*time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if p.Hearts != 0 {
		t.Errorf("hearts before refill = %v, want 0", p.Hearts)
	}

	p, err = repo.Get(ctx, "u1", "swahili", now.Add(30*time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if p.Hearts != session.MaxHearts || p.HeartsResetAt != nil {
		t.Errorf("after refill = %+v", p)
	}
}

func TestSetHeartPolicy(t *testing.T) {
	s := openTestStore(t)
	s.SetHeartPolicy(HeartPolicy{MaxHearts: 3, Refill: time.Hour})
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	p, err := s.ApplySession(context.Background(), testSummary("s1", "l1", session.Report{XPEarned: 5, HeartsLost: 1}, now), now)
	if err != nil {
		t.Fatal(err)
	}
	if p.Hearts != 2 || !p.HeartsResetAt.Equal(now.Add(time.Hour)) {
		t.Errorf("progress = %+v", p)
	}
}

func TestListAndReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	a := testSummary("s1", "l1", session.Report{XPEarned: 10}, now)
	b := testSummary("s2", "h1", session.Report{XPEarned: 7}, now)
	b.LanguageID = "hausa"
	for _, sum := range []session.Summary{a, b} {
		if _, err := s.ApplySession(ctx, sum, now); err != nil {
			t.Fatal(err)
		}
	}

	repo := s.ProgressRepo()
	list, err := repo.List(ctx, "u1", now)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].LanguageID != "hausa" || list[1].LanguageID != "swahili" {
		t.Fatalf("list = %+v", list)
	}

	if err := repo.Reset(ctx, "u1", "hausa"); err != nil {
		t.Fatal(err)
	}
	list, _ = repo.List(ctx, "u1", now)
	if len(list) != 1 || list[0].LanguageID != "swahili" {
		t.Errorf("after language reset = %+v", list)
	}

	if err := repo.Reset(ctx, "u1", ""); err != nil {
		t.Fatal(err)
	}
	list, _ = repo.List(ctx, "u1", now)
	if len(list) != 0 {
		t.Errorf("after full reset = %+v", list)
	}
	events, _ := s.SessionEventRepo().Recent(ctx, "u1", 0)
	if len(events) != 0 {
		t.Errorf("events after reset = %d", len(events))
	}
}

func TestSessionReporter(t *testing.T) {
	s := openTestStore(t)
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	report := s.SessionReporter(nil)
	report(testSummary("s1", "l1", session.Report{XPEarned: 12}, now))

	p, err := s.ProgressRepo().Get(context.Background(), "u1", "swahili", now)
	if err != nil {
		t.Fatal(err)
	}
	if p.XP != 12 {
		t.Errorf("XP = %d, want 12", p.XP)
	}
}
