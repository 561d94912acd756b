package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/afrolingo/internal/config"
	"github.com/abhisek/afrolingo/internal/curriculum"
	"github.com/abhisek/afrolingo/internal/session"
	"github.com/abhisek/afrolingo/internal/store"
)

type staticSource map[string][]curriculum.RawLesson

func (s staticSource) RawLessons(_ context.Context, languageID string) ([]curriculum.RawLesson, error) {
	return s[languageID], nil
}

var testNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func testSource() staticSource {
	exercises := make([]curriculum.Exercise, 4)
	for i := range exercises {
		exercises[i] = curriculum.Exercise{
			ID:            fmt.Sprintf("sw-1-ex-%d", i+1),
			Type:          curriculum.ExerciseTypeAnswer,
			Question:      "Say yes",
			QuestionFr:    "Dites oui",
			CorrectAnswer: "ndiyo",
		}
	}
	return staticSource{
		"swahili": {{ID: "sw-1", Type: curriculum.LessonVocabulary, Title: "Greetings", TitleFr: "Salutations", Exercises: exercises}},
	}
}

type recorder struct {
	mu        sync.Mutex
	summaries []session.Summary
}

func (r *recorder) record(s session.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summaries = append(r.summaries, s)
}

func newTestRouter(t *testing.T, mod func(*Dependencies)) (*echo.Echo, *recorder) {
	t.Helper()
	rec := &recorder{}
	deps := Dependencies{
		Catalog:    curriculum.NewCatalog(testSource(), nil),
		Sessions:   NewRegistry(time.Hour, nil),
		OnComplete: rec.record,
		Defaults:   SessionDefaults{Questions: 3, MaxHearts: session.MaxHearts},
		Now:        func() time.Time { return testNow },
	}
	if mod != nil {
		mod(&deps)
	}
	conf := config.HTTP{RateLimit: 1000, AllowOrigins: []string{"*"}}
	return NewRouter(context.Background(), conf, deps), rec
}

func do(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func createSession(t *testing.T, e *echo.Echo, body string) SessionView {
	t.Helper()
	rr := do(t, e, http.MethodPost, "/sessions", body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[SessionView](t, rr)
}

func TestLanguages(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	rr := do(t, e, http.MethodGet, "/languages?locale=fr", "")
	require.Equal(t, http.StatusOK, rr.Code)
	got := decode[struct{ Items []LanguageView }](t, rr)
	require.Len(t, got.Items, len(curriculum.SupportedLanguages()))
	assert.Equal(t, "swahili", got.Items[0].ID)

	for _, l := range got.Items {
		if l.ID == "zulu" {
			assert.Equal(t, "Zoulou", l.Name)
		}
	}

	rr = do(t, e, http.MethodGet, "/languages?locale=de", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStages(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	rr := do(t, e, http.MethodGet, "/languages/swahili/stages", "")
	require.Equal(t, http.StatusOK, rr.Code)
	got := decode[struct{ Items []StageView }](t, rr)
	require.Len(t, got.Items, curriculum.StageCount)
	for _, st := range got.Items {
		assert.Len(t, st.Lessons, curriculum.LessonsPerStage)
		for _, l := range st.Lessons {
			assert.Equal(t, curriculum.ExercisesPerLesson, l.Exercises)
		}
	}
	assert.Equal(t, "sw-1", got.Items[0].Lessons[0].ID)
	assert.Equal(t, "Greetings", got.Items[0].Lessons[0].Title)

	rr = do(t, e, http.MethodGet, "/languages/klingon/stages", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "unknown language")
}

func TestLesson_HidesAnswers(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	rr := do(t, e, http.MethodGet, "/languages/swahili/lessons/sw-1?locale=fr", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "ndiyo")

	got := decode[LessonView](t, rr)
	assert.Equal(t, "Salutations", got.Title)
	require.Len(t, got.Exercises, curriculum.ExercisesPerLesson)
	assert.Equal(t, "Dites oui", got.Exercises[0].Question)

	rr = do(t, e, http.MethodGet, "/languages/swahili/lessons/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateSession_Validation(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"missing user", `{"language":"swahili","lesson_id":"sw-1"}`, http.StatusBadRequest},
		{"bad locale", `{"user_id":"u1","language":"swahili","lesson_id":"sw-1","locale":"de"}`, http.StatusBadRequest},
		{"negative hearts", `{"user_id":"u1","language":"swahili","lesson_id":"sw-1","hearts":-1}`, http.StatusBadRequest},
		{"malformed", `{"user_id":`, http.StatusBadRequest},
		{"unknown language", `{"user_id":"u1","language":"klingon","lesson_id":"sw-1"}`, http.StatusNotFound},
		{"unknown lesson", `{"user_id":"u1","language":"swahili","lesson_id":"nope"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, e, http.MethodPost, "/sessions", tt.body)
			assert.Equal(t, tt.code, rr.Code, rr.Body.String())
			assert.Contains(t, rr.Body.String(), `"error"`)
		})
	}
}

func TestSession_PlayThrough(t *testing.T) {
	e, rec := newTestRouter(t, nil)

	s := createSession(t, e, `{"user_id":"u1","language":"swahili","lesson_id":"sw-1"}`)
	require.NotNil(t, s.Current)
	assert.Equal(t, "awaiting_answer", s.Phase)
	assert.Equal(t, 3, s.Total)
	require.NotNil(t, s.Hearts)
	assert.InDelta(t, 5.0, *s.Hearts, 1e-9)

	path := "/sessions/" + s.ID

	rr := do(t, e, http.MethodPost, path+"/answer", `{"answer":"hapana"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	s = decode[SessionView](t, rr)
	assert.Equal(t, "showing_feedback", s.Phase)
	require.NotNil(t, s.LastResult)
	assert.False(t, s.LastResult.Correct)
	assert.Equal(t, "ndiyo", s.LastResult.Expected)
	assert.True(t, s.LastResult.Requeued)
	assert.InDelta(t, 4.0, *s.Hearts, 1e-9)
	assert.Equal(t, 4, s.Remaining)

	rr = do(t, e, http.MethodPost, path+"/answer", `{"answer":"ndiyo"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)

	for s.Phase != "complete" {
		rr = do(t, e, http.MethodPost, path+"/advance", "")
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		s = decode[SessionView](t, rr)
		if s.Phase == "complete" {
			break
		}
		rr = do(t, e, http.MethodPost, path+"/answer", `{"answer":"Ndiyo "}`)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		s = decode[SessionView](t, rr)
		assert.True(t, s.LastResult.Correct)
	}

	assert.Nil(t, s.Current)
	require.NotNil(t, s.Report)
	assert.InDelta(t, 1.0, s.Report.HeartsLost, 1e-9)
	assert.InDelta(t, 0.5, s.Report.HeartsGained, 1e-9)
	assert.InDelta(t, 4.5, *s.Hearts, 1e-9)
	assert.Equal(t, 3, s.Correct)

	require.Len(t, rec.summaries, 1)
	sum := rec.summaries[0]
	assert.Equal(t, "u1", sum.UserID)
	assert.Equal(t, "sw-1", sum.LessonID)
	assert.True(t, sum.Complete)
	assert.Equal(t, testNow, sum.FinishedAt)

	rr = do(t, e, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "complete", decode[SessionView](t, rr).Phase)

	rr = do(t, e, http.MethodPost, path+"/advance", "")
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestSession_Subscriber(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	s := createSession(t, e, `{"user_id":"u1","language":"swahili","lesson_id":"sw-1","subscriber":true,"hearts":0}`)
	assert.Nil(t, s.Hearts)

	rr := do(t, e, http.MethodPost, "/sessions/"+s.ID+"/answer", `{"answer":"hapana"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	s = decode[SessionView](t, rr)
	assert.Zero(t, s.LastResult.HeartLost)
}

func TestSession_OutOfHearts(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	s := createSession(t, e, `{"user_id":"u1","language":"swahili","lesson_id":"sw-1","hearts":1}`)
	path := "/sessions/" + s.ID

	rr := do(t, e, http.MethodPost, path+"/answer", `{"answer":"hapana"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	s = decode[SessionView](t, rr)
	assert.True(t, s.LastResult.HeartsExhausted)
	assert.Zero(t, *s.Hearts)

	rr = do(t, e, http.MethodPost, path+"/advance", "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, e, http.MethodPost, path+"/answer", `{"answer":"ndiyo"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "out of hearts")
}

func TestSession_NotFound(t *testing.T) {
	e, _ := newTestRouter(t, nil)

	assert.Equal(t, http.StatusNotFound, do(t, e, http.MethodGet, "/sessions/nope", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, e, http.MethodPost, "/sessions/nope/advance", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, e, http.MethodPost, "/sessions/nope/answer", `{"answer":"x"}`).Code)
}

func TestProgress(t *testing.T) {
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	e, _ := newTestRouter(t, func(d *Dependencies) {
		d.Progress = st.ProgressRepo()
		d.OnComplete = st.SessionReporter(nil)
	})

	rr := do(t, e, http.MethodGet, "/progress/u1/swahili", "")
	require.Equal(t, http.StatusOK, rr.Code)
	p := decode[ProgressView](t, rr)
	assert.InDelta(t, 5.0, p.Hearts, 1e-9)
	assert.Zero(t, p.XP)

	s := createSession(t, e, `{"user_id":"u1","language":"swahili","lesson_id":"sw-1"}`)
	path := "/sessions/" + s.ID
	for i := 0; s.Phase != "complete"; i++ {
		require.Less(t, i, 10)
		require.Equal(t, http.StatusOK, do(t, e, http.MethodPost, path+"/answer", `{"answer":"ndiyo"}`).Code)
		rr = do(t, e, http.MethodPost, path+"/advance", "")
		require.Equal(t, http.StatusOK, rr.Code)
		s = decode[SessionView](t, rr)
	}

	rr = do(t, e, http.MethodGet, "/progress/u1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[struct{ Items []ProgressView }](t, rr)
	require.Len(t, list.Items, 1)
	assert.Equal(t, s.Report.XPEarned, list.Items[0].XP)
	assert.Equal(t, []string{"sw-1"}, list.Items[0].CompletedLessons)
	assert.Equal(t, 1, list.Items[0].CurrentStreak)
	assert.Equal(t, 3, list.Items[0].NextMilestone)

	rr = do(t, e, http.MethodGet, "/progress/u1/klingon", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestProgress_StartingHearts(t *testing.T) {
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	e, _ := newTestRouter(t, func(d *Dependencies) {
		d.Progress = st.ProgressRepo()
		d.OnComplete = st.SessionReporter(nil)
	})

	s := createSession(t, e, `{"user_id":"u2","language":"swahili","lesson_id":"sw-1"}`)
	path := "/sessions/" + s.ID
	for i := 0; s.Phase != "complete"; i++ {
		require.Less(t, i, 10)
		input := `{"answer":"x"}`
		if s.Redemption {
			input = `{"answer":"ndiyo"}`
		}
		require.Equal(t, http.StatusOK, do(t, e, http.MethodPost, path+"/answer", input).Code)
		rr := do(t, e, http.MethodPost, path+"/advance", "")
		require.Equal(t, http.StatusOK, rr.Code)
		s = decode[SessionView](t, rr)
	}

	next := createSession(t, e, `{"user_id":"u2","language":"swahili","lesson_id":"sw-1"}`)
	require.NotNil(t, next.Hearts)
	assert.InDelta(t, *s.Hearts, *next.Hearts, 1e-9)
	assert.InDelta(t, 3.5, *next.Hearts, 1e-9)
}

func TestRegistry_Sweep(t *testing.T) {
	now := testNow
	r := NewRegistry(time.Minute, nil)
	r.now = func() time.Time { return now }

	lesson := curriculum.Lesson{ID: "l", XPReward: 10, Exercises: []curriculum.Exercise{{ID: "e", CorrectAnswer: "a"}}}
	s1, err := session.New(lesson, session.DefaultOptions())
	require.NoError(t, err)
	s2, err := session.New(lesson, session.DefaultOptions())
	require.NoError(t, err)

	r.Put(s1)
	now = now.Add(45 * time.Second)
	r.Put(s2)
	now = now.Add(30 * time.Second)

	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, 1, r.Len())
	assert.ErrorIs(t, r.With(s1.ID(), func(*session.Session) error { return nil }), ErrSessionNotFound)
	assert.NoError(t, r.With(s2.ID(), func(*session.Session) error { return nil }))

	now = now.Add(50 * time.Second)
	assert.Zero(t, r.Sweep(), "With refreshes last use")
}

func TestRegistry_SweepReportsUnfinished(t *testing.T) {
	now := testNow
	rec := &recorder{}
	r := NewRegistry(time.Minute, rec.record)
	r.now = func() time.Time { return now }

	lesson := curriculum.Lesson{ID: "l", XPReward: 10, Exercises: []curriculum.Exercise{
		{ID: "e1", CorrectAnswer: "a"},
		{ID: "e2", CorrectAnswer: "b"},
	}}
	opts := session.DefaultOptions()
	opts.UserID = "u1"

	untouched, err := session.New(lesson, opts)
	require.NoError(t, err)
	missed, err := session.New(lesson, opts)
	require.NoError(t, err)
	_, err = missed.SubmitAnswer("wrong")
	require.NoError(t, err)

	finished, err := session.New(curriculum.Lesson{ID: "short", XPReward: 10, Exercises: lesson.Exercises[:1]}, opts)
	require.NoError(t, err)
	_, err = finished.SubmitAnswer("a")
	require.NoError(t, err)
	_, err = finished.Advance()
	require.NoError(t, err)
	require.Equal(t, session.PhaseComplete, finished.Phase())

	r.Put(untouched)
	r.Put(missed)
	r.Put(finished)
	now = now.Add(2 * time.Minute)

	assert.Equal(t, 3, r.Sweep())
	require.Len(t, rec.summaries, 1)
	sum := rec.summaries[0]
	assert.Equal(t, missed.ID(), sum.SessionID)
	assert.False(t, sum.Complete)
	assert.Equal(t, 1, sum.Attempts)
	assert.InDelta(t, 1.0, sum.Report.HeartsLost, 1e-9)
	assert.Zero(t, sum.Report.XPEarned)
}

func TestRegistry_Drain(t *testing.T) {
	rec := &recorder{}
	r := NewRegistry(time.Hour, rec.record)

	lesson := curriculum.Lesson{ID: "l", XPReward: 10, Exercises: []curriculum.Exercise{{ID: "e", CorrectAnswer: "a"}, {ID: "f", CorrectAnswer: "b"}}}
	s, err := session.New(lesson, session.DefaultOptions())
	require.NoError(t, err)
	_, err = s.SubmitAnswer("a")
	require.NoError(t, err)
	r.Put(s)

	assert.Equal(t, 1, r.Drain())
	assert.Zero(t, r.Len())
	require.Len(t, rec.summaries, 1)
	assert.Equal(t, 1, rec.summaries[0].Correct)
}

func TestProgress_RequestedHeartsCannotExceedStored(t *testing.T) {
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	e, _ := newTestRouter(t, func(d *Dependencies) {
		d.Progress = st.ProgressRepo()
		d.OnComplete = st.SessionReporter(nil)
	})

	s := createSession(t, e, `{"user_id":"u3","language":"swahili","lesson_id":"sw-1","hearts":2}`)
	require.NotNil(t, s.Hearts)
	assert.InDelta(t, 2.0, *s.Hearts, 1e-9)

	_, err = st.ApplySession(context.Background(), session.Summary{
		SessionID:  "spent",
		UserID:     "u3",
		LanguageID: "swahili",
		LessonID:   "sw-1",
		Report:     session.Report{HeartsLost: session.MaxHearts},
		Attempts:   5,
		StartedAt:  testNow,
		FinishedAt: testNow,
	}, testNow)
	require.NoError(t, err)

	s = createSession(t, e, `{"user_id":"u3","language":"swahili","lesson_id":"sw-1","hearts":5}`)
	require.NotNil(t, s.Hearts)
	assert.Zero(t, *s.Hearts)

	rr := do(t, e, http.MethodPost, "/sessions/"+s.ID+"/answer", `{"answer":"ndiyo"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)
}
