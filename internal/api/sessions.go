package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/abhisek/afrolingo/internal/curriculum"
	"github.com/abhisek/afrolingo/internal/session"
)

var ErrOutOfHearts = errors.New("out of hearts")

type (
	CreateSessionRequest struct {
		UserID     string   `json:"user_id" validate:"required,max=128"`
		LanguageID string   `json:"language" validate:"required"`
		LessonID   string   `json:"lesson_id" validate:"required"`
		Locale     string   `json:"locale" validate:"omitempty,oneof=en fr"`
		Subscriber bool     `json:"subscriber"`
		Hearts     *float64 `json:"hearts" validate:"omitempty,min=0"`
	}

	AnswerRequest struct {
		Answer string `json:"answer" validate:"required"`
	}

	SessionsHandler struct {
		deps Dependencies
		log  *slog.Logger
	}
)

func NewSessionsHandler(deps Dependencies) *SessionsHandler {
	return &SessionsHandler{
		deps: deps,
		log:  deps.Logger,
	}
}

func (h *SessionsHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		h.log.DebugContext(ctx, "failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, BadRequestError)
	}
	if err := c.Validate(&req); err != nil {
		h.log.DebugContext(ctx, "failed to validate request", "error", err)
		return err
	}

	lesson, err := h.deps.Catalog.Lesson(ctx, req.LanguageID, req.LessonID)
	switch {
	case errors.Is(err, curriculum.ErrUnknownLanguage), errors.Is(err, curriculum.ErrLessonNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
	case err != nil:
		h.log.ErrorContext(ctx, "failed to load lesson", "error", err)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	// A requested value can only lower the stored hearts.
	hearts := h.deps.Defaults.MaxHearts
	if h.deps.Progress != nil {
		p, err := h.deps.Progress.Get(ctx, req.UserID, req.LanguageID, h.deps.Now())
		if err != nil {
			h.log.ErrorContext(ctx, "failed to load progress", "error", err)
			return c.JSON(http.StatusInternalServerError, InternalServerError)
		}
		hearts = p.Hearts
	}
	if req.Hearts != nil {
		hearts = min(*req.Hearts, hearts)
	}

	loc, _ := curriculum.ParseLocale(req.Locale) // validated above
	opts := session.DefaultOptions()
	opts.UserID = req.UserID
	opts.LanguageID = req.LanguageID
	opts.Locale = loc
	opts.Subscriber = req.Subscriber
	opts.Hearts = hearts
	opts.QuestionCount = h.deps.Defaults.Questions
	opts.Now = h.deps.Now
	opts.OnComplete = h.deps.OnComplete

	s, err := session.New(lesson, opts)
	if err != nil {
		h.log.ErrorContext(ctx, "failed to start session", "error", err)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}
	h.deps.Sessions.Put(s)

	h.log.InfoContext(ctx, "session started",
		"session_id", s.ID(), "user_id", req.UserID, "lesson_id", lesson.ID, "hearts", hearts)
	return c.JSON(http.StatusCreated, newSessionView(s))
}

func (h *SessionsHandler) Get(c echo.Context) error {
	var view SessionView
	err := h.deps.Sessions.With(c.Param("id"), func(s *session.Session) error {
		view = newSessionView(s)
		return nil
	})
	if err != nil {
		return h.sessionError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *SessionsHandler) Answer(c echo.Context) error {
	ctx := c.Request().Context()

	var req AnswerRequest
	if err := c.Bind(&req); err != nil {
		h.log.DebugContext(ctx, "failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, BadRequestError)
	}
	if err := c.Validate(&req); err != nil {
		h.log.DebugContext(ctx, "failed to validate request", "error", err)
		return err
	}

	var view SessionView
	err := h.deps.Sessions.With(c.Param("id"), func(s *session.Session) error {
		if !s.Options().Subscriber && s.Hearts() <= 0 {
			return ErrOutOfHearts
		}
		if _, err := s.SubmitAnswer(req.Answer); err != nil {
			return err
		}
		view = newSessionView(s)
		return nil
	})
	if err != nil {
		return h.sessionError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *SessionsHandler) Advance(c echo.Context) error {
	var view SessionView
	err := h.deps.Sessions.With(c.Param("id"), func(s *session.Session) error {
		if _, err := s.Advance(); err != nil {
			return err
		}
		view = newSessionView(s)
		return nil
	})
	if err != nil {
		return h.sessionError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *SessionsHandler) sessionError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
	case errors.Is(err, session.ErrWrongPhase), errors.Is(err, ErrOutOfHearts):
		return c.JSON(http.StatusConflict, ErrorResponse{Message: err.Error()})
	}
	h.log.ErrorContext(c.Request().Context(), "failed to process session", "error", err)
	return c.JSON(http.StatusInternalServerError, InternalServerError)
}
