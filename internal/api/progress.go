package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/abhisek/afrolingo/internal/curriculum"
	"github.com/abhisek/afrolingo/internal/store"
)

type (
	ProgressView struct {
		store.Progress
		CurrentStreak int `json:"currentStreak"`
		NextMilestone int `json:"nextMilestone"`
	}

	ProgressHandler struct {
		repo store.ProgressRepo
		now  func() time.Time
		log  *slog.Logger
	}
)

func NewProgressHandler(repo store.ProgressRepo, now func() time.Time, log *slog.Logger) *ProgressHandler {
	return &ProgressHandler{
		repo: repo,
		now:  now,
		log:  log,
	}
}

func (h *ProgressHandler) List(c echo.Context) error {
	now := h.now()
	items, err := h.repo.List(c.Request().Context(), c.Param("user"), now)
	if err != nil {
		h.log.ErrorContext(c.Request().Context(), "failed to list progress", "error", err)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	views := make([]ProgressView, len(items))
	for i, p := range items {
		views[i] = newProgressView(p, now)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": views})
}

func (h *ProgressHandler) Get(c echo.Context) error {
	lang := c.Param("lang")
	if _, ok := curriculum.LookupLanguage(lang); !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Message: curriculum.ErrUnknownLanguage.Error()})
	}

	now := h.now()
	p, err := h.repo.Get(c.Request().Context(), c.Param("user"), lang, now)
	if err != nil {
		h.log.ErrorContext(c.Request().Context(), "failed to get progress", "error", err)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}
	return c.JSON(http.StatusOK, newProgressView(p, now))
}

func newProgressView(p store.Progress, now time.Time) ProgressView {
	streak := p.CurrentStreak(now)
	return ProgressView{
		Progress:      p,
		CurrentStreak: streak,
		NextMilestone: store.NextStreakMilestone(streak),
	}
}
