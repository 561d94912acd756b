package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/abhisek/afrolingo/internal/curriculum"
)

type (
	CatalogQueryParams struct {
		Locale string `query:"locale" validate:"omitempty,oneof=en fr"`
	}

	LanguageView struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	CatalogHandler struct {
		catalog *curriculum.Catalog
		log     *slog.Logger
	}
)

func NewCatalogHandler(catalog *curriculum.Catalog, log *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		log:     log,
	}
}

func (h *CatalogHandler) Languages(c echo.Context) error {
	loc, err := h.locale(c)
	if err != nil {
		return err
	}

	langs := h.catalog.Languages()
	views := make([]LanguageView, len(langs))
	for i, l := range langs {
		views[i] = LanguageView{ID: l.ID, Name: curriculum.Localize(l.Name, l.NameFr, loc)}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": views})
}

func (h *CatalogHandler) Stages(c echo.Context) error {
	loc, err := h.locale(c)
	if err != nil {
		return err
	}

	stages, err := h.catalog.Stages(c.Request().Context(), c.Param("lang"))
	if err != nil {
		return h.catalogError(c, err)
	}

	views := make([]StageView, len(stages))
	for i, st := range stages {
		views[i] = newStageView(st, loc)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": views})
}

func (h *CatalogHandler) Lesson(c echo.Context) error {
	loc, err := h.locale(c)
	if err != nil {
		return err
	}

	lesson, err := h.catalog.Lesson(c.Request().Context(), c.Param("lang"), c.Param("lesson"))
	if err != nil {
		return h.catalogError(c, err)
	}
	return c.JSON(http.StatusOK, newLessonView(lesson, loc))
}

func (h *CatalogHandler) locale(c echo.Context) (curriculum.Locale, error) {
	var qp CatalogQueryParams
	if err := c.Bind(&qp); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to bind request", "error", err)
		return "", echo.NewHTTPError(http.StatusBadRequest, BadRequestError.Message)
	}
	if err := c.Validate(&qp); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to validate request", "error", err)
		return "", err
	}
	loc, _ := curriculum.ParseLocale(qp.Locale) // validated above
	return loc, nil
}

func (h *CatalogHandler) catalogError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, curriculum.ErrUnknownLanguage), errors.Is(err, curriculum.ErrLessonNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
	}
	h.log.ErrorContext(c.Request().Context(), "failed to load curriculum", "error", err)
	return c.JSON(http.StatusInternalServerError, InternalServerError)
}
