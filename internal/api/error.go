package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Message string `json:"error"`
}

var (
	InternalServerError = ErrorResponse{"Internal server error"} //nolint:gochecknoglobals // constant response
	BadRequestError     = ErrorResponse{"Bad request"}           //nolint:gochecknoglobals // constant response
)

func HTTPErrorHandler(log *slog.Logger) func(err error, c echo.Context) {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		resp := InternalServerError

		var echoError *echo.HTTPError
		if errors.As(err, &echoError) {
			code = echoError.Code
			if message, ok := echoError.Message.(string); ok && message != "" && code != http.StatusInternalServerError {
				resp = ErrorResponse{Message: message}
			} else if code != http.StatusInternalServerError {
				resp = ErrorResponse{Message: http.StatusText(code)}
			}
		}

		if code >= http.StatusInternalServerError {
			log.ErrorContext(c.Request().Context(), "failed to process request", "error", err)
		} else {
			log.DebugContext(c.Request().Context(), "request rejected", "status", code, "error", err)
		}

		if err := c.JSON(code, resp); err != nil { //nolint:govet // ignore shadow declaration
			log.ErrorContext(c.Request().Context(), "failed to write error response", "error", err)
		}
	}
}
