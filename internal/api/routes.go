// Package api serves curricula and lesson sessions over HTTP.
package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/abhisek/afrolingo/internal/config"
	"github.com/abhisek/afrolingo/internal/curriculum"
	"github.com/abhisek/afrolingo/internal/session"
	"github.com/abhisek/afrolingo/internal/store"
)

type (
	// SessionDefaults configures sessions started over HTTP.
	SessionDefaults struct {
		Questions int
		MaxHearts float64
	}

	Dependencies struct {
		Catalog  *curriculum.Catalog
		Sessions *Registry

		// Progress supplies starting hearts and the progress endpoint.
		// Optional.
		Progress store.ProgressRepo

		// OnComplete receives every finished session. Optional.
		OnComplete func(session.Summary)

		Defaults SessionDefaults
		Now      func() time.Time
		Logger   *slog.Logger
	}
)

func NewRouter(ctx context.Context, conf config.HTTP, deps Dependencies) *echo.Echo {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(loggingMiddleware(ctx, deps.Logger))
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(conf.RateLimit))))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: conf.AllowOrigins,
	}))
	if conf.Timeout > 0 {
		e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
			Timeout: conf.Timeout,
		}))
	}
	e.Use(middleware.Secure())

	e.HTTPErrorHandler = HTTPErrorHandler(deps.Logger)

	catalog := NewCatalogHandler(deps.Catalog, deps.Logger)
	e.GET("/languages", catalog.Languages)
	e.GET("/languages/:lang/stages", catalog.Stages)
	e.GET("/languages/:lang/lessons/:lesson", catalog.Lesson)

	sessions := NewSessionsHandler(deps)
	e.POST("/sessions", sessions.Create)
	e.GET("/sessions/:id", sessions.Get)
	e.POST("/sessions/:id/answer", sessions.Answer)
	e.POST("/sessions/:id/advance", sessions.Advance)

	if deps.Progress != nil {
		progress := NewProgressHandler(deps.Progress, deps.Now, deps.Logger)
		e.GET("/progress/:user", progress.List)
		e.GET("/progress/:user/:lang", progress.Get)
	}

	return e
}

func loggingMiddleware(ctx context.Context, log *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogRequestID: true,
		LogLatency:   true,
		LogError:     true,
		HandleError:  true, // forwards error to the global error handler, so it can decide appropriate status code
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error == nil {
				log.LogAttrs(ctx, slog.LevelInfo, "REQUEST",
					slog.String("method", v.Method),
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.String("request_id", v.RequestID),
					slog.Duration("latency", v.Latency),
				)
			} else {
				log.LogAttrs(ctx, slog.LevelError, "REQUEST_ERROR",
					slog.String("method", v.Method),
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.String("request_id", v.RequestID),
					slog.String("err", v.Error.Error()),
				)
			}
			return nil
		},
	})
}
