package server

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mmdoo7123/marketpulse/internal/app"
	"github.com/mmdoo7123/marketpulse/internal/config"
	apperrors "github.com/mmdoo7123/marketpulse/internal/errors"
	"github.com/mmdoo7123/marketpulse/internal/platform/correlation"
)

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	app       *app.Service
	startTime time.Time
}

func NewServer(cfg *config.Config, appSvc *app.Service) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(correlationMiddleware())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:      e,
		config:    cfg,
		app:       appSvc,
		startTime: time.Now(),
	}
	srv.registerRoutes()
	return srv
}

// Start runs the server until Shutdown is called. It blocks.
func (s *Server) Start() error {
	return s.echo.Start(":" + s.config.Port)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// correlationMiddleware assigns every request a correlation ID so log
// lines of one request can be tied together.
func correlationMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := correlation.WithID(c.Request().Context(), correlation.NewID())
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
