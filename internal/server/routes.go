package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/version", s.handleVersion)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Search pipeline
	s.echo.POST("/api/search", s.handleSearch)
	s.echo.GET("/api/results", s.handleResults)
	s.echo.GET("/api/sentiment", s.handleSentiment)
	s.echo.GET("/api/keywords", s.handleKeywords)
	s.echo.GET("/api/themes", s.handleThemes)
	s.echo.GET("/api/cooldown/:source", s.handleCooldown)
	s.echo.GET("/api/export", s.handleExport)
}
