// internal/server/server.go
package server

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/48d31kh413k/NavixAI/internal/common/config"
	"github.com/48d31kh413k/NavixAI/internal/common/logger"
)

// Server owns the echo instance and route wiring.
type Server struct {
	echo   *echo.Echo
	cfg    config.ServerConfig
	logger logger.Logger
}

func New(cfg config.ServerConfig, h *Handler, log logger.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	api := e.Group("/api")
	api.GET("/test", h.Health)
	api.POST("/weather-suggestion", h.WeatherSuggestion)
	api.POST("/activity-suggestion", h.ActivitySuggestion)
	api.GET("/place-details/:place_id", h.PlaceDetails)
	api.POST("/preferences", h.UpsertPreference)
	api.GET("/preferences", h.ListPreferences)
	api.DELETE("/preferences/:place_id", h.DeletePreference)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return &Server{echo: e, cfg: cfg, logger: log}
}

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("http server starting", map[string]interface{}{"addr": addr})
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the underlying instance for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
