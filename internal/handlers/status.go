// Package handlers holds the HTTP handlers of the ops server.
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nodewatchhq/nodewatch/internal/node"
	"github.com/nodewatchhq/nodewatch/internal/version"
)

type StatusHandler struct {
	logger    *slog.Logger
	registry  *node.Registry
	startedAt time.Time
}

func NewStatusHandler(log *slog.Logger, registry *node.Registry) *StatusHandler {
	return &StatusHandler{
		logger:    log.With(slog.String("handler", "status")),
		registry:  registry,
		startedAt: time.Now(),
	}
}

func (h *StatusHandler) Register(e *echo.Echo) {
	e.GET("/ping", h.Ping)
	e.HEAD("/health", h.PingHead)
	e.GET("/status", h.Status)
}

func (h *StatusHandler) Ping(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func (h *StatusHandler) PingHead(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

type StatusResponse struct {
	Version string `json:"version"`
	Nodes   int    `json:"nodes"`
	Uptime  string `json:"uptime"`
}

func (h *StatusHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{
		Version: version.GetInfo(),
		Nodes:   h.registry.Len(),
		Uptime:  time.Since(h.startedAt).Round(time.Second).String(),
	})
}
