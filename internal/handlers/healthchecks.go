package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nodewatchhq/nodewatch/internal/healthcheck"
)

// HealthcheckRunner runs a probe cycle across every visible node.
type HealthcheckRunner interface {
	Run(ctx context.Context, chatID int64) healthcheck.Report
}

type HealthchecksHandler struct {
	logger *slog.Logger
	runner HealthcheckRunner
}

func NewHealthchecksHandler(log *slog.Logger, runner HealthcheckRunner) *HealthchecksHandler {
	return &HealthchecksHandler{
		logger: log.With(slog.String("handler", "healthchecks")),
		runner: runner,
	}
}

func (h *HealthchecksHandler) Register(e *echo.Echo) {
	e.GET("/healthchecks", h.List)
}

// NodeStatusResponse is one node's outcome in a probe cycle.
type NodeStatusResponse struct {
	Node       string `json:"node"`
	Healthy    bool   `json:"healthy"`
	StatusCode *int   `json:"status_code,omitempty"`
	Error      string `json:"error,omitempty"`
}

// List probes every visible node and returns the outcomes in registry
// order. The ops surface sees the same node set as every conversation.
func (h *HealthchecksHandler) List(c echo.Context) error {
	report := h.runner.Run(c.Request().Context(), 0)
	out := make([]NodeStatusResponse, 0, len(report))
	for _, r := range report {
		item := NodeStatusResponse{Node: r.Node.String()}
		if code, ok := r.Outcome.StatusCode(); ok {
			status := code
			item.StatusCode = &status
			item.Healthy = code == http.StatusOK
		} else if reason, ok := r.Outcome.FailureReason(); ok {
			item.Error = reason
		}
		out = append(out, item)
	}
	return c.JSON(http.StatusOK, out)
}
