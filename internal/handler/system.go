package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	apiName    = "Backlog API"
	apiVersion = "1.0.0"
)

// SystemHandler serves health and API info endpoints.
type SystemHandler struct {
	environment string
	started     time.Time
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(environment string, started time.Time) *SystemHandler {
	return &SystemHandler{environment: environment, started: started}
}

// Health reports liveness and uptime.
func (h *SystemHandler) Health(c echo.Context) error {
	now := time.Now()
	return c.JSON(http.StatusOK, map[string]any{
		"status":      "ok",
		"timestamp":   now.UTC().Format(time.RFC3339),
		"uptime":      now.Sub(h.started).Seconds(),
		"environment": h.environment,
	})
}

// Info describes the API and its endpoints.
func (h *SystemHandler) Info(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"name":        apiName,
		"version":     apiVersion,
		"description": "REST API for Scrum backlog management",
		"endpoints": map[string]string{
			"tickets": "/api/tickets",
			"labels":  "/api/labels",
			"health":  "/health",
		},
	})
}
