package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// HealthHandler reports process liveness and snapshot freshness.
type HealthHandler struct {
	version string
	started time.Time
	service DashboardService
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(service DashboardService, version string) *HealthHandler {
	return &HealthHandler{
		version: version,
		started: time.Now(),
		service: service,
	}
}

// ServeHTTP handles GET /api/health.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	}

	if dates, apiErr := h.service.Dates(); apiErr == nil {
		resp["loaded_at"] = dates.LoadedAt
		resp["dates"] = len(dates.Dates)
	} else {
		resp["loaded_at"] = nil
	}

	render.JSON(w, r, resp)
}
