// Package http exposes the dashboard over a chi router: records, summary,
// dates, and reload endpoints, all JSON.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "opsdash/internal/errors"
	"opsdash/internal/services"
	"opsdash/pkg/contracts/domain"
)

// DashboardService is the surface the handler needs from the service
// layer; the concrete implementation lives in internal/services.
type DashboardService interface {
	Reload(ctx context.Context) error
	Dates() (*services.DatesResponse, *apierrors.APIError)
	Records(section string, iv domain.DateInterval) (interface{}, *apierrors.APIError)
	Summary(section string, iv domain.DateInterval) (interface{}, *apierrors.APIError)
}

// DashboardHandler handles the /api routes.
type DashboardHandler struct {
	service  DashboardService
	logger   *slog.Logger
	validate *validator.Validate
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(service DashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service:  service,
		logger:   logger.With(slog.String("component", "dashboard_handler")),
		validate: validator.New(),
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/reload", h.Reload)
	r.Get("/dates", h.GetDates)

	r.Route("/{section}", func(r chi.Router) {
		r.Use(h.SectionCtx)
		r.Get("/records", h.GetRecords)
		r.Get("/summary", h.GetSummary)
	})

	return r
}

// SectionCtx validates the section parameter early so both endpoints
// share the check.
func (h *DashboardHandler) SectionCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "section") == "" {
			render.Render(w, r, apierrors.ErrValidation("section", "Section name is required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// dateRangeQuery carries the optional start/end query parameters.
type dateRangeQuery struct {
	Start string `validate:"omitempty,datetime=2006-01-02"`
	End   string `validate:"omitempty,datetime=2006-01-02"`
}

// parseInterval validates the start/end query parameters and builds the
// filter interval. Both bounds are optional; either missing bound
// disables filtering.
func (h *DashboardHandler) parseInterval(r *http.Request) (domain.DateInterval, *apierrors.APIError) {
	q := dateRangeQuery{
		Start: r.URL.Query().Get("start"),
		End:   r.URL.Query().Get("end"),
	}

	if err := h.validate.Struct(q); err != nil {
		var fields []apierrors.ValidationError
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, apierrors.ValidationError{
					Field:   fe.Field(),
					Message: "must be a YYYY-MM-DD date",
				})
			}
		}
		return domain.DateInterval{}, apierrors.NewValidationErrors(fields)
	}

	if q.Start != "" && q.End != "" && q.Start > q.End {
		return domain.DateInterval{}, apierrors.ErrValidation("start", "start must not be after end")
	}

	return domain.DateInterval{Start: q.Start, End: q.End}, nil
}

// Reload handles POST /api/reload.
func (h *DashboardHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reload(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "reload failed", slog.String("error", err.Error()))
		render.Render(w, r, apierrors.ErrReload(err))
		return
	}
	render.JSON(w, r, map[string]interface{}{"status": "reloaded"})
}

// GetDates handles GET /api/dates.
func (h *DashboardHandler) GetDates(w http.ResponseWriter, r *http.Request) {
	resp, apiErr := h.service.Dates()
	if apiErr != nil {
		render.Render(w, r, apiErr)
		return
	}
	render.JSON(w, r, resp)
}

// GetRecords handles GET /api/{section}/records.
func (h *DashboardHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	iv, apiErr := h.parseInterval(r)
	if apiErr != nil {
		render.Render(w, r, apiErr)
		return
	}

	records, apiErr := h.service.Records(chi.URLParam(r, "section"), iv)
	if apiErr != nil {
		render.Render(w, r, apiErr)
		return
	}
	render.JSON(w, r, records)
}

// GetSummary handles GET /api/{section}/summary.
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	iv, apiErr := h.parseInterval(r)
	if apiErr != nil {
		render.Render(w, r, apiErr)
		return
	}

	summary, apiErr := h.service.Summary(chi.URLParam(r, "section"), iv)
	if apiErr != nil {
		render.Render(w, r, apiErr)
		return
	}
	render.JSON(w, r, summary)
}
