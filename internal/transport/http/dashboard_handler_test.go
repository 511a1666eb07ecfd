package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opsdash/internal/config"
	"opsdash/internal/services"
	"opsdash/pkg/contracts/domain"
)

type stubFetcher struct {
	data map[string]string
}

func (f stubFetcher) Fetch(ctx context.Context, gid string) string {
	return f.data[gid]
}

func newTestRouter(t *testing.T, loaded bool) chi.Router {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	fetcher := stubFetcher{data: map[string]string{
		"1": "Date,Agent Name,Final Score,Grade\n" +
			"2024-01-05,Ana,90,A\n" +
			"2024-01-06,Ben,60,D\n",
	}}
	svc := services.NewDashboardService(fetcher, config.SheetGIDs{QA: "1"}, nil, logger)
	if loaded {
		require.NoError(t, svc.Reload(context.Background()))
	}

	handler := NewDashboardHandler(svc, logger)
	r := chi.NewRouter()
	r.Mount("/api", handler.Routes())
	r.Get("/api/health", NewHealthHandler(svc, "test").ServeHTTP)
	return r
}

func doRequest(t *testing.T, r chi.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t, true)
	w := doRequest(t, r, http.MethodGet, "/api/health")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotNil(t, body["loaded_at"])
}

func TestGetRecords(t *testing.T) {
	r := newTestRouter(t, true)
	w := doRequest(t, r, http.MethodGet, "/api/qa/records")

	require.Equal(t, http.StatusOK, w.Code)
	var entries []domain.QAEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	assert.Len(t, entries, 2)
}

func TestGetRecordsFiltered(t *testing.T) {
	r := newTestRouter(t, true)
	w := doRequest(t, r, http.MethodGet, "/api/qa/records?start=2024-01-06&end=2024-01-06")

	require.Equal(t, http.StatusOK, w.Code)
	var entries []domain.QAEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Ben", entries[0].Agent)
}

func TestGetRecordsInvalidDate(t *testing.T) {
	r := newTestRouter(t, true)
	w := doRequest(t, r, http.MethodGet, "/api/qa/records?start=05-01-2024&end=2024-01-06")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_FAILED")
}

func TestGetRecordsStartAfterEnd(t *testing.T) {
	r := newTestRouter(t, true)
	w := doRequest(t, r, http.MethodGet, "/api/qa/records?start=2024-02-01&end=2024-01-01")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "start must not be after end")
}

func TestGetRecordsUnknownSection(t *testing.T) {
	r := newTestRouter(t, true)
	w := doRequest(t, r, http.MethodGet, "/api/payroll/records")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "UNKNOWN_SECTION")
}

func TestGetSummary(t *testing.T) {
	r := newTestRouter(t, true)
	w := doRequest(t, r, http.MethodGet, "/api/qa/summary")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "overview")
	assert.Contains(t, body, "byAgent")
	assert.Contains(t, body, "trend")
}

func TestBeforeFirstReloadReturns503(t *testing.T) {
	r := newTestRouter(t, false)
	w := doRequest(t, r, http.MethodGet, "/api/qa/records")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "NO_DATA")
}

func TestReloadEndpoint(t *testing.T) {
	r := newTestRouter(t, false)

	w := doRequest(t, r, http.MethodPost, "/api/reload")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/dates")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2024-01-05")
}
