package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	t.Setenv("OPSDASH_SHEETS_BASE_URL", "https://example.com/pub?output=csv")
	t.Setenv("OPSDASH_LOGGING_OUTPUT", "stdout")

	a, err := NewApplication()
	require.NoError(t, err)
	t.Cleanup(a.WebSocketHub.Stop)
	return a
}

func TestNewApplicationWiresRouter(t *testing.T) {
	a := newTestApplication(t)
	require.NotNil(t, a.Router)
	require.NotNil(t, a.Server)
	assert.Equal(t, ":8080", a.Server.Addr)
}

func TestHealthRouteRegistered(t *testing.T) {
	a := newTestApplication(t)

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestMetricsRouteRegistered(t *testing.T) {
	a := newTestApplication(t)

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnloadedSectionReturns503(t *testing.T) {
	a := newTestApplication(t)

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/qa/records", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
