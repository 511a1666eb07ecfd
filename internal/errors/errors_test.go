package errors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorImplementsError(t *testing.T) {
	err := New(http.StatusNotFound, "NOT_FOUND", "gone")
	assert.Equal(t, "gone", err.Error())
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
}

func TestRenderSetsStatus(t *testing.T) {
	apiErr := ErrValidation("start", "must be YYYY-MM-DD")

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/qa/records", nil)
	require.NoError(t, render.Render(w, r, apiErr))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_FAILED")
	assert.Contains(t, w.Body.String(), "must be YYYY-MM-DD")
}

func TestErrorResponseWrapsError(t *testing.T) {
	resp := NewErrorResponse(ErrUnknownSection)
	assert.False(t, resp.Success)
	assert.Equal(t, "UNKNOWN_SECTION", resp.Error.ErrorCode)
}
