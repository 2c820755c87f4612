package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		data         any
		expectedBody string
	}{
		{
			name:         "object",
			status:       http.StatusCreated,
			data:         map[string]string{"id": "abc"},
			expectedBody: `{"id":"abc"}`,
		},
		{
			name:         "empty object",
			status:       http.StatusOK,
			data:         struct{}{},
			expectedBody: `{}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			w := httptest.NewRecorder()

			RespondWithJSON(w, req, tc.status, tc.data)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.expectedBody, w.Body.String())
		})
	}
}

func TestRespondWithError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/tasks/x", nil)
	req = req.WithContext(context.WithValue(req.Context(), TraceIDKey, "trace-123"))
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusNotFound, "Task with id x not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Task with id x not found", resp.Error)
	assert.Equal(t, "trace-123", resp.TraceID)
	assert.Nil(t, resp.Fields)
}

func TestRespondWithValidationError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/tasks", nil)
	w := httptest.NewRecorder()

	RespondWithValidationError(w, req, map[string]string{"title": "is required"}, errors.New("bad"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Validation failed","fields":{"title":"is required"}}`, w.Body.String())
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		opts      []ResponseOption
		wantLevel string
	}{
		{name: "server error", status: http.StatusInternalServerError, wantLevel: "ERROR"},
		{name: "client error", status: http.StatusBadRequest, wantLevel: "DEBUG"},
		{name: "rate limited", status: http.StatusTooManyRequests, wantLevel: "WARN"},
		{
			name:      "elevated client error",
			status:    http.StatusNotFound,
			opts:      []ResponseOption{WithElevatedLogLevel()},
			wantLevel: "WARN",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, buf := logger.NewTestLogger()
			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			req = req.WithContext(logger.WithLogger(req.Context(), l))
			w := httptest.NewRecorder()

			err := errors.New("dial postgres://app:s3cret@db:5432/tasks failed")
			RespondWithErrorAndLog(w, req, tc.status, "safe message", err, tc.opts...)

			assert.Equal(t, tc.status, w.Code)
			assert.NotContains(t, w.Body.String(), "s3cret")

			entries, perr := buf.Entries()
			require.NoError(t, perr)
			require.Len(t, entries, 1)
			assert.Equal(t, tc.wantLevel, entries[0]["level"])
			assert.Equal(t, "API error response", entries[0]["msg"])
			assert.NotContains(t, entries[0]["error"], "s3cret")
		})
	}
}
