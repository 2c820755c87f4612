package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/task-api/internal/api/middleware"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	l, buf := logger.NewTestLogger()

	var (
		seenTraceID string
		seenLogger  bool
	)
	handler := middleware.TraceMiddleware(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTraceID = shared.GetTraceID(r.Context())
		seenLogger = logger.FromContextOrDefault(r.Context(), nil) != nil
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("hi"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tasks", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Len(t, seenTraceID, 32)
	assert.True(t, seenLogger)
	assert.Equal(t, seenTraceID, rec.Header().Get(shared.TraceIDHeader))

	entries, err := buf.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "request completed", entries[0]["msg"])
	assert.Equal(t, seenTraceID, entries[0]["trace_id"])
	assert.Equal(t, "/tasks", entries[0]["path"])
	assert.EqualValues(t, http.StatusTeapot, entries[0]["status"])
	assert.EqualValues(t, 2, entries[0]["bytes"])
}

func TestTraceMiddleware_ImplicitOK(t *testing.T) {
	l, buf := logger.NewTestLogger()
	handler := middleware.TraceMiddleware(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/tasks/x", nil))

	entries, err := buf.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.EqualValues(t, http.StatusOK, entries[0]["status"])
}
