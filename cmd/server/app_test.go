package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/gormstore"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer wires the full application against an in-memory SQLite
// database and serves it over httptest.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:                   8080,
			LogLevel:               "debug",
			ShutdownTimeoutSeconds: 1,
			AllowedOrigins:         []string{"http://localhost:3000"},
		},
		Database: config.DatabaseConfig{
			Driver:       config.DriverSQLite,
			URL:          gormstore.MemoryDSN,
			MaxOpenConns: 1,
			AutoMigrate:  true,
		},
	}
	l, _ := logger.NewTestLogger()

	app, err := newApplication(context.Background(), cfg, l)
	require.NoError(t, err)

	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(func() {
		srv.Close()
		app.cleanup()
	})
	return srv
}

func doRequest(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func createTask(t *testing.T, baseURL, title string, status int) uuid.UUID {
	t.Helper()

	resp := doRequest(t, http.MethodPost, baseURL+"/tasks", map[string]any{
		"title":       title,
		"description": "description of " + title,
		"status":      status,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID uuid.UUID `json:"id"`
	}
	decodeBody(t, resp, &created)
	require.NotEqual(t, uuid.Nil, created.ID)
	return created.ID
}

func TestTaskLifecycle(t *testing.T) {
	srv := newTestServer(t)

	id := createTask(t, srv.URL, "write report", 0)
	taskURL := srv.URL + "/tasks/" + id.String()

	resp := doRequest(t, http.MethodGet, taskURL, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
	var task map[string]any
	decodeBody(t, resp, &task)
	assert.Equal(t, id.String(), task["id"])
	assert.Equal(t, "write report", task["title"])
	assert.EqualValues(t, 0, task["status"])
	assert.Nil(t, task["createdBy"])

	resp = doRequest(t, http.MethodPut, taskURL, map[string]any{
		"title":       "write final report",
		"description": "with appendix",
		"status":      2,
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, taskURL, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	task = nil
	decodeBody(t, resp, &task)
	assert.Equal(t, "write final report", task["title"])
	assert.Equal(t, "with appendix", task["description"])
	assert.EqualValues(t, 2, task["status"])

	resp = doRequest(t, http.MethodDelete, taskURL, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, taskURL, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	task = nil
	decodeBody(t, resp, &task)
	assert.Empty(t, task)

	resp = doRequest(t, http.MethodDelete, taskURL, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var errBody map[string]any
	decodeBody(t, resp, &errBody)
	assert.Equal(t, fmt.Sprintf("Task with id %s not found", id), errBody["error"])

	resp = doRequest(t, http.MethodPut, taskURL, map[string]any{
		"title":       "ghost",
		"description": "ghost",
		"status":      1,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListTasks(t *testing.T) {
	srv := newTestServer(t)

	for i := 0; i < 4; i++ {
		createTask(t, srv.URL, fmt.Sprintf("task %d", i), i%3)
	}

	t.Run("first page", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, srv.URL+"/tasks?limit=3", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page struct {
			Data []map[string]any `json:"data"`
			Meta struct {
				ItemsPerPage int   `json:"itemsPerPage"`
				TotalItems   int64 `json:"totalItems"`
				TotalPages   int   `json:"totalPages"`
			} `json:"meta"`
		}
		decodeBody(t, resp, &page)
		assert.Len(t, page.Data, 3)
		assert.Equal(t, 3, page.Meta.ItemsPerPage)
		assert.EqualValues(t, 4, page.Meta.TotalItems)
		assert.Equal(t, 2, page.Meta.TotalPages)
	})

	t.Run("page far past the end", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, srv.URL+"/tasks?page=4611686018427387904", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page struct {
			Data []map[string]any `json:"data"`
		}
		decodeBody(t, resp, &page)
		assert.Empty(t, page.Data)
	})

	t.Run("filtered by status", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, srv.URL+"/tasks?filter.status=$eq:0", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page struct {
			Data []map[string]any `json:"data"`
		}
		decodeBody(t, resp, &page)
		require.Len(t, page.Data, 2)
		for _, task := range page.Data {
			assert.EqualValues(t, 0, task["status"])
		}
	})
}

func TestValidationErrors(t *testing.T) {
	srv := newTestServer(t)

	t.Run("invalid id", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, srv.URL+"/tasks/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing fields", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, srv.URL+"/tasks", map[string]any{"title": "only title"})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		decodeBody(t, resp, &body)
		assert.Contains(t, body.Fields, "description")
		assert.Contains(t, body.Fields, "status")
	})

	t.Run("status out of range", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, srv.URL+"/tasks", map[string]any{
			"title":       "t",
			"description": "d",
			"status":      7,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAuxiliaryRoutes(t *testing.T) {
	srv := newTestServer(t)

	t.Run("health", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, srv.URL+"/health", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var buf bytes.Buffer
		_, err := buf.ReadFrom(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "OK", buf.String())
	})

	t.Run("openapi document", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, srv.URL+"/docs/openapi.json", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var doc map[string]any
		decodeBody(t, resp, &doc)
		assert.Contains(t, doc, "paths")
	})

	t.Run("cors", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/tasks", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", "http://localhost:3000")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	})
}
