// Copyright (c) 2026 TaskHive. All rights reserved.
// Author: vu.tranminh.dev@gmail.com

package task_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranminhvu/taskhive/internal/core/task"
	"github.com/tranminhvu/taskhive/internal/platform/middleware"
	"github.com/tranminhvu/taskhive/internal/platform/sec"
)

func newTestRouter(t *testing.T) (http.Handler, string) {
	t.Helper()

	tokenService, err := sec.NewTokenService("test-secret-key", "taskhive.work")
	require.NoError(t, err)

	token, err := tokenService.Issue("client-1", "Minh Vu", time.Hour)
	require.NoError(t, err)

	handler := task.NewHandler(task.NewService(&fakeRepository{}))

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokenService))
	router.Route("/tasks", func(r chi.Router) {
		handler.RegisterRoutes(r)
	})
	return router, token
}

/*
TestHTTP_TaskLifecycle posts a task as an authenticated client, then reads it
back through both the feed and the public detail endpoint.
*/
func TestHTTP_TaskLifecycle(t *testing.T) {
	router, token := newTestRouter(t)

	// 1. Post a task
	payload, _ := json.Marshal(map[string]any{
		"title":       "Fix login bug",
		"description": "Session cookie is dropped on Safari.",
		"budget":      150.0,
	})
	request := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewReader(payload))
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created struct {
		Data task.Task `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.Equal(t, "client-1", created.Data.ClientID)
	assert.Equal(t, task.StatusOpen, created.Data.Status)

	// 2. The authenticated feed contains it
	request = httptest.NewRequest(http.MethodGet, "/tasks", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	var feed struct {
		Data []task.Task `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &feed))
	require.Len(t, feed.Data, 1)
	assert.Equal(t, 1, feed.Meta.Total)

	// 3. The detail endpoint is public
	request = httptest.NewRequest(http.MethodGet, "/tasks/"+created.Data.ID, nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestHTTP_Task_AuthGating verifies that the feed and posting require a token
while detail reads do not.
*/
func TestHTTP_Task_AuthGating(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("list_requires_auth", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("create_requires_auth", func(t *testing.T) {
		payload, _ := json.Marshal(map[string]any{"title": "x", "description": "y", "budget": 1.0})
		request := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewReader(payload))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("detail_is_public_but_404_on_unknown", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/tasks/unknown-id", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

/*
TestHTTP_CreateTask_Validation verifies field-level rejection of a bad post.
*/
func TestHTTP_CreateTask_Validation(t *testing.T) {
	router, token := newTestRouter(t)

	payload, _ := json.Marshal(map[string]any{
		"title":       "",
		"description": "",
		"budget":      -5.0,
	})
	request := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewReader(payload))
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var body struct {
		Code    string `json:"code"`
		Details []struct {
			Field string `json:"field"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	assert.Len(t, body.Details, 3)
}
