package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/gridnav"
	"github.com/pdrpinto/gridnav/internal/session"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := session.Config{Width: 5, Height: 5, ObstacleProbability: 0, Mode: gridnav.Heuristic}
	router := NewRouter(Config{
		BaseURL:     "/api",
		Controllers: []Controller{NewSessionController(cfg, 40, 1, nil)},
	})
	return router.Handler()
}

func do(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func createSession(t *testing.T, handler http.Handler) SessionResponse {
	t.Helper()
	rec := do(t, handler, http.MethodPost, "/api/v1/sessions", CreateSessionRequest{Seed: 7})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[SessionResponse](t, rec)
}

func TestSessions_CreateAndGet(t *testing.T) {
	handler := newTestHandler(t)
	created := createSession(t, handler)

	assert.Equal(t, int64(7), created.Seed)
	assert.Equal(t, 5, created.Width)
	assert.Equal(t, 40, created.CellSize)
	assert.Nil(t, created.Start)
	assert.Equal(t, "astar", created.Mode)

	rec := do(t, handler, http.MethodGet, "/api/v1/sessions/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.ID, decode[SessionResponse](t, rec).ID)
}

func TestSessions_FindPath(t *testing.T) {
	handler := newTestHandler(t)
	base := "/api/v1/sessions/" + createSession(t, handler).ID.String()

	rec := do(t, handler, http.MethodPost, base+"/path", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "unconfigured", decode[SessionResponse](t, rec).Outcome)

	require.Equal(t, http.StatusOK, do(t, handler, http.MethodPut, base+"/start", gin.H{"x": 0, "y": 0}).Code)
	require.Equal(t, http.StatusOK, do(t, handler, http.MethodPut, base+"/end", gin.H{"x": 4, "y": 4}).Code)
	require.Equal(t, http.StatusOK, do(t, handler, http.MethodPut, base+"/mode", gin.H{"mode": "dijkstra"}).Code)

	rec = do(t, handler, http.MethodPost, base+"/path", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[SessionResponse](t, rec)
	assert.Equal(t, "success", got.Outcome)
	assert.Equal(t, "dijkstra", got.Mode)
	assert.Equal(t, 8, got.Cost)
	assert.Len(t, got.Path, 9)

	rec = do(t, handler, http.MethodDelete, base+"/end", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[SessionResponse](t, rec).End)
}

func TestSessions_Step(t *testing.T) {
	handler := newTestHandler(t)
	base := "/api/v1/sessions/" + createSession(t, handler).ID.String()
	do(t, handler, http.MethodPut, base+"/start", gin.H{"x": 0, "y": 0})
	do(t, handler, http.MethodPut, base+"/end", gin.H{"x": 2, "y": 0})

	var last StepResponse
	for i := 0; i < 10 && !last.Done; i++ {
		rec := do(t, handler, http.MethodPost, base+"/step", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		last = decode[StepResponse](t, rec)
	}

	assert.True(t, last.Found)
	assert.Equal(t, 3, last.Step)
	assert.Len(t, last.Path, 3)
}

func TestSessions_Generate(t *testing.T) {
	handler := newTestHandler(t)
	base := "/api/v1/sessions/" + createSession(t, handler).ID.String()

	rec := do(t, handler, http.MethodPost, base+"/generate", GenerateRequest{Seed: 99})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(99), decode[SessionResponse](t, rec).Seed)

	rec = do(t, handler, http.MethodPost, base+"/generate", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEqual(t, int64(99), decode[SessionResponse](t, rec).Seed)
}

func TestSessions_Errors(t *testing.T) {
	handler := newTestHandler(t)
	base := "/api/v1/sessions/" + createSession(t, handler).ID.String()

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"bad id", http.MethodGet, "/api/v1/sessions/not-a-uuid", nil, http.StatusBadRequest},
		{"unknown id", http.MethodGet, "/api/v1/sessions/9a5b1f0e-1d3c-4c55-9a53-2f8f9d5c7e11", nil, http.StatusNotFound},
		{"out of bounds start", http.MethodPut, base + "/start", gin.H{"x": 5, "y": 0}, http.StatusBadRequest},
		{"missing coordinate", http.MethodPut, base + "/end", gin.H{"x": 1}, http.StatusBadRequest},
		{"unknown mode", http.MethodPut, base + "/mode", gin.H{"mode": "bfs"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, handler, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestSessions_Delete(t *testing.T) {
	handler := newTestHandler(t)
	base := "/api/v1/sessions/" + createSession(t, handler).ID.String()

	assert.Equal(t, http.StatusNoContent, do(t, handler, http.MethodDelete, base, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, handler, http.MethodDelete, base, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, handler, http.MethodPost, base+"/path", nil).Code)
}
