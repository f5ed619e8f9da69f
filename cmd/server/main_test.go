package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/task-web/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:     config.EnvDev,
		HTTP:    config.HTTPConfig{Port: "3000"},
		TaskAPI: config.TaskAPIConfig{BaseURL: "http://127.0.0.1:1/api"},
		Session: config.SessionConfig{
			Secret: "secret-for-tests",
			Store:  config.SessionStoreCookie,
			Name:   "task_web_session",
		},
	}
}

func TestNewServerServesHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	server, err := newServer(testConfig(), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, ":3000", server.Addr)

	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestNewServerSetsSessionCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	server, err := newServer(testConfig(), zerolog.Nop())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/theme", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "task_web_session=")
}
