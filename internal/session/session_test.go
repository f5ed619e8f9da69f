package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/task-web/internal/config"
)

func TestDeriveKeys(t *testing.T) {
	auth, enc, err := DeriveKeys("secret")
	require.NoError(t, err)
	assert.Len(t, auth, 32)
	assert.Len(t, enc, 32)
	assert.NotEqual(t, auth, enc)

	auth2, enc2, err := DeriveKeys("secret")
	require.NoError(t, err)
	assert.Equal(t, auth, auth2)
	assert.Equal(t, enc, enc2)

	other, _, err := DeriveKeys("another secret")
	require.NoError(t, err)
	assert.NotEqual(t, auth, other)
}

func TestCookieStoreRoundTrip(t *testing.T) {
	cfg := &config.Config{
		Env:     config.EnvProd,
		Session: config.SessionConfig{Secret: "secret", Store: config.SessionStoreCookie, Name: "task_web_session"},
	}
	store, err := NewStore(cfg)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(cfg, store))
	r.GET("/set", func(c *gin.Context) {
		s := sessions.Default(c)
		s.Set("theme", "dark")
		require.NoError(t, s.Save())
		c.Status(http.StatusNoContent)
	})
	r.GET("/get", func(c *gin.Context) {
		theme, _ := sessions.Default(c).Get("theme").(string)
		c.String(http.StatusOK, theme)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/set", nil))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "task_web_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	req := httptest.NewRequest(http.MethodGet, "/get", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "dark", w.Body.String())
}
