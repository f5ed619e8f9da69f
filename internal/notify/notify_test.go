package notify

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	_, ok := r.Last()
	assert.False(t, ok)

	Info(&r, "Task deleted", "The task has been successfully deleted.")
	Error(&r, "Error deleting task", "Please try again.")

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, LevelInfo, all[0].Level)

	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, Notification{Level: LevelError, Title: "Error deleting task", Description: "Please try again."}, last)
}

func TestSessionNotifierSurvivesRedirect(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("secret-for-tests"))))

	r.POST("/mutate", func(c *gin.Context) {
		session := sessions.Default(c)
		Info(NewSessionNotifier(session), "Task created", "The task has been successfully created.")
		require.NoError(t, session.Save())
		c.Redirect(http.StatusSeeOther, "/")
	})

	var received []Notification
	r.GET("/", func(c *gin.Context) {
		session := sessions.Default(c)
		received = Drain(session)
		require.NoError(t, session.Save())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/mutate", nil))
	require.Equal(t, http.StatusSeeOther, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Len(t, received, 1)
	assert.Equal(t, "Task created", received[0].Title)
	assert.Equal(t, LevelInfo, received[0].Level)
}
