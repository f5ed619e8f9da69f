package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yukikurage/task-web/internal/notify"
)

// Context and session keys
const (
	ContextKeyNotifier = "notifier"
	ContextKeyTaskID   = "task_id"
	SessionKeyTheme    = "theme"
)

// Display themes
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Notifications gives every request its own notification recorder. What a
// view records is either rendered with the page or, on redirect, carried to
// the next page through session flashes.
func Notifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyNotifier, &notify.Recorder{})
		c.Next()
	}
}

// GetNotifier retrieves the request's recorder from context
func GetNotifier(c *gin.Context) *notify.Recorder {
	if v, exists := c.Get(ContextKeyNotifier); exists {
		if r, ok := v.(*notify.Recorder); ok {
			return r
		}
	}
	r := &notify.Recorder{}
	c.Set(ContextKeyNotifier, r)
	return r
}

// Redirect moves the request's notifications into the session and answers
// 303 See Other, so a POST is never replayed by the browser.
func Redirect(c *gin.Context, location string) {
	session := sessions.Default(c)
	flashes := notify.NewSessionNotifier(session)
	for _, n := range GetNotifier(c).All() {
		flashes.Notify(n)
	}
	if err := session.Save(); err != nil {
		zerolog.Ctx(c.Request.Context()).Error().
			Err(err).
			Msg("failed to save session")
	}
	c.Redirect(http.StatusSeeOther, location)
}

// Toasts returns the notifications to show on the page being rendered:
// those flashed by an earlier redirect followed by the request's own.
func Toasts(c *gin.Context) []notify.Notification {
	session := sessions.Default(c)
	pending := notify.Drain(session)
	if len(pending) > 0 {
		if err := session.Save(); err != nil {
			zerolog.Ctx(c.Request.Context()).Error().
				Err(err).
				Msg("failed to save session")
		}
	}
	return append(pending, GetNotifier(c).All()...)
}

// GetTheme returns the theme stored in the session, light by default
func GetTheme(c *gin.Context) string {
	if theme, ok := sessions.Default(c).Get(SessionKeyTheme).(string); ok && theme == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// ToggleTheme flips the stored theme and returns the new one
func ToggleTheme(c *gin.Context) (string, error) {
	next := ThemeDark
	if GetTheme(c) == ThemeDark {
		next = ThemeLight
	}
	session := sessions.Default(c)
	session.Set(SessionKeyTheme, next)
	if err := session.Save(); err != nil {
		return "", err
	}
	return next, nil
}
