// Package notify carries transient user notifications ("toasts") from a view
// to whatever displays them. Views get a Notifier injected; nothing is global.
package notify

import (
	"encoding/gob"
	"sync"

	"github.com/gin-contrib/sessions"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notification is one toast.
type Notification struct {
	Level       Level
	Title       string
	Description string
}

// Notifier accepts notifications.
type Notifier interface {
	Notify(n Notification)
}

// Info is shorthand for an info-level notification.
func Info(n Notifier, title, description string) {
	n.Notify(Notification{Level: LevelInfo, Title: title, Description: description})
}

// Error is shorthand for an error-level notification.
func Error(n Notifier, title, description string) {
	n.Notify(Notification{Level: LevelError, Title: title, Description: description})
}

func init() {
	// Session stores gob-encode flash values.
	gob.Register(Notification{})
}

// SessionNotifier stores notifications as session flashes so they survive the
// redirect that usually follows a mutation. Flashes are persisted when the
// session is saved.
type SessionNotifier struct {
	session sessions.Session
}

// NewSessionNotifier wraps session.
func NewSessionNotifier(session sessions.Session) *SessionNotifier {
	return &SessionNotifier{session: session}
}

func (s *SessionNotifier) Notify(n Notification) {
	s.session.AddFlash(n)
}

// Drain removes and returns pending notifications from session. The caller
// must save the session for the removal to stick.
func Drain(session sessions.Session) []Notification {
	flashes := session.Flashes()
	out := make([]Notification, 0, len(flashes))
	for _, f := range flashes {
		if n, ok := f.(Notification); ok {
			out = append(out, n)
		}
	}
	return out
}

// Recorder keeps notifications in memory. Tests use it as a fake sink.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// All returns the notifications received so far.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Last returns the most recent notification and whether there was one.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}
