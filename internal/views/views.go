// Package views holds the state of the three task screens (list, detail,
// form) independent of how they are rendered. A view lives for one mount;
// the mount's context is its lifetime, and a result that arrives after the
// mount was torn down is discarded instead of applied.
package views

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/yukikurage/task-web/internal/models"
	"github.com/yukikurage/task-web/internal/validation"
)

// ErrUnmounted is returned when a response arrives after the view's context
// ended. No state was changed and nothing was notified.
var ErrUnmounted = errors.New("view unmounted before the response arrived")

// ListPath is where views send the user after deletes, saves and failed loads.
const ListPath = "/"

// TaskService is what views need from the service layer.
type TaskService interface {
	Now() time.Time
	ListTasks(ctx context.Context) ([]models.Task, error)
	GetTask(ctx context.Context, id int64) (*models.Task, error)
	CreateTask(ctx context.Context, input validation.TaskInput) (*models.Task, error)
	UpdateTask(ctx context.Context, id int64, input validation.TaskInput) (*models.Task, error)
	ChangeStatus(ctx context.Context, id int64, status models.TaskStatus) (*models.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// Outcome tells the shell what to do after a view operation. An empty
// Redirect means stay and render the view.
type Outcome struct {
	Redirect string
}

// Stay is the zero Outcome.
var Stay = Outcome{}

func redirectTo(path string) Outcome {
	return Outcome{Redirect: path}
}

// unmounted reports whether the view's lifetime ended.
func unmounted(ctx context.Context) bool {
	return ctx.Err() != nil
}

// ParseTaskID parses a route id. Zero and negative ids are rejected.
func ParseTaskID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
