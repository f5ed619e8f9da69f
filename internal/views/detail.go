package views

import (
	"context"
	"fmt"

	"github.com/yukikurage/task-web/internal/models"
	"github.com/yukikurage/task-web/internal/notify"
	"github.com/yukikurage/task-web/internal/presentation"
)

// QuickAction is the one-click transition offered next to the status selector.
type QuickAction struct {
	Label  string
	Target models.TaskStatus
}

var quickActions = map[models.TaskStatus]QuickAction{
	models.TaskStatusPending:    {Label: "Start Working", Target: models.TaskStatusInProgress},
	models.TaskStatusInProgress: {Label: "Mark Complete", Target: models.TaskStatusCompleted},
}

// DetailView is the single task screen. Status changes are never applied
// optimistically: the server's answer replaces the local task.
type DetailView struct {
	svc      TaskService
	notifier notify.Notifier

	task   *models.Task
	loaded bool
}

// NewDetailView creates an unloaded detail view.
func NewDetailView(svc TaskService, notifier notify.Notifier) *DetailView {
	return &DetailView{svc: svc, notifier: notifier}
}

// Load fetches the task. A failed fetch is not rendered: the user is
// notified and sent back to the list.
func (v *DetailView) Load(ctx context.Context, id int64) (Outcome, error) {
	task, err := v.svc.GetTask(ctx, id)
	if unmounted(ctx) {
		return Stay, ErrUnmounted
	}
	v.loaded = true
	if err != nil {
		notify.Error(v.notifier, "Error fetching task", "There was a problem loading the task details. Please try again.")
		return redirectTo(ListPath), err
	}
	v.task = task
	return Stay, nil
}

// LoadRaw is Load for an unparsed route id. A malformed id is handled like a
// failed fetch.
func (v *DetailView) LoadRaw(ctx context.Context, rawID string) (Outcome, error) {
	id, ok := ParseTaskID(rawID)
	if !ok {
		v.loaded = true
		notify.Error(v.notifier, "Error fetching task", "There was a problem loading the task details. Please try again.")
		return redirectTo(ListPath), fmt.Errorf("invalid task id %q", rawID)
	}
	return v.Load(ctx, id)
}

// Task is the loaded task, or nil.
func (v *DetailView) Task() *models.Task {
	return v.task
}

// Loading reports whether Load has not finished yet.
func (v *DetailView) Loading() bool {
	return !v.loaded
}

// NotFound reports a load that resolved without a task.
func (v *DetailView) NotFound() bool {
	return v.loaded && v.task == nil
}

// QuickAction returns the transition offered for the current status.
func (v *DetailView) QuickAction() (QuickAction, bool) {
	if v.task == nil {
		return QuickAction{}, false
	}
	qa, ok := quickActions[v.task.Status]
	return qa, ok
}

// StatusOptions lists every status for the general selector.
func (v *DetailView) StatusOptions() []presentation.Option {
	return presentation.StatusOptions()
}

// ChangeStatus asks the API for a status-only update and adopts the
// returned task. On failure the local task is unchanged.
func (v *DetailView) ChangeStatus(ctx context.Context, status models.TaskStatus) error {
	if v.task == nil {
		return nil
	}
	return v.applyStatus(ctx, v.task.ID, status)
}

// ChangeStatusOf is ChangeStatus for a view that has not loaded its task:
// the task the API returns becomes the view's task, so no fetch is needed
// before the update. On failure the view stays unloaded.
func (v *DetailView) ChangeStatusOf(ctx context.Context, id int64, status models.TaskStatus) error {
	if err := v.applyStatus(ctx, id, status); err != nil {
		return err
	}
	v.loaded = true
	return nil
}

func (v *DetailView) applyStatus(ctx context.Context, id int64, status models.TaskStatus) error {
	updated, err := v.svc.ChangeStatus(ctx, id, status)
	if unmounted(ctx) {
		return ErrUnmounted
	}
	if err != nil {
		notify.Error(v.notifier, "Error updating status", "There was a problem updating the task status. Please try again.")
		return err
	}
	v.task = updated
	notify.Info(v.notifier, "Status updated", "Task status changed to "+string(status))
	return nil
}

// Delete removes the task after confirmation and returns to the list. On
// failure the user stays on the page.
func (v *DetailView) Delete(ctx context.Context, confirmed bool) (Outcome, error) {
	if v.task == nil || !confirmed {
		return Stay, nil
	}
	err := v.svc.DeleteTask(ctx, v.task.ID)
	if unmounted(ctx) {
		return Stay, ErrUnmounted
	}
	if err != nil {
		notify.Error(v.notifier, "Error deleting task", "There was a problem deleting the task. Please try again.")
		return Stay, err
	}
	notify.Info(v.notifier, "Task deleted", "The task has been successfully deleted.")
	return redirectTo(ListPath), nil
}
