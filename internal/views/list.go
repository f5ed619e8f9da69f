package views

import (
	"context"
	"fmt"

	"github.com/yukikurage/task-web/internal/models"
	"github.com/yukikurage/task-web/internal/notify"
	"github.com/yukikurage/task-web/internal/presentation"
)

type ListState string

const (
	ListLoading   ListState = "loading"
	ListPopulated ListState = "populated"
	ListEmpty     ListState = "empty"
	ListError     ListState = "error"
)

// ListView is the task list screen. Filtering works on the fetched tasks
// only and never calls the API.
type ListView struct {
	svc      TaskService
	notifier notify.Notifier

	tasks  []models.Task
	filter string
	loaded bool
	failed bool
}

// NewListView creates a list view in the loading state with the ALL filter.
func NewListView(svc TaskService, notifier notify.Notifier) *ListView {
	return &ListView{
		svc:      svc,
		notifier: notifier,
		filter:   presentation.FilterAll,
	}
}

// Load fetches all tasks. On failure the list stays empty and the user is
// notified; the error is returned for logging.
func (v *ListView) Load(ctx context.Context) error {
	tasks, err := v.svc.ListTasks(ctx)
	if unmounted(ctx) {
		return ErrUnmounted
	}
	v.loaded = true
	if err != nil {
		v.failed = true
		v.tasks = nil
		notify.Error(v.notifier, "Error fetching tasks", "There was a problem loading your tasks. Please try again.")
		return err
	}
	v.failed = false
	v.tasks = tasks
	return nil
}

// SetFilter selects ALL or one status. Unknown values are rejected and the
// current filter is kept.
func (v *ListView) SetFilter(filter string) error {
	if filter == "" || filter == presentation.FilterAll {
		v.filter = presentation.FilterAll
		return nil
	}
	status, err := models.ParseStatus(filter)
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}
	v.filter = string(status)
	return nil
}

// Filter returns the active filter value.
func (v *ListView) Filter() string {
	return v.filter
}

// Tasks returns the unfiltered tasks.
func (v *ListView) Tasks() []models.Task {
	return v.tasks
}

// Visible returns the tasks matching the filter, in fetched order.
func (v *ListView) Visible() []models.Task {
	if v.filter == presentation.FilterAll {
		return v.tasks
	}
	out := make([]models.Task, 0, len(v.tasks))
	for _, t := range v.tasks {
		if string(t.Status) == v.filter {
			out = append(out, t)
		}
	}
	return out
}

// State reports where the view is in loading → populated | empty | error.
func (v *ListView) State() ListState {
	switch {
	case !v.loaded:
		return ListLoading
	case v.failed:
		return ListError
	case len(v.Visible()) == 0:
		return ListEmpty
	default:
		return ListPopulated
	}
}

// Delete removes a task once the user confirmed. Without confirmation
// nothing happens. On success the task is dropped from the local list
// without re-fetching.
func (v *ListView) Delete(ctx context.Context, id int64, confirmed bool) (bool, error) {
	if !confirmed {
		return false, nil
	}
	err := v.svc.DeleteTask(ctx, id)
	if unmounted(ctx) {
		return false, ErrUnmounted
	}
	if err != nil {
		notify.Error(v.notifier, "Error deleting task", "There was a problem deleting the task. Please try again.")
		return false, err
	}

	kept := make([]models.Task, 0, len(v.tasks))
	for _, t := range v.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	v.tasks = kept
	notify.Info(v.notifier, "Task deleted", "The task has been successfully deleted.")
	return true, nil
}
