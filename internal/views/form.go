package views

import (
	"context"
	"errors"

	"github.com/yukikurage/task-web/internal/models"
	"github.com/yukikurage/task-web/internal/notify"
	"github.com/yukikurage/task-web/internal/validation"
)

// FormValues is what the form fields currently show.
type FormValues struct {
	Title       string
	Description string
	Status      string
	DueDate     string
}

// FormView is the create/edit form. The mode picks the validation rules:
// creation requires a due date of today or later, editing does not.
type FormView struct {
	svc      TaskService
	notifier notify.Notifier

	editing bool
	taskID  int64
	values  FormValues
	errors  validation.Errors
}

// NewCreateForm returns an empty form defaulting to PENDING.
func NewCreateForm(svc TaskService, notifier notify.Notifier) *FormView {
	return &FormView{
		svc:      svc,
		notifier: notifier,
		values:   FormValues{Status: string(models.TaskStatusPending)},
	}
}

// NewEditForm returns a form pre-filled from task, with the due date cut to
// its date part for the picker.
func NewEditForm(svc TaskService, notifier notify.Notifier, task models.Task) *FormView {
	return &FormView{
		svc:      svc,
		notifier: notifier,
		editing:  true,
		taskID:   task.ID,
		values: FormValues{
			Title:       task.Title,
			Description: task.Description,
			Status:      string(task.Status),
			DueDate:     task.DueDate.DateOnly(),
		},
	}
}

// LoadEditForm fetches the task to edit. Like the detail view, a failed
// fetch notifies and sends the user back to the list.
func LoadEditForm(ctx context.Context, svc TaskService, notifier notify.Notifier, rawID string) (*FormView, Outcome, error) {
	detail := NewDetailView(svc, notifier)
	outcome, err := detail.LoadRaw(ctx, rawID)
	if err != nil || outcome.Redirect != "" {
		return nil, outcome, err
	}
	if detail.Task() == nil {
		return nil, Stay, nil
	}
	return NewEditForm(svc, notifier, *detail.Task()), Stay, nil
}

// IsEditing reports edit mode.
func (v *FormView) IsEditing() bool {
	return v.editing
}

// TaskID is the task being edited, zero in create mode.
func (v *FormView) TaskID() int64 {
	return v.taskID
}

// Values returns the current field values.
func (v *FormView) Values() FormValues {
	return v.values
}

// Errors returns field errors from the last submit.
func (v *FormView) Errors() validation.Errors {
	return v.errors
}

// MinDate is the earliest date the picker offers (today). It applies in both
// modes, on top of the create-only validation rule.
func (v *FormView) MinDate() string {
	return validation.StartOfDay(v.svc.Now()).Format(models.DateLayout)
}

// Submit validates and sends the form. Entered values are kept on any
// failure. Validation errors are shown per field; an API failure is one
// generic notification.
func (v *FormView) Submit(ctx context.Context, input validation.TaskInput) (Outcome, error) {
	v.keep(input)
	v.errors = nil

	var err error
	if v.editing {
		_, err = v.svc.UpdateTask(ctx, v.taskID, input)
	} else {
		_, err = v.svc.CreateTask(ctx, input)
	}
	if unmounted(ctx) {
		return Stay, ErrUnmounted
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		v.errors = verrs
		return Stay, err
	}
	if err != nil {
		if v.editing {
			notify.Error(v.notifier, "Error updating task", "There was a problem updating the task. Please try again.")
		} else {
			notify.Error(v.notifier, "Error creating task", "There was a problem creating the task. Please try again.")
		}
		return Stay, err
	}

	if v.editing {
		notify.Info(v.notifier, "Task updated", "The task has been successfully updated.")
	} else {
		notify.Info(v.notifier, "Task created", "The task has been successfully created.")
	}
	return redirectTo(ListPath), nil
}

func (v *FormView) keep(input validation.TaskInput) {
	if input.Title != nil {
		v.values.Title = *input.Title
	}
	if input.Description != nil {
		v.values.Description = *input.Description
	}
	if input.Status != nil {
		v.values.Status = *input.Status
	}
	if input.DueDate != nil {
		v.values.DueDate = *input.DueDate
	}
}
