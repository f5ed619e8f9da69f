package dto

import (
	"strconv"
	"time"

	"github.com/yukikurage/task-web/internal/models"
	"github.com/yukikurage/task-web/internal/notify"
	"github.com/yukikurage/task-web/internal/presentation"
	"github.com/yukikurage/task-web/internal/utils"
	"github.com/yukikurage/task-web/internal/validation"
	"github.com/yukikurage/task-web/internal/views"
)

// Page wraps every rendered page with the shell's data
type Page struct {
	Title string
	// Path is the current request path; the theme toggle returns to it.
	Path   string
	Theme  string
	Toasts []ToastDTO
	Data   any
}

// ToastDTO represents a notification in the page shell
type ToastDTO struct {
	Level       string
	Title       string
	Description string
}

// TaskCardDTO represents a task in the list
type TaskCardDTO struct {
	ID          int64
	Title       string
	Description string
	Badge       presentation.Badge
	DueDate     string
	DueIn       string
	Href        string
	EditHref    string
	DeleteHref  string
}

// ListPageDTO represents the list page
type ListPageDTO struct {
	Filter        string
	FilterOptions []presentation.Option
	State         string
	Tasks         []TaskCardDTO
	// Filtered is true when the list is empty only because of the filter.
	Filtered bool
}

// QuickActionDTO represents the one-click status transition
type QuickActionDTO struct {
	Label  string
	Target string
}

// TaskDetailDTO represents the detail page
type TaskDetailDTO struct {
	ID            int64
	Title         string
	Description   string
	Status        string
	Badge         presentation.Badge
	DueDate       string
	DueIn         string
	CreatedAt     string
	UpdatedAt     string
	StatusOptions []presentation.Option
	QuickAction   *QuickActionDTO
	StatusAction  string
	EditHref      string
	DeleteHref    string
}

// FormDTO represents the create and edit forms
type FormDTO struct {
	Editing       bool
	Action        string
	CancelHref    string
	SubmitLabel   string
	MinDate       string
	Values        views.FormValues
	Errors        map[string]string
	StatusOptions []presentation.Option
}

// ConfirmDeleteDTO represents the delete confirmation page
type ConfirmDeleteDTO struct {
	ID         int64
	Title      string
	Action     string
	CancelHref string
}

// TaskFormRequest is the create/edit form body. Fields missing from the
// submission stay nil.
type TaskFormRequest struct {
	Title       *string `form:"title" json:"title"`
	Description *string `form:"description" json:"description"`
	Status      *string `form:"status" json:"status"`
	DueDate     *string `form:"dueDate" json:"dueDate"`
}

// ToTaskInput converts the form body to validation input
func (r TaskFormRequest) ToTaskInput() validation.TaskInput {
	return validation.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		DueDate:     r.DueDate,
	}
}

// Conversion functions

// TaskPath is the detail route of a task
func TaskPath(id int64) string {
	return "/tasks/" + strconv.FormatInt(id, 10)
}

// ToToastDTOs converts notifications to toasts
func ToToastDTOs(items []notify.Notification) []ToastDTO {
	toasts := make([]ToastDTO, len(items))
	for i, n := range items {
		toasts[i] = ToastDTO{
			Level:       string(n.Level),
			Title:       n.Title,
			Description: n.Description,
		}
	}
	return toasts
}

// ToTaskCardDTO converts a Task model to TaskCardDTO
func ToTaskCardDTO(task models.Task, now time.Time) TaskCardDTO {
	path := TaskPath(task.ID)
	return TaskCardDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Badge:       presentation.TaskBadge(task, now),
		DueDate:     utils.FormatDate(task.DueDate.Time),
		DueIn:       utils.FormatTimeDistance(task.DueDate.Time, now),
		Href:        path,
		EditHref:    path + "/edit",
		DeleteHref:  path + "/delete",
	}
}

// ToListPageDTO converts the list view to its page data
func ToListPageDTO(v *views.ListView, now time.Time) ListPageDTO {
	visible := v.Visible()
	cards := make([]TaskCardDTO, len(visible))
	for i, task := range visible {
		cards[i] = ToTaskCardDTO(task, now)
	}
	return ListPageDTO{
		Filter:        v.Filter(),
		FilterOptions: presentation.FilterOptions(),
		State:         string(v.State()),
		Tasks:         cards,
		Filtered:      len(visible) == 0 && len(v.Tasks()) > 0,
	}
}

// ToTaskDetailDTO converts a loaded detail view to its page data
func ToTaskDetailDTO(v *views.DetailView, now time.Time) TaskDetailDTO {
	task := v.Task()
	path := TaskPath(task.ID)
	dto := TaskDetailDTO{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		Status:        string(task.Status),
		Badge:         presentation.TaskBadge(*task, now),
		DueDate:       utils.FormatDate(task.DueDate.Time),
		DueIn:         utils.FormatTimeDistance(task.DueDate.Time, now),
		CreatedAt:     utils.FormatDateTime(task.CreatedAt.Time),
		UpdatedAt:     utils.FormatDateTime(task.UpdatedAt.Time),
		StatusOptions: v.StatusOptions(),
		StatusAction:  path + "/status",
		EditHref:      path + "/edit",
		DeleteHref:    path + "/delete",
	}

	if qa, ok := v.QuickAction(); ok {
		dto.QuickAction = &QuickActionDTO{Label: qa.Label, Target: string(qa.Target)}
	}

	return dto
}

// ToFormDTO converts a form view to its page data
func ToFormDTO(v *views.FormView) FormDTO {
	dto := FormDTO{
		Editing:       v.IsEditing(),
		Action:        "/tasks/create",
		CancelHref:    views.ListPath,
		SubmitLabel:   "Create Task",
		MinDate:       v.MinDate(),
		Values:        v.Values(),
		Errors:        map[string]string{},
		StatusOptions: presentation.StatusOptions(),
	}
	if v.IsEditing() {
		dto.Action = TaskPath(v.TaskID()) + "/edit"
		dto.CancelHref = TaskPath(v.TaskID())
		dto.SubmitLabel = "Update Task"
	}
	for field, msg := range v.Errors() {
		dto.Errors[field] = msg
	}
	return dto
}

// ToConfirmDeleteDTO converts a task to the delete confirmation data
func ToConfirmDeleteDTO(task models.Task, returnTo string) ConfirmDeleteDTO {
	return ConfirmDeleteDTO{
		ID:         task.ID,
		Title:      task.Title,
		Action:     TaskPath(task.ID) + "/delete",
		CancelHref: returnTo,
	}
}
