// Package presentation derives how a task status is shown: badge label,
// visual category and the options offered by status selectors. Every status
// is described once, in statusTable, so badges and forms cannot drift apart.
package presentation

import (
	"strings"
	"time"

	"github.com/yukikurage/task-web/internal/models"
)

// Category is the visual treatment of a badge; templates use it as a CSS class.
type Category string

const (
	CategoryOverdue   Category = "overdue"
	CategorySecondary Category = "secondary"
	CategoryPrimary   Category = "primary"
	CategorySuccess   Category = "success"
	CategoryMuted     Category = "muted"
	CategoryDefault   Category = "default"
)

// OverdueLabel replaces the status label on overdue, unfinished tasks.
const OverdueLabel = "OVERDUE"

// FilterAll is the synthetic list filter value matching every status.
const FilterAll = "ALL"

type statusInfo struct {
	category    Category
	optionLabel string
}

var statusTable = map[models.TaskStatus]statusInfo{
	models.TaskStatusPending:    {category: CategorySecondary, optionLabel: "Pending"},
	models.TaskStatusInProgress: {category: CategoryPrimary, optionLabel: "In Progress"},
	models.TaskStatusCompleted:  {category: CategorySuccess, optionLabel: "Completed"},
	models.TaskStatusCancelled:  {category: CategoryMuted, optionLabel: "Cancelled"},
}

// Badge is the rendered status marker of a task.
type Badge struct {
	Label    string
	Category Category
	Overdue  bool
}

// Option is one entry of a select control.
type Option struct {
	Value string
	Label string
}

// StatusText is the display label of a status: underscores become spaces.
func StatusText(status models.TaskStatus) string {
	return strings.ReplaceAll(string(status), "_", " ")
}

// StatusCategory is the category of status ignoring due dates.
func StatusCategory(status models.TaskStatus) Category {
	if info, ok := statusTable[status]; ok {
		return info.category
	}
	return CategoryDefault
}

// IsOverdue reports whether due is strictly before now.
func IsOverdue(due, now time.Time) bool {
	return due.Before(now)
}

// BadgeFor derives the badge for a task. Completed tasks never show as overdue.
func BadgeFor(status models.TaskStatus, due, now time.Time) Badge {
	if !due.IsZero() && IsOverdue(due, now) && status != models.TaskStatusCompleted {
		return Badge{Label: OverdueLabel, Category: CategoryOverdue, Overdue: true}
	}
	return Badge{Label: StatusText(status), Category: StatusCategory(status)}
}

// TaskBadge is BadgeFor applied to a task.
func TaskBadge(task models.Task, now time.Time) Badge {
	return BadgeFor(task.Status, task.DueDate.Time, now)
}

// StatusOptions lists every status for selectors, in lifecycle order.
func StatusOptions() []Option {
	statuses := models.AllStatuses()
	opts := make([]Option, 0, len(statuses))
	for _, s := range statuses {
		opts = append(opts, Option{Value: string(s), Label: statusTable[s].optionLabel})
	}
	return opts
}

// FilterOptions is StatusOptions preceded by the ALL filter.
func FilterOptions() []Option {
	return append([]Option{{Value: FilterAll, Label: "All Tasks"}}, StatusOptions()...)
}
