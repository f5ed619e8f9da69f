package models

import (
	"fmt"
	"strings"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusCancelled  TaskStatus = "CANCELLED"
)

// AllStatuses returns every status in lifecycle order.
func AllStatuses() []TaskStatus {
	return []TaskStatus{
		TaskStatusPending,
		TaskStatusInProgress,
		TaskStatusCompleted,
		TaskStatusCancelled,
	}
}

// IsValid reports whether s is one of the four known statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

// ParseStatus converts raw input into a TaskStatus. Matching is exact after
// trimming surrounding whitespace.
func ParseStatus(raw string) (TaskStatus, error) {
	s := TaskStatus(strings.TrimSpace(raw))
	if !s.IsValid() {
		return "", fmt.Errorf("unknown task status %q", raw)
	}
	return s, nil
}

// Task is the task entity as returned by the task API.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	DueDate     Timestamp  `json:"dueDate"`
	CreatedAt   Timestamp  `json:"createdAt"`
	UpdatedAt   Timestamp  `json:"updatedAt"`
}

// TaskCreate is the payload for POST /tasks. ID and timestamps are server-owned.
type TaskCreate struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	DueDate     Timestamp  `json:"dueDate"`
}

// TaskUpdate is the payload for PUT /tasks/{id}. Nil fields are left out of
// the request body.
type TaskUpdate struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Status      *TaskStatus `json:"status,omitempty"`
	DueDate     *Timestamp  `json:"dueDate,omitempty"`
}

// IsEmpty reports whether the update carries no fields.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil && u.DueDate == nil
}
