package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/task-web/internal/models"
	"github.com/yukikurage/task-web/internal/repository"
	"github.com/yukikurage/task-web/internal/validation"
)

var (
	ErrInvalidTaskID  = errors.New("invalid task id")
	ErrInvalidStatus  = errors.New("invalid task status")
	ErrNothingToApply = errors.New("no fields to update")
)

// TaskService sits between views and the task API. Input is validated here;
// nothing that fails validation reaches the network.
type TaskService struct {
	taskRepo  repository.TaskRepository
	validator *validation.Validator
	now       func() time.Time
}

// NewTaskService creates a new TaskService. now defaults to time.Now.
func NewTaskService(taskRepo repository.TaskRepository, now func() time.Time) *TaskService {
	if now == nil {
		now = time.Now
	}
	return &TaskService{
		taskRepo:  taskRepo,
		validator: validation.New(now),
		now:       now,
	}
}

// Now is the service clock, shared with presentation so "overdue" and
// "today" agree.
func (s *TaskService) Now() time.Time {
	return s.now()
}

// ListTasks returns every task.
func (s *TaskService) ListTasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a single task.
func (s *TaskService) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	if id <= 0 {
		return nil, ErrInvalidTaskID
	}
	task, err := s.taskRepo.GetTask(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get task %d: %w", id, err)
	}
	return task, nil
}

// CreateTask validates input with the creation rules and creates the task.
// A validation failure is returned as validation.Errors.
func (s *TaskService) CreateTask(ctx context.Context, input validation.TaskInput) (*models.Task, error) {
	payload, err := s.validator.ValidateCreate(input)
	if err != nil {
		return nil, err
	}
	task, err := s.taskRepo.CreateTask(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// UpdateTask validates input with the update rules and sends the supplied
// fields.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, input validation.TaskInput) (*models.Task, error) {
	if id <= 0 {
		return nil, ErrInvalidTaskID
	}
	payload, err := s.validator.ValidateUpdate(input)
	if err != nil {
		return nil, err
	}
	if payload.IsEmpty() {
		return nil, ErrNothingToApply
	}
	task, err := s.taskRepo.UpdateTask(ctx, id, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to update task %d: %w", id, err)
	}
	return task, nil
}

// ChangeStatus sets only the status of a task.
func (s *TaskService) ChangeStatus(ctx context.Context, id int64, status models.TaskStatus) (*models.Task, error) {
	if id <= 0 {
		return nil, ErrInvalidTaskID
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	task, err := s.taskRepo.UpdateTaskStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to change status of task %d: %w", id, err)
	}
	return task, nil
}

// DeleteTask removes a task.
func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidTaskID
	}
	if err := s.taskRepo.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	return nil
}
