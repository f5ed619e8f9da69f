package repository

import (
	"context"

	"github.com/yukikurage/task-web/internal/client"
	"github.com/yukikurage/task-web/internal/models"
)

// TaskRepository is the data access surface for tasks. Tasks live on the
// remote task API; *client.Client is the production implementation.
type TaskRepository interface {
	// ListTasks returns every task
	ListTasks(ctx context.Context) ([]models.Task, error)

	// GetTask returns one task or an error matching errors.ErrNotFound
	GetTask(ctx context.Context, id int64) (*models.Task, error)

	// CreateTask stores a new task and returns it with id and timestamps
	CreateTask(ctx context.Context, payload models.TaskCreate) (*models.Task, error)

	// UpdateTask applies a partial update
	UpdateTask(ctx context.Context, id int64, payload models.TaskUpdate) (*models.Task, error)

	// UpdateTaskStatus changes only the status
	UpdateTaskStatus(ctx context.Context, id int64, status models.TaskStatus) (*models.Task, error)

	// DeleteTask removes a task
	DeleteTask(ctx context.Context, id int64) error
}

var _ TaskRepository = (*client.Client)(nil)
