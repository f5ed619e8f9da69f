package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yukikurage/task-web/internal/models"
	"github.com/yukikurage/task-web/internal/notify"
	"github.com/yukikurage/task-web/internal/presentation"
)

func TestToTaskCardDTO(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	card := ToTaskCardDTO(models.Task{
		ID:      7,
		Title:   "File report",
		Status:  models.TaskStatusInProgress,
		DueDate: models.NewTimestamp(now.AddDate(0, 0, 3)),
	}, now)

	assert.Equal(t, int64(7), card.ID)
	assert.Equal(t, "/tasks/7", card.Href)
	assert.Equal(t, "/tasks/7/edit", card.EditHref)
	assert.Equal(t, "/tasks/7/delete", card.DeleteHref)
	assert.Equal(t, "October 18, 2026", card.DueDate)
	assert.Equal(t, "3 days from now", card.DueIn)
	assert.Equal(t, presentation.Badge{Label: "IN PROGRESS", Category: presentation.CategoryPrimary}, card.Badge)
}

func TestToTaskCardDTOOverdue(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	card := ToTaskCardDTO(models.Task{
		ID:      1,
		Status:  models.TaskStatusPending,
		DueDate: models.NewTimestamp(now.AddDate(0, 0, -2)),
	}, now)

	assert.True(t, card.Badge.Overdue)
	assert.Equal(t, presentation.OverdueLabel, card.Badge.Label)
	assert.Equal(t, "2 days ago", card.DueIn)
}

func TestToToastDTOs(t *testing.T) {
	toasts := ToToastDTOs([]notify.Notification{
		{Level: notify.LevelError, Title: "Error fetching tasks", Description: "Try again."},
	})

	assert.Equal(t, []ToastDTO{{Level: "error", Title: "Error fetching tasks", Description: "Try again."}}, toasts)
	assert.Empty(t, ToToastDTOs(nil))
}

func TestToConfirmDeleteDTO(t *testing.T) {
	confirm := ToConfirmDeleteDTO(models.Task{ID: 3, Title: "Old"}, "/")

	assert.Equal(t, ConfirmDeleteDTO{ID: 3, Title: "Old", Action: "/tasks/3/delete", CancelHref: "/"}, confirm)
}
