package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range AllStatuses() {
		got, err := ParseStatus(" " + string(s) + " ")
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseStatus("in_progress")
	assert.Error(t, err)
	_, err = ParseStatus("DONE")
	assert.Error(t, err)
	_, err = ParseStatus("")
	assert.Error(t, err)
}

func TestAllStatusesOrder(t *testing.T) {
	assert.Equal(t, []TaskStatus{
		TaskStatusPending,
		TaskStatusInProgress,
		TaskStatusCompleted,
		TaskStatusCancelled,
	}, AllStatuses())
}

func TestParseTimestampLayouts(t *testing.T) {
	cases := map[string]time.Time{
		"2026-03-04T10:15:30Z":       time.Date(2026, 3, 4, 10, 15, 30, 0, time.UTC),
		"2026-03-04T10:15:30.123456": time.Date(2026, 3, 4, 10, 15, 30, 123456000, time.Local),
		"2026-03-04T10:15:30":        time.Date(2026, 3, 4, 10, 15, 30, 0, time.Local),
		"2026-03-04T10:15":           time.Date(2026, 3, 4, 10, 15, 0, 0, time.Local),
		"2026-03-04":                 time.Date(2026, 3, 4, 0, 0, 0, 0, time.Local),
		"2026-03-04T10:15:30+02:00":  time.Date(2026, 3, 4, 8, 15, 30, 0, time.UTC),
	}
	for raw, want := range cases {
		got, err := ParseTimestamp(raw)
		require.NoError(t, err, raw)
		assert.True(t, want.Equal(got.Time), "%s: want %s got %s", raw, want, got.Time)
	}

	for _, bad := range []string{"", "tomorrow", "2026-13-01", "04/03/2026"} {
		_, err := ParseTimestamp(bad)
		assert.Error(t, err, bad)
	}
}

func TestTimestampJSON(t *testing.T) {
	var task Task
	body := `{"id":7,"title":"Review contract","status":"PENDING",
		"dueDate":"2026-10-16T00:00:00","createdAt":"2026-10-15T09:00:00.5","updatedAt":null}`
	require.NoError(t, json.Unmarshal([]byte(body), &task))

	assert.Equal(t, int64(7), task.ID)
	assert.Equal(t, "2026-10-16", task.DueDate.DateOnly())
	assert.True(t, task.UpdatedAt.IsZero())

	out, err := json.Marshal(TaskCreate{
		Title:   "Review contract",
		Status:  TaskStatusPending,
		DueDate: NewTimestamp(time.Date(2026, 10, 16, 0, 0, 0, 0, time.Local)),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Review contract","status":"PENDING","dueDate":"2026-10-16T00:00:00"}`, string(out))
}

func TestTaskUpdateOmitsNilFields(t *testing.T) {
	title := "New title"
	out, err := json.Marshal(TaskUpdate{Title: &title})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"New title"}`, string(out))

	assert.True(t, TaskUpdate{}.IsEmpty())
	assert.False(t, TaskUpdate{Title: &title}.IsEmpty())
}
