package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	apierrors "github.com/yukikurage/task-web/internal/errors"
	"github.com/yukikurage/task-web/internal/models"
	"github.com/yukikurage/task-web/internal/testutil/fakeapi"
)

type ClientTestSuite struct {
	suite.Suite
	api    *fakeapi.Server
	client *Client
	ctx    context.Context
}

func (s *ClientTestSuite) SetupTest() {
	s.api = fakeapi.New()
	s.client = New(s.api.BaseURL())
	s.ctx = context.Background()
}

func (s *ClientTestSuite) TearDownTest() {
	s.api.Close()
}

func (s *ClientTestSuite) seed(title string, status models.TaskStatus) models.Task {
	return s.api.Seed(models.Task{
		Title:   title,
		Status:  status,
		DueDate: models.NewTimestamp(time.Now().Add(48 * time.Hour)),
	})
}

func (s *ClientTestSuite) lastCall() fakeapi.Call {
	calls := s.api.Calls()
	s.Require().NotEmpty(calls)
	return calls[len(calls)-1]
}

func (s *ClientTestSuite) TestListTasks() {
	s.seed("First", models.TaskStatusPending)
	s.seed("Second", models.TaskStatusCompleted)

	tasks, err := s.client.ListTasks(s.ctx)
	s.Require().NoError(err)
	s.Len(tasks, 2)
	s.Equal("First", tasks[0].Title)
	s.Equal(fakeapi.Call{Method: http.MethodGet, Path: "/api/tasks"}, s.lastCall())
}

func (s *ClientTestSuite) TestListTasksEmptyIsNotNil() {
	tasks, err := s.client.ListTasks(s.ctx)
	s.Require().NoError(err)
	s.NotNil(tasks)
	s.Empty(tasks)
}

func (s *ClientTestSuite) TestGetTask() {
	seeded := s.seed("Read brief", models.TaskStatusInProgress)

	task, err := s.client.GetTask(s.ctx, seeded.ID)
	s.Require().NoError(err)
	s.Equal(seeded.ID, task.ID)
	s.Equal(models.TaskStatusInProgress, task.Status)
	s.Equal("/api/tasks/1", s.lastCall().Path)
}

func (s *ClientTestSuite) TestGetTaskNotFound() {
	_, err := s.client.GetTask(s.ctx, 42)
	s.Require().Error(err)
	s.True(apierrors.IsNotFound(err))
	s.Equal(http.StatusNotFound, apierrors.StatusCode(err))

	var apiErr *apierrors.APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(apierrors.ErrCodeNotFound, apiErr.Code)
	s.Equal("Task not found with id: 42", apiErr.Message)
}

func (s *ClientTestSuite) TestNullBodyIsNilTask() {
	s.api.Respond(http.MethodGet, "null")
	task, err := s.client.GetTask(s.ctx, 5)
	s.Require().NoError(err)
	s.Nil(task)

	s.api.Respond(http.MethodPatch, "null")
	task, err = s.client.UpdateTaskStatus(s.ctx, 5, models.TaskStatusCompleted)
	s.Require().NoError(err)
	s.Nil(task)
}

func (s *ClientTestSuite) TestCreateTask() {
	desc := "Check clauses"
	task, err := s.client.CreateTask(s.ctx, models.TaskCreate{
		Title:       "Review contract",
		Description: &desc,
		Status:      models.TaskStatusPending,
		DueDate:     models.NewTimestamp(time.Now().Add(24 * time.Hour)),
	})
	s.Require().NoError(err)
	s.NotZero(task.ID)
	s.Equal("Review contract", task.Title)
	s.Equal("Check clauses", task.Description)
	s.False(task.CreatedAt.IsZero())
	s.Equal(fakeapi.Call{Method: http.MethodPost, Path: "/api/tasks"}, s.lastCall())
}

func (s *ClientTestSuite) TestUpdateTask() {
	seeded := s.seed("Old title", models.TaskStatusPending)
	title := "New title"

	task, err := s.client.UpdateTask(s.ctx, seeded.ID, models.TaskUpdate{Title: &title})
	s.Require().NoError(err)
	s.Equal("New title", task.Title)
	s.Equal(models.TaskStatusPending, task.Status)
	s.Equal(http.MethodPut, s.lastCall().Method)
}

func (s *ClientTestSuite) TestUpdateTaskStatus() {
	seeded := s.seed("Draft", models.TaskStatusPending)

	task, err := s.client.UpdateTaskStatus(s.ctx, seeded.ID, models.TaskStatusInProgress)
	s.Require().NoError(err)
	s.Equal(models.TaskStatusInProgress, task.Status)
	s.Equal(fakeapi.Call{
		Method: http.MethodPatch,
		Path:   "/api/tasks/1/status",
		Query:  "status=IN_PROGRESS",
	}, s.lastCall())
}

func (s *ClientTestSuite) TestDeleteTask() {
	seeded := s.seed("Obsolete", models.TaskStatusCancelled)

	s.Require().NoError(s.client.DeleteTask(s.ctx, seeded.ID))
	_, ok := s.api.Task(seeded.ID)
	s.False(ok)

	err := s.client.DeleteTask(s.ctx, seeded.ID)
	s.True(apierrors.IsNotFound(err))
}

func (s *ClientTestSuite) TestServerErrorsPropagate() {
	s.api.Fail(http.MethodGet, http.StatusServiceUnavailable)

	_, err := s.client.ListTasks(s.ctx)
	s.Require().Error(err)
	s.False(apierrors.IsNotFound(err))

	var apiErr *apierrors.APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(apierrors.ErrCodeServiceUnavailable, apiErr.Code)
}

func (s *ClientTestSuite) TestSingleRequestPerCall() {
	s.api.Fail(http.MethodPost, http.StatusInternalServerError)

	_, err := s.client.CreateTask(s.ctx, models.TaskCreate{
		Title:   "Retry me",
		Status:  models.TaskStatusPending,
		DueDate: models.NewTimestamp(time.Now()),
	})
	s.Error(err)
	s.Equal(1, s.api.CallCount())
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func TestCreateTaskWireFormat(t *testing.T) {
	var gotBody map[string]any
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":3,"title":"Review contract","status":"PENDING",
			"dueDate":"2026-10-16T00:00:00","createdAt":"2026-10-15T10:00:00","updatedAt":"2026-10-15T10:00:00"}`))
	}))
	defer srv.Close()

	c := New(srv.URL + "/api/")
	task, err := c.CreateTask(context.Background(), models.TaskCreate{
		Title:   "Review contract",
		Status:  models.TaskStatusPending,
		DueDate: models.NewTimestamp(time.Date(2026, 10, 16, 0, 0, 0, 0, time.Local)),
	})
	require.NoError(t, err)

	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, map[string]any{
		"title":   "Review contract",
		"status":  "PENDING",
		"dueDate": "2026-10-16T00:00:00",
	}, gotBody)
	assert.Equal(t, int64(3), task.ID)
	assert.Equal(t, srv.URL+"/api", c.BaseURL())
}

func TestDecodeFailureIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListTasks(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode GET /tasks response")
}

func TestCancelledContext(t *testing.T) {
	api := fakeapi.New()
	defer api.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(api.BaseURL()).ListTasks(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultBaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, New("").BaseURL())
}
