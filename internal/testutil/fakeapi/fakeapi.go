// Package fakeapi serves the task REST contract from memory so views,
// handlers and the API client can be tested without a real backend. It
// records every call so tests can assert that no request was made.
package fakeapi

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/task-web/internal/models"
)

// Call is one request seen by the fake.
type Call struct {
	Method string
	Path   string
	Query  string
}

// Server is an in-memory task backend.
type Server struct {
	srv *httptest.Server

	mu       sync.Mutex
	tasks    map[int64]models.Task
	nextID   int64
	calls    []Call
	failures map[string]int
	canned   map[string]string
	now      func() time.Time
	hook     func(*http.Request)
}

// New starts a fake backend. Close it when done.
func New() *Server {
	s := &Server{
		tasks:    make(map[int64]models.Task),
		nextID:   1,
		failures: make(map[string]int),
		canned:   make(map[string]string),
		now:      time.Now,
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(s.record)

	api := r.Group("/api")
	{
		api.GET("/tasks", s.listTasks)
		api.POST("/tasks", s.createTask)
		api.GET("/tasks/:id", s.getTask)
		api.PUT("/tasks/:id", s.updateTask)
		api.PATCH("/tasks/:id/status", s.updateStatus)
		api.DELETE("/tasks/:id", s.deleteTask)
	}

	s.srv = httptest.NewServer(r)
	return s
}

// BaseURL is the API root, ending in /api.
func (s *Server) BaseURL() string {
	return s.srv.URL + "/api"
}

// Close shuts the server down.
func (s *Server) Close() {
	s.srv.Close()
}

// SetClock replaces the clock used for createdAt/updatedAt.
func (s *Server) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// SetHook runs fn at the start of every request, before the handler.
func (s *Server) SetHook(fn func(*http.Request)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hook = fn
}

// Fail makes every request with method answer status until ClearFailures.
func (s *Server) Fail(method string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = status
}

// Respond makes every request with method answer 200 with the raw JSON
// body until ClearFailures.
func (s *Server) Respond(method, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canned[method] = body
}

// ClearFailures undoes Fail and Respond.
func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]int)
	s.canned = make(map[string]string)
}

// Seed stores task as-is except for a missing ID or timestamps, which are
// filled in. It does not count as a call.
func (s *Server) Seed(task models.Task) models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	if task.ID == 0 {
		task.ID = s.nextID
	}
	if task.ID >= s.nextID {
		s.nextID = task.ID + 1
	}
	now := s.now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = models.NewTimestamp(now)
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = models.NewTimestamp(now)
	}
	s.tasks[task.ID] = task
	return task
}

// Task returns the stored task with id.
func (s *Server) Task(id int64) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	return task, ok
}

// Tasks returns all stored tasks ordered by id.
func (s *Server) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked()
}

// Calls returns a copy of the recorded calls.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallCount is len(Calls()).
func (s *Server) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// ResetCalls forgets recorded calls.
func (s *Server) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

func (s *Server) sortedLocked() []models.Task {
	out := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Server) record(c *gin.Context) {
	s.mu.Lock()
	s.calls = append(s.calls, Call{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Query:  c.Request.URL.RawQuery,
	})
	status, failing := s.failures[c.Request.Method]
	body, answered := s.canned[c.Request.Method]
	hook := s.hook
	s.mu.Unlock()

	if hook != nil {
		hook(c.Request)
	}
	if failing {
		c.AbortWithStatusJSON(status, gin.H{"message": http.StatusText(status)})
		return
	}
	if answered {
		c.Data(http.StatusOK, "application/json", []byte(body))
		c.Abort()
		return
	}
	c.Next()
}

func (s *Server) listTasks(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.sortedLocked())
}

func (s *Server) getTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	task, found := s.tasks[id]
	if !found {
		notFound(c, id)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) createTask(c *gin.Context) {
	var req models.TaskCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Title) == "" || !req.Status.IsValid() || req.DueDate.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid task"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := models.NewTimestamp(s.now())
	task := models.Task{
		ID:        s.nextID,
		Title:     req.Title,
		Status:    req.Status,
		DueDate:   req.DueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	s.nextID++
	s.tasks[task.ID] = task
	c.JSON(http.StatusCreated, task)
}

func (s *Server) updateTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req models.TaskUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if req.Status != nil && !req.Status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, found := s.tasks[id]
	if !found {
		notFound(c, id)
		return
	}
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}
	task.UpdatedAt = models.NewTimestamp(s.now())
	s.tasks[id] = task
	c.JSON(http.StatusOK, task)
}

func (s *Server) updateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	status, err := models.ParseStatus(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, found := s.tasks[id]
	if !found {
		notFound(c, id)
		return
	}
	task.Status = status
	task.UpdatedAt = models.NewTimestamp(s.now())
	s.tasks[id] = task
	c.JSON(http.StatusOK, task)
}

func (s *Server) deleteTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.tasks[id]; !found {
		notFound(c, id)
		return
	}
	delete(s.tasks, id)
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid task ID"})
		return 0, false
	}
	return id, true
}

func notFound(c *gin.Context, id int64) {
	c.JSON(http.StatusNotFound, gin.H{"message": "Task not found with id: " + strconv.FormatInt(id, 10)})
}
