// Package client is the only component that talks to the task REST API.
// Each call is a single request: no retries, no idempotency keys. Failures
// are returned to the caller, which decides what the user sees.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	apierrors "github.com/yukikurage/task-web/internal/errors"
	"github.com/yukikurage/task-web/internal/models"
)

// DefaultBaseURL is used when New is given an empty base URL.
const DefaultBaseURL = "http://localhost:8080/api"

// maxErrorBody bounds how much of an error response is read for the message.
const maxErrorBody = 4 << 10

// Client calls the task API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger failures are reported to.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client for baseURL, e.g. http://localhost:8080/api.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListTasks fetches every task.
func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, "list", http.MethodGet, "/tasks", nil, nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// GetTask fetches one task. A missing task yields an error matching
// apierrors.ErrNotFound; a null body yields a nil task and no error.
func (c *Client) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	var task *models.Task
	if err := c.do(ctx, "get", http.MethodGet, taskPath(id), nil, nil, &task); err != nil {
		return nil, err
	}
	return task, nil
}

// CreateTask posts a validated creation payload and returns the stored task.
func (c *Client) CreateTask(ctx context.Context, payload models.TaskCreate) (*models.Task, error) {
	var task *models.Task
	if err := c.do(ctx, "create", http.MethodPost, "/tasks", nil, payload, &task); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask sends a (possibly partial) update.
func (c *Client) UpdateTask(ctx context.Context, id int64, payload models.TaskUpdate) (*models.Task, error) {
	var task *models.Task
	if err := c.do(ctx, "update", http.MethodPut, taskPath(id), nil, payload, &task); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTaskStatus changes only the status of a task.
func (c *Client) UpdateTaskStatus(ctx context.Context, id int64, status models.TaskStatus) (*models.Task, error) {
	query := url.Values{"status": []string{string(status)}}
	var task *models.Task
	if err := c.do(ctx, "updateStatus", http.MethodPatch, taskPath(id)+"/status", query, nil, &task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, "delete", http.MethodDelete, taskPath(id), nil, nil, nil)
}

func taskPath(id int64) string {
	return "/tasks/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	err := c.roundTrip(ctx, method, path, query, body, out)
	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("op", op).
			Str("method", method).
			Str("path", path).
			Msg("task api call failed")
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	message := ""
	if json.Unmarshal(raw, &payload) == nil {
		message = payload.Message
		if message == "" {
			message = payload.Error
		}
	}
	return apierrors.NewAPIError(resp.StatusCode, message)
}
