package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yukikurage/task-web/internal/dto"
	apierrors "github.com/yukikurage/task-web/internal/errors"
	"github.com/yukikurage/task-web/internal/middleware"
	"github.com/yukikurage/task-web/internal/models"
	"github.com/yukikurage/task-web/internal/templates"
	"github.com/yukikurage/task-web/internal/validation"
	"github.com/yukikurage/task-web/internal/views"
)

// TaskHandler serves the task pages. Every request mounts a fresh view
// under the request context.
type TaskHandler struct {
	logger zerolog.Logger
	tasks  views.TaskService
}

func NewTaskHandler(logger zerolog.Logger, tasks views.TaskService) *TaskHandler {
	return &TaskHandler{
		logger: logger,
		tasks:  tasks,
	}
}

// ListTasks renders the list. ?status= selects the filter; an unknown value
// falls back to ALL.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	view := views.NewListView(h.tasks, middleware.GetNotifier(c))
	if err := view.SetFilter(c.Query("status")); err != nil {
		h.logger.Debug().
			Err(err).
			Msg("ignoring list filter")
	}

	err := view.Load(c.Request.Context())
	if h.finished(c, views.Stay, err, "failed to load tasks") {
		return
	}

	h.render(c, http.StatusOK, templates.PageList, "Tasks", dto.ToListPageDTO(view, h.tasks.Now()))
}

// NewTaskForm renders the empty create form
func (h *TaskHandler) NewTaskForm(c *gin.Context) {
	form := views.NewCreateForm(h.tasks, middleware.GetNotifier(c))
	h.render(c, http.StatusOK, templates.PageForm, "Create Task", dto.ToFormDTO(form))
}

// CreateTask submits the create form
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.TaskFormRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Debug().
			Err(err).
			Msg("failed to bind task form")
	}

	form := views.NewCreateForm(h.tasks, middleware.GetNotifier(c))
	outcome, err := form.Submit(c.Request.Context(), req.ToTaskInput())
	if h.finished(c, outcome, err, "failed to create task") {
		return
	}

	h.render(c, formStatus(err), templates.PageForm, "Create Task", dto.ToFormDTO(form))
}

// GetTask renders the detail page
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, _ := middleware.GetTaskID(c)

	view := views.NewDetailView(h.tasks, middleware.GetNotifier(c))
	outcome, err := view.Load(c.Request.Context(), taskID)
	if h.finished(c, outcome, err, "failed to load task") {
		return
	}

	h.renderDetail(c, view)
}

// ChangeStatus applies the status from the selector or the quick action.
// The page is rendered from the task the API returned, so the new status
// and update time show without a fetch. Only a failed update loads the task
// to show it unchanged.
func (h *TaskHandler) ChangeStatus(c *gin.Context) {
	taskID, _ := middleware.GetTaskID(c)
	ctx := c.Request.Context()

	view := views.NewDetailView(h.tasks, middleware.GetNotifier(c))
	status := models.TaskStatus(strings.TrimSpace(c.PostForm("status")))
	err := view.ChangeStatusOf(ctx, taskID, status)
	if h.finished(c, views.Stay, err, "failed to change task status") {
		return
	}
	if err != nil {
		outcome, err := view.Load(ctx, taskID)
		if h.finished(c, outcome, err, "failed to load task") {
			return
		}
	}

	h.renderDetail(c, view)
}

// EditTaskForm renders the form pre-filled with the task
func (h *TaskHandler) EditTaskForm(c *gin.Context) {
	form, outcome, err := views.LoadEditForm(c.Request.Context(), h.tasks, middleware.GetNotifier(c), c.Param("id"))
	if h.finished(c, outcome, err, "failed to load task for editing") {
		return
	}
	if form == nil {
		h.renderError(c, apierrors.NotFoundPage())
		return
	}

	h.render(c, http.StatusOK, templates.PageForm, "Edit Task", dto.ToFormDTO(form))
}

// UpdateTask submits the edit form
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, _ := middleware.GetTaskID(c)

	var req dto.TaskFormRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Debug().
			Err(err).
			Msg("failed to bind task form")
	}

	form := views.NewEditForm(h.tasks, middleware.GetNotifier(c), models.Task{ID: taskID})
	outcome, err := form.Submit(c.Request.Context(), req.ToTaskInput())
	if h.finished(c, outcome, err, "failed to update task") {
		return
	}

	h.render(c, formStatus(err), templates.PageForm, "Edit Task", dto.ToFormDTO(form))
}

// ConfirmDelete asks before deleting. ?from=list returns to the list on
// cancel, otherwise to the task.
func (h *TaskHandler) ConfirmDelete(c *gin.Context) {
	taskID, _ := middleware.GetTaskID(c)

	view := views.NewDetailView(h.tasks, middleware.GetNotifier(c))
	outcome, err := view.Load(c.Request.Context(), taskID)
	if h.finished(c, outcome, err, "failed to load task") {
		return
	}
	if view.NotFound() {
		h.renderError(c, apierrors.NotFoundPage())
		return
	}

	returnTo := dto.TaskPath(taskID)
	if c.Query("from") == "list" {
		returnTo = views.ListPath
	}
	h.render(c, http.StatusOK, templates.PageConfirmDelete, "Delete Task", dto.ToConfirmDeleteDTO(*view.Task(), returnTo))
}

// DeleteTask deletes when confirm=yes. Deleting from the list goes back to
// the list; deleting from the detail page goes to the list on success and
// back to the task otherwise. A cancelled delete calls nothing.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, _ := middleware.GetTaskID(c)
	ctx := c.Request.Context()
	notifier := middleware.GetNotifier(c)
	confirmed := c.PostForm("confirm") == "yes"
	returnTo := localPath(c.PostForm("return"), dto.TaskPath(taskID))

	if !confirmed {
		middleware.Redirect(c, returnTo)
		return
	}

	if returnTo == views.ListPath {
		_, err := views.NewListView(h.tasks, notifier).Delete(ctx, taskID, true)
		if h.finished(c, views.Stay, err, "failed to delete task") {
			return
		}
		middleware.Redirect(c, views.ListPath)
		return
	}

	view := views.NewDetailView(h.tasks, notifier)
	outcome, err := view.Load(ctx, taskID)
	if h.finished(c, outcome, err, "failed to load task") {
		return
	}
	outcome, err = view.Delete(ctx, true)
	if h.finished(c, outcome, err, "failed to delete task") {
		return
	}
	middleware.Redirect(c, returnTo)
}

// ToggleTheme flips the display theme and returns to the page it came from
func (h *TaskHandler) ToggleTheme(c *gin.Context) {
	if _, err := middleware.ToggleTheme(c); err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to save theme")
	}
	middleware.Redirect(c, localPath(c.PostForm("redirect"), views.ListPath))
}

// NoRoute sends every unknown path to the list
func (h *TaskHandler) NoRoute(c *gin.Context) {
	middleware.Redirect(c, views.ListPath)
}

// Recover renders the error page after a panic
func (h *TaskHandler) Recover(c *gin.Context, recovered any) {
	h.logger.Error().
		Interface("panic", recovered).
		Str("path", c.Request.URL.Path).
		Msg("recovered from panic")
	h.renderError(c, apierrors.InternalErrorPage())
	c.Abort()
}

// finished handles the common tail of a view operation and reports whether
// the response is done: the view was unmounted or a redirect was sent.
func (h *TaskHandler) finished(c *gin.Context, outcome views.Outcome, err error, msg string) bool {
	if errors.Is(err, views.ErrUnmounted) {
		h.logger.Debug().
			Str("path", c.Request.URL.Path).
			Msg("discarding result of unmounted view")
		c.Abort()
		return true
	}

	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		h.logger.Debug().
			Str("errors", verrs.Error()).
			Msg("task form rejected")
	case err != nil:
		h.logger.Error().
			Err(err).
			Str("path", c.Request.URL.Path).
			Msg(msg)
		_ = c.Error(err)
	}

	if outcome.Redirect != "" {
		middleware.Redirect(c, outcome.Redirect)
		return true
	}
	return false
}

func (h *TaskHandler) renderDetail(c *gin.Context, view *views.DetailView) {
	if view.NotFound() {
		h.renderError(c, apierrors.NotFoundPage())
		return
	}
	h.renderAt(c, dto.TaskPath(view.Task().ID), http.StatusOK, templates.PageDetail, view.Task().Title, dto.ToTaskDetailDTO(view, h.tasks.Now()))
}

func (h *TaskHandler) renderError(c *gin.Context, page apierrors.ErrorPage) {
	h.render(c, page.Status, templates.PageError, page.Heading, page)
}

func (h *TaskHandler) render(c *gin.Context, status int, page, title string, data any) {
	h.renderAt(c, c.Request.URL.RequestURI(), status, page, title, data)
}

// renderAt renders page inside the layout. path is where the theme toggle
// returns to.
func (h *TaskHandler) renderAt(c *gin.Context, path string, status int, page, title string, data any) {
	c.HTML(status, page, dto.Page{
		Title:  title,
		Path:   path,
		Theme:  middleware.GetTheme(c),
		Toasts: dto.ToToastDTOs(middleware.Toasts(c)),
		Data:   data,
	})
}

// formStatus is the status of a re-rendered form: 422 for field errors,
// 502 when the task API failed.
func formStatus(err error) int {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}

// localPath accepts only same-site absolute paths as redirect targets.
func localPath(raw, fallback string) string {
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return fallback
	}
	return raw
}
