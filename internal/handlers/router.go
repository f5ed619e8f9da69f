package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yukikurage/task-web/internal/middleware"
	"github.com/yukikurage/task-web/internal/templates"
	"github.com/yukikurage/task-web/internal/views"
)

// RouterConfig is what NewRouter needs besides the task service.
type RouterConfig struct {
	Logger zerolog.Logger
	// Sessions loads the session holding flashes and the theme.
	Sessions gin.HandlerFunc
}

// NewRouter builds the gin engine with every page route.
func NewRouter(cfg RouterConfig, tasks views.TaskService) *gin.Engine {
	taskHandler := NewTaskHandler(cfg.Logger, tasks)

	r := gin.New()
	r.HTMLRender = templates.MustNew()
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(cfg.Sessions)
	r.Use(middleware.Notifications())
	r.Use(gin.CustomRecovery(taskHandler.Recover))
	r.Use(middleware.Mount())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task web client is running",
		})
	})

	r.GET("/", taskHandler.ListTasks)
	r.POST("/theme", taskHandler.ToggleTheme)

	tasksGroup := r.Group("/tasks")
	{
		tasksGroup.GET("/create", taskHandler.NewTaskForm)
		tasksGroup.POST("/create", taskHandler.CreateTask)

		task := tasksGroup.Group("/:id", middleware.RequireTaskID())
		task.GET("", taskHandler.GetTask)
		task.POST("/status", taskHandler.ChangeStatus)
		task.GET("/edit", taskHandler.EditTaskForm)
		task.POST("/edit", taskHandler.UpdateTask)
		task.GET("/delete", taskHandler.ConfirmDelete)
		task.POST("/delete", taskHandler.DeleteTask)
	}

	r.NoRoute(taskHandler.NoRoute)

	return r
}
