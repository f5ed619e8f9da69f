package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/task-web/internal/notify"
	"github.com/yukikurage/task-web/internal/views"
)

// RequireTaskID checks the :id route parameter. A malformed id is treated
// like a failed fetch: the user is notified and sent back to the list.
func RequireTaskID() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, ok := views.ParseTaskID(c.Param("id"))
		if !ok {
			notify.Error(GetNotifier(c), "Error fetching task", "There was a problem loading the task details. Please try again.")
			Redirect(c, views.ListPath)
			c.Abort()
			return
		}

		c.Set(ContextKeyTaskID, taskID)
		c.Next()
	}
}

// GetTaskID retrieves the task ID set by RequireTaskID
func GetTaskID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ContextKeyTaskID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
