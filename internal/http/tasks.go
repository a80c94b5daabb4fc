package http

import (
	"github.com/gin-gonic/gin"
)

// TasksController exposes the admin maintenance trigger.
type TasksController struct {
	runner CleanupRunner
}

func NewTasksController(runner CleanupRunner) *TasksController {
	return &TasksController{runner: runner}
}

// RunCleanup handles POST /api/admin/tasks/cleanup. It enqueues the orphan
// taxonomy and audit retention tasks; workers pick them up asynchronously.
func (controller *TasksController) RunCleanup(c *gin.Context) {
	if controller.runner == nil {
		respondBadRequest(c, "background tasks are disabled")
		return
	}

	if err := controller.runner.RunNow(); err != nil {
		respondInternalError(c, err, "enqueue cleanup")
		return
	}

	respondAccepted(c, "cleanup tasks enqueued")
}
