package controller

import (
	"ui_review_backend/internal/service"
	"ui_review_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TaskController struct {
	Service *service.TaskService
}

func NewTaskController(s *service.TaskService) *TaskController {
	return &TaskController{Service: s}
}

// GetNextTask godoc
// @Summary Draw the worker's next task number
// @Description Uniform random draw from the worker's uncompleted tasks
// @Tags Tasks
// @Produce json
// @Param workerId query string true "Worker ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/tasks/next [get]
func (c *TaskController) GetNextTask(ctx *gin.Context) {
	workerID := ctx.Query("workerId")
	if workerID == "" {
		util.BadRequest(ctx, "workerId is required")
		return
	}

	next, err := c.Service.NextTaskNumber(workerID)
	if err != nil {
		// An exhausted pool here means scheduling beyond the study length,
		// which is a server-side bug, not a client error.
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"taskNumber": next})
}

// GetAvailableTasks godoc
// @Summary List the worker's remaining task numbers
// @Tags Tasks
// @Produce json
// @Param workerId query string true "Worker ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/tasks/available [get]
func (c *TaskController) GetAvailableTasks(ctx *gin.Context) {
	workerID := ctx.Query("workerId")
	if workerID == "" {
		util.BadRequest(ctx, "workerId is required")
		return
	}

	available, err := c.Service.AvailableTasks(workerID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"taskNumbers": available})
}
