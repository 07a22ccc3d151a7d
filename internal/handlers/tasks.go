package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/kubev2v/jobrunner/api/v1"
	"github.com/kubev2v/jobrunner/internal/services"
)

// GetTasks returns the registered tasks
// (GET /tasks)
func (h *Handler) GetTasks(c *gin.Context) {
	var params v1.GetTasksParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, err)
		return
	}

	svcParams, err := params.ToServiceParams()
	if err != nil {
		badRequest(c, err)
		return
	}

	tasks := h.monitor.ListTasks(svcParams)
	c.JSON(http.StatusOK, v1.TaskListResponse{Tasks: tasks, Total: len(tasks)})
}

// GetTask returns one task
// (GET /tasks/{id})
func (h *Handler) GetTask(c *gin.Context) {
	id, err := services.ParseTaskID(c.Param("id"))
	if err != nil {
		writeError(c, err, "invalid task id")
		return
	}

	info, err := h.monitor.GetTask(id)
	if err != nil {
		writeError(c, err, "failed to get task")
		return
	}
	c.JSON(http.StatusOK, info)
}

// StopTask requests a task to stop
// (DELETE /tasks/{id})
func (h *Handler) StopTask(c *gin.Context) {
	id, err := services.ParseTaskID(c.Param("id"))
	if err != nil {
		writeError(c, err, "invalid task id")
		return
	}

	info, err := h.monitor.StopTask(id)
	if err != nil {
		writeError(c, err, "failed to stop task")
		return
	}
	c.JSON(http.StatusAccepted, info)
}
