package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/kubev2v/jobrunner/api/v1"
)

// GetJobs returns the open jobs
// (GET /jobs)
func (h *Handler) GetJobs(c *gin.Context) {
	var params v1.GetJobsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, err)
		return
	}

	svcParams, err := params.ToServiceParams()
	if err != nil {
		badRequest(c, err)
		return
	}

	jobs := h.monitor.ListJobs(svcParams)
	c.JSON(http.StatusOK, v1.JobListResponse{Jobs: jobs, Total: len(jobs)})
}

// GetJob returns one open job
// (GET /jobs/{id})
func (h *Handler) GetJob(c *gin.Context) {
	info, err := h.monitor.GetJob(c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to get job")
		return
	}
	c.JSON(http.StatusOK, info)
}

// CancelJob cancels an open job
// (DELETE /jobs/{id})
func (h *Handler) CancelJob(c *gin.Context) {
	if err := h.monitor.CancelJob(c.Param("id")); err != nil {
		writeError(c, err, "failed to cancel job")
		return
	}
	c.Status(http.StatusAccepted)
}
