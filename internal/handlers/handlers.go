package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/kubev2v/jobrunner/internal/services"
)

type Handler struct {
	monitor    *services.Monitor
	historySrv *services.HistoryService
	reporter   *services.Reporter
}

// New creates the API handler. historySrv is nil when history is disabled.
func New(monitor *services.Monitor, historySrv *services.HistoryService, reporter *services.Reporter) *Handler {
	return &Handler{
		monitor:    monitor,
		historySrv: historySrv,
		reporter:   reporter,
	}
}

// RegisterHandlers registers the API routes on router.
func RegisterHandlers(router gin.IRoutes, h *Handler) {
	router.GET("/jobs", h.GetJobs)
	router.GET("/jobs/:id", h.GetJob)
	router.DELETE("/jobs/:id", h.CancelJob)

	router.GET("/tasks", h.GetTasks)
	router.GET("/tasks/:id", h.GetTask)
	router.DELETE("/tasks/:id", h.StopTask)

	router.GET("/history", h.GetHistory)
	router.GET("/history/:id", h.GetHistoryEntry)

	router.GET("/stats", h.GetStats)
	router.GET("/report", h.GetReport)
}
