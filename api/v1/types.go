package v1

import "github.com/kubev2v/jobrunner/internal/models"

// GetJobsParams defines parameters for GetJobs.
type GetJobsParams struct {
	Name string `form:"name"`
	User string `form:"user"`
	Mode string `form:"mode"`
}

// GetTasksParams defines parameters for GetTasks.
type GetTasksParams struct {
	Status []string `form:"status"`
	Name   string   `form:"name"`
}

// GetHistoryParams defines parameters for GetHistory.
type GetHistoryParams struct {
	Kind     []string `form:"kind"`
	Status   []string `form:"status"`
	Name     string   `form:"name"`
	User     string   `form:"user"`
	Page     int      `form:"page"`
	PageSize int      `form:"pageSize"`
}

type JobListResponse struct {
	Jobs  []models.JobInfo `json:"jobs"`
	Total int              `json:"total"`
}

type TaskListResponse struct {
	Tasks []models.TaskInfo `json:"tasks"`
	Total int               `json:"total"`
}

type HistoryListResponse struct {
	Page      int                   `json:"page"`
	PageCount int                   `json:"pageCount"`
	Total     int                   `json:"total"`
	Entries   []models.HistoryEntry `json:"entries"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
