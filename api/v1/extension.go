package v1

import (
	"fmt"
	"strings"

	"github.com/kubev2v/jobrunner/internal/models"
	"github.com/kubev2v/jobrunner/internal/services"
	"github.com/kubev2v/jobrunner/internal/util"
	"github.com/kubev2v/jobrunner/pkg/gate"
	"github.com/kubev2v/jobrunner/pkg/task"
)

// ToServiceParams converts job query parameters. The mode is matched case-insensitively.
func (p GetJobsParams) ToServiceParams() (services.JobListParams, error) {
	params := services.JobListParams{Name: p.Name, User: p.User}
	if p.Mode != "" {
		mode, ok := gate.ParseMode(p.Mode)
		if !ok {
			mode, ok = gate.ParseMode(strings.ToUpper(p.Mode))
		}
		if !ok {
			return services.JobListParams{}, fmt.Errorf("invalid mode: %s", p.Mode)
		}
		params.Mode = mode
	}
	return params, nil
}

// ToServiceParams converts task query parameters. Statuses are matched case-insensitively.
func (p GetTasksParams) ToServiceParams() (services.TaskListParams, error) {
	params := services.TaskListParams{Name: p.Name}
	for _, s := range util.SplitValues(p.Status) {
		status := task.Status(strings.ToUpper(s))
		switch status {
		case task.StatusPending, task.StatusRunning, task.StatusFinished, task.StatusStopped:
			params.Statuses = append(params.Statuses, status)
		default:
			return services.TaskListParams{}, fmt.Errorf("invalid task status: %s", s)
		}
	}
	return params, nil
}

// ToServiceParams converts history query parameters into a page of the given size.
func (p GetHistoryParams) ToServiceParams(page, pageSize int) (services.HistoryListParams, error) {
	params := services.HistoryListParams{
		Name:   p.Name,
		User:   p.User,
		Limit:  uint64(pageSize),
		Offset: uint64((page - 1) * pageSize),
	}
	for _, k := range util.SplitValues(p.Kind) {
		kind, err := models.ParseWorkKind(strings.ToLower(k))
		if err != nil {
			return services.HistoryListParams{}, err
		}
		params.Kinds = append(params.Kinds, kind)
	}
	for _, s := range util.SplitValues(p.Status) {
		status, err := models.ParseHistoryStatus(strings.ToLower(s))
		if err != nil {
			return services.HistoryListParams{}, err
		}
		params.Statuses = append(params.Statuses, status)
	}
	return params, nil
}
