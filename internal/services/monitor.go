package services

import (
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/kubev2v/jobrunner/internal/models"
	"github.com/kubev2v/jobrunner/pkg/engine"
	srvErrors "github.com/kubev2v/jobrunner/pkg/errors"
	"github.com/kubev2v/jobrunner/pkg/gate"
	"github.com/kubev2v/jobrunner/pkg/job"
	"github.com/kubev2v/jobrunner/pkg/task"
)

// Monitor exposes the live state of an Environment.
type Monitor struct {
	env    *engine.Environment
	logger *zap.SugaredLogger
}

func NewMonitorService(env *engine.Environment) *Monitor {
	return &Monitor{env: env, logger: zap.S().Named("monitor_service")}
}

type JobListParams struct {
	Name string
	User string
	Mode gate.Mode
}

// ListJobs returns the open jobs ordered by submission time.
func (m *Monitor) ListJobs(params JobListParams) []models.JobInfo {
	var filters []job.Filter
	if params.Name != "" {
		filters = append(filters, job.ByName(params.Name))
	}
	if params.User != "" {
		filters = append(filters, job.ByUser(params.User))
	}
	if params.Mode != "" {
		filters = append(filters, job.ByMode(params.Mode))
	}

	works := m.env.Jobs().Works(filters...)
	sort.SliceStable(works, func(i, j int) bool {
		return works[i].SubmittedAt().Before(works[j].SubmittedAt())
	})

	jobs := make([]models.JobInfo, 0, len(works))
	for _, w := range works {
		jobs = append(jobs, models.NewJobInfo(w))
	}
	return jobs
}

func (m *Monitor) GetJob(id string) (models.JobInfo, error) {
	w, ok := m.env.Jobs().Get(id)
	if !ok {
		return models.JobInfo{}, srvErrors.NewJobNotFoundError(id)
	}
	return models.NewJobInfo(w), nil
}

// CancelJob cancels an open job. Finished jobs are no longer registered and are reported as not found.
func (m *Monitor) CancelJob(id string) error {
	w, ok := m.env.Jobs().Get(id)
	if !ok {
		return srvErrors.NewJobNotFoundError(id)
	}
	w.Cancel()
	m.logger.Infow("job cancelled", "id", id, "name", w.Name())
	return nil
}

type TaskListParams struct {
	Statuses []task.Status
	Name     string
}

// ListTasks returns the registered tasks ordered by id.
func (m *Monitor) ListTasks(params TaskListParams) []models.TaskInfo {
	var filters []task.Filter
	if len(params.Statuses) > 0 {
		filters = append(filters, task.ByStatus(params.Statuses...))
	}
	if params.Name != "" {
		filters = append(filters, task.ByName(params.Name))
	}

	infos := m.env.Tasks().Snapshot(filters...)
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})

	tasks := make([]models.TaskInfo, 0, len(infos))
	for _, i := range infos {
		tasks = append(tasks, models.NewTaskInfo(i))
	}
	return tasks
}

func (m *Monitor) GetTask(id int64) (models.TaskInfo, error) {
	r, ok := m.env.Tasks().Get(id)
	if !ok {
		return models.TaskInfo{}, srvErrors.NewTaskNotFoundError(id)
	}
	return models.NewTaskInfo(r.Info()), nil
}

// StopTask requests a stop. A pending task is stopped immediately, a running one is
// signalled through its context.
func (m *Monitor) StopTask(id int64) (models.TaskInfo, error) {
	r, ok := m.env.Tasks().Get(id)
	if !ok {
		return models.TaskInfo{}, srvErrors.NewTaskNotFoundError(id)
	}
	if status := r.Status(); status.IsTerminal() {
		return models.TaskInfo{}, srvErrors.NewTaskFinishedError(id, string(status))
	}

	r.RequestStop()
	m.logger.Infow("task stop requested", "id", id, "name", r.Name())
	return models.NewTaskInfo(r.Info()), nil
}

func (m *Monitor) Stats() models.EngineStats {
	return models.NewEngineStats(m.env.Stats())
}

// ParseTaskID parses a task id path parameter.
func ParseTaskID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, srvErrors.NewInvalidArgumentError("id", s)
	}
	return id, nil
}
