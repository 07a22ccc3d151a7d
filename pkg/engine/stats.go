package engine

import (
	"github.com/kubev2v/jobrunner/pkg/gate"
	"github.com/kubev2v/jobrunner/pkg/scheduler"
	"github.com/kubev2v/jobrunner/pkg/task"
)

// Stats is a point-in-time view of an Environment.
type Stats struct {
	JobPool scheduler.Stats
	// TaskPool is the zero value until the factory created its pool.
	TaskPool     scheduler.Stats
	Gates        []gate.Stats
	OpenJobs     int
	TasksByState map[task.Status]int
}

func (e *Environment) Stats() Stats {
	taskPool, _ := e.factory.Stats()

	byState := map[task.Status]int{
		task.StatusPending:  0,
		task.StatusRunning:  0,
		task.StatusFinished: 0,
		task.StatusStopped:  0,
	}
	for _, info := range e.tasks.Snapshot() {
		byState[info.Status]++
	}

	return Stats{
		JobPool:      e.scheduler.Stats(),
		TaskPool:     taskPool,
		Gates:        e.gates.Stats(),
		OpenJobs:     e.jobs.Len(),
		TasksByState: byState,
	}
}
