package models

import (
	"github.com/kubev2v/jobrunner/pkg/engine"
	"github.com/kubev2v/jobrunner/pkg/scheduler"
)

type PoolStats struct {
	Name      string `json:"name"`
	Workers   int64  `json:"workers"`
	Idle      int64  `json:"idle"`
	Active    int64  `json:"active"`
	Queued    int64  `json:"queued"`
	Completed int64  `json:"completed"`
	Rejected  int64  `json:"rejected"`
}

type GateStats struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Held     int    `json:"held"`
}

type EngineStats struct {
	JobPool  PoolStats      `json:"jobPool"`
	TaskPool PoolStats      `json:"taskPool"`
	Gates    []GateStats    `json:"gates"`
	OpenJobs int            `json:"openJobs"`
	Tasks    map[string]int `json:"tasks"`
}

func NewEngineStats(s engine.Stats) EngineStats {
	out := EngineStats{
		JobPool:  newPoolStats(s.JobPool),
		TaskPool: newPoolStats(s.TaskPool),
		Gates:    make([]GateStats, 0, len(s.Gates)),
		OpenJobs: s.OpenJobs,
		Tasks:    make(map[string]int, len(s.TasksByState)),
	}
	for _, g := range s.Gates {
		out.Gates = append(out.Gates, GateStats{Name: g.Name, Capacity: g.Capacity, Held: g.Held})
	}
	for status, n := range s.TasksByState {
		out.Tasks[string(status)] = n
	}
	return out
}

func newPoolStats(s scheduler.Stats) PoolStats {
	return PoolStats{
		Name:      s.Name,
		Workers:   s.Workers,
		Idle:      s.Idle,
		Active:    s.Active,
		Queued:    s.Queued,
		Completed: s.Completed,
		Rejected:  s.Rejected,
	}
}
