package models

import (
	"fmt"
	"time"

	"github.com/kubev2v/jobrunner/pkg/job"
	"github.com/kubev2v/jobrunner/pkg/task"
)

type WorkKind string

const (
	WorkKindJob  WorkKind = "job"
	WorkKindTask WorkKind = "task"
)

func ParseWorkKind(s string) (WorkKind, error) {
	switch s {
	case "job":
		return WorkKindJob, nil
	case "task":
		return WorkKindTask, nil
	default:
		return "", fmt.Errorf("invalid work kind: %s", s)
	}
}

type HistoryStatus string

const (
	HistoryStatusCompleted HistoryStatus = "completed"
	HistoryStatusFailed    HistoryStatus = "failed"
	HistoryStatusCancelled HistoryStatus = "cancelled"
	HistoryStatusStopped   HistoryStatus = "stopped"
)

func ParseHistoryStatus(s string) (HistoryStatus, error) {
	switch HistoryStatus(s) {
	case HistoryStatusCompleted, HistoryStatusFailed, HistoryStatusCancelled, HistoryStatusStopped:
		return HistoryStatus(s), nil
	default:
		return "", fmt.Errorf("invalid history status: %s", s)
	}
}

// HistoryEntry is a finished job or task as persisted by the history store.
type HistoryEntry struct {
	ID          int64         `json:"id"`
	Kind        WorkKind      `json:"kind"`
	WorkID      string        `json:"workId"`
	Name        string        `json:"name"`
	User        string        `json:"user,omitempty"`
	Status      HistoryStatus `json:"status"`
	Error       string        `json:"error,omitempty"`
	SubmittedAt time.Time     `json:"submittedAt"`
	StartedAt   *time.Time    `json:"startedAt,omitempty"`
	FinishedAt  time.Time     `json:"finishedAt"`
}

func (h HistoryEntry) Duration() time.Duration {
	if h.StartedAt == nil {
		return 0
	}
	return h.FinishedAt.Sub(*h.StartedAt)
}

func NewJobHistoryEntry(w job.Work) HistoryEntry {
	e := HistoryEntry{
		Kind:        WorkKindJob,
		WorkID:      w.ID(),
		Name:        w.Name(),
		User:        w.User(),
		Status:      HistoryStatusCompleted,
		SubmittedAt: w.SubmittedAt(),
		FinishedAt:  w.FinishedAt(),
	}
	if started := w.StartedAt(); !started.IsZero() {
		e.StartedAt = &started
	}
	switch err := w.Err(); {
	case w.IsCancelled():
		e.Status = HistoryStatusCancelled
	case err != nil:
		e.Status = HistoryStatusFailed
		e.Error = err.Error()
	}
	return e
}

// NewTaskHistoryEntry builds an entry from a terminal task.
func NewTaskHistoryEntry(i task.Info) HistoryEntry {
	e := HistoryEntry{
		Kind:        WorkKindTask,
		WorkID:      fmt.Sprintf("%d", i.ID),
		Name:        i.Name,
		Status:      HistoryStatusCompleted,
		SubmittedAt: i.PendAt,
		FinishedAt:  i.FinishAt,
	}
	if !i.StartAt.IsZero() {
		e.StartedAt = &i.StartAt
	}
	switch {
	case i.Status == task.StatusStopped:
		e.Status = HistoryStatusStopped
	case i.Err != nil:
		e.Status = HistoryStatusFailed
	}
	if i.Err != nil {
		e.Error = i.Err.Error()
	}
	return e
}
