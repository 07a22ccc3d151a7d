package models

import (
	"time"

	"github.com/kubev2v/jobrunner/pkg/task"
)

type TaskInfo struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Priority      int        `json:"priority"`
	Status        string     `json:"status"`
	PendAt        time.Time  `json:"pendAt"`
	StartAt       *time.Time `json:"startAt,omitempty"`
	FinishAt      *time.Time `json:"finishAt,omitempty"`
	StopRequested bool       `json:"stopRequested"`
	Error         string     `json:"error,omitempty"`
}

func NewTaskInfo(i task.Info) TaskInfo {
	info := TaskInfo{
		ID:            i.ID,
		Name:          i.Name,
		Priority:      i.Priority,
		Status:        string(i.Status),
		PendAt:        i.PendAt,
		StopRequested: i.StopRequested,
	}
	if !i.StartAt.IsZero() {
		info.StartAt = &i.StartAt
	}
	if !i.FinishAt.IsZero() {
		info.FinishAt = &i.FinishAt
	}
	if i.Err != nil {
		info.Error = i.Err.Error()
	}
	return info
}
