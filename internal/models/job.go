package models

import (
	"time"

	"github.com/kubev2v/jobrunner/pkg/job"
)

type JobInfo struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	User           string            `json:"user,omitempty"`
	Message        string            `json:"message,omitempty"`
	StatusMessages map[string]string `json:"statusMessages,omitempty"`
	Mode           string            `json:"mode"`
	WaitingFor     string            `json:"waitingFor"`
	Cancelled      bool              `json:"cancelled"`
	SubmittedAt    time.Time         `json:"submittedAt"`
	StartedAt      *time.Time        `json:"startedAt,omitempty"`
}

func NewJobInfo(w job.Work) JobInfo {
	info := JobInfo{
		ID:             w.ID(),
		Name:           w.Name(),
		User:           w.User(),
		Message:        w.Message(),
		StatusMessages: w.StatusMessages(),
		Mode:           w.Mode().String(),
		WaitingFor:     w.WaitingFor().String(),
		Cancelled:      w.IsCancelled(),
		SubmittedAt:    w.SubmittedAt(),
	}
	if started := w.StartedAt(); !started.IsZero() {
		info.StartedAt = &started
	}
	return info
}
