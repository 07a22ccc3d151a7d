package task

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kubev2v/jobrunner/pkg/scheduler"
)

// DefaultBacklog is the number of records a BoundedWorkerPool queues while all workers are busy.
const DefaultBacklog = 10

var ErrNilTask = errors.New("task cannot be nil")

// BoundedWorkerPool runs records on named workers with a small, fixed backlog.
type BoundedWorkerPool struct {
	pool   *scheduler.Scheduler
	logger *zap.SugaredLogger
}

// NewBoundedWorkerPool creates a pool sized by cfg. A zero QueueSize becomes DefaultBacklog.
func NewBoundedWorkerPool(cfg scheduler.Config, logger *zap.Logger) *BoundedWorkerPool {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultBacklog
	}
	if cfg.Name == "" {
		cfg.Name = "task"
	}
	if logger == nil {
		logger = zap.L()
	}
	return &BoundedWorkerPool{
		pool:   scheduler.NewSchedulerWithConfig(cfg, scheduler.WithLogger(logger)),
		logger: logger.Sugar().Named("task_pool"),
	}
}

// Execute queues r. It fails with ErrNilTask for a nil record and with
// scheduler.ErrQueueFull when the backlog is full. A rejected record stays PENDING.
func (p *BoundedWorkerPool) Execute(r *Record) error {
	if r == nil {
		return ErrNilTask
	}
	if err := p.pool.Submit(r); err != nil {
		p.logger.Errorw("failed to queue task", "task", r.name, "id", r.id, "error", err)
		return fmt.Errorf("failed to queue task %d: %w", r.id, err)
	}
	return nil
}

func (p *BoundedWorkerPool) Stats() scheduler.Stats {
	return p.pool.Stats()
}

// Close waits for running records. Queued records are stopped.
func (p *BoundedWorkerPool) Close() {
	p.pool.Close()
}
