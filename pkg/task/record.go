package task

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusRunning  Status = "RUNNING"
	StatusFinished Status = "FINISHED"
	StatusStopped  Status = "STOPPED"
)

func (s Status) IsTerminal() bool {
	return s == StatusFinished || s == StatusStopped
}

// Body is the work a record runs. ctx is cancelled by RequestStop.
type Body func(ctx context.Context) (any, error)

// Info is a point-in-time copy of a record.
type Info struct {
	ID            int64
	Name          string
	Priority      int
	Status        Status
	PendAt        time.Time
	StartAt       time.Time
	FinishAt      time.Time
	StopRequested bool
	Result        any
	Err           error
}

// Record is a status-tracked unit of work.
// Status only moves forward: PENDING -> RUNNING -> FINISHED|STOPPED, or PENDING -> STOPPED.
type Record struct {
	id       int64
	name     string
	priority int
	body     Body
	registry *Registry
	done     chan struct{}

	mu            sync.Mutex
	status        Status
	pendAt        time.Time
	startAt       time.Time
	finishAt      time.Time
	stopRequested bool
	cancel        context.CancelFunc
	result        any
	err           error
}

func (r *Record) ID() int64 {
	return r.id
}

func (r *Record) Name() string {
	return r.name
}

// Priority is advisory. Pools dispatch records in FIFO order.
func (r *Record) Priority() int {
	return r.priority
}

func (r *Record) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *Record) Info() Info {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Info{
		ID:            r.id,
		Name:          r.name,
		Priority:      r.priority,
		Status:        r.status,
		PendAt:        r.pendAt,
		StartAt:       r.startAt,
		FinishAt:      r.finishAt,
		StopRequested: r.stopRequested,
		Result:        r.result,
		Err:           r.err,
	}
}

// IsFinished reports whether the record reached FINISHED or STOPPED.
func (r *Record) IsFinished() bool {
	return r.Status().IsTerminal()
}

// Done returns a channel closed once the record is FINISHED or STOPPED.
func (r *Record) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the record is FINISHED or STOPPED, or ctx is done.
func (r *Record) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Call runs the record: mark RUNNING, broadcast start, run the body, mark FINISHED or
// STOPPED, broadcast stop. A record stopped before it started is left untouched.
func (r *Record) Call(ctx context.Context) {
	r.mu.Lock()
	if r.stopRequested || r.status != StatusPending {
		r.mu.Unlock()
		return
	}
	bctx, cancel := context.WithCancel(ctx)
	defer cancel()
	r.cancel = cancel
	r.status = StatusRunning
	r.startAt = r.registry.now()
	r.finishAt = time.Time{}
	r.mu.Unlock()

	r.registry.emit(EventStart, r)

	result, err := r.run(bctx)

	r.mu.Lock()
	r.result = result
	r.err = err
	r.cancel = nil
	if r.stopRequested {
		r.status = StatusStopped
	} else {
		r.status = StatusFinished
	}
	r.finishAt = r.registry.now()
	r.mu.Unlock()

	close(r.done)
	r.registry.emit(EventStop, r)
}

// Run lets pools execute the record.
func (r *Record) Run(ctx context.Context) {
	r.Call(ctx)
}

// Discard stops a record dropped from a pool backlog.
func (r *Record) Discard(err error) {
	r.registry.logger.Debugw("task discarded", "task", r.name, "id", r.id, "error", err)
	r.RequestStop()
}

// RequestStop asks the record to stop. A record that has not started is finalized
// as STOPPED at once and its body never runs. A running record has its body's
// context cancelled and ends STOPPED once the body returns.
func (r *Record) RequestStop() {
	r.mu.Lock()
	if r.status.IsTerminal() || r.stopRequested {
		r.mu.Unlock()
		return
	}
	r.stopRequested = true

	if r.status == StatusPending {
		now := r.registry.now()
		r.status = StatusStopped
		r.startAt = now
		r.finishAt = now
		r.mu.Unlock()

		close(r.done)
		r.registry.emit(EventStop, r)
		return
	}

	cancel := r.cancel
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (r *Record) run(ctx context.Context) (result any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.registry.logger.Errorw("task panicked", "task", r.name, "id", r.id, "panic", rec)
			result, err = nil, fmt.Errorf("task panicked: %v", rec)
		}
	}()

	if r.body == nil {
		return nil, nil
	}

	result, err = r.body(ctx)
	if err != nil {
		r.registry.logger.Errorw("task failed", "task", r.name, "id", r.id, "error", err)
	}
	return result, err
}
