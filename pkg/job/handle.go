package job

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/jobrunner/pkg/gate"
	"github.com/kubev2v/jobrunner/pkg/scheduler"
)

var ErrWaitTimeout = errors.New("timed out waiting for job")

// Work is the type-erased view of a handle kept by the registry.
type Work interface {
	ID() string
	Name() string
	User() string
	Message() string
	StatusMessages() map[string]string
	Mode() gate.Mode
	// WaitingFor is the mode whose gate the job is blocked on, ModeNone otherwise.
	WaitingFor() gate.Mode
	IsDone() bool
	IsCancelled() bool
	SubmittedAt() time.Time
	StartedAt() time.Time
	FinishedAt() time.Time
	// Err is the error returned by the job body, if any.
	Err() error
	Cancel()
}

// state is the part of a handle that does not depend on the result type.
type state struct {
	id       string
	name     string
	user     string
	message  string
	status   func() map[string]string
	onCancel func()
	gates    *gate.Set
	logger   *zap.SugaredLogger

	ctx    context.Context
	cancel context.CancelFunc
	doneCh chan struct{}

	mu             sync.Mutex
	submittedAt    time.Time
	startedAt      time.Time
	finishedAt     time.Time
	cancelled      bool
	done           bool
	mode           gate.Mode
	held           *gate.Gate
	waitingFor     gate.Mode
	cancelListener func()
	err            error
}

func (s *state) ID() string { return s.id }

func (s *state) Name() string { return s.name }

func (s *state) User() string { return s.user }

func (s *state) Message() string { return s.message }

func (s *state) StatusMessages() map[string]string {
	if s.status == nil {
		return nil
	}
	return s.status()
}

func (s *state) Mode() gate.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *state) WaitingFor() gate.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waitingFor
}

func (s *state) IsDone() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func (s *state) IsCancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}

func (s *state) SubmittedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submittedAt
}

func (s *state) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startedAt
}

func (s *state) FinishedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finishedAt
}

func (s *state) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Cancel marks the job cancelled and wakes it if it is waiting on a gate.
// It does nothing once the job is done and never interrupts a running body.
func (s *state) Cancel() {
	s.mu.Lock()
	if s.done || s.cancelled {
		s.mu.Unlock()
		return
	}
	s.cancelled = true
	l := s.cancelListener
	s.mu.Unlock()

	s.cancel()
	s.safeCall("on cancel", s.onCancel)
	s.safeCall("cancel listener", l)
}

func (s *state) setCancelListener(cb func()) {
	s.mu.Lock()
	s.cancelListener = cb
	cancelled := s.cancelled
	s.mu.Unlock()

	if cancelled {
		s.safeCall("cancel listener", cb)
	}
}

func (s *state) setMode(mode gate.Mode) bool {
	s.releaseMode()

	if mode == gate.ModeNone || mode == "" {
		return true
	}

	g := s.gates.For(mode)
	if g == nil {
		s.logger.Warnw("unknown mode requested", "job", s.name, "id", s.id, "mode", mode)
		return false
	}

	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		return false
	}
	s.waitingFor = mode
	s.mu.Unlock()

	err := g.Acquire(s.ctx)

	s.mu.Lock()
	s.waitingFor = gate.ModeNone
	if err != nil {
		s.mu.Unlock()
		return false
	}
	if s.cancelled {
		s.mu.Unlock()
		g.Release()
		return false
	}
	s.mode = mode
	s.held = g
	s.mu.Unlock()

	return true
}

func (s *state) releaseMode() {
	s.mu.Lock()
	g := s.held
	s.held = nil
	s.mode = gate.ModeNone
	s.mu.Unlock()

	if g != nil {
		g.Release()
	}
}

func (s *state) markStarted() {
	s.mu.Lock()
	s.startedAt = time.Now()
	s.mu.Unlock()
}

// markFinished stamps the finish time before the permit is released, so a job admitted
// next on the same gate never appears to start before this one finished.
func (s *state) markFinished() {
	s.mu.Lock()
	if s.finishedAt.IsZero() {
		s.finishedAt = time.Now()
	}
	s.mu.Unlock()
}

func (s *state) safeCall(what string, fn func()) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorw(what+" panicked", "job", s.name, "id", s.id, "panic", r)
		}
	}()
	fn()
}

// Handle tracks a submitted job and carries its result.
type Handle[T any] struct {
	*state

	job      Job[T]
	listener func(*Handle[T])
	sched    *Scheduler

	result    T
	hasResult bool
}

func newHandle[T any](s *Scheduler, j Job[T], listener func(*Handle[T])) *Handle[T] {
	ctx, cancel := context.WithCancel(s.ctx)
	return &Handle[T]{
		state: &state{
			id:          newID(),
			name:        j.Name(),
			user:        j.User(),
			message:     j.Message(),
			status:      j.StatusMessages,
			onCancel:    j.OnCancel,
			gates:       s.gates,
			logger:      s.logger,
			ctx:         ctx,
			cancel:      cancel,
			doneCh:      make(chan struct{}),
			submittedAt: time.Now(),
			mode:        gate.ModeNone,
			waitingFor:  gate.ModeNone,
		},
		job:      j,
		listener: listener,
		sched:    s,
	}
}

// Run executes the job on a pool worker: acquire CPU, run the body, release, finish.
// StartedAt is stamped once the CPU permit is held, so a job that is never admitted keeps a zero start time.
func (h *Handle[T]) Run(ctx context.Context) {
	var (
		result T
		ok     bool
	)
	jctx := runContext{s: h.state}
	if jctx.SetMode(gate.ModeCPU) {
		h.markStarted()
		result, ok = h.runBody(jctx, scheduler.WorkerName(ctx))
		h.markFinished()
	} else {
		h.logger.Debugw("job not admitted", "job", h.name, "id", h.id, "cancelled", h.IsCancelled())
	}
	h.releaseMode()

	h.finish(result, ok)
}

// Discard finishes a handle dropped from the pool backlog as cancelled.
func (h *Handle[T]) Discard(err error) {
	h.logger.Debugw("job discarded", "job", h.name, "id", h.id, "error", err)
	h.Cancel()
	var zero T
	h.finish(zero, false)
}

func (h *Handle[T]) runBody(jctx Context, worker string) (result T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Errorw("job panicked", "job", h.name, "id", h.id, "worker", worker, "panic", r)
			h.mu.Lock()
			h.err = fmt.Errorf("job panicked: %v", r)
			h.mu.Unlock()
			var zero T
			result, ok = zero, false
		}
	}()

	h.logger.Debugw("job started", "job", h.name, "id", h.id, "worker", worker)

	v, err := h.job.Run(jctx)
	if err != nil {
		h.logger.Errorw("job failed", "job", h.name, "id", h.id, "worker", worker, "error", err)
		h.mu.Lock()
		h.err = err
		h.mu.Unlock()
		var zero T
		return zero, false
	}

	return v, true
}

func (h *Handle[T]) finish(result T, ok bool) {
	h.mu.Lock()
	if h.done {
		h.mu.Unlock()
		return
	}
	h.result = result
	h.hasResult = ok
	h.done = true
	if h.finishedAt.IsZero() {
		h.finishedAt = time.Now()
	}
	h.mu.Unlock()

	close(h.doneCh)
	h.cancel()

	if h.listener != nil {
		h.safeCall("completion listener", func() { h.listener(h) })
	}
	h.sched.finished(h)
}

// Done returns a channel closed when the job is done.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.doneCh
}

// WaitDone blocks until the job is done.
func (h *Handle[T]) WaitDone() {
	<-h.doneCh
}

// WaitDoneTimeout blocks for at most d and reports whether the job is done.
func (h *Handle[T]) WaitDoneTimeout(d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-h.doneCh:
		return true
	case <-t.C:
		return false
	}
}

// Wait blocks until the job is done or ctx is done.
func (h *Handle[T]) Wait(ctx context.Context) error {
	select {
	case <-h.doneCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Get blocks until the job is done and returns its result. The result is absent when the
// job was cancelled before it ran, was not admitted, failed or panicked.
func (h *Handle[T]) Get() (T, bool) {
	<-h.doneCh
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.result, h.hasResult
}

// GetTimeout is Get bounded by d. It returns ErrWaitTimeout if the job is not done in time.
func (h *Handle[T]) GetTimeout(d time.Duration) (T, bool, error) {
	if !h.WaitDoneTimeout(d) {
		var zero T
		return zero, false, ErrWaitTimeout
	}
	v, ok := h.Get()
	return v, ok, nil
}
