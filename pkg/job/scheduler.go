package job

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kubev2v/jobrunner/pkg/gate"
	"github.com/kubev2v/jobrunner/pkg/scheduler"
)

const (
	DefaultCoreWorkers = 2
	DefaultMaxWorkers  = 100
	DefaultKeepAlive   = 10 * time.Second
)

// DefaultPoolConfig sizes the shared job pool. The backlog is unbounded.
func DefaultPoolConfig() scheduler.Config {
	return scheduler.Config{
		Name:        "job",
		CoreWorkers: DefaultCoreWorkers,
		MaxWorkers:  DefaultMaxWorkers,
		KeepAlive:   DefaultKeepAlive,
	}
}

// Scheduler dispatches jobs to a worker pool and tracks them in a registry.
// Use Submit to run a job.
type Scheduler struct {
	pool     *scheduler.Scheduler
	gates    *gate.Set
	registry *Registry
	logger   *zap.SugaredLogger

	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.RWMutex
	hooks []func(Work)
}

type Option func(*Scheduler)

func WithLogger(l *zap.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l.Sugar().Named("job_scheduler")
		}
	}
}

// NewScheduler creates a job scheduler over pool. The scheduler owns the pool: Close closes it.
func NewScheduler(pool *scheduler.Scheduler, gates *gate.Set, registry *Registry, opts ...Option) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		pool:     pool,
		gates:    gates,
		registry: registry,
		logger:   zap.S().Named("job_scheduler"),
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Submit registers j and hands it to the pool. It never blocks on execution and never panics:
// if the job cannot be submitted the failure is logged and nil is returned.
// listener, if not nil, is called once the job is done.
func Submit[T any](s *Scheduler, j Job[T], listener func(*Handle[T])) (h *Handle[T]) {
	if s == nil || j == nil {
		zap.S().Named("job_scheduler").Errorw("failed to submit job", "error", "nil scheduler or job")
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorw("failed to submit job", "panic", r)
			if h != nil {
				s.registry.Remove(h)
				h.cancel()
			}
			h = nil
		}
	}()

	h = newHandle(s, j, listener)
	s.registry.Add(h)

	if err := s.pool.Submit(h); err != nil {
		s.logger.Errorw("failed to submit job", "job", h.name, "id", h.id, "error", err)
		s.registry.Remove(h)
		h.cancel()
		return nil
	}

	s.logger.Debugw("job submitted", "job", h.name, "id", h.id, "user", h.user)
	return h
}

// Execute runs fn on the pool without a handle or admission control.
func (s *Scheduler) Execute(fn func(ctx context.Context)) error {
	if fn == nil {
		return scheduler.ErrNilRunnable
	}
	return s.pool.Submit(scheduler.RunnableFunc(fn))
}

// OnFinished registers a hook called with every job once it is done.
// Hooks run on the worker that finished the job and must not block.
func (s *Scheduler) OnFinished(hook func(Work)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, hook)
}

func (s *Scheduler) Registry() *Registry {
	return s.registry
}

func (s *Scheduler) Gates() *gate.Set {
	return s.gates
}

func (s *Scheduler) Stats() scheduler.Stats {
	return s.pool.Stats()
}

// Close cancels every outstanding job's context and closes the pool.
// Jobs still queued finish as cancelled.
func (s *Scheduler) Close() {
	s.cancel()
	s.pool.Close()
}

func (s *Scheduler) finished(w Work) {
	s.mu.RLock()
	hooks := s.hooks
	s.mu.RUnlock()

	for _, hook := range hooks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					s.logger.Errorw("finish hook panicked", "job", w.Name(), "id", w.ID(), "panic", r)
				}
			}()
			hook(w)
		}()
	}

	s.registry.Remove(w)
}

func newID() string {
	return uuid.NewString()
}
