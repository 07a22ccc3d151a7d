// Package engine wires the job and task engines into one Environment.
//
// An Environment owns everything that would otherwise be process-wide: the CPU and
// NETWORK gates, the job registry and scheduler, the task registry and the task pool
// factory. Environments are independent of each other, so tests can run several side by side.
//
//	env := engine.New(engine.WithCPUCapacity(4))
//	defer env.Close()
//
//	h := job.Submit(env.Scheduler(), myJob, nil)
//	result, ok := h.Get()
package engine

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/jobrunner/pkg/gate"
	"github.com/kubev2v/jobrunner/pkg/job"
	"github.com/kubev2v/jobrunner/pkg/scheduler"
	"github.com/kubev2v/jobrunner/pkg/task"
)

type options struct {
	cpuCapacity     int
	networkCapacity int
	jobPool         scheduler.Config
	taskCore        int
	taskMax         int
	taskKeepAlive   time.Duration
	taskRetention   time.Duration
	clock           func() time.Time
	logger          *zap.Logger
}

type Option func(*options)

func WithCPUCapacity(n int) Option {
	return func(o *options) {
		o.cpuCapacity = n
	}
}

func WithNetworkCapacity(n int) Option {
	return func(o *options) {
		o.networkCapacity = n
	}
}

// WithJobPool sizes the shared job pool.
func WithJobPool(core, maxWorkers int, keepAlive time.Duration) Option {
	return func(o *options) {
		o.jobPool.CoreWorkers = core
		o.jobPool.MaxWorkers = maxWorkers
		o.jobPool.KeepAlive = keepAlive
	}
}

// WithTaskPool sizes the pool created by the task factory.
func WithTaskPool(core, maxWorkers int, keepAlive time.Duration) Option {
	return func(o *options) {
		o.taskCore = core
		o.taskMax = maxWorkers
		o.taskKeepAlive = keepAlive
	}
}

func WithTaskRetention(d time.Duration) Option {
	return func(o *options) {
		o.taskRetention = d
	}
}

// WithClock replaces time.Now for task timestamps and retention.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Environment owns the gates, registries and pools of one engine instance.
type Environment struct {
	gates     *gate.Set
	jobs      *job.Registry
	scheduler *job.Scheduler
	tasks     *task.Registry
	factory   *task.Factory
	logger    *zap.SugaredLogger
	closeOnce sync.Once
}

func New(opts ...Option) *Environment {
	o := options{
		cpuCapacity:     gate.DefaultCapacity,
		networkCapacity: gate.DefaultCapacity,
		jobPool:         job.DefaultPoolConfig(),
		taskCore:        task.DefaultCoreWorkers,
		taskMax:         task.DefaultMaxWorkers,
		taskKeepAlive:   task.DefaultKeepAlive,
		taskRetention:   task.DefaultRetention,
		logger:          zap.L(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	gates := gate.NewSet(o.cpuCapacity, o.networkCapacity)
	jobs := job.NewRegistry()
	pool := scheduler.NewSchedulerWithConfig(o.jobPool, scheduler.WithLogger(o.logger))
	sched := job.NewScheduler(pool, gates, jobs, job.WithLogger(o.logger))

	registryOpts := []task.RegistryOption{
		task.WithRetention(o.taskRetention),
		task.WithLogger(o.logger),
	}
	if o.clock != nil {
		registryOpts = append(registryOpts, task.WithClock(o.clock))
	}
	tasks := task.NewRegistry(registryOpts...)
	factory := task.NewFactory(tasks,
		task.WithPoolSize(o.taskCore, o.taskMax, o.taskKeepAlive),
		task.WithFactoryLogger(o.logger),
	)

	env := &Environment{
		gates:     gates,
		jobs:      jobs,
		scheduler: sched,
		tasks:     tasks,
		factory:   factory,
		logger:    o.logger.Sugar().Named("engine"),
	}
	env.logger.Debugw("environment created",
		"cpu_capacity", gates.CPU().Capacity(),
		"network_capacity", gates.Network().Capacity(),
		"job_max_workers", pool.Config().MaxWorkers,
		"task_retention", tasks.Retention(),
	)
	return env
}

func (e *Environment) Gates() *gate.Set {
	return e.gates
}

func (e *Environment) Jobs() *job.Registry {
	return e.jobs
}

func (e *Environment) Scheduler() *job.Scheduler {
	return e.scheduler
}

func (e *Environment) Tasks() *task.Registry {
	return e.tasks
}

func (e *Environment) Factory() *task.Factory {
	return e.factory
}

// Close shuts down the job pool and the task pool. It is safe to call more than once.
func (e *Environment) Close() {
	e.closeOnce.Do(func() {
		e.scheduler.Close()
		e.factory.Close()
		e.logger.Debug("environment closed")
	})
}
