package task

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/jobrunner/pkg/scheduler"
)

const (
	DefaultCoreWorkers = 2
	DefaultMaxWorkers  = 100
	DefaultKeepAlive   = 20 * time.Second
)

// WorkItem is a prioritized unit of work the factory turns into a Record.
type WorkItem struct {
	Name string
	// Priority is recorded on the record. Dispatch stays FIFO.
	Priority int
	Run      func(ctx context.Context) error
	// IsFinished, if set, lets an item that already completed skip Run.
	IsFinished func() bool
	// Wait, if set, blocks after Run until the item's own work completes.
	Wait func()
}

type FactoryOption func(*Factory)

// WithPoolSize sets the core size, max size and idle keep-alive of the factory's pool.
func WithPoolSize(core, maxWorkers int, keepAlive time.Duration) FactoryOption {
	return func(f *Factory) {
		f.cfg.CoreWorkers = core
		f.cfg.MaxWorkers = maxWorkers
		f.cfg.KeepAlive = keepAlive
	}
}

// WithPoolName sets the worker name prefix.
func WithPoolName(name string) FactoryOption {
	return func(f *Factory) {
		f.cfg.Name = name
	}
}

func WithFactoryLogger(l *zap.Logger) FactoryOption {
	return func(f *Factory) {
		if l != nil {
			f.logger = l
		}
	}
}

// Factory lazily builds a single BoundedWorkerPool and adapts work items into records.
type Factory struct {
	registry *Registry
	cfg      scheduler.Config
	logger   *zap.Logger

	once sync.Once
	mu   sync.Mutex
	pool *BoundedWorkerPool
}

func NewFactory(registry *Registry, opts ...FactoryOption) *Factory {
	f := &Factory{
		registry: registry,
		cfg: scheduler.Config{
			Name:        "task",
			CoreWorkers: DefaultCoreWorkers,
			MaxWorkers:  DefaultMaxWorkers,
			KeepAlive:   DefaultKeepAlive,
			QueueSize:   DefaultBacklog,
		},
		logger: zap.L(),
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// CreateWorkerQueue returns the factory's pool, creating it on first use.
func (f *Factory) CreateWorkerQueue() *BoundedWorkerPool {
	f.once.Do(func() {
		p := NewBoundedWorkerPool(f.cfg, f.logger)
		f.mu.Lock()
		f.pool = p
		f.mu.Unlock()
	})
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pool
}

// CreateWorkerTask registers a PENDING record running item.
func (f *Factory) CreateWorkerTask(item WorkItem) *Record {
	body := func(ctx context.Context) (any, error) {
		if item.IsFinished != nil && item.IsFinished() {
			return nil, nil
		}
		if item.Run != nil {
			if err := item.Run(ctx); err != nil {
				return nil, err
			}
		}
		if item.Wait != nil {
			item.Wait()
		}
		return nil, nil
	}
	return f.registry.NewRecord(item.Name, body, WithPriority(item.Priority))
}

func (f *Factory) Registry() *Registry {
	return f.registry
}

// Stats reports the pool statistics, or false if the pool was never created.
func (f *Factory) Stats() (scheduler.Stats, bool) {
	f.mu.Lock()
	p := f.pool
	f.mu.Unlock()
	if p == nil {
		return scheduler.Stats{}, false
	}
	return p.Stats(), true
}

// Close closes the pool if it was created.
func (f *Factory) Close() {
	f.mu.Lock()
	p := f.pool
	f.mu.Unlock()
	if p != nil {
		p.Close()
	}
}
