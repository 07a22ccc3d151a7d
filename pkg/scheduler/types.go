package scheduler

import (
	"context"
	"time"
)

type Work[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	Data T
	Err  error
}

type Future[T any] struct {
	input  chan T
	cancel context.CancelFunc
}

func NewFuture[T any](input chan T, cancel context.CancelFunc) *Future[T] {
	f := &Future[T]{
		input:  input,
		cancel: cancel,
	}

	return f
}

func (f *Future[T]) C() chan T {
	return f.input
}

func (f *Future[T]) Stop() {
	f.cancel()
}

// Runnable is a unit of work executed by one of the scheduler's workers.
// The context is cancelled when the scheduler is closed and carries the worker name.
type Runnable interface {
	Run(ctx context.Context)
}

// RunnableFunc adapts a plain function to Runnable.
type RunnableFunc func(ctx context.Context)

func (f RunnableFunc) Run(ctx context.Context) {
	f(ctx)
}

// Discarder is implemented by runnables that need to know when the scheduler
// drops them from the backlog without running them.
// Discard is called on its own goroutine while the scheduler closes, so it may run
// listeners or other caller code. Close returns once every Discard has returned.
type Discarder interface {
	Discard(err error)
}

// Config sizes a scheduler.
type Config struct {
	// Name is the prefix of the worker names ("<Name>-<n>").
	Name string
	// CoreWorkers is the number of workers kept alive while idle.
	CoreWorkers int
	// MaxWorkers caps the number of concurrent workers.
	MaxWorkers int
	// KeepAlive is how long a worker above CoreWorkers may stay idle before it retires.
	KeepAlive time.Duration
	// QueueSize bounds the backlog of work waiting for a worker. Zero means unbounded.
	QueueSize int
}

// Stats is a point-in-time view of the scheduler.
type Stats struct {
	Name      string
	Workers   int64
	Idle      int64
	Active    int64
	Queued    int64
	Completed int64
	Rejected  int64
}
