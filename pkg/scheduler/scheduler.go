package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

var (
	ErrSchedulerClosed = errors.New("scheduler is closed")
	ErrQueueFull       = errors.New("scheduler queue is full")
	ErrNilRunnable     = errors.New("runnable cannot be nil")

	// errClosed is what discarded work observes. It matches both
	// ErrSchedulerClosed and context.Canceled.
	errClosed = fmt.Errorf("%w: %w", ErrSchedulerClosed, context.Canceled)
)

const (
	defaultWorkerName = "worker"
	defaultKeepAlive  = 10 * time.Second
)

type queue[T any] []T

func (wq *queue[T]) Len() int { return len(*wq) }

func (wq *queue[T]) Pop() T {
	old := *wq
	x := old[0]
	var zero T
	old[0] = zero
	*wq = old[1:]
	return x
}

func (wq *queue[T]) Push(t T) {
	*wq = append(*wq, t)
}

type workRequest struct {
	fn  Work[any]
	c   chan Result[any]
	ctx context.Context
}

func (r *workRequest) Run(_ context.Context) {
	defer func() {
		if rec := recover(); rec != nil {
			r.c <- Result[any]{Err: fmt.Errorf("worker panicked: %v", rec)}
		}
	}()

	v, err := r.fn(r.ctx)
	r.c <- Result[any]{Data: v, Err: err}
}

func (r *workRequest) Discard(err error) {
	r.c <- Result[any]{Err: err}
}

type submission struct {
	r   Runnable
	ack chan error
}

type eventKind int

const (
	workerDone eventKind = iota
	workerExpired
)

type workerEvent struct {
	w    *worker
	kind eventKind
}

type workerNameKey struct{}

// WorkerName returns the name of the worker running the current unit of work.
func WorkerName(ctx context.Context) string {
	name, _ := ctx.Value(workerNameKey{}).(string)
	return name
}

type worker struct {
	name string
	in   chan Runnable
	s    *Scheduler
	// idle is owned by the scheduler loop.
	idle bool
}

func (w *worker) loop() {
	defer w.s.wg.Done()

	ctx := context.WithValue(w.s.mainCtx, workerNameKey{}, w.name)
	timer := time.NewTimer(w.s.cfg.KeepAlive)
	defer timer.Stop()

	for {
		select {
		case r, ok := <-w.in:
			if !ok {
				return
			}
			w.execute(ctx, r)
			w.s.events <- workerEvent{w: w, kind: workerDone}
			timer.Reset(w.s.cfg.KeepAlive)
		case <-timer.C:
			// the loop decides whether we retire; a retired worker sees w.in closed
			w.s.events <- workerEvent{w: w, kind: workerExpired}
		case <-w.s.mainCtx.Done():
			// work handed over right before shutdown still runs
			select {
			case r, ok := <-w.in:
				if ok {
					w.execute(ctx, r)
				}
			default:
			}
			return
		}
	}
}

func (w *worker) execute(ctx context.Context, r Runnable) {
	defer func() {
		if rec := recover(); rec != nil {
			w.s.logger.Errorw("worker panicked", "worker", w.name, "panic", rec)
		}
	}()

	r.Run(ctx)
}

type Scheduler struct {
	cfg        Config
	logger     *zap.SugaredLogger
	workQueue  *queue[Runnable]
	idle       []*worker
	live       int
	seq        int
	close      chan any
	stopped    chan any
	events     chan workerEvent
	work       chan submission
	mainCtx    context.Context
	mainCancel context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once

	nWorkers   atomic.Int64
	nIdle      atomic.Int64
	nActive    atomic.Int64
	nQueued    atomic.Int64
	nCompleted atomic.Int64
	nRejected  atomic.Int64
}

// NewScheduler creates a scheduler with a fixed pool of nbWorkers and an unbounded backlog.
func NewScheduler(nbWorkers int) *Scheduler {
	return NewSchedulerWithConfig(Config{
		CoreWorkers: nbWorkers,
		MaxWorkers:  nbWorkers,
	})
}

// NewSchedulerWithConfig creates a scheduler whose workers are spawned on demand up to
// cfg.MaxWorkers and retire after cfg.KeepAlive when more than cfg.CoreWorkers are alive.
func NewSchedulerWithConfig(cfg Config, opts ...Option) *Scheduler {
	cfg = normalize(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cfg:        cfg,
		logger:     zap.L().Sugar().Named("scheduler"),
		workQueue:  &queue[Runnable]{},
		close:      make(chan any),
		stopped:    make(chan any),
		events:     make(chan workerEvent, 2*cfg.MaxWorkers),
		work:       make(chan submission),
		mainCtx:    ctx,
		mainCancel: cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.run()
	return s
}

// Option customizes a scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used for worker diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l.Sugar().Named("scheduler")
		}
	}
}

func normalize(cfg Config) Config {
	if cfg.Name == "" {
		cfg.Name = defaultWorkerName
	}
	if cfg.CoreWorkers < 0 {
		cfg.CoreWorkers = 0
	}
	if cfg.MaxWorkers < 1 {
		cfg.MaxWorkers = max(cfg.CoreWorkers, 1)
	}
	if cfg.CoreWorkers > cfg.MaxWorkers {
		cfg.CoreWorkers = cfg.MaxWorkers
	}
	if cfg.KeepAlive <= 0 {
		cfg.KeepAlive = defaultKeepAlive
	}
	if cfg.QueueSize < 0 {
		cfg.QueueSize = 0
	}
	return cfg
}

// Config returns the effective configuration.
func (s *Scheduler) Config() Config {
	return s.cfg
}

// Submit hands r to the scheduler. It never waits for r to run.
func (s *Scheduler) Submit(r Runnable) error {
	if r == nil {
		return ErrNilRunnable
	}

	ack := make(chan error, 1)
	select {
	case <-s.mainCtx.Done():
		return ErrSchedulerClosed
	case s.work <- submission{r: r, ack: ack}:
	}

	return <-ack
}

func (s *Scheduler) AddWork(w Work[any]) *Future[Result[any]] {
	c := make(chan Result[any], 1)
	ctx, cancel := context.WithCancel(s.mainCtx)

	if err := s.Submit(&workRequest{fn: w, c: c, ctx: ctx}); err != nil {
		if errors.Is(err, ErrSchedulerClosed) {
			// we're closing here so send a result with an error
			err = errClosed
		}
		c <- Result[any]{Err: err}
	}

	return NewFuture(c, cancel)
}

// Close cancels the running work's context, discards the backlog and waits for in-flight work
// and for every Discard call to return.
func (s *Scheduler) Close() {
	s.once.Do(func() {
		s.mainCancel()
		s.close <- struct{}{}
		<-s.stopped
	})
}

func (s *Scheduler) Stats() Stats {
	return Stats{
		Name:      s.cfg.Name,
		Workers:   s.nWorkers.Load(),
		Idle:      s.nIdle.Load(),
		Active:    s.nActive.Load(),
		Queued:    s.nQueued.Load(),
		Completed: s.nCompleted.Load(),
		Rejected:  s.nRejected.Load(),
	}
}

func (s *Scheduler) run() {
	defer close(s.stopped)
	for {
		select {
		case sub := <-s.work:
			sub.ack <- s.enqueue(sub.r)
		case e := <-s.events:
			switch e.kind {
			case workerDone:
				s.nActive.Add(-1)
				s.nCompleted.Add(1)
				e.w.idle = true
				s.idle = append(s.idle, e.w)
				s.dispatch()
			case workerExpired:
				s.retire(e.w)
			}
		case <-s.close:
			s.shutdown()
			return
		}
		s.publish()
	}
}

func (s *Scheduler) enqueue(r Runnable) error {
	// a non-empty backlog means every worker is busy
	if s.cfg.QueueSize > 0 && s.workQueue.Len() >= s.cfg.QueueSize {
		s.nRejected.Add(1)
		return ErrQueueFull
	}
	s.workQueue.Push(r)
	s.dispatch()
	return nil
}

// dispatch drains the workQueue as much as possible
// based on available workers
func (s *Scheduler) dispatch() {
	for s.workQueue.Len() > 0 {
		w := s.nextWorker()
		if w == nil {
			return
		}
		w.idle = false
		s.nActive.Add(1)
		w.in <- s.workQueue.Pop()
	}
}

// nextWorker prefers the most recently idle worker so that cold ones can expire.
func (s *Scheduler) nextWorker() *worker {
	if n := len(s.idle); n > 0 {
		w := s.idle[n-1]
		s.idle[n-1] = nil
		s.idle = s.idle[:n-1]
		return w
	}
	if s.live < s.cfg.MaxWorkers {
		return s.spawn()
	}
	return nil
}

func (s *Scheduler) spawn() *worker {
	s.seq++
	s.live++
	w := &worker{
		name: fmt.Sprintf("%s-%d", s.cfg.Name, s.seq),
		in:   make(chan Runnable, 1),
		s:    s,
	}
	s.wg.Add(1)
	go w.loop()
	return w
}

func (s *Scheduler) retire(w *worker) {
	if !w.idle || s.live <= s.cfg.CoreWorkers {
		return
	}
	for i, iw := range s.idle {
		if iw == w {
			s.idle = append(s.idle[:i], s.idle[i+1:]...)
			break
		}
	}
	s.live--
	close(w.in)
	s.logger.Debugw("worker retired", "worker", w.name, "workers", s.live)
}

func (s *Scheduler) shutdown() {
	for s.workQueue.Len() > 0 {
		if d, ok := s.workQueue.Pop().(Discarder); ok {
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				defer func() {
					if rec := recover(); rec != nil {
						s.logger.Errorw("discard panicked", "panic", rec)
					}
				}()
				d.Discard(errClosed)
			}()
		}
	}
	for _, w := range s.idle {
		close(w.in)
	}
	s.idle = nil
	s.wg.Wait()
	s.live = 0
	s.publish()
}

func (s *Scheduler) publish() {
	s.nWorkers.Store(int64(s.live))
	s.nIdle.Store(int64(len(s.idle)))
	s.nQueued.Store(int64(s.workQueue.Len()))
}
