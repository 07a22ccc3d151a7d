package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/kubev2v/jobrunner/internal/models"
	"github.com/kubev2v/jobrunner/pkg/engine"
	"github.com/kubev2v/jobrunner/pkg/job"
	"github.com/kubev2v/jobrunner/pkg/task"
)

const (
	DefaultRecorderBuffer  = 256
	DefaultRecorderRetries = 5

	defaultRetryInterval = 100 * time.Millisecond
	drainTimeout         = 5 * time.Second
	pruneInterval        = time.Hour
)

// HistoryWriter persists a history entry.
type HistoryWriter interface {
	Save(ctx context.Context, entry models.HistoryEntry) (models.HistoryEntry, error)
}

// HistoryPruner removes entries finished before a cutoff.
type HistoryPruner interface {
	DeleteOlderThan(ctx context.Context, t time.Time) (int64, error)
}

type RecorderStats struct {
	Recorded int64
	Failed   int64
	Dropped  int64
	Pruned   int64
}

type RecorderOption func(*HistoryRecorder)

func WithBufferSize(n int) RecorderOption {
	return func(r *HistoryRecorder) {
		if n > 0 {
			r.bufferSize = n
		}
	}
}

// WithMaxRetries sets the number of write attempts per entry.
func WithMaxRetries(n uint) RecorderOption {
	return func(r *HistoryRecorder) {
		if n > 0 {
			r.maxRetries = n
		}
	}
}

func WithRetryInterval(d time.Duration) RecorderOption {
	return func(r *HistoryRecorder) {
		if d > 0 {
			r.retryInterval = d
		}
	}
}

// WithRetention enables pruning of entries older than d. The pruner is usually the
// same history store as the writer.
func WithRetention(pruner HistoryPruner, d time.Duration) RecorderOption {
	return func(r *HistoryRecorder) {
		r.pruner = pruner
		r.retention = d
	}
}

// HistoryRecorder copies finished jobs and terminal tasks of an Environment into the
// history store. Entries are queued by the engine callbacks and written by Run, so a
// slow database never blocks a worker. When the queue is full entries are dropped.
type HistoryRecorder struct {
	env           *engine.Environment
	writer        HistoryWriter
	pruner        HistoryPruner
	retention     time.Duration
	bufferSize    int
	maxRetries    uint
	retryInterval time.Duration
	entries       chan models.HistoryEntry
	listenerID    task.ListenerID
	stopped       atomic.Bool
	logger        *zap.SugaredLogger

	recorded atomic.Int64
	failed   atomic.Int64
	dropped  atomic.Int64
	pruned   atomic.Int64
}

// NewHistoryRecorder subscribes to the job scheduler and the task registry of env.
func NewHistoryRecorder(env *engine.Environment, writer HistoryWriter, opts ...RecorderOption) *HistoryRecorder {
	r := &HistoryRecorder{
		env:           env,
		writer:        writer,
		bufferSize:    DefaultRecorderBuffer,
		maxRetries:    DefaultRecorderRetries,
		retryInterval: defaultRetryInterval,
		logger:        zap.S().Named("history_recorder"),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.entries = make(chan models.HistoryEntry, r.bufferSize)

	env.Scheduler().OnFinished(r.onJobFinished)
	r.listenerID = env.Tasks().RegisterListener(r.onTaskEvent)

	return r
}

// Run writes queued entries until ctx is done, then flushes what is left and
// unsubscribes from the task registry.
func (r *HistoryRecorder) Run(ctx context.Context) error {
	r.logger.Infow("history recorder started", "buffer", r.bufferSize, "max_retries", r.maxRetries)

	var prune <-chan time.Time
	if r.pruner != nil && r.retention > 0 {
		ticker := time.NewTicker(pruneInterval)
		defer ticker.Stop()
		prune = ticker.C
		r.prune(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			r.stop()
			return nil
		case e := <-r.entries:
			r.persist(ctx, e)
		case <-prune:
			r.prune(ctx)
		}
	}
}

func (r *HistoryRecorder) Stats() RecorderStats {
	return RecorderStats{
		Recorded: r.recorded.Load(),
		Failed:   r.failed.Load(),
		Dropped:  r.dropped.Load(),
		Pruned:   r.pruned.Load(),
	}
}

func (r *HistoryRecorder) stop() {
	r.stopped.Store(true)
	r.env.Tasks().UnregisterListener(r.listenerID)

	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	for {
		select {
		case e := <-r.entries:
			r.persist(ctx, e)
		default:
			r.logger.Infow("history recorder stopped", "recorded", r.recorded.Load(), "dropped", r.dropped.Load())
			return
		}
	}
}

func (r *HistoryRecorder) onJobFinished(w job.Work) {
	r.enqueue(models.NewJobHistoryEntry(w))
}

func (r *HistoryRecorder) onTaskEvent(e task.Event) {
	if e.Kind != task.EventStop {
		return
	}
	r.enqueue(models.NewTaskHistoryEntry(e.Info))
}

func (r *HistoryRecorder) enqueue(e models.HistoryEntry) {
	if r.stopped.Load() {
		return
	}
	select {
	case r.entries <- e:
	default:
		r.dropped.Add(1)
		r.logger.Warnw("history buffer full, entry dropped", "kind", e.Kind, "work_id", e.WorkID, "name", e.Name)
	}
}

func (r *HistoryRecorder) persist(ctx context.Context, e models.HistoryEntry) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.retryInterval

	saved, err := backoff.Retry(ctx, func() (models.HistoryEntry, error) {
		return r.writer.Save(ctx, e)
	}, backoff.WithBackOff(b), backoff.WithMaxTries(r.maxRetries))
	if err != nil {
		r.failed.Add(1)
		r.logger.Errorw("failed to persist history entry", "kind", e.Kind, "work_id", e.WorkID, "error", err)
		return
	}

	r.recorded.Add(1)
	r.logger.Debugw("history entry persisted", "id", saved.ID, "kind", saved.Kind, "work_id", saved.WorkID, "status", saved.Status)
}

func (r *HistoryRecorder) prune(ctx context.Context) {
	n, err := r.pruner.DeleteOlderThan(ctx, time.Now().Add(-r.retention))
	if err != nil {
		r.logger.Errorw("failed to prune history", "error", err)
		return
	}
	if n > 0 {
		r.pruned.Add(n)
		r.logger.Infow("history pruned", "removed", n, "retention", r.retention)
	}
}
