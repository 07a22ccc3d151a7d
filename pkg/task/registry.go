package task

import (
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
)

const DefaultRetention = 30 * time.Minute

type EventKind string

const (
	EventStart EventKind = "start"
	EventStop  EventKind = "stop"
)

// Event reports a record lifecycle change. Info is taken when the event is emitted.
type Event struct {
	Kind EventKind
	Info Info
}

type Listener func(Event)

type ListenerID int64

// Filter selects records in a snapshot.
type Filter func(Info) bool

func ByStatus(statuses ...Status) Filter {
	return func(i Info) bool { return slices.Contains(statuses, i.Status) }
}

func ByName(name string) Filter {
	return func(i Info) bool { return i.Name == name }
}

type RecordOption func(*Record)

func WithPriority(p int) RecordOption {
	return func(r *Record) {
		r.priority = p
	}
}

type RegistryOption func(*Registry)

// WithRetention sets how long FINISHED and STOPPED records stay visible.
func WithRetention(d time.Duration) RegistryOption {
	return func(r *Registry) {
		if d > 0 {
			r.retention = d
		}
	}
}

// WithClock replaces time.Now for record timestamps and pruning.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

func WithLogger(l *zap.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l.Sugar().Named("task_registry")
		}
	}
}

// Registry keeps records from construction until their retention window elapses
// after they finish, and fans lifecycle events out to listeners.
type Registry struct {
	retention time.Duration
	now       func() time.Time
	logger    *zap.SugaredLogger

	mu           sync.Mutex
	seq          int64
	records      []*Record
	listeners    map[ListenerID]Listener
	nextListener ListenerID

	evMu       sync.Mutex
	pending    []Event
	delivering bool
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		retention: DefaultRetention,
		now:       time.Now,
		logger:    zap.S().Named("task_registry"),
		listeners: make(map[ListenerID]Listener),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Registry) Retention() time.Duration {
	return r.retention
}

// NewRecord creates a PENDING record and registers it.
func (r *Registry) NewRecord(name string, body Body, opts ...RecordOption) *Record {
	rec := &Record{
		name:     name,
		body:     body,
		registry: r,
		done:     make(chan struct{}),
		status:   StatusPending,
		pendAt:   r.now(),
	}
	for _, o := range opts {
		o(rec)
	}

	r.prune()

	r.mu.Lock()
	r.seq++
	rec.id = r.seq
	r.records = append(r.records, rec)
	r.mu.Unlock()

	return rec
}

func (r *Registry) Get(id int64) (*Record, bool) {
	for _, rec := range r.prune() {
		if rec.id == id {
			return rec, true
		}
	}
	return nil, false
}

// Records returns the registered records, oldest first, matching all filters.
func (r *Registry) Records(filters ...Filter) []*Record {
	var out []*Record
	for _, rec := range r.prune() {
		if matches(rec.Info(), filters) {
			out = append(out, rec)
		}
	}
	return out
}

// Snapshot returns copies of the registered records, oldest first, matching all filters.
func (r *Registry) Snapshot(filters ...Filter) []Info {
	out := []Info{}
	for _, rec := range r.prune() {
		if info := rec.Info(); matches(info, filters) {
			out = append(out, info)
		}
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.prune())
}

// RegisterListener adds l. Events are delivered one at a time in the order they occur.
func (r *Registry) RegisterListener(l Listener) ListenerID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextListener++
	r.listeners[r.nextListener] = l
	return r.nextListener
}

func (r *Registry) UnregisterListener(id ListenerID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.listeners, id)
}

// prune drops terminal records older than the retention window and returns the rest.
// Records are evaluated outside the registry lock.
func (r *Registry) prune() []*Record {
	r.mu.Lock()
	snapshot := slices.Clone(r.records)
	r.mu.Unlock()

	cutoff := r.now().Add(-r.retention)
	kept := make([]*Record, 0, len(snapshot))
	var expired map[int64]struct{}
	for _, rec := range snapshot {
		info := rec.Info()
		if info.Status.IsTerminal() && info.FinishAt.Before(cutoff) {
			if expired == nil {
				expired = make(map[int64]struct{})
			}
			expired[rec.id] = struct{}{}
			continue
		}
		kept = append(kept, rec)
	}

	if len(expired) > 0 {
		r.mu.Lock()
		r.records = slices.DeleteFunc(r.records, func(rec *Record) bool {
			_, found := expired[rec.id]
			return found
		})
		r.mu.Unlock()
		r.logger.Debugw("pruned tasks", "count", len(expired))
	}

	return kept
}

// emit queues an event and delivers the queue unless another goroutine is already doing so.
// Listeners may call back into the registry or into records.
func (r *Registry) emit(kind EventKind, rec *Record) {
	r.evMu.Lock()
	r.pending = append(r.pending, Event{Kind: kind, Info: rec.Info()})
	if r.delivering {
		r.evMu.Unlock()
		return
	}
	r.delivering = true
	for len(r.pending) > 0 {
		batch := r.pending
		r.pending = nil
		r.evMu.Unlock()

		for _, e := range batch {
			r.deliver(e)
		}

		r.evMu.Lock()
	}
	r.delivering = false
	r.evMu.Unlock()
}

func (r *Registry) deliver(e Event) {
	r.mu.Lock()
	ids := make([]ListenerID, 0, len(r.listeners))
	for id := range r.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	listeners := make([]Listener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, r.listeners[id])
	}
	r.mu.Unlock()

	for _, l := range listeners {
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					r.logger.Errorw("task listener panicked", "event", e.Kind, "task", e.Info.Name, "id", e.Info.ID, "panic", rec)
				}
			}()
			l(e)
		}()
	}
}

func matches(i Info, filters []Filter) bool {
	for _, f := range filters {
		if f != nil && !f(i) {
			return false
		}
	}
	return true
}
