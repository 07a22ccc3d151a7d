package job

import (
	"slices"
	"sync"

	"github.com/kubev2v/jobrunner/pkg/gate"
)

// Filter selects works in a registry snapshot.
type Filter func(Work) bool

func ByName(name string) Filter {
	return func(w Work) bool { return w.Name() == name }
}

func ByUser(user string) Filter {
	return func(w Work) bool { return w.User() == user }
}

// ByMode matches works holding mode or waiting for it.
func ByMode(mode gate.Mode) Filter {
	return func(w Work) bool { return w.Mode() == mode || w.WaitingFor() == mode }
}

func Cancelled() Filter {
	return func(w Work) bool { return w.IsCancelled() }
}

// Registry holds the outstanding works of a scheduler.
// Every call drops works that are done before returning.
type Registry struct {
	mu    sync.Mutex
	works []Work
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers w. Adding the same work twice is a no-op.
func (r *Registry) Add(w Work) {
	r.sweep()

	r.mu.Lock()
	defer r.mu.Unlock()
	if slices.ContainsFunc(r.works, func(e Work) bool { return e.ID() == w.ID() }) {
		return
	}
	r.works = append(r.works, w)
}

func (r *Registry) Remove(w Work) {
	id := w.ID()
	r.mu.Lock()
	r.works = slices.DeleteFunc(r.works, func(e Work) bool { return e.ID() == id })
	r.mu.Unlock()

	r.sweep()
}

// Works returns the outstanding works, in submission order, matching all filters.
func (r *Registry) Works(filters ...Filter) []Work {
	live := r.sweep()

	out := make([]Work, 0, len(live))
	for _, w := range live {
		if matches(w, filters) {
			out = append(out, w)
		}
	}
	return out
}

func (r *Registry) Get(id string) (Work, bool) {
	for _, w := range r.sweep() {
		if w.ID() == id {
			return w, true
		}
	}
	return nil, false
}

func (r *Registry) Len() int {
	return len(r.sweep())
}

// sweep drops done works and returns the live ones.
// Works are evaluated outside the registry lock.
func (r *Registry) sweep() []Work {
	r.mu.Lock()
	snapshot := slices.Clone(r.works)
	r.mu.Unlock()

	live := make([]Work, 0, len(snapshot))
	var dead map[string]struct{}
	for _, w := range snapshot {
		if w.IsDone() {
			if dead == nil {
				dead = make(map[string]struct{})
			}
			dead[w.ID()] = struct{}{}
			continue
		}
		live = append(live, w)
	}

	if len(dead) > 0 {
		r.mu.Lock()
		r.works = slices.DeleteFunc(r.works, func(e Work) bool {
			_, found := dead[e.ID()]
			return found
		})
		r.mu.Unlock()
	}

	return live
}

func matches(w Work, filters []Filter) bool {
	for _, f := range filters {
		if f != nil && !f(w) {
			return false
		}
	}
	return true
}
