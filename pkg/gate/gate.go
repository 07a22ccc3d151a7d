// Package gate provides named permit pools that bound how many jobs may use a
// resource class (CPU, NETWORK) at the same time.
package gate

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Mode names a resource class a job can be admitted into.
type Mode string

const (
	ModeNone    Mode = "none"
	ModeCPU     Mode = "CPU"
	ModeNetwork Mode = "NETWORK"

	DefaultCapacity = 2
)

func (m Mode) String() string {
	return string(m)
}

// Gate is a counting semaphore with a name and an observable held count.
// 0 <= Held() <= Capacity() at all times.
type Gate struct {
	name     string
	capacity int64
	sem      *semaphore.Weighted

	mu   sync.Mutex
	held int64
}

func NewGate(name string, capacity int) *Gate {
	if capacity < 1 {
		capacity = 1
	}
	return &Gate{
		name:     name,
		capacity: int64(capacity),
		sem:      semaphore.NewWeighted(int64(capacity)),
	}
}

func (g *Gate) Name() string {
	return g.name
}

func (g *Gate) Capacity() int {
	return int(g.capacity)
}

func (g *Gate) Held() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return int(g.held)
}

// Acquire blocks until a permit is free or ctx is done.
// On error no permit is held.
func (g *Gate) Acquire(ctx context.Context) error {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	g.mu.Lock()
	g.held++
	g.mu.Unlock()
	return nil
}

func (g *Gate) TryAcquire() bool {
	if !g.sem.TryAcquire(1) {
		return false
	}
	g.mu.Lock()
	g.held++
	g.mu.Unlock()
	return true
}

// Release returns a permit and wakes one waiter.
func (g *Gate) Release() {
	g.mu.Lock()
	if g.held == 0 {
		g.mu.Unlock()
		panic(fmt.Sprintf("gate %s: release without acquire", g.name))
	}
	g.held--
	g.mu.Unlock()
	g.sem.Release(1)
}

// Stats is a point-in-time view of a gate.
type Stats struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Held     int    `json:"held"`
}

func (g *Gate) Stats() Stats {
	return Stats{Name: g.name, Capacity: g.Capacity(), Held: g.Held()}
}
