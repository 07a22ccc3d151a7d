package job

import (
	"context"
	"sync"

	"github.com/kubev2v/jobrunner/pkg/gate"
)

// Context is what a running job sees of its handle.
type Context interface {
	// Context is cancelled when the job is cancelled or its scheduler is closed.
	Context() context.Context
	IsCancelled() bool
	// SetCancelListener registers cb. If the job is already cancelled cb runs immediately.
	// Either way cb runs exactly once per cancellation.
	SetCancelListener(cb func())
	// SetMode releases the currently held gate and, unless mode is ModeNone, blocks until
	// a permit for mode is free. It returns false, holding nothing, if the job is cancelled
	// before the permit is obtained.
	SetMode(mode gate.Mode) bool
	Mode() gate.Mode
}

// runContext is the Context handed to a job by its handle.
type runContext struct {
	s *state
}

func (c runContext) Context() context.Context { return c.s.ctx }

func (c runContext) IsCancelled() bool { return c.s.IsCancelled() }

func (c runContext) SetCancelListener(cb func()) { c.s.setCancelListener(cb) }

func (c runContext) SetMode(mode gate.Mode) bool { return c.s.setMode(mode) }

func (c runContext) Mode() gate.Mode { return c.s.Mode() }

// StubContext is a Context without admission control: SetMode never blocks and holds no permits.
type StubContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	mode      gate.Mode
	cancelled bool
	listener  func()
}

// NewStubContext returns a Context that is never cancelled.
func NewStubContext() *StubContext {
	return &StubContext{ctx: context.Background(), mode: gate.ModeNone}
}

// NewStubContextWithCancel returns a stub Context and the function cancelling it.
func NewStubContextWithCancel() (*StubContext, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	c := &StubContext{ctx: ctx, cancel: cancel, mode: gate.ModeNone}
	return c, c.doCancel
}

func (c *StubContext) doCancel() {
	c.mu.Lock()
	if c.cancelled {
		c.mu.Unlock()
		return
	}
	c.cancelled = true
	l := c.listener
	c.mu.Unlock()

	c.cancel()
	if l != nil {
		l()
	}
}

func (c *StubContext) Context() context.Context {
	return c.ctx
}

func (c *StubContext) IsCancelled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancelled
}

func (c *StubContext) SetCancelListener(cb func()) {
	c.mu.Lock()
	c.listener = cb
	cancelled := c.cancelled
	c.mu.Unlock()

	if cancelled && cb != nil {
		cb()
	}
}

func (c *StubContext) SetMode(mode gate.Mode) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancelled && mode != gate.ModeNone {
		return false
	}
	c.mode = mode
	return true
}

func (c *StubContext) Mode() gate.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}
