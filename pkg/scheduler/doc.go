// Package scheduler implements the worker pool shared by the job and task engines.
//
// The scheduler owns a set of workers that execute Runnables concurrently. Work is
// submitted via Submit (or AddWork, which returns a Future) and dispatched in FIFO
// order. Workers are spawned on demand up to a maximum and retire again after an
// idle keep-alive period, down to a core size.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────────┐
//	│                           Scheduler                                 │
//	│                                                                     │
//	│  ┌──────────────┐      ┌──────────────┐      ┌──────────────┐       │
//	│  │  worker-1    │      │  worker-2    │      │  worker-N    │       │
//	│  └──────────────┘      └──────────────┘      └──────────────┘       │
//	│         ▲                     ▲                     ▲               │
//	│         │  w.in               │                     │               │
//	│         └─────────────────────┼─────────────────────┘               │
//	│                               │                                     │
//	│                        ┌──────┴──────┐                              │
//	│                        │  dispatch() │  idle stack / spawn          │
//	│                        └──────┬──────┘                              │
//	│                               │                                     │
//	│  ┌────────────────────────────┴────────────────────────────┐        │
//	│  │                 Work Queue (FIFO, optional bound)       │        │
//	│  │  [work1] [work2] [work3] ...                            │        │
//	│  └─────────────────────────────────────────────────────────┘        │
//	│                               ▲                                     │
//	│                               │                                     │
//	│                        Submit(r) / AddWork(fn)                      │
//	└─────────────────────────────────────────────────────────────────────┘
//
// # Sizing
//
//	┌─────────────┬──────────────────────────────────────────────────────┐
//	│ Field       │ Meaning                                              │
//	├─────────────┼──────────────────────────────────────────────────────┤
//	│ CoreWorkers │ workers that never retire once spawned               │
//	│ MaxWorkers  │ upper bound on concurrent workers                    │
//	│ KeepAlive   │ idle time after which a non-core worker retires      │
//	│ QueueSize   │ backlog bound; 0 is unbounded                        │
//	│ Name        │ worker name prefix, workers are "<Name>-<seq>"       │
//	└─────────────┴──────────────────────────────────────────────────────┘
//
// NewScheduler(n) is a fixed pool: CoreWorkers = MaxWorkers = n, unbounded backlog.
//
// # Event Loop
//
// All pool state (work queue, idle workers, live count) is owned by a single
// goroutine:
//
//	for {
//	    select {
//	    case sub := <-s.work:      // Submit
//	        sub.ack <- s.enqueue(sub.r)
//
//	    case e := <-s.events:      // worker finished or idled out
//	        done    -> push on idle stack, dispatch()
//	        expired -> retire if idle and above CoreWorkers
//
//	    case <-s.close:            // Close
//	        discard backlog, stop idle workers, wait for busy ones
//	        return
//	    }
//	}
//
// Submit waits for the loop to accept or reject the work, never for the work to run.
// With a bounded queue, Submit returns ErrQueueFull once QueueSize units are waiting
// and every worker is busy.
//
// Worker Lifecycle:
//
//	  spawn (no idle worker, live < max)
//	        │
//	        ▼
//	┌───────────┐     dispatch()      ┌───────────┐
//	│  Idle     │ ──────────────────► │  Working  │
//	│ (stack)   │                     │           │
//	└───────────┘                     └─────┬─────┘
//	   ▲    │                               │
//	   │    │ keep-alive elapsed            │ done event
//	   │    ▼ and live > core               │
//	   │  retired                           │
//	   └────────────────────────────────────┘
//
// # Panic Recovery
//
// A panicking Runnable is logged and the worker keeps serving. Work submitted
// through AddWork reports the panic on its Future:
//
//	r.c <- Result{Err: fmt.Errorf("worker panicked: %v", rec)}
//
// # Cancellation
//
// Every Runnable receives a context derived from the scheduler's main context; it also
// carries the worker name (see WorkerName). Close cancels that context. Runnables
// still waiting in the backlog at Close are dropped; those implementing Discarder are
// told so with an error matching both ErrSchedulerClosed and context.Canceled. Each Discard
// runs on its own goroutine and Close waits for all of them.
//
// # Usage Example
//
//	sched := scheduler.NewSchedulerWithConfig(scheduler.Config{
//	    Name:        "jobs",
//	    CoreWorkers: 2,
//	    MaxWorkers:  100,
//	    KeepAlive:   10 * time.Second,
//	})
//	defer sched.Close()
//
//	future := sched.AddWork(func(ctx context.Context) (any, error) {
//	    time.Sleep(100 * time.Millisecond)
//	    return "done", nil
//	})
//
//	result := <-future.C()
package scheduler
