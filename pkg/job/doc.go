// Package job runs typed jobs on a shared worker pool with admission control.
//
// A Job[T] is submitted with Submit, which registers a Handle[T] in the scheduler's
// Registry and queues it on the pool. When a worker picks the handle up it first asks
// for the CPU gate; the job body only runs once a permit is held. The body may switch
// to another resource class through its Context:
//
//	func (j *download) Run(ctx job.Context) (string, error) {
//	    if !ctx.SetMode(gate.ModeNetwork) {
//	        return "", nil // cancelled while waiting
//	    }
//	    data, err := fetch(ctx.Context(), j.url)
//	    if err != nil {
//	        return "", err
//	    }
//	    ctx.SetMode(gate.ModeCPU)
//	    return parse(data), nil
//	}
//
// # Handle Lifecycle
//
//	Submit ──► registered ──► running ──► done
//	               │                        ▲
//	               └──── Cancel ────────────┘  (body never runs, result absent)
//
// Whatever the outcome, the handle releases its permit, stores its result, closes its
// done channel, calls the completion listener, runs the scheduler's OnFinished hooks and
// leaves the registry, in that order.
//
// Cancellation is cooperative. Cancel wakes a job waiting on a gate and cancels
// Context().Context(), but a running body decides on its own when to stop.
//
// Failures never reach the pool: a body error or panic is logged and the result is absent.
package job
