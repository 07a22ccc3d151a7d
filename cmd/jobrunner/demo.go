package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/kubev2v/jobrunner/pkg/engine"
	"github.com/kubev2v/jobrunner/pkg/gate"
	"github.com/kubev2v/jobrunner/pkg/job"
	"github.com/kubev2v/jobrunner/pkg/task"
)

// demoOptions drive a synthetic workload, handy to watch the API and the metrics move.
type demoOptions struct {
	interval time.Duration
	maxWork  time.Duration
}

func (d *demoOptions) registerFlags(flags *pflag.FlagSet) {
	flags.DurationVar(&d.interval, "demo-interval", 0, "Submit a demo job and a demo task at this interval; 0 disables the demo workload")
	flags.DurationVar(&d.maxWork, "demo-max-work", 3*time.Second, "Upper bound of the simulated work of a demo job or task")
}

func (d demoOptions) enabled() bool {
	return d.interval > 0
}

var errDemoFailure = errors.New("simulated failure")

func runDemo(ctx context.Context, env *engine.Environment, opts demoOptions) error {
	logger := zap.S().Named("demo")
	logger.Infow("demo workload started", "interval", opts.interval)

	ticker := time.NewTicker(opts.interval)
	defer ticker.Stop()

	queue := env.Factory().CreateWorkerQueue()
	for n := 1; ; n++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		job.Submit(env.Scheduler(), demoJob(n, opts.maxWork), nil)

		rec := env.Factory().CreateWorkerTask(task.WorkItem{
			Name:     fmt.Sprintf("demo-task-%d", n),
			Priority: n % 3,
			Run: func(ctx context.Context) error {
				return sleep(ctx, randomDuration(opts.maxWork))
			},
		})
		if err := queue.Execute(rec); err != nil {
			logger.Debugw("demo task rejected", "task", rec.Name(), "error", err)
			// a rejected record stays PENDING and would never be pruned
			rec.RequestStop()
		}
	}
}

// demoJob computes on the CPU gate, then waits on the NETWORK gate.
func demoJob(n int, maxWork time.Duration) job.Job[int] {
	return job.NewFunc(fmt.Sprintf("demo-job-%d", n), func(ctx job.Context) (int, error) {
		if err := sleep(ctx.Context(), randomDuration(maxWork)); err != nil {
			return 0, err
		}
		if !ctx.SetMode(gate.ModeNetwork) {
			return 0, ctx.Context().Err()
		}
		if err := sleep(ctx.Context(), randomDuration(maxWork)); err != nil {
			return 0, err
		}
		if n%10 == 0 {
			return 0, errDemoFailure
		}
		return n, nil
	}, job.WithUser("demo"), job.WithMessage("synthetic workload"))
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func randomDuration(upper time.Duration) time.Duration {
	if upper <= 0 {
		return 0
	}
	return rand.N(upper)
}
