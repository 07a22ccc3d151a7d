package task_test

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/jobrunner/pkg/scheduler"
	"github.com/kubev2v/jobrunner/pkg/task"
)

var _ = Describe("BoundedWorkerPool", func() {
	var (
		registry *task.Registry
		pool     *task.BoundedWorkerPool
	)

	BeforeEach(func() {
		registry = task.NewRegistry()
		pool = task.NewBoundedWorkerPool(scheduler.Config{Name: "bounded", CoreWorkers: 1, MaxWorkers: 1}, nil)
	})

	AfterEach(func() {
		pool.Close()
	})

	It("should reject a nil record", func() {
		Expect(pool.Execute(nil)).To(MatchError(task.ErrNilTask))
	})

	It("should run records on named workers", func() {
		rec := registry.NewRecord("named", func(ctx context.Context) (any, error) {
			return scheduler.WorkerName(ctx), nil
		})

		Expect(pool.Execute(rec)).To(Succeed())
		Expect(rec.Wait(context.Background())).To(Succeed())

		name, _ := rec.Info().Result.(string)
		Expect(strings.HasPrefix(name, "bounded-")).To(BeTrue())
	})

	// Given a single busy worker
	// When more records are queued than the backlog holds
	// Then the overflow is reported as ErrQueueFull and the record stays PENDING
	It("should surface backlog overflow", func() {
		// Arrange
		release := make(chan struct{})
		started := make(chan struct{})
		blocker := registry.NewRecord("blocker", func(ctx context.Context) (any, error) {
			close(started)
			<-release
			return nil, nil
		})
		Expect(pool.Execute(blocker)).To(Succeed())
		Eventually(started).Should(BeClosed())

		for range task.DefaultBacklog {
			Expect(pool.Execute(registry.NewRecord("queued", nil))).To(Succeed())
		}

		// Act
		overflow := registry.NewRecord("overflow", nil)
		err := pool.Execute(overflow)

		// Assert
		Expect(err).To(MatchError(scheduler.ErrQueueFull))
		Expect(overflow.Status()).To(Equal(task.StatusPending))
		Expect(pool.Stats().Rejected).To(BeEquivalentTo(1))

		close(release)
		Eventually(func() []task.Info {
			return registry.Snapshot(task.ByName("queued"), task.ByStatus(task.StatusFinished))
		}, 2*time.Second).Should(HaveLen(task.DefaultBacklog))
	})

	It("should stop queued records on Close", func() {
		var ran atomic.Bool
		started := make(chan struct{})
		Expect(pool.Execute(registry.NewRecord("busy", func(ctx context.Context) (any, error) {
			close(started)
			time.Sleep(50 * time.Millisecond)
			return nil, nil
		}))).To(Succeed())
		Eventually(started).Should(BeClosed())

		queued := registry.NewRecord("queued", func(ctx context.Context) (any, error) {
			ran.Store(true)
			return nil, nil
		})
		Expect(pool.Execute(queued)).To(Succeed())

		pool.Close()

		Expect(queued.Status()).To(Equal(task.StatusStopped))
		Expect(ran.Load()).To(BeFalse())
	})
})

var _ = Describe("Factory", func() {
	var (
		registry *task.Registry
		factory  *task.Factory
	)

	BeforeEach(func() {
		registry = task.NewRegistry()
		factory = task.NewFactory(registry, task.WithPoolSize(1, 4, time.Second))
	})

	AfterEach(func() {
		factory.Close()
	})

	It("should create exactly one pool", func() {
		_, ok := factory.Stats()
		Expect(ok).To(BeFalse())

		pools := make(chan *task.BoundedWorkerPool, 10)
		for range 10 {
			go func() { pools <- factory.CreateWorkerQueue() }()
		}

		first := <-pools
		for range 9 {
			Expect(<-pools).To(BeIdenticalTo(first))
		}
		_, ok = factory.Stats()
		Expect(ok).To(BeTrue())
	})

	It("should adapt a work item into a pending record", func() {
		var ran atomic.Bool
		rec := factory.CreateWorkerTask(task.WorkItem{
			Name:     "item",
			Priority: 7,
			Run: func(ctx context.Context) error {
				ran.Store(true)
				return nil
			},
		})

		Expect(rec.Status()).To(Equal(task.StatusPending))
		Expect(rec.Priority()).To(Equal(7))
		Expect(rec.Name()).To(Equal("item"))

		Expect(factory.CreateWorkerQueue().Execute(rec)).To(Succeed())
		Expect(rec.Wait(context.Background())).To(Succeed())
		Expect(ran.Load()).To(BeTrue())
		Expect(rec.Status()).To(Equal(task.StatusFinished))
	})

	It("should skip items that already finished", func() {
		var ran atomic.Bool
		rec := factory.CreateWorkerTask(task.WorkItem{
			Name:       "finished",
			Run:        func(ctx context.Context) error { ran.Store(true); return nil },
			IsFinished: func() bool { return true },
		})

		Expect(factory.CreateWorkerQueue().Execute(rec)).To(Succeed())
		Expect(rec.Wait(context.Background())).To(Succeed())
		Expect(ran.Load()).To(BeFalse())
	})

	It("should wait for the item after it runs", func() {
		release := make(chan struct{})
		rec := factory.CreateWorkerTask(task.WorkItem{
			Name: "async",
			Run:  func(ctx context.Context) error { return nil },
			Wait: func() { <-release },
		})

		Expect(factory.CreateWorkerQueue().Execute(rec)).To(Succeed())
		Eventually(rec.Status).Should(Equal(task.StatusRunning))
		Consistently(rec.Status, 50*time.Millisecond).Should(Equal(task.StatusRunning))

		close(release)
		Eventually(rec.Status).Should(Equal(task.StatusFinished))
	})

	It("should dispatch in FIFO order regardless of priority", func() {
		factory.Close()
		factory = task.NewFactory(registry, task.WithPoolSize(1, 1, time.Second))
		pool := factory.CreateWorkerQueue()

		release := make(chan struct{})
		order := make(chan int, 3)
		Expect(pool.Execute(factory.CreateWorkerTask(task.WorkItem{
			Name: "gate",
			Run:  func(ctx context.Context) error { <-release; return nil },
		}))).To(Succeed())

		for _, p := range []int{1, 10, 5} {
			Expect(pool.Execute(factory.CreateWorkerTask(task.WorkItem{
				Name:     "prio",
				Priority: p,
				Run:      func(ctx context.Context) error { order <- p; return nil },
			}))).To(Succeed())
		}
		close(release)

		Eventually(order).Should(Receive(Equal(1)))
		Eventually(order).Should(Receive(Equal(10)))
		Eventually(order).Should(Receive(Equal(5)))
	})
})
