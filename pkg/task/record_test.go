package task_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/jobrunner/pkg/task"
)

var _ = Describe("Record", func() {
	var (
		clock    *fakeClock
		registry *task.Registry
	)

	BeforeEach(func() {
		clock = newFakeClock()
		registry = task.NewRegistry(task.WithClock(clock.Now))
	})

	It("should start PENDING with a pend timestamp", func() {
		rec := registry.NewRecord("pending", nil, task.WithPriority(3))

		info := rec.Info()
		Expect(info.ID).To(BeEquivalentTo(1))
		Expect(info.Status).To(Equal(task.StatusPending))
		Expect(info.PendAt).To(Equal(clock.Now()))
		Expect(info.Priority).To(Equal(3))
	})

	It("should run the body and finish", func() {
		rec := registry.NewRecord("ok", func(ctx context.Context) (any, error) {
			clock.Advance(time.Second)
			return "result", nil
		})
		clock.Advance(time.Second)

		rec.Call(context.Background())

		info := rec.Info()
		Expect(info.Status).To(Equal(task.StatusFinished))
		Expect(info.Result).To(Equal("result"))
		Expect(info.Err).NotTo(HaveOccurred())
		Expect(info.StartAt).To(BeTemporally(">=", info.PendAt))
		Expect(info.FinishAt).To(BeTemporally(">", info.StartAt))
		Expect(rec.IsFinished()).To(BeTrue())
		Expect(rec.Done()).To(BeClosed())
	})

	It("should capture body errors and panics", func() {
		failing := registry.NewRecord("failing", func(ctx context.Context) (any, error) {
			return nil, errors.New("boom")
		})
		panicking := registry.NewRecord("panicking", func(ctx context.Context) (any, error) {
			panic("boom")
		})

		failing.Call(context.Background())
		panicking.Call(context.Background())

		Expect(failing.Info().Err).To(MatchError("boom"))
		Expect(failing.Status()).To(Equal(task.StatusFinished))
		Expect(panicking.Info().Err).To(MatchError(ContainSubstring("panicked")))
		Expect(panicking.Status()).To(Equal(task.StatusFinished))
	})

	// Given a record that was never scheduled
	// When a stop is requested and the record is then called
	// Then it is STOPPED with finish >= start >= pend and its body never runs
	It("should stop a record before it starts", func() {
		// Arrange
		var ran atomic.Bool
		rec := registry.NewRecord("stopped", func(ctx context.Context) (any, error) {
			ran.Store(true)
			return nil, nil
		})
		clock.Advance(time.Minute)

		// Act
		rec.RequestStop()
		rec.Call(context.Background())

		// Assert
		info := rec.Info()
		Expect(ran.Load()).To(BeFalse())
		Expect(info.Status).To(Equal(task.StatusStopped))
		Expect(info.StopRequested).To(BeTrue())
		Expect(info.StartAt).To(BeTemporally(">=", info.PendAt))
		Expect(info.FinishAt).To(BeTemporally(">=", info.StartAt))
		Expect(rec.Done()).To(BeClosed())
	})

	It("should cancel the body's context when stopped while running", func() {
		started := make(chan struct{})
		rec := registry.NewRecord("running", func(ctx context.Context) (any, error) {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		})

		go rec.Call(context.Background())
		Eventually(started).Should(BeClosed())
		Expect(rec.Status()).To(Equal(task.StatusRunning))

		rec.RequestStop()

		Expect(rec.Wait(context.Background())).To(Succeed())
		Expect(rec.Status()).To(Equal(task.StatusStopped))
		Expect(rec.Info().Err).To(MatchError(context.Canceled))
	})

	It("should ignore stop requests after it finished", func() {
		rec := registry.NewRecord("done", func(ctx context.Context) (any, error) {
			return nil, nil
		})
		rec.Call(context.Background())

		rec.RequestStop()

		Expect(rec.Status()).To(Equal(task.StatusFinished))
		Expect(rec.Info().StopRequested).To(BeFalse())
	})

	It("should run only once", func() {
		var runs atomic.Int32
		rec := registry.NewRecord("once", func(ctx context.Context) (any, error) {
			runs.Add(1)
			return nil, nil
		})

		rec.Call(context.Background())
		rec.Call(context.Background())

		Expect(runs.Load()).To(BeEquivalentTo(1))
	})

	It("should time out a wait on a pending record", func() {
		rec := registry.NewRecord("waiting", nil)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		Expect(rec.Wait(ctx)).To(MatchError(context.DeadlineExceeded))
	})
})
