package gate_test

import (
	"context"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/jobrunner/pkg/gate"
)

var _ = Describe("Gate", func() {
	var g *gate.Gate

	BeforeEach(func() {
		g = gate.NewGate("CPU", 2)
	})

	It("should hand out permits up to capacity", func() {
		Expect(g.TryAcquire()).To(BeTrue())
		Expect(g.TryAcquire()).To(BeTrue())
		Expect(g.TryAcquire()).To(BeFalse())
		Expect(g.Held()).To(Equal(2))

		g.Release()
		Expect(g.Held()).To(Equal(1))
		Expect(g.TryAcquire()).To(BeTrue())
	})

	// Given a gate with no free permits
	// When a waiter's context is cancelled
	// Then Acquire returns without holding a permit
	It("should abort a blocked acquire on cancellation", func() {
		Expect(g.TryAcquire()).To(BeTrue())
		Expect(g.TryAcquire()).To(BeTrue())

		ctx, cancel := context.WithCancel(context.Background())
		errs := make(chan error, 1)
		go func() {
			errs <- g.Acquire(ctx)
		}()

		Consistently(errs, 50*time.Millisecond).ShouldNot(Receive())
		cancel()

		Eventually(errs, time.Second).Should(Receive(MatchError(context.Canceled)))
		Expect(g.Held()).To(Equal(2))
	})

	It("should wake a waiter on release", func() {
		Expect(g.TryAcquire()).To(BeTrue())
		Expect(g.TryAcquire()).To(BeTrue())

		errs := make(chan error, 1)
		go func() {
			errs <- g.Acquire(context.Background())
		}()

		Consistently(errs, 50*time.Millisecond).ShouldNot(Receive())
		g.Release()

		Eventually(errs, time.Second).Should(Receive(BeNil()))
		Expect(g.Held()).To(Equal(2))
	})

	It("should panic on release without acquire", func() {
		Expect(g.Release).To(Panic())
	})

	// Given many goroutines randomly acquiring, releasing and cancelling
	// When they all run concurrently
	// Then the held count never leaves [0, capacity] and ends at zero
	It("should keep the held count within bounds under random load", func() {
		const capacity = 3
		g = gate.NewGate("NETWORK", capacity)

		var inside atomic.Int32
		var violations atomic.Int32
		var wg sync.WaitGroup

		for i := range 50 {
			wg.Add(1)
			go func(seed uint64) {
				defer GinkgoRecover()
				defer wg.Done()
				r := rand.New(rand.NewPCG(seed, seed+1))

				for range 20 {
					ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.IntN(3))*time.Millisecond)
					if r.IntN(4) == 0 {
						cancel()
					}
					if err := g.Acquire(ctx); err == nil {
						if n := inside.Add(1); n > capacity {
							violations.Add(1)
						}
						if h := g.Held(); h < 0 || h > capacity {
							violations.Add(1)
						}
						time.Sleep(time.Duration(r.IntN(200)) * time.Microsecond)
						inside.Add(-1)
						g.Release()
					}
					cancel()
				}
			}(uint64(i))
		}

		wg.Wait()
		Expect(violations.Load()).To(BeZero())
		Expect(g.Held()).To(BeZero())
	})
})

var _ = Describe("Set", func() {
	It("should create CPU and NETWORK gates with the given capacities", func() {
		s := gate.NewSet(1, 4)

		Expect(s.For(gate.ModeCPU).Capacity()).To(Equal(1))
		Expect(s.For(gate.ModeNetwork).Capacity()).To(Equal(4))
		Expect(s.For(gate.ModeNone)).To(BeNil())
	})

	It("should fall back to the default capacity", func() {
		s := gate.NewSet(0, -1)

		Expect(s.CPU().Capacity()).To(Equal(gate.DefaultCapacity))
		Expect(s.Network().Capacity()).To(Equal(gate.DefaultCapacity))
	})

	DescribeTable("ParseMode",
		func(in string, expected gate.Mode, ok bool) {
			m, valid := gate.ParseMode(in)
			Expect(valid).To(Equal(ok))
			Expect(m).To(Equal(expected))
		},
		Entry("cpu", "CPU", gate.ModeCPU, true),
		Entry("network", "NETWORK", gate.ModeNetwork, true),
		Entry("none", "none", gate.ModeNone, true),
		Entry("empty", "", gate.ModeNone, true),
		Entry("unknown", "GPU", gate.Mode(""), false),
	)
})
