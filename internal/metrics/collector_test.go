package metrics_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"

	"github.com/kubev2v/jobrunner/internal/metrics"
	"github.com/kubev2v/jobrunner/internal/services"
	"github.com/kubev2v/jobrunner/pkg/engine"
	"github.com/kubev2v/jobrunner/pkg/job"
)

type fakeRecorder struct {
	stats services.RecorderStats
}

func (f fakeRecorder) Stats() services.RecorderStats {
	return f.stats
}

// value returns the value of the metric name whose label matches, or -1.
func value(reg *prometheus.Registry, name, label, labelValue string) float64 {
	families, err := reg.Gather()
	Expect(err).NotTo(HaveOccurred())
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if label != "" && !hasLabel(m, label, labelValue) {
				continue
			}
			if m.GetGauge() != nil {
				return m.GetGauge().GetValue()
			}
			return m.GetCounter().GetValue()
		}
	}
	return -1
}

func hasLabel(m *dto.Metric, name, value string) bool {
	for _, l := range m.GetLabel() {
		if l.GetName() == name && l.GetValue() == value {
			return true
		}
	}
	return false
}

var _ = Describe("Collector", func() {
	var (
		env *engine.Environment
		reg *prometheus.Registry
	)

	BeforeEach(func() {
		env = engine.New(engine.WithCPUCapacity(3))
		reg = prometheus.NewRegistry()
	})

	AfterEach(func() {
		env.Close()
	})

	It("should register and lint cleanly", func() {
		c := metrics.NewCollector(env, fakeRecorder{})
		Expect(reg.Register(c)).To(Succeed())

		problems, err := testutil.CollectAndLint(c)
		Expect(err).NotTo(HaveOccurred())
		Expect(problems).To(BeEmpty())
	})

	It("should expose gates, jobs and tasks", func() {
		// Arrange
		Expect(reg.Register(metrics.NewCollector(env, nil))).To(Succeed())

		release := make(chan struct{})
		defer close(release)
		job.Submit(env.Scheduler(), job.NewFunc("busy", func(ctx job.Context) (int, error) {
			<-release
			return 0, nil
		}), nil)
		Eventually(func() int { return env.Gates().CPU().Held() }).Should(Equal(1))
		env.Tasks().NewRecord("pending", func(ctx context.Context) (any, error) { return nil, nil })

		// Act & Assert
		Expect(value(reg, "jobrunner_gate_capacity", "mode", "CPU")).To(Equal(3.0))
		Expect(value(reg, "jobrunner_gate_held", "mode", "CPU")).To(Equal(1.0))
		Expect(value(reg, "jobrunner_gate_held", "mode", "NETWORK")).To(Equal(0.0))
		Expect(value(reg, "jobrunner_open_jobs", "", "")).To(Equal(1.0))
		Expect(value(reg, "jobrunner_pool_active_workers", "pool", "job")).To(Equal(1.0))
		Expect(value(reg, "jobrunner_tasks", "status", "PENDING")).To(Equal(1.0))
		Expect(value(reg, "jobrunner_history_entries_total", "outcome", "recorded")).To(Equal(-1.0))
	})

	It("should expose recorder counters", func() {
		Expect(reg.Register(metrics.NewCollector(env, fakeRecorder{stats: services.RecorderStats{Recorded: 4, Dropped: 1}}))).To(Succeed())

		Expect(value(reg, "jobrunner_history_entries_total", "outcome", "recorded")).To(Equal(4.0))
		Expect(value(reg, "jobrunner_history_entries_total", "outcome", "dropped")).To(Equal(1.0))
		Expect(value(reg, "jobrunner_history_entries_total", "outcome", "failed")).To(Equal(0.0))
	})
})
