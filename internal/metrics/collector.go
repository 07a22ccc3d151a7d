// Package metrics exports engine statistics to Prometheus.
//
// The Collector reads a fresh Environment.Stats() snapshot on every scrape, so no
// background goroutine updates gauges and scrapes never race with the engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kubev2v/jobrunner/internal/services"
	"github.com/kubev2v/jobrunner/pkg/engine"
	"github.com/kubev2v/jobrunner/pkg/scheduler"
)

const namespace = "jobrunner"

// RecorderSource reports history recorder counters.
type RecorderSource interface {
	Stats() services.RecorderStats
}

type Collector struct {
	env      *engine.Environment
	recorder RecorderSource

	poolWorkers   *prometheus.Desc
	poolIdle      *prometheus.Desc
	poolActive    *prometheus.Desc
	poolQueued    *prometheus.Desc
	poolCompleted *prometheus.Desc
	poolRejected  *prometheus.Desc
	gateCapacity  *prometheus.Desc
	gateHeld      *prometheus.Desc
	openJobs      *prometheus.Desc
	tasks         *prometheus.Desc
	history       *prometheus.Desc
}

// NewCollector creates a collector for env. recorder may be nil when history is disabled.
func NewCollector(env *engine.Environment, recorder RecorderSource) *Collector {
	pool := []string{"pool"}
	return &Collector{
		env:      env,
		recorder: recorder,

		poolWorkers:   prometheus.NewDesc(prometheus.BuildFQName(namespace, "pool", "workers"), "Live workers of the pool.", pool, nil),
		poolIdle:      prometheus.NewDesc(prometheus.BuildFQName(namespace, "pool", "idle_workers"), "Workers waiting for work.", pool, nil),
		poolActive:    prometheus.NewDesc(prometheus.BuildFQName(namespace, "pool", "active_workers"), "Workers running a unit of work.", pool, nil),
		poolQueued:    prometheus.NewDesc(prometheus.BuildFQName(namespace, "pool", "queued"), "Units of work waiting in the queue.", pool, nil),
		poolCompleted: prometheus.NewDesc(prometheus.BuildFQName(namespace, "pool", "completed_total"), "Units of work run to completion.", pool, nil),
		poolRejected:  prometheus.NewDesc(prometheus.BuildFQName(namespace, "pool", "rejected_total"), "Units of work refused by the pool.", pool, nil),
		gateCapacity:  prometheus.NewDesc(prometheus.BuildFQName(namespace, "gate", "capacity"), "Permits of the resource gate.", []string{"mode"}, nil),
		gateHeld:      prometheus.NewDesc(prometheus.BuildFQName(namespace, "gate", "held"), "Permits currently held.", []string{"mode"}, nil),
		openJobs:      prometheus.NewDesc(prometheus.BuildFQName(namespace, "", "open_jobs"), "Jobs submitted and not yet done.", nil, nil),
		tasks:         prometheus.NewDesc(prometheus.BuildFQName(namespace, "", "tasks"), "Registered tasks by status.", []string{"status"}, nil),
		history:       prometheus.NewDesc(prometheus.BuildFQName(namespace, "history", "entries_total"), "History entries by outcome.", []string{"outcome"}, nil),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.poolWorkers
	ch <- c.poolIdle
	ch <- c.poolActive
	ch <- c.poolQueued
	ch <- c.poolCompleted
	ch <- c.poolRejected
	ch <- c.gateCapacity
	ch <- c.gateHeld
	ch <- c.openJobs
	ch <- c.tasks
	ch <- c.history
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.env.Stats()

	c.collectPool(ch, "job", stats.JobPool)
	c.collectPool(ch, "task", stats.TaskPool)

	for _, g := range stats.Gates {
		ch <- prometheus.MustNewConstMetric(c.gateCapacity, prometheus.GaugeValue, float64(g.Capacity), g.Name)
		ch <- prometheus.MustNewConstMetric(c.gateHeld, prometheus.GaugeValue, float64(g.Held), g.Name)
	}

	ch <- prometheus.MustNewConstMetric(c.openJobs, prometheus.GaugeValue, float64(stats.OpenJobs))
	for status, n := range stats.TasksByState {
		ch <- prometheus.MustNewConstMetric(c.tasks, prometheus.GaugeValue, float64(n), string(status))
	}

	if c.recorder != nil {
		r := c.recorder.Stats()
		ch <- prometheus.MustNewConstMetric(c.history, prometheus.CounterValue, float64(r.Recorded), "recorded")
		ch <- prometheus.MustNewConstMetric(c.history, prometheus.CounterValue, float64(r.Failed), "failed")
		ch <- prometheus.MustNewConstMetric(c.history, prometheus.CounterValue, float64(r.Dropped), "dropped")
		ch <- prometheus.MustNewConstMetric(c.history, prometheus.CounterValue, float64(r.Pruned), "pruned")
	}
}

// collectPool uses the fixed label rather than s.Name so dashboards do not depend on
// configured pool names.
func (c *Collector) collectPool(ch chan<- prometheus.Metric, pool string, s scheduler.Stats) {
	ch <- prometheus.MustNewConstMetric(c.poolWorkers, prometheus.GaugeValue, float64(s.Workers), pool)
	ch <- prometheus.MustNewConstMetric(c.poolIdle, prometheus.GaugeValue, float64(s.Idle), pool)
	ch <- prometheus.MustNewConstMetric(c.poolActive, prometheus.GaugeValue, float64(s.Active), pool)
	ch <- prometheus.MustNewConstMetric(c.poolQueued, prometheus.GaugeValue, float64(s.Queued), pool)
	ch <- prometheus.MustNewConstMetric(c.poolCompleted, prometheus.CounterValue, float64(s.Completed), pool)
	ch <- prometheus.MustNewConstMetric(c.poolRejected, prometheus.CounterValue, float64(s.Rejected), pool)
}
