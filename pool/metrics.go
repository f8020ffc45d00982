package pool

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the collectors of one pool. A nil *metrics records nothing.
type metrics struct {
	submitted prometheus.Counter
	completed prometheus.Counter
	faulted   prometheus.Counter
	depth     prometheus.Gauge
	duration  prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer, name string) *metrics {
	if reg == nil {
		return nil
	}

	factory := promauto.With(reg)
	labels := prometheus.Labels{"pool": name}
	return &metrics{
		submitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   "parex",
			Subsystem:   "pool",
			Name:        "tasks_submitted_total",
			Help:        "Tasks accepted by Push.",
			ConstLabels: labels,
		}),
		completed: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   "parex",
			Subsystem:   "pool",
			Name:        "tasks_completed_total",
			Help:        "Tasks that returned without error.",
			ConstLabels: labels,
		}),
		faulted: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   "parex",
			Subsystem:   "pool",
			Name:        "tasks_faulted_total",
			Help:        "Tasks that returned an error or panicked.",
			ConstLabels: labels,
		}),
		depth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   "parex",
			Subsystem:   "pool",
			Name:        "queue_depth",
			Help:        "Tasks waiting to be claimed by a worker.",
			ConstLabels: labels,
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "parex",
			Subsystem:   "pool",
			Name:        "task_duration_seconds",
			Help:        "Task execution time, including failed tasks.",
			Buckets:     prometheus.ExponentialBuckets(0.0001, 4, 10),
			ConstLabels: labels,
		}),
	}
}

func (m *metrics) taskSubmitted() {
	if m == nil {
		return
	}
	m.submitted.Inc()
	m.depth.Inc()
}

func (m *metrics) taskClaimed() {
	if m == nil {
		return
	}
	m.depth.Dec()
}

func (m *metrics) taskFinished(elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.duration.Observe(elapsed.Seconds())
	if err != nil {
		m.faulted.Inc()
		return
	}
	m.completed.Inc()
}
