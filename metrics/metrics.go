// Package metrics collects view operation telemetry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OUTCOME_SUCCESS  = "success"
	OUTCOME_ERROR    = "error"
	OUTCOME_REJECTED = "rejected"
)

type Recorder interface {
	RecordOperation(operation string, duration time.Duration, outcome string)
	RecordRejected(operation string)
}

type Collector struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

var _ Recorder = (*Collector)(nil)

func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "bank"
	}
	c := &Collector{registry: prometheus.NewRegistry()}
	c.operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "view",
			Name:      "operations_total",
			Help:      "View operations by outcome",
		},
		[]string{"operation", "outcome"},
	)
	c.latency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "view",
			Name:      "operation_duration_seconds",
			Help:      "Time from invocation to confirmed result",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20, 40},
		},
		[]string{"operation"},
	)
	c.registry.MustRegister(c.operations, c.latency)
	return c
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) RecordOperation(operation string, duration time.Duration, outcome string) {
	c.operations.WithLabelValues(operation, outcome).Inc()
	c.latency.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordRejected counts a call turned away before it ran. No latency is
// observed for it.
func (c *Collector) RecordRejected(operation string) {
	c.operations.WithLabelValues(operation, OUTCOME_REJECTED).Inc()
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

type NoOpCollector struct{}

func (NoOpCollector) RecordOperation(string, time.Duration, string) {}

func (NoOpCollector) RecordRejected(string) {}
