package provisioning

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics records per-node provisioning metrics in a private registry so a
// run can be exported as a node-exporter textfile.
type Metrics struct {
	registry *prometheus.Registry

	nodeDuration *prometheus.HistogramVec
	nodeTotal    *prometheus.CounterVec
}

// NewMetrics creates and registers the provisioning metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		nodeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "gkerunner",
				Subsystem: "provisioning",
				Name:      "node_duration_seconds",
				Help:      "Duration of graph node execution in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.1, 2, 15), // 100ms to ~27min
			},
			[]string{"node"},
		),
		nodeTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gkerunner",
				Subsystem: "provisioning",
				Name:      "node_total",
				Help:      "Total number of graph node executions by result",
			},
			[]string{"node", "result"},
		),
	}

	m.registry.MustRegister(m.nodeDuration, m.nodeTotal)
	return m
}

// RecordNode records the outcome of one node execution.
func (m *Metrics) RecordNode(node string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	m.nodeDuration.WithLabelValues(node).Observe(duration.Seconds())
	m.nodeTotal.WithLabelValues(node, result).Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all metrics in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
