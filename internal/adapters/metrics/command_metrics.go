package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CommandMetricsCollector records the duration and outcome of every request
// dispatched through the mediator
type CommandMetricsCollector struct {
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
}

// NewCommandMetricsCollector creates a new command metrics collector
func NewCommandMetricsCollector() *CommandMetricsCollector {
	return &CommandMetricsCollector{
		// Handlers are database bound, so buckets start at a millisecond
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "Command and query handling duration distribution",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
			},
			[]string{"request", "outcome"},
		),

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Total number of commands and queries handled by type and outcome",
			},
			[]string{"request", "outcome"},
		),
	}
}

// Register adds the collector's metrics to the global registry
func (c *CommandMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	for _, metric := range []prometheus.Collector{c.requestDuration, c.requestsTotal} {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

// RecordCommandExecution records one handled request
func (c *CommandMetricsCollector) RecordCommandExecution(requestName string, seconds float64, success bool) {
	outcome := "ok"
	if !success {
		outcome = "error"
	}
	c.requestDuration.WithLabelValues(requestName, outcome).Observe(seconds)
	c.requestsTotal.WithLabelValues(requestName, outcome).Inc()
}
