package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// EconomyMetricsCollector handles construction, ledger and founding metrics
type EconomyMetricsCollector struct {
	// Construction metrics
	constructionsTotal *prometheus.CounterVec
	rejectionsTotal    *prometheus.CounterVec
	queueWait          *prometheus.HistogramVec

	// Ledger metrics
	adjustmentsTotal *prometheus.CounterVec
	adjustedUnits    *prometheus.CounterVec

	// Founding metrics
	settlementsTotal *prometheus.CounterVec
	playersTotal     prometheus.Counter
}

// NewEconomyMetricsCollector creates a new economy metrics collector
func NewEconomyMetricsCollector() *EconomyMetricsCollector {
	return &EconomyMetricsCollector{
		constructionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "constructions_enqueued_total",
				Help:      "Total number of construction entries queued by building kind",
			},
			[]string{"building_kind"},
		),

		rejectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "constructions_rejected_total",
				Help:      "Total number of rejected enqueues by building kind and reason",
			},
			[]string{"building_kind", "reason"},
		),

		// Time between the enqueue and the start of construction
		queueWait: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "construction_queue_wait_seconds",
				Help:      "Wait between enqueue and construction start",
				Buckets:   []float64{0, 60, 120, 300, 600, 1800, 3600, 7200},
			},
			[]string{"building_kind"},
		),

		adjustmentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "resource_adjustments_total",
				Help:      "Total number of manual ledger adjustments",
			},
			[]string{"subject_type", "resource_kind", "direction"},
		),

		adjustedUnits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "resource_adjusted_units_total",
				Help:      "Total units added or spent through adjustments",
			},
			[]string{"subject_type", "resource_kind", "direction"},
		),

		settlementsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "settlements_founded_total",
				Help:      "Total number of settlements founded by kind",
			},
			[]string{"kind"},
		),

		playersTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "players_created_total",
				Help:      "Total number of players created",
			},
		),
	}
}

// Register registers all economy metrics with the Prometheus registry
func (c *EconomyMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.constructionsTotal,
		c.rejectionsTotal,
		c.queueWait,
		c.adjustmentsTotal,
		c.adjustedUnits,
		c.settlementsTotal,
		c.playersTotal,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

func (c *EconomyMetricsCollector) RecordConstructionEnqueued(buildingKind string, queueWait time.Duration) {
	c.constructionsTotal.WithLabelValues(buildingKind).Inc()
	if queueWait < 0 {
		queueWait = 0
	}
	c.queueWait.WithLabelValues(buildingKind).Observe(queueWait.Seconds())
}

func (c *EconomyMetricsCollector) RecordConstructionRejected(buildingKind string, reason string) {
	c.rejectionsTotal.WithLabelValues(buildingKind, reason).Inc()
}

func (c *EconomyMetricsCollector) RecordResourceAdjusted(subjectType string, resourceKind string, delta int) {
	direction := "credit"
	units := delta
	if delta < 0 {
		direction = "debit"
		units = -delta
	}
	c.adjustmentsTotal.WithLabelValues(subjectType, resourceKind, direction).Inc()
	c.adjustedUnits.WithLabelValues(subjectType, resourceKind, direction).Add(float64(units))
}

func (c *EconomyMetricsCollector) RecordSettlementFounded(settlementKind string) {
	c.settlementsTotal.WithLabelValues(settlementKind).Inc()
}

func (c *EconomyMetricsCollector) RecordPlayerCreated() {
	c.playersTotal.Inc()
}
