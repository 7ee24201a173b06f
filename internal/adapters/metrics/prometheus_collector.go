package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "manoria"
	// Subsystem for daemon metrics
	subsystem = "daemon"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalEconomyCollector is the singleton economy metrics collector
	// Set by SetGlobalEconomyCollector() when metrics are enabled
	globalEconomyCollector EconomyMetricsRecorder
)

// EconomyMetricsRecorder defines the interface for recording economy events.
// Application handlers record through the package-level functions below, which
// are no-ops while metrics are disabled.
type EconomyMetricsRecorder interface {
	RecordConstructionEnqueued(buildingKind string, queueWait time.Duration)
	RecordConstructionRejected(buildingKind string, reason string)
	RecordResourceAdjusted(subjectType string, resourceKind string, delta int)
	RecordSettlementFounded(settlementKind string)
	RecordPlayerCreated()
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// SetGlobalEconomyCollector sets the global economy metrics collector
func SetGlobalEconomyCollector(collector EconomyMetricsRecorder) {
	globalEconomyCollector = collector
}

// RecordConstructionEnqueued records an accepted enqueue globally
func RecordConstructionEnqueued(buildingKind string, queueWait time.Duration) {
	if globalEconomyCollector != nil {
		globalEconomyCollector.RecordConstructionEnqueued(buildingKind, queueWait)
	}
}

// RecordConstructionRejected records a rejected enqueue globally
func RecordConstructionRejected(buildingKind string, reason string) {
	if globalEconomyCollector != nil {
		globalEconomyCollector.RecordConstructionRejected(buildingKind, reason)
	}
}

// RecordResourceAdjusted records a manual ledger adjustment globally
func RecordResourceAdjusted(subjectType string, resourceKind string, delta int) {
	if globalEconomyCollector != nil {
		globalEconomyCollector.RecordResourceAdjusted(subjectType, resourceKind, delta)
	}
}

// RecordSettlementFounded records a new settlement globally
func RecordSettlementFounded(settlementKind string) {
	if globalEconomyCollector != nil {
		globalEconomyCollector.RecordSettlementFounded(settlementKind)
	}
}

// RecordPlayerCreated records a new player globally
func RecordPlayerCreated() {
	if globalEconomyCollector != nil {
		globalEconomyCollector.RecordPlayerCreated()
	}
}
