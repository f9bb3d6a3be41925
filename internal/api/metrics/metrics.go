// Package metrics defines all custom Prometheus metrics for the
// device-monitor service. It is the single source of truth for metric
// names, labels, and help strings; promauto registers everything with the
// default registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "devicemonitor"

// TelemetryProcessedTotal counts telemetry events merged into device state.
var TelemetryProcessedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "telemetry_processed_total",
		Help:      "Total number of telemetry events merged successfully.",
	},
)

// TelemetryDroppedTotal counts dropped telemetry events.
// Label:
//   - reason: "missing_device_id", "unregistered_device", or "store_error"
var TelemetryDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "telemetry_dropped_total",
		Help:      "Total number of telemetry events dropped, by reason.",
	},
	[]string{"reason"},
)

// TelemetryProcessingDuration measures event handling from dequeue to merge.
var TelemetryProcessingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "telemetry_processing_duration_seconds",
		Help:      "Duration of telemetry event processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)

// TelemetryQueueDepth tracks events waiting in each dispatcher worker channel.
var TelemetryQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "telemetry_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuthAttemptsTotal counts authentication attempts.
// Labels:
//   - endpoint: "login", "register", or "resetpassword"
//   - result: "ok", "rejected", or "rate_limited"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by endpoint and result.",
	},
	[]string{"endpoint", "result"},
)
