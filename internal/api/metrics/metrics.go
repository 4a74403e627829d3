// Package metrics defines and registers all custom Prometheus metrics for the
// inventory service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation; HTTP request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inventory"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - operation: "register" or "login"
//   - outcome: "success", "too_short", "username_taken", "invalid_credentials", "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of registration and login attempts, by outcome.",
	},
	[]string{"operation", "outcome"},
)

// AuthEventsQueueDepth tracks the events waiting in each auth event worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuthEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "auth_events_queue_depth",
		Help:      "Current number of auth events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuthEventsDroppedTotal counts auth events dropped because a worker was full.
var AuthEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_dropped_total",
		Help:      "Total number of auth events dropped on a full worker channel.",
	},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionOperationsTotal counts session lifecycle operations.
// Labels:
//   - operation: "start" or "end"
//   - result: "ok" or "error"
var SessionOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_operations_total",
		Help:      "Total number of session start/end operations, by result.",
	},
	[]string{"operation", "result"},
)

// GateDecisionsTotal counts access control decisions.
// Label:
//   - decision: "allow", "redirect", "forbidden"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of access control decisions for protected paths.",
	},
	[]string{"decision"},
)

// ── Dashboard metrics ─────────────────────────────────────────────────────────

// DashboardAggregationDuration measures the whole aggregation fan-out.
// Label:
//   - result: "ok" or "error"
var DashboardAggregationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "dashboard_aggregation_duration_seconds",
		Help:      "Duration of the dashboard statistics fan-out.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ProductsWrittenTotal counts product mutations.
// Label:
//   - operation: "create" or "update"
var ProductsWrittenTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_written_total",
		Help:      "Total number of product creations and updates.",
	},
	[]string{"operation"},
)
