// Package metrics defines and registers all custom Prometheus metrics for the
// patient records API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register themselves with the default
// registry via promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "caresync"

// ── Patient metrics ───────────────────────────────────────────────────────────

// PatientsCreatedTotal counts successfully persisted patient records.
var PatientsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "patients_created_total",
		Help:      "Total number of patient records created.",
	},
)

// MedicationsAppendedTotal counts medications appended to patient records.
var MedicationsAppendedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "medications_appended_total",
		Help:      "Total number of medications appended to patient records.",
	},
)

// MoodLogsAppendedTotal counts mood log entries appended to patient records.
var MoodLogsAppendedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mood_logs_appended_total",
		Help:      "Total number of mood log entries appended to patient records.",
	},
)

// ── Summarization metrics ─────────────────────────────────────────────────────

// SummaryRequestsTotal counts gateway calls by kind and outcome.
// Labels:
//   - kind: "summary" or "recommendation"
//   - result: "ok", "cache_hit", or "error"
var SummaryRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "summary_requests_total",
		Help:      "Total number of summarization gateway requests, by kind and result.",
	},
	[]string{"kind", "result"},
)

// ── Reminder pipeline metrics ─────────────────────────────────────────────────

// RemindersProcessedTotal counts reminder events written to the audit trail.
var RemindersProcessedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminders_processed_total",
		Help:      "Total number of medication reminder events recorded.",
	},
)

// RemindersDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new reminder, processed)
var RemindersDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminders_dedup_total",
		Help:      "Total number of reminder deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ReminderQueueDepth tracks the number of reminders waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ReminderQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "reminder_queue_depth",
		Help:      "Current number of reminders pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
