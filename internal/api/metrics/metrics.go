// Package metrics defines and registers the custom Prometheus metrics of the
// club API. It is the single source of truth for metric names, labels and
// help strings. Metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "club"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthDecisionsTotal counts gate decisions.
// Labels:
//   - gate: "admin", "user" or "optional"
//   - outcome: "allowed", "anonymous", or the rejection reason (e.g. "expired", "role_mismatch")
var AuthDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_decisions_total",
		Help:      "Total number of authorization decisions, by gate and outcome.",
	},
	[]string{"gate", "outcome"},
)

// ── Upload metrics ────────────────────────────────────────────────────────────

// UploadsTotal counts upload requests.
// Labels:
//   - category: the storage category, or "invalid" when it was rejected
//   - result: "stored", "unsupported_type", "too_large", "too_many", "no_files" or "error"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of upload requests, by category and result.",
	},
	[]string{"category", "result"},
)

// UploadBytesTotal counts bytes written to upload storage.
var UploadBytesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upload_bytes_total",
		Help:      "Total number of bytes stored, by category.",
	},
	[]string{"category"},
)

// ── Ticket metrics ────────────────────────────────────────────────────────────

// IdempotencyTotal counts Idempotency-Key lookups on ticket purchase.
// Label:
//   - result: "hit" (replayed), "miss" (new purchase), "in_progress"
//     (key held by a concurrent purchase) or "error"
var IdempotencyTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ticket_idempotency_total",
		Help:      "Total number of idempotency lookups, labelled by result.",
	},
	[]string{"result"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the entries waiting in each audit worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditWritesTotal counts audit entries by outcome.
// Label:
//   - result: "ok", "error" or "dropped" (queue full)
var AuditWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_writes_total",
		Help:      "Total number of audit entries handled, by result.",
	},
	[]string{"result"},
)

// AuditWriteDuration measures how long persisting one audit entry takes.
var AuditWriteDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_write_duration_seconds",
		Help:      "Duration of a single audit entry write.",
		Buckets:   prometheus.DefBuckets,
	},
)
