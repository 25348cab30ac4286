// Package metrics defines all custom Prometheus metrics for the ledger API.
// It is the single source of truth for metric names, labels, and help strings.
//
// Metrics register themselves with the default registry via promauto; the
// /metrics endpoint is wired by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ledger"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "user_not_found", "bad_password", "rate_limited"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts access token verifications at the gate.
// Label:
//   - result: "ok", "expired", "bad_signature", "malformed", "absent"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of access token verifications, labelled by result.",
	},
	[]string{"result"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsIssuedTotal counts refresh sessions created at login.
var SessionsIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of refresh sessions issued.",
	},
)

// SessionsRotatedTotal counts successful refresh rotations.
var SessionsRotatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_rotated_total",
		Help:      "Total number of successful session rotations.",
	},
)

// RotationConflictsTotal counts rotations lost to a concurrent rotation of
// the same session.
var RotationConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rotation_conflicts_total",
		Help:      "Total number of session rotations rejected by the concurrency check.",
	},
)

// SessionsRevokedTotal counts explicit revocations (logouts).
var SessionsRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_revoked_total",
		Help:      "Total number of sessions explicitly revoked.",
	},
)

// CleanupDeletedTotal counts rows removed by the expired-session sweep.
var CleanupDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cleanup_deleted_total",
		Help:      "Total number of expired session rows deleted by the cleanup sweep.",
	},
)

// CleanupDuration measures how long a single cleanup sweep takes.
var CleanupDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "cleanup_duration_seconds",
		Help:      "Duration of a single expired-session cleanup sweep.",
		Buckets:   prometheus.DefBuckets,
	},
)
