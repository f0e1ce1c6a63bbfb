// Package metrics defines and registers all custom Prometheus metrics for the
// Setlist API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at import time via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "setlist"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts completed registrations by role.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful account registrations, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "rejected" (bad credentials or deactivated), or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokensRevokedTotal counts tokens revoked via logout.
var TokensRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_revoked_total",
		Help:      "Total number of bearer tokens revoked via logout.",
	},
)

// ── Collaboration metrics ─────────────────────────────────────────────────────

// CollaborationEventsTotal counts collaboration lifecycle events.
// Label:
//   - event: "created", "accepted", "declined", or "duplicate_pending"
var CollaborationEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "collaboration_events_total",
		Help:      "Total number of collaboration lifecycle events.",
	},
	[]string{"event"},
)
