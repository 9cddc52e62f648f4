// Package metrics defines and registers all custom Prometheus metrics for
// the TailorHub marketplace API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tailorhub"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid", "unverified"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SignupsTotal counts completed signups.
// Label:
//   - role: "CLIENT" or "TAILOR"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// ── Marketplace metrics ───────────────────────────────────────────────────────

// JobsCreatedTotal counts posted jobs.
// Label:
//   - category: the job category as submitted
var JobsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_created_total",
		Help:      "Total number of jobs posted, by category.",
	},
	[]string{"category"},
)

// JobsModeratedTotal counts moderation decisions.
// Label:
//   - decision: "APPROVED" or "REJECTED"
var JobsModeratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_moderated_total",
		Help:      "Total number of moderation decisions, by outcome.",
	},
	[]string{"decision"},
)

// ServicesCreatedTotal counts published service listings.
var ServicesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "services_created_total",
		Help:      "Total number of tailor service listings published.",
	},
)

// OrdersPlacedTotal counts placed orders.
var OrdersPlacedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of orders placed.",
	},
)

// ── Upload metrics ────────────────────────────────────────────────────────────

// UploadBytes measures the size of accepted uploads.
var UploadBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_bytes",
		Help:      "Size distribution of accepted image uploads.",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 8), // 1KiB … 16MiB
	},
)

// UploadRejectedTotal counts uploads rejected before storage.
// Label:
//   - reason: "too_large", "too_many", "not_image"
var UploadRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upload_rejected_total",
		Help:      "Total number of uploads rejected before reaching storage.",
	},
	[]string{"reason"},
)
