// Package metrics defines and registers all custom Prometheus metrics for
// the quarry operations API. It is the single source of truth for metric
// names, labels, and help strings. All metrics register with the default
// registry via promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "quarry"

// ── Record metrics ───────────────────────────────────────────────────────────

// RecordsCreatedTotal counts operational records successfully persisted.
// Label:
//   - table: the operational table ("production", "equipment", ...)
var RecordsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_created_total",
		Help:      "Total number of operational records successfully created.",
	},
	[]string{"table"},
)

// EquipmentUpsertsTotal counts equipment upserts by outcome.
// Label:
//   - result: "created" (no row matched the business key) or "updated"
var EquipmentUpsertsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "equipment_upserts_total",
		Help:      "Total number of equipment upserts, labelled by outcome.",
	},
	[]string{"result"},
)

// SubmissionsDedupTotal counts idempotency decisions on record submissions.
// Label:
//   - result: "hit" (duplicate, suppressed) or "miss" (new, persisted)
var SubmissionsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_dedup_total",
		Help:      "Total number of submission idempotency checks, labelled by result.",
	},
	[]string{"result"},
)

// ── Auth metrics ─────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "user_not_found", "invalid_password", or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// ── Export metrics ───────────────────────────────────────────────────────────

// ExportsTotal counts spreadsheet exports written.
// Label:
//   - table: the exported operational table
var ExportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Total number of spreadsheet exports written, by table.",
	},
	[]string{"table"},
)

// ── Admin metrics ────────────────────────────────────────────────────────────

// DataClearsTotal counts admin-triggered full clears of the operational data.
var DataClearsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "data_clears_total",
		Help:      "Total number of admin-triggered clears of all operational data.",
	},
)
