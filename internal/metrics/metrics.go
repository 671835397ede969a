// Package metrics exposes Prometheus instrumentation for the ledger.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Budget evaluation outcomes.
const (
	OutcomeNoBudget       = "no_budget"
	OutcomeBelowThreshold = "below_threshold"
	OutcomeDeduplicated   = "deduplicated"
	OutcomeNotified       = "notified"
	OutcomeError          = "error"
)

var (
	// ExpensesCreated counts successfully stored expenses.
	ExpensesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "expenses_created_total",
		Help:      "Expenses written to the ledger store.",
	})

	// BudgetWarnings counts budget-warning notifications created.
	BudgetWarnings = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "budget_warnings_total",
		Help:      "Budget-warning notifications created.",
	})

	// BudgetEvaluations counts budget checks by outcome.
	BudgetEvaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "budget_evaluations_total",
		Help:      "Budget threshold evaluations by outcome.",
	}, []string{"outcome"})

	// RPCDuration observes RPC latency by procedure and result code.
	RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ledger",
		Name:      "rpc_duration_seconds",
		Help:      "Latency of Connect RPC calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure", "code"})
)

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
