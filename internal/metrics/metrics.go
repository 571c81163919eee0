package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RoundsTotal tracks retry loop rounds per batch run
	RoundsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "relayer_rounds_total",
			Help: "Total number of grouping rounds driven",
		},
	)

	// GroupsProcessed tracks groups handed to the ledger per round
	GroupsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "relayer_groups_processed_total",
			Help: "Total number of groups handed to the processing step",
		},
	)

	// SubmissionsTotal tracks per-element submission results
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relayer_submissions_total",
			Help: "Total number of element submissions by result",
		},
		[]string{"call", "result"},
	)

	// LedgerCallsTotal tracks ledger RPC calls
	LedgerCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relayer_ledger_calls_total",
			Help: "Total number of ledger calls",
		},
		[]string{"provider", "method"},
	)

	// LedgerErrorsTotal tracks ledger RPC errors
	LedgerErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relayer_ledger_errors_total",
			Help: "Total number of ledger call errors",
		},
		[]string{"provider", "method"},
	)

	// LedgerCallLatency tracks ledger call latency
	LedgerCallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relayer_ledger_call_latency_seconds",
			Help:    "Ledger call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "method"},
	)

	// BatchElements tracks the live elements remaining after each run
	BatchElements = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "relayer_batch_elements",
			Help: "Elements in the last batch by final state",
		},
		[]string{"state"},
	)
)
