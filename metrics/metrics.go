package metrics

import (
	// External Packages
	"github.com/prometheus/client_golang/prometheus"
)

var (
	TransactionsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "transactions_created_total",
			Help: "Transactions persisted in PENDING state",
		},
	)
	Verdicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "antifraud_verdicts_total",
			Help: "Fraud verdicts emitted, by resulting status and rule code",
		},
		[]string{"status", "rule"},
	)
	StatusUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transaction_status_updates_total",
			Help: "Status updated events handled, by outcome",
		},
		[]string{"outcome"},
	)
	CacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "Cache lookups, by cache and result",
		},
		[]string{"cache", "result"},
	)
	DeadLettered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dead_lettered_records_total",
			Help: "Records moved to the dead letter list after exhausting delivery attempts",
		},
		[]string{"topic"},
	)
)

func init() {
	prometheus.MustRegister(TransactionsCreated)
	prometheus.MustRegister(Verdicts)
	prometheus.MustRegister(StatusUpdates)
	prometheus.MustRegister(CacheRequests)
	prometheus.MustRegister(DeadLettered)
}
