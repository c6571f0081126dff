package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the ledger's Prometheus metrics.
type Metrics struct {
	// Account metrics
	AccountsCreated prometheus.Counter
	DepositsTotal   prometheus.Counter

	// Transfer metrics
	TransfersTotal   prometheus.Counter
	TransferErrors   *prometheus.CounterVec
	TransferDuration prometheus.Histogram
	TransferAmount   prometheus.Histogram
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		DepositsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_deposits_total",
			Help: "Total number of deposits recorded",
		}),
		TransfersTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_transfers_total",
			Help: "Total number of transfers recorded",
		}),
		TransferErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_transfer_errors_total",
				Help: "Total number of transfer errors by kind",
			},
			[]string{"kind"},
		),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: prometheus.DefBuckets,
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_transfer_amount_cents",
			Help:    "Transfer amounts in cents",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
		}),
	}
}
