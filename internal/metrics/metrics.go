// Package metrics holds the process-wide Prometheus collectors. They are
// exposed on the admin server's /metrics route.
package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

var (
	// OperationResults counts service operation outcomes by operation name
	// and error kind ("none" on success).
	OperationResults metrics.Counter = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Namespace: "eats",
		Name:      "operation_results_total",
		Help:      "Count of service operation results",
	}, []string{"operation", "kind"})

	// MailDeliveries counts outbound mail by result: sent, failed or dropped.
	MailDeliveries metrics.Counter = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Namespace: "eats",
		Name:      "mail_deliveries_total",
		Help:      "Count of outbound mail attempts",
	}, []string{"result"})

	MailQueueDepth metrics.Gauge = prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
		Namespace: "eats",
		Name:      "mail_queue_depth",
		Help:      "Messages waiting in the mail dispatcher",
	}, nil)

	PromotionsCleared metrics.Counter = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Namespace: "eats",
		Name:      "promotions_cleared_total",
		Help:      "Count of restaurant promotions that expired",
	}, nil)

	TokensIssued metrics.Counter = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Namespace: "eats",
		Name:      "tokens_issued_total",
		Help:      "Count of session tokens issued",
	}, nil)
)

// Observe records one operation outcome.
func Observe(operation, kind string) {
	if kind == "" {
		kind = "none"
	}
	OperationResults.With("operation", operation, "kind", kind).Add(1)
}
