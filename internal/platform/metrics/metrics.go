// Package metrics defines the Prometheus instruments exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MailDispatches counts mail dispatch attempts by outcome ("ok" or "error").
// Mail failures are deliberately invisible to API callers, so this counter
// and the corresponding log line are the only operational signal.
var MailDispatches = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "mail_dispatch_total",
		Help: "Mail dispatch attempts by outcome.",
	},
	[]string{"outcome"},
)

// ObserveMailDispatch records the outcome of one dispatch attempt.
func ObserveMailDispatch(err error) {
	if err != nil {
		MailDispatches.WithLabelValues("error").Inc()
		return
	}
	MailDispatches.WithLabelValues("ok").Inc()
}
