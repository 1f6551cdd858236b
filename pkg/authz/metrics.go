package authz

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	decisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "officelife",
		Subsystem: "authz",
		Name:      "decisions_total",
		Help:      "Total number of authorization chain evaluations broken down by result and denial reason.",
	}, []string{"result", "reason"})

	decisionLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "officelife",
		Subsystem: "authz",
		Name:      "latency_seconds",
		Help:      "Latency distribution for authorization chain evaluations.",
		Buckets: []float64{
			0.00005, 0.0001, 0.0005, 0.001,
			0.005, 0.01, 0.05, 0.1,
		},
	}, []string{"result"})
)

func recordDecision(d Decision, latency time.Duration) {
	result := "denied"
	if d.Allowed {
		result = "allowed"
	}
	decisions.With(prometheus.Labels{"result": result, "reason": d.Reason}).Inc()
	decisionLatency.With(prometheus.Labels{"result": result}).Observe(latency.Seconds())
}
