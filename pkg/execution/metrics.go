package execution

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iota-uz/officelife/pkg/serrors"
)

type metrics struct {
	total   *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

var metricsSingleton = sync.OnceValue(func() *metrics {
	return &metrics{
		total: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "officelife",
			Subsystem: "operations",
			Name:      "total",
			Help:      "Total number of executed operations by outcome.",
		}, []string{"operation", "result"}),
		latency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "officelife",
			Subsystem: "operations",
			Name:      "latency_seconds",
			Help:      "Latency distribution for executed operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
})

func observe(operation string, err error, d time.Duration) {
	m := metricsSingleton()
	result := "ok"
	if err != nil {
		result = serrors.KindOf(err).String()
	}
	m.total.WithLabelValues(operation, result).Inc()
	m.latency.WithLabelValues(operation).Observe(d.Seconds())
}
