package taskqueue

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	pushTotal   *prometheus.CounterVec
	handleTotal *prometheus.CounterVec
	deadTotal   *prometheus.CounterVec

	handleLatency *prometheus.HistogramVec

	depth *prometheus.GaugeVec
}

var metricsSingleton = sync.OnceValue(func() *metrics {
	return &metrics{
		pushTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taskqueue",
			Name:      "push_total",
			Help:      "Total number of task queue push operations.",
		}, []string{"topic", "result"}),
		handleTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taskqueue",
			Name:      "handle_total",
			Help:      "Total number of handler invocations.",
		}, []string{"topic", "result"}),
		deadTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taskqueue",
			Name:      "dead_total",
			Help:      "Total number of payloads dropped after exhausting retries.",
		}, []string{"topic"}),
		handleLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "taskqueue",
			Name:      "handle_latency_seconds",
			Help:      "Latency distribution for task handlers.",
			Buckets: []float64{
				0.001, 0.002, 0.005,
				0.01, 0.02, 0.05,
				0.1, 0.2, 0.5,
				1, 2, 5, 10,
			},
		}, []string{"topic", "result"}),
		depth: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "taskqueue",
			Name:      "depth",
			Help:      "Queue length observed by the worker after each drain.",
		}, []string{"topic"}),
	}
})

func getMetrics() *metrics {
	return metricsSingleton()
}

// RecordPush counts a producer-side push outcome.
func RecordPush(topic string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	getMetrics().pushTotal.WithLabelValues(topic, result).Inc()
}
