package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iota-uz/officelife/modules/hrm/domain/entities/importjob"
)

var importJobs = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "officelife",
	Name:      "import_jobs_total",
	Help:      "Employee import jobs that reached a terminal status.",
}, []string{"status"})

func recordImport(status importjob.Status) {
	importJobs.With(prometheus.Labels{"status": string(status)}).Inc()
}
