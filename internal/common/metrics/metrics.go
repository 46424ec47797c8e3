// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	PipelineTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_transitions_total",
			Help: "Candidate stage transitions applied to a board",
		},
		[]string{"from", "to"},
	)

	PipelineRollbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_rollbacks_total",
			Help: "Optimistic updates reverted after a failed remote write",
		},
		[]string{"operation"},
	)

	JobSearchResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobsearch_results",
			Help:    "Number of jobs returned per search request",
			Buckets: []float64{0, 1, 3, 5, 10, 25, 50, 100},
		},
		[]string{"task_type"},
	)

	ApplicationCountsCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "application_counts_cache_total",
			Help: "Application count cache lookups by result",
		},
		[]string{"result"},
	)
)
