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

	CatalogCareers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "career_catalog_careers",
			Help: "Number of careers in the loaded catalog",
		},
	)

	CareerMatchScore = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "career_match_score",
			Help:    "Match scores returned to users, by career",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
		[]string{"career_id"},
	)

	CandidatesAugmented = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "career_candidates_augmented_total",
			Help: "Match runs that topped up a thin eligible set with ineligible careers",
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_cache_lookups_total",
			Help: "Redis cache lookups by cache and result",
		},
		[]string{"cache", "result"},
	)

	ReportDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_report_deliveries_total",
			Help: "Report deliveries by channel and status",
		},
		[]string{"channel", "status"},
	)
)

// CacheResult labels a cache lookup outcome.
func CacheResult(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
