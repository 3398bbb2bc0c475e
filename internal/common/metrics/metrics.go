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
)

// Parser metrics.
var (
	CommandsParsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlu_commands_parsed_total",
			Help: "Commands parsed, by resulting intent and language",
		},
		[]string{"intent", "language"},
	)

	Negations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nlu_negations_total",
			Help: "Commands suppressed because they were negated",
		},
	)

	LanguageFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlu_language_fallbacks_total",
			Help: "Commands whose reported language differs from the detected primary language",
		},
		[]string{"from", "to"},
	)

	ParseFaults = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nlu_parse_faults_total",
			Help: "Parser faults recovered at the pipeline boundary",
		},
	)

	ParseDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nlu_parse_duration_seconds",
			Help:    "Time spent parsing one command",
			Buckets: []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05},
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlu_cache_lookups_total",
			Help: "Parse cache lookups by tier and result",
		},
		[]string{"tier", "result"},
	)
)
