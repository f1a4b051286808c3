// Package metrics registers the prometheus instruments for the platform.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkflowRuns        *prometheus.CounterVec
	WorkflowDuration    *prometheus.HistogramVec
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	LLMRequestsTotal    *prometheus.CounterVec
	LLMTokensTotal      *prometheus.CounterVec
	SheetCallsTotal     *prometheus.CounterVec
)

// Init registers all collectors with the default registry. Call once at
// startup before any workflow runs.
func Init() {
	WorkflowRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seolead_workflow_runs_total",
			Help: "Total workflow executions by outcome.",
		},
		[]string{"workflow", "status"},
	)

	WorkflowDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seolead_workflow_duration_seconds",
			Help:    "Duration of workflow executions.",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
		[]string{"workflow"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	LLMRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seolead_llm_requests_total",
			Help: "Chat-completion requests by outcome.",
		},
		[]string{"status"},
	)

	LLMTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seolead_llm_tokens_total",
			Help: "Tokens consumed by chat completions.",
		},
		[]string{"kind"}, // prompt, completion
	)

	SheetCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seolead_sheet_calls_total",
			Help: "Spreadsheet API calls by operation.",
		},
		[]string{"operation"},
	)
}
