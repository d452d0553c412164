package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. Stage labels
// are "search", "links" and "engagement".
type Metrics struct {
	TasksTotal     *prometheus.CounterVec
	ErrorsTotal    *prometheus.CounterVec
	StageDuration  *prometheus.HistogramVec
	SessionsOpened prometheus.Counter
}

func NewMetrics() *Metrics {
	return &Metrics{
		TasksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "scraper_tasks_processed_total",
			Help: "The total number of tasks processed per stage",
		}, []string{"stage"}),
		ErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "scraper_errors_total",
			Help: "The total number of task errors per stage and kind",
		}, []string{"stage", "type"}), // e.g. 'retry_exhausted', 'terminal'
		StageDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scraper_stage_duration_seconds",
			Help:    "Wall-clock duration of a full stage run",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}, []string{"stage"}),
		SessionsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scraper_browser_sessions_opened_total",
			Help: "The total number of browser sessions opened",
		}),
	}
}

func (m *Metrics) IncTask(stage string) {
	m.TasksTotal.WithLabelValues(stage).Inc()
}

func (m *Metrics) IncError(stage, errorType string) {
	m.ErrorsTotal.WithLabelValues(stage, errorType).Inc()
}

func (m *Metrics) ObserveStage(stage string, seconds float64) {
	m.StageDuration.WithLabelValues(stage).Observe(seconds)
}
