// Package metrics exports Prometheus counters for write actions and
// scheduled jobs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics is nil-safe: a nil *Metrics records nothing.
type Metrics struct {
	actions     *prometheus.CounterVec
	jobDuration *prometheus.HistogramVec
	jobRuns     *prometheus.CounterVec
	gatherer    prometheus.Gatherer
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in
// tests to avoid duplicate registration.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gracehub_actions_total",
			Help: "Write actions by entity, action, and outcome.",
		}, []string{"entity", "action", "outcome"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gracehub_job_duration_seconds",
			Help:    "Duration of scheduled jobs in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"job"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gracehub_job_runs_total",
			Help: "Scheduled job executions by outcome.",
		}, []string{"job", "outcome"}),
		gatherer: reg,
	}
	reg.MustRegister(m.actions, m.jobDuration, m.jobRuns)
	return m
}

// Action records one write action.
func (m *Metrics) Action(entity, action string, success bool) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(entity, action, outcome(success)).Inc()
}

// Job records one scheduled job run.
func (m *Metrics) Job(name string, took time.Duration, err error) {
	if m == nil {
		return
	}
	m.jobDuration.WithLabelValues(name).Observe(took.Seconds())
	m.jobRuns.WithLabelValues(name, outcome(err == nil)).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func outcome(ok bool) string {
	if ok {
		return OutcomeSuccess
	}
	return OutcomeFailure
}
