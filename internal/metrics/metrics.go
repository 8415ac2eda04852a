// Package metrics exposes skill activity as Prometheus metrics, fed by the
// runtime lifecycle hooks.
package metrics

import (
	"context"
	"net/http"

	"github.com/aretw0/decisiontree/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "decisiontree"

// Recorder owns the skill's collectors.
type Recorder struct {
	Requests   *prometheus.CounterVec
	Directives *prometheus.CounterVec
	Outcomes   *prometheus.CounterVec
	Errors     *prometheus.CounterVec
	Duration   *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// NewRecorder creates the collectors and registers them with reg.
// A nil reg uses a fresh private registry.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	r := &Recorder{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of handled skill requests.",
			},
			[]string{"type", "route"},
		),
		Directives: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "directives_total",
				Help:      "Dialog directives decided, by kind and slot.",
			},
			[]string{"kind", "slot"},
		),
		Outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "outcomes_total",
				Help:      "Recommendations resolved, by occupation.",
			},
			[]string{"outcome"},
		),
		Errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Failures recovered at the error boundary, by kind.",
			},
			[]string{"kind"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Time spent handling a skill request.",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"route"},
		),
	}

	reg.MustRegister(r.Requests, r.Directives, r.Outcomes, r.Errors, r.Duration)

	if g, ok := reg.(prometheus.Gatherer); ok {
		r.gatherer = g
	} else {
		r.gatherer = prometheus.DefaultGatherer
	}
	return r
}

// Hooks returns lifecycle hooks that update the collectors.
func (r *Recorder) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRequest: func(_ context.Context, e *domain.RequestEvent) {
			r.Requests.WithLabelValues(string(e.Type), e.Route).Inc()
			r.Duration.WithLabelValues(e.Route).Observe(e.Duration.Seconds())
		},
		OnDirective: func(_ context.Context, e *domain.DirectiveEvent) {
			r.Directives.WithLabelValues(string(e.Kind), string(e.Slot)).Inc()
		},
		OnOutcome: func(_ context.Context, e *domain.OutcomeEvent) {
			r.Outcomes.WithLabelValues(e.Outcome.Name).Inc()
		},
		OnError: func(_ context.Context, e *domain.ErrorEvent) {
			r.Errors.WithLabelValues(e.Kind).Inc()
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
