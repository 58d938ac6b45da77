package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides observability for the signup flow.
type Metrics struct {
	// Field validations by field kind and status
	Validations *prometheus.CounterVec

	// Address lookups by outcome: found, not_found, invalid, unavailable, superseded
	Lookups *prometheus.CounterVec

	LookupLatency prometheus.Histogram

	// Submissions by outcome: accepted, rejected, duplicate, failed, throttled
	Submissions *prometheus.CounterVec
}

// New registers the signup metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Validations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_field_validations_total",
			Help: "Total field validations by field kind and status",
		}, []string{"kind", "status"}),

		Lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_cep_lookups_total",
			Help: "Total address lookups by outcome",
		}, []string{"outcome"}),

		LookupLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "signup_cep_lookup_duration_seconds",
			Help:    "Duration of address lookups including cache hits",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_submissions_total",
			Help: "Total form submissions by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveValidation records one field validation.
func (m *Metrics) ObserveValidation(kind, status string) {
	if m != nil {
		m.Validations.WithLabelValues(kind, status).Inc()
	}
}

// ObserveLookup records an address lookup and its duration.
func (m *Metrics) ObserveLookup(outcome string, d time.Duration) {
	if m != nil {
		m.Lookups.WithLabelValues(outcome).Inc()
		m.LookupLatency.Observe(d.Seconds())
	}
}

// IncrementSubmission records a submission outcome.
func (m *Metrics) IncrementSubmission(outcome string) {
	if m != nil {
		m.Submissions.WithLabelValues(outcome).Inc()
	}
}

// Handler exposes the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
