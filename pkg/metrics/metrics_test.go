package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casadosaber/signup/pkg/metrics"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ObserveValidation("cpf", "invalid")
	m.ObserveValidation("cpf", "invalid")
	m.ObserveValidation("email", "valid")
	m.ObserveLookup("found", 30*time.Millisecond)
	m.IncrementSubmission("accepted")

	assert.InDelta(t, 2, testutil.ToFloat64(m.Validations.WithLabelValues("cpf", "invalid")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Validations.WithLabelValues("email", "valid")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Lookups.WithLabelValues("found")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Submissions.WithLabelValues("accepted")), 0)
}

func TestNilMetrics(t *testing.T) {
	t.Parallel()

	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveValidation("cpf", "valid")
		m.ObserveLookup("found", time.Millisecond)
		m.IncrementSubmission("accepted")
	})
}

func TestHandler(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics.New(reg).IncrementSubmission("rejected")

	rec := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `signup_submissions_total{outcome="rejected"} 1`)
}
