package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_CountersAndHandler(t *testing.T) {
	m := New()

	m.ObserveCall("billing", OutcomeTransient, 10*time.Millisecond)
	m.ObserveCall("billing", OutcomeOK, 5*time.Millisecond)
	m.IncRetry("billing")
	m.IncCatsAggregated()
	m.ObserveHTTP("/cats", http.StatusOK)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DependencyCalls.WithLabelValues("billing", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DependencyRetries.WithLabelValues("billing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatsAggregated))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cat_shelter_http_requests_total")
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveCall("auth", OutcomeOK, time.Millisecond)
		m.IncRetry("auth")
		m.IncCatsAggregated()
		m.ObserveHTTP("/x", 200)
	})
}

func TestNew_TwiceDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = New()
		_ = New()
	})
}
