package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes de una llamada a dependencia.
const (
	OutcomeOK        = "ok"
	OutcomeNotFound  = "not_found"
	OutcomeTransient = "transient"
	OutcomeError     = "error"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	registry *prometheus.Registry

	DependencyCalls   *prometheus.CounterVec
	DependencyRetries *prometheus.CounterVec
	DependencyLatency *prometheus.HistogramVec
	HTTPRequests      *prometheus.CounterVec
	CatsAggregated    prometheus.Counter
}

// New creates and registers all metrics on a private registry, so that
// several routers (tests) can coexist in one process.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		DependencyCalls: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cat_shelter_dependency_calls_total",
			Help: "Dependency calls by dependency and outcome",
		}, []string{"dependency", "outcome"}),
		DependencyRetries: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cat_shelter_dependency_retries_total",
			Help: "Retries issued after a transient dependency failure",
		}, []string{"dependency"}),
		DependencyLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cat_shelter_dependency_duration_seconds",
			Help:    "Latency of a single dependency attempt",
			Buckets: prometheus.DefBuckets,
		}, []string{"dependency"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "cat_shelter_http_requests_total",
			Help: "HTTP requests by route pattern and status code",
		}, []string{"route", "status"}),
		CatsAggregated: f.NewCounter(prometheus.CounterOpts{
			Name: "cat_shelter_cats_aggregated_total",
			Help: "Cat aggregates composed from record, breed and price history",
		}),
	}
}

// ObserveCall registra una llamada (un intento) a una dependencia.
func (m *Metrics) ObserveCall(dependency, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.DependencyCalls.WithLabelValues(dependency, outcome).Inc()
	m.DependencyLatency.WithLabelValues(dependency).Observe(d.Seconds())
}

func (m *Metrics) IncRetry(dependency string) {
	if m == nil {
		return
	}
	m.DependencyRetries.WithLabelValues(dependency).Inc()
}

func (m *Metrics) IncCatsAggregated() {
	if m == nil {
		return
	}
	m.CatsAggregated.Inc()
}

func (m *Metrics) ObserveHTTP(route string, status int) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// Handler expone el registry en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gatherer permite inspeccionar el registry en tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}
