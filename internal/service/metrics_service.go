package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation. It doubles as the
// telemetry observer for the allocation engine and the holiday client.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	generationRuns     *prometheus.CounterVec
	allocationsCreated prometheus.Counter
	holidayFetches     *prometheus.CounterVec
	holidayFailures    prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	generationRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_generation_runs_total",
		Help: "Total full-period generation runs",
	}, []string{"period_id"})

	allocationsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_allocations_created_total",
		Help: "Total class schedule allocations created by the generator",
	})

	holidayFetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "holiday_fetches_total",
		Help: "Holiday year lookups, partitioned by cache outcome",
	}, []string{"source"})

	holidayFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "holiday_fetch_failures_total",
		Help: "Holiday source fetch failures degraded to empty sets",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, generationRuns, allocationsCreated, holidayFetches, holidayFailures, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:           registry,
		handler:            handler,
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		generationRuns:     generationRuns,
		allocationsCreated: allocationsCreated,
		holidayFetches:     holidayFetches,
		holidayFailures:    holidayFailures,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := []string{method, path, strconv.Itoa(status)}
	m.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(labels...).Inc()
}

// GenerationRun implements the engine observer.
func (m *MetricsService) GenerationRun(periodID string) {
	if m == nil {
		return
	}
	m.generationRuns.WithLabelValues(periodID).Inc()
}

// AllocationsCreated implements the engine observer.
func (m *MetricsService) AllocationsCreated(n int) {
	if m == nil {
		return
	}
	m.allocationsCreated.Add(float64(n))
}

// HolidayFetch implements the holiday client observer.
func (m *MetricsService) HolidayFetch(hit bool) {
	if m == nil {
		return
	}
	source := "remote"
	if hit {
		source = "cache"
	}
	m.holidayFetches.WithLabelValues(source).Inc()
}

// HolidayFetchFailed implements the holiday client observer.
func (m *MetricsService) HolidayFetchFailed() {
	if m == nil {
		return
	}
	m.holidayFailures.Inc()
}
