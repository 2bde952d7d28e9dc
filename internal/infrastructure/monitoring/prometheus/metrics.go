// Package prometheus registers and exposes the engine's operational
// metrics.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine operation labels used on EngineOpsTotal and EngineOpDuration.
const (
	OpSimulateWeather = "simulate_weather"
	OpPredictYield    = "predict_yield"
	OpPredictPrice    = "predict_price"
	OpRecommendCrops  = "recommend_crops"
	OpBuildFarmReport = "build_farm_report"
)

var defaultDurationBuckets = []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}

// Metrics holds every registered collector.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	EngineOpsTotal   *prometheus.CounterVec
	EngineOpDuration *prometheus.HistogramVec

	ReportsGeneratedTotal prometheus.Counter
	ReportCrops           prometheus.Histogram

	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter
}

// New registers all metrics on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agrointel",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "agrointel",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   defaultDurationBuckets,
		}, []string{"method", "path"}),

		EngineOpsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agrointel",
			Name:      "engine_operations_total",
			Help:      "Engine operations by outcome.",
		}, []string{"operation", "status"}),
		EngineOpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "agrointel",
			Name:      "engine_operation_duration_seconds",
			Help:      "Engine operation latency.",
			Buckets:   defaultDurationBuckets,
		}, []string{"operation"}),

		ReportsGeneratedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "agrointel",
			Name:      "farm_reports_generated_total",
			Help:      "Farm reports assembled.",
		}),
		ReportCrops: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "agrointel",
			Name:      "farm_report_crop_count",
			Help:      "Crops per farm report.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
		}),

		CacheHitsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "agrointel",
			Name:      "cache_hits_total",
			Help:      "Cache hits.",
		}),
		CacheMissesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "agrointel",
			Name:      "cache_misses_total",
			Help:      "Cache misses.",
		}),
	}
}

// ObserveEngineOp records one engine operation's outcome and duration.
func (m *Metrics) ObserveEngineOp(op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.EngineOpsTotal.WithLabelValues(op, status).Inc()
	m.EngineOpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
