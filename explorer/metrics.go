package explorer

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exports conversion metrics to Prometheus.
type Metrics struct {
	requests  *prometheus.CounterVec
	warnings  prometheus.Counter
	latency   prometheus.Histogram
	liveConns prometheus.Gauge
}

// NewMetrics registers the explorer metrics on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "abigen_convert_requests_total",
			Help: "Conversion requests by transport and result.",
		}, []string{"transport", "result"}),
		warnings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "abigen_convert_warnings_total",
			Help: "Degraded conversions reported to clients.",
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "abigen_convert_duration_seconds",
			Help:    "Time spent generating one unit.",
			Buckets: prometheus.DefBuckets,
		}),
		liveConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "abigen_live_connections",
			Help: "Open live conversion connections.",
		}),
	}
	reg.MustRegister(m.requests, m.warnings, m.latency, m.liveConns)
	return m
}

func (m *Metrics) observe(transport, result string, warnings int, d time.Duration) {
	m.requests.WithLabelValues(transport, result).Inc()
	m.warnings.Add(float64(warnings))
	m.latency.Observe(d.Seconds())
}

// metricsHandler serves reg in the Prometheus text format.
func metricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
