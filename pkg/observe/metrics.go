package observe

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels of FetchesTotal.
const (
	OutcomeOK        = "ok"
	OutcomeTransport = "transport_error"
	OutcomeStatus    = "upstream_status"
	OutcomeParse     = "parse_error"
	OutcomeInvalid   = "invalid_input"
	OutcomeOther     = "other_error"
)

// Metrics holds the Prometheus collectors of the weather fetcher.
type Metrics struct {
	FetchesTotal  *prometheus.CounterVec
	FetchDuration prometheus.Histogram

	gatherer prometheus.Gatherer
}

// NewMetrics registers the collectors on a fresh registry together with the
// Go runtime and process collectors.
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		FetchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "weather_fetches_total",
				Help:      "Current weather fetches by outcome",
			},
			[]string{"outcome"},
		),
		FetchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "weather_fetch_duration_seconds",
				Help:      "Latency of current weather fetches, including JSON decoding",
				Buckets:   prometheus.DefBuckets,
			},
		),
		gatherer: reg,
	}

	reg.MustRegister(
		m.FetchesTotal,
		m.FetchDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) ObserveFetch(outcome string, d time.Duration) {
	m.FetchesTotal.WithLabelValues(outcome).Inc()
	m.FetchDuration.Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
